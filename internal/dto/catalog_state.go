package dto

import "lobstertawar/internal/domain"

type CatalogStateResponse struct {
	Products []ProductDTO `json:"products"`
	Loading  bool         `json:"loading"`
	Error    string       `json:"error,omitempty"`
	Seeding  bool         `json:"seeding"`
}

func CatalogStateFromDomain(s domain.CatalogState) CatalogStateResponse {
	products := make([]ProductDTO, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, ProductFromDomain(p))
	}

	return CatalogStateResponse{
		Products: products,
		Loading:  s.Loading,
		Error:    s.Error,
		Seeding:  s.Seeding,
	}
}
