package dto

import (
	"github.com/shopspring/decimal"

	"lobstertawar/internal/domain"
)

// ProductDTO is the backend's JSON product. Create requests leave ID empty.
type ProductDTO struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Grade       *string  `json:"grade,omitempty"`
	SizeCm      *float64 `json:"size_cm,omitempty"`
	WeightG     *float64 `json:"weight_g,omitempty"`
	PricePerKg  float64  `json:"price_per_kg"`
	StockKg     *float64 `json:"stock_kg,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

func (p ProductDTO) ToDomain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Grade:       deref(p.Grade),
		SizeCm:      deref(p.SizeCm),
		WeightG:     deref(p.WeightG),
		PricePerKg:  decimal.NewFromFloat(p.PricePerKg),
		StockKg:     deref(p.StockKg),
		Description: deref(p.Description),
		ImageURL:    deref(p.ImageURL),
	}
}

func ProductFromDomain(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Grade:       optional(p.Grade),
		SizeCm:      optional(p.SizeCm),
		WeightG:     optional(p.WeightG),
		PricePerKg:  p.PricePerKg.InexactFloat64(),
		StockKg:     &p.StockKg,
		Description: optional(p.Description),
		ImageURL:    optional(p.ImageURL),
	}
}

func ProductsToDomain(items []ProductDTO) []domain.Product {
	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, item.ToDomain())
	}
	return products
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
