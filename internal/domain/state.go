package domain

// CatalogState is a point-in-time copy of the catalog loader.
type CatalogState struct {
	Products []Product
	Loading  bool
	Error    string
	Seeding  bool
}

func (s CatalogState) Empty() bool {
	return !s.Loading && s.Error == "" && len(s.Products) == 0
}

// InquiryState is a point-in-time copy of the inquiry submitter.
type InquiryState struct {
	Form       InquiryForm
	Status     string
	Submitting bool
}
