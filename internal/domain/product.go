package domain

import "github.com/shopspring/decimal"

const DefaultProductDescription = "Lobster segar siap kirim."

// Product is a read-only copy of a catalog entry owned by the backend.
// Zero values stand for absent optional attributes.
type Product struct {
	ID          string
	Name        string
	Grade       string
	SizeCm      float64
	WeightG     float64
	PricePerKg  decimal.Decimal
	StockKg     float64
	Description string
	ImageURL    string
}

func (p Product) DisplayDescription() string {
	if p.Description == "" {
		return DefaultProductDescription
	}
	return p.Description
}

func (p Product) HasSize() bool {
	return p.SizeCm > 0
}

func (p Product) HasWeight() bool {
	return p.WeightG > 0
}
