package catalog

import (
	"github.com/shopspring/decimal"

	"lobstertawar/internal/domain"
)

// Samples returns the demonstration records used to fill an empty catalog.
func Samples() []domain.Product {
	return []domain.Product{
		{
			Name:        "Lobster Air Tawar Hidup",
			Grade:       "A",
			SizeCm:      16,
			WeightG:     200,
			PricePerKg:  decimal.NewFromInt(280000),
			StockKg:     50,
			ImageURL:    "https://images.unsplash.com/photo-1601506521937-0121a7b6255e?q=80&w=1600&auto=format&fit=crop",
			Description: "Untuk restoran & hotel, kualitas premium.",
		},
		{
			Name:        "Lobster Air Tawar Hidup",
			Grade:       "B",
			SizeCm:      14,
			WeightG:     150,
			PricePerKg:  decimal.NewFromInt(230000),
			StockKg:     80,
			ImageURL:    "https://images.unsplash.com/photo-1570358934836-6802986bdf67?q=80&w=1600&auto=format&fit=crop",
			Description: "Pilihan ekonomis untuk katering & acara.",
		},
		{
			Name:        "Lobster Beku (Frozen)",
			Grade:       "Prosesed",
			SizeCm:      14,
			WeightG:     160,
			PricePerKg:  decimal.NewFromInt(210000),
			StockKg:     120,
			ImageURL:    "https://images.unsplash.com/photo-1604908812831-695b14e8dbf2?q=80&w=1600&auto=format&fit=crop",
			Description: "Diblanch & dibekukan cepat.",
		},
	}
}
