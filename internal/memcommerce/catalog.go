package memcommerce

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DemoCatalog is the catalog served in local development mode.
func DemoCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:              "gid://memcommerce/Product/1",
			Handle:          "classic-tee",
			Title:           "Classic Tee",
			DescriptionHTML: "<p>Soft cotton tee.</p>",
			FeaturedImage:   &domain.Image{URL: "https://cdn.example.com/classic-tee.jpg", AltText: "Classic Tee"},
			Images: []domain.Image{
				{URL: "https://cdn.example.com/classic-tee-red.jpg", AltText: "Classic Tee in red"},
				{URL: "https://cdn.example.com/classic-tee-blue.jpg", AltText: "Classic Tee in blue"},
			},
			Options: []domain.Option{
				{Name: "Color", Values: []string{"Red", "Blue"}},
				{Name: "Size", Values: []string{"S", "M", "L"}},
			},
			Variants: []domain.Variant{
				demoVariant("gid://memcommerce/ProductVariant/11", "19.90", true, stock(3), "Red", "S"),
				demoVariant("gid://memcommerce/ProductVariant/12", "19.90", true, stock(12), "Red", "M"),
				demoVariant("gid://memcommerce/ProductVariant/13", "19.90", false, stock(0), "Red", "L"),
				demoVariant("gid://memcommerce/ProductVariant/14", "21.50", true, stock(1), "Blue", "S"),
				demoVariant("gid://memcommerce/ProductVariant/15", "21.50", true, nil, "Blue", "M"),
				demoVariant("gid://memcommerce/ProductVariant/16", "21.50", true, stock(7), "Blue", "L"),
			},
		},
		{
			ID:              "gid://memcommerce/Product/2",
			Handle:          "enamel-mug",
			Title:           "Enamel Mug",
			DescriptionHTML: "<p>Camp mug.</p>",
			FeaturedImage:   &domain.Image{URL: "https://cdn.example.com/enamel-mug.jpg", AltText: "Enamel Mug"},
			Options:         []domain.Option{{Name: "Title", Values: []string{"Default Title"}}},
			Variants: []domain.Variant{{
				ID:                "gid://memcommerce/ProductVariant/21",
				Title:             "Default Title",
				AvailableForSale:  true,
				Price:             usd("12.00"),
				SelectedOptions:   []domain.SelectedOption{{Name: "Title", Value: "Default Title"}},
				QuantityAvailable: stock(40),
			}},
		},
	}
}

func demoVariant(id, price string, available bool, qty *int, color, size string) domain.Variant {
	return domain.Variant{
		ID:               id,
		Title:            color + " / " + size,
		AvailableForSale: available,
		Price:            usd(price),
		SelectedOptions: []domain.SelectedOption{
			{Name: "Color", Value: color},
			{Name: "Size", Value: size},
		},
		QuantityAvailable: qty,
	}
}

func usd(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.USD}
}

func stock(n int) *int {
	return &n
}
