package variant_test

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func intPtr(n int) *int {
	return &n
}

func usd(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.USD}
}

func newVariant(id string, available bool, stock *int, pairs ...string) domain.Variant {
	v := domain.Variant{
		ID:                id,
		Title:             id,
		AvailableForSale:  available,
		Price:             usd("10.00"),
		QuantityAvailable: stock,
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.SelectedOptions = append(v.SelectedOptions, domain.SelectedOption{Name: pairs[i], Value: pairs[i+1]})
	}
	return v
}

// shirtProduct: Color in {Red, Blue}, Size in {S, M}; Red/M is not for sale
// and Blue/S is for sale with no stock left.
func shirtProduct() domain.Product {
	return domain.Product{
		ID:     "gid://product/1",
		Handle: "shirt",
		Title:  "Shirt",
		Options: []domain.Option{
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Size", Values: []string{"S", "M"}},
		},
		Variants: []domain.Variant{
			newVariant("red-s", true, intPtr(3), "Color", "Red", "Size", "S"),
			newVariant("red-m", false, nil, "Color", "Red", "Size", "M"),
			newVariant("blue-s", true, intPtr(0), "Color", "Blue", "Size", "S"),
			newVariant("blue-m", true, intPtr(5), "Color", "Blue", "Size", "M"),
		},
		FeaturedImage: &domain.Image{URL: "https://cdn.example.com/shirt.jpg", AltText: "Shirt"},
		Images: []domain.Image{
			{URL: "https://cdn.example.com/shirt-red.jpg", AltText: "Shirt in red"},
			{URL: "https://cdn.example.com/shirt-navy.jpg", AltText: "Blue shirt, front"},
		},
	}
}

// randomProduct builds a product whose variants cover a random subset of the
// option cartesian product with random availability and stock.
func randomProduct(faker *gofakeit.Faker) domain.Product {
	p := domain.Product{ID: faker.UUID(), Handle: faker.Word()}

	optionCount := faker.IntRange(1, 3)
	for i := 0; i < optionCount; i++ {
		opt := domain.Option{Name: fmt.Sprintf("opt%d", i)}
		valueCount := faker.IntRange(1, 4)
		for j := 0; j < valueCount; j++ {
			opt.Values = append(opt.Values, fmt.Sprintf("%s-%d", faker.Color(), j))
		}
		p.Options = append(p.Options, opt)
	}

	for i, combo := range combinations(p.Options) {
		if faker.IntRange(0, 3) == 0 {
			continue
		}
		v := domain.Variant{
			ID:               fmt.Sprintf("v%d", i),
			AvailableForSale: faker.Bool(),
			Price:            usd("1.00"),
			SelectedOptions:  combo,
		}
		if faker.Bool() {
			v.QuantityAvailable = intPtr(faker.IntRange(0, 9))
		}
		p.Variants = append(p.Variants, v)
	}
	return p
}

func combinations(options []domain.Option) [][]domain.SelectedOption {
	out := [][]domain.SelectedOption{{}}
	for _, opt := range options {
		var next [][]domain.SelectedOption
		for _, prefix := range out {
			for _, value := range opt.Values {
				combo := append(append([]domain.SelectedOption{}, prefix...), domain.SelectedOption{Name: opt.Name, Value: value})
				next = append(next, combo)
			}
		}
		out = next
	}
	return out
}

// randomSelection picks a value, or nothing, for each option.
func randomSelection(faker *gofakeit.Faker, options []domain.Option) domain.Selection {
	sel := domain.Selection{}
	for _, opt := range options {
		if faker.Bool() {
			sel[opt.Name] = opt.Values[faker.IntRange(0, len(opt.Values)-1)]
		}
	}
	return sel
}
