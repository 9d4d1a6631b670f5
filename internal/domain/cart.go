package domain

import "slices"

// Cart is the full remote cart as last returned by the commerce platform.
type Cart struct {
	ID            string
	CheckoutURL   string
	TotalQuantity int
	Lines         []CartLine
	Cost          CartCost
}

type CartLine struct {
	ID          string
	Quantity    int
	Merchandise Merchandise
	Cost        LineCost
}

type Merchandise struct {
	ID            string
	Title         string
	ProductTitle  string
	ProductHandle string
	FeaturedImage *Image
	Price         Money
}

type LineCost struct {
	AmountPerQuantity Money
	TotalAmount       Money
}

type CartCost struct {
	Subtotal Money
	Total    Money
}

// CartSummary is what cart write operations return.
type CartSummary struct {
	ID            string
	CheckoutURL   string
	TotalQuantity int
}

func (c Cart) Summary() CartSummary {
	return CartSummary{
		ID:            c.ID,
		CheckoutURL:   c.CheckoutURL,
		TotalQuantity: c.TotalQuantity,
	}
}

func (c Cart) Line(lineID string) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return CartLine{}, false
}

// Clone returns a deep copy so cached snapshots never alias caller-owned slices.
func (c Cart) Clone() Cart {
	out := c
	out.Lines = slices.Clone(c.Lines)
	for i, line := range out.Lines {
		if line.Merchandise.FeaturedImage != nil {
			img := *line.Merchandise.FeaturedImage
			out.Lines[i].Merchandise.FeaturedImage = &img
		}
	}
	return out
}
