package shopify

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
)

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type connection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

func (c connection[T]) nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

type moneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

func (m moneyV2) toDomain() (domain.Money, error) {
	return domain.ParseMoney(m.Amount, m.CurrencyCode)
}

type imageNode struct {
	URL     string  `json:"url"`
	AltText *string `json:"altText"`
}

func (n *imageNode) toDomain() *domain.Image {
	if n == nil || n.URL == "" {
		return nil
	}
	img := &domain.Image{URL: n.URL}
	if n.AltText != nil {
		img.AltText = *n.AltText
	}
	return img
}

type cartSummaryNode struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
}

func (n cartSummaryNode) toDomain() domain.CartSummary {
	return domain.CartSummary{
		ID:            n.ID,
		CheckoutURL:   n.CheckoutURL,
		TotalQuantity: n.TotalQuantity,
	}
}

type cartMutationPayload struct {
	Cart       *cartSummaryNode `json:"cart"`
	UserErrors []userError      `json:"userErrors"`
}

type lineCostNode struct {
	AmountPerQuantity moneyV2 `json:"amountPerQuantity"`
	TotalAmount       moneyV2 `json:"totalAmount"`
}

type merchandiseNode struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Price   moneyV2    `json:"price"`
	Image   *imageNode `json:"image"`
	Product struct {
		Title         string     `json:"title"`
		Handle        string     `json:"handle"`
		FeaturedImage *imageNode `json:"featuredImage"`
	} `json:"product"`
}

type cartLineNode struct {
	ID          string          `json:"id"`
	Quantity    int             `json:"quantity"`
	Merchandise merchandiseNode `json:"merchandise"`
	Cost        lineCostNode    `json:"cost"`
}

type cartNode struct {
	cartSummaryNode
	Lines connection[cartLineNode] `json:"lines"`
	Cost  struct {
		SubtotalAmount moneyV2 `json:"subtotalAmount"`
		TotalAmount    moneyV2 `json:"totalAmount"`
	} `json:"cost"`
}

func (n cartNode) toDomain() (domain.Cart, error) {
	cart := domain.Cart{
		ID:            n.ID,
		CheckoutURL:   n.CheckoutURL,
		TotalQuantity: n.TotalQuantity,
	}

	for _, ln := range n.Lines.nodes() {
		line, err := ln.toDomain()
		if err != nil {
			return domain.Cart{}, fmt.Errorf("line[%s]: %w", ln.ID, err)
		}
		cart.Lines = append(cart.Lines, line)
	}

	var err error
	if cart.Cost.Subtotal, err = n.Cost.SubtotalAmount.toDomain(); err != nil {
		return domain.Cart{}, fmt.Errorf("subtotal: %w", err)
	}
	if cart.Cost.Total, err = n.Cost.TotalAmount.toDomain(); err != nil {
		return domain.Cart{}, fmt.Errorf("total: %w", err)
	}

	return cart, nil
}

func (n cartLineNode) toDomain() (domain.CartLine, error) {
	price, err := n.Merchandise.Price.toDomain()
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("price: %w", err)
	}
	perUnit, err := n.Cost.AmountPerQuantity.toDomain()
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("amountPerQuantity: %w", err)
	}
	total, err := n.Cost.TotalAmount.toDomain()
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("totalAmount: %w", err)
	}

	image := n.Merchandise.Image.toDomain()
	if image == nil {
		image = n.Merchandise.Product.FeaturedImage.toDomain()
	}

	return domain.CartLine{
		ID:       n.ID,
		Quantity: n.Quantity,
		Merchandise: domain.Merchandise{
			ID:            n.Merchandise.ID,
			Title:         n.Merchandise.Title,
			ProductTitle:  n.Merchandise.Product.Title,
			ProductHandle: n.Merchandise.Product.Handle,
			FeaturedImage: image,
			Price:         price,
		},
		Cost: domain.LineCost{AmountPerQuantity: perUnit, TotalAmount: total},
	}, nil
}

type productCardNode struct {
	ID            string     `json:"id"`
	Handle        string     `json:"handle"`
	Title         string     `json:"title"`
	FeaturedImage *imageNode `json:"featuredImage"`
	PriceRange    struct {
		MinVariantPrice moneyV2 `json:"minVariantPrice"`
	} `json:"priceRange"`
}

func (n productCardNode) toDomain() (domain.ProductCard, error) {
	price, err := n.PriceRange.MinVariantPrice.toDomain()
	if err != nil {
		return domain.ProductCard{}, fmt.Errorf("product[%s] price: %w", n.Handle, err)
	}
	return domain.ProductCard{
		ID:            n.ID,
		Handle:        n.Handle,
		Title:         n.Title,
		FeaturedImage: n.FeaturedImage.toDomain(),
		Price:         price,
	}, nil
}

type variantNode struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	AvailableForSale  bool       `json:"availableForSale"`
	QuantityAvailable *int       `json:"quantityAvailable"`
	Price             moneyV2    `json:"price"`
	SelectedOptions   []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
	Image *imageNode `json:"image"`
}

func (n variantNode) toDomain() (domain.Variant, error) {
	price, err := n.Price.toDomain()
	if err != nil {
		return domain.Variant{}, fmt.Errorf("variant[%s] price: %w", n.ID, err)
	}

	v := domain.Variant{
		ID:                n.ID,
		Title:             n.Title,
		AvailableForSale:  n.AvailableForSale,
		Price:             price,
		QuantityAvailable: n.QuantityAvailable,
		Image:             n.Image.toDomain(),
	}
	for _, so := range n.SelectedOptions {
		v.SelectedOptions = append(v.SelectedOptions, domain.SelectedOption{Name: so.Name, Value: so.Value})
	}
	return v, nil
}

type productNode struct {
	ID              string                `json:"id"`
	Handle          string                `json:"handle"`
	Title           string                `json:"title"`
	DescriptionHTML string                `json:"descriptionHtml"`
	FeaturedImage   *imageNode            `json:"featuredImage"`
	Images          connection[imageNode] `json:"images"`
	Options         []struct {
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"options"`
	Variants connection[variantNode] `json:"variants"`
}

func (n productNode) toDomain() (domain.Product, error) {
	p := domain.Product{
		ID:              n.ID,
		Handle:          n.Handle,
		Title:           n.Title,
		DescriptionHTML: n.DescriptionHTML,
		FeaturedImage:   n.FeaturedImage.toDomain(),
	}

	for _, img := range n.Images.nodes() {
		if d := img.toDomain(); d != nil {
			p.Images = append(p.Images, *d)
		}
	}
	for _, o := range n.Options {
		p.Options = append(p.Options, domain.Option{Name: o.Name, Values: o.Values})
	}
	for _, vn := range n.Variants.nodes() {
		v, err := vn.toDomain()
		if err != nil {
			return domain.Product{}, err
		}
		p.Variants = append(p.Variants, v)
	}

	return p, nil
}
