// Package memcommerce is an in-memory commerce platform for local development
// and tests. Like the real platform it owns cost computation: line totals and
// subtotals are derived from catalog prices on every read.
package memcommerce

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	ErrMerchandiseNotFound = errors.New("merchandise not found")
	ErrLineNotFound        = errors.New("cart line not found")
)

const checkoutBaseURL = "https://checkout.example.com/cart/"

type line struct {
	id            string
	merchandiseID string
	quantity      int
}

type cart struct {
	id    string
	lines []line
}

type Platform struct {
	mu       sync.Mutex
	products []domain.Product
	carts    map[string]*cart
	seq      int
}

var _ port.CommercePlatform = (*Platform)(nil)

func New(products ...domain.Product) *Platform {
	return &Platform{
		products: products,
		carts:    make(map[string]*cart),
	}
}

func (p *Platform) CreateCart(ctx context.Context, lines []domain.LineInput) (domain.CartSummary, error) {
	if err := domain.ValidateLines(lines); err != nil {
		return domain.CartSummary{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c := &cart{id: p.nextID("Cart")}
	if err := p.addLines(c, lines); err != nil {
		return domain.CartSummary{}, err
	}
	p.carts[c.id] = c

	return p.summary(c), nil
}

func (p *Platform) AddLines(ctx context.Context, cartID string, lines []domain.LineInput) (domain.CartSummary, error) {
	if err := domain.ValidateLines(lines); err != nil {
		return domain.CartSummary{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.carts[cartID]
	if !ok {
		return domain.CartSummary{}, domain.ErrCartNotFound
	}

	// Validate everything before touching the cart.
	staged := &cart{id: c.id, lines: slices.Clone(c.lines)}
	if err := p.addLines(staged, lines); err != nil {
		return domain.CartSummary{}, err
	}
	p.carts[cartID] = staged

	return p.summary(staged), nil
}

func (p *Platform) UpdateLines(ctx context.Context, cartID string, lines []domain.LineUpdate) (domain.CartSummary, error) {
	if err := domain.ValidateLineUpdates(lines); err != nil {
		return domain.CartSummary{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.carts[cartID]
	if !ok {
		return domain.CartSummary{}, domain.ErrCartNotFound
	}

	updated := slices.Clone(c.lines)
	for _, u := range lines {
		i := slices.IndexFunc(updated, func(l line) bool { return l.id == u.ID })
		if i < 0 {
			return domain.CartSummary{}, fmt.Errorf("line[%s]: %w", u.ID, ErrLineNotFound)
		}
		updated[i].quantity = u.Quantity
	}
	c.lines = updated

	return p.summary(c), nil
}

func (p *Platform) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (domain.CartSummary, error) {
	if len(lineIDs) == 0 {
		return domain.CartSummary{}, domain.ErrNoLines
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.carts[cartID]
	if !ok {
		return domain.CartSummary{}, domain.ErrCartNotFound
	}

	for _, id := range lineIDs {
		if !slices.ContainsFunc(c.lines, func(l line) bool { return l.id == id }) {
			return domain.CartSummary{}, fmt.Errorf("line[%s]: %w", id, ErrLineNotFound)
		}
	}
	c.lines = slices.DeleteFunc(slices.Clone(c.lines), func(l line) bool {
		return slices.Contains(lineIDs, l.id)
	})

	return p.summary(c), nil
}

func (p *Platform) GetCart(ctx context.Context, cartID string) (domain.Cart, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.carts[cartID]
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}

	return p.fullCart(c)
}

func (p *Platform) ListProducts(ctx context.Context, limit int) ([]domain.ProductCard, error) {
	if limit <= 0 {
		limit = domain.DefaultProductLimit
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cards := make([]domain.ProductCard, 0, min(limit, len(p.products)))
	for _, product := range p.products {
		if len(cards) >= limit {
			break
		}
		card := domain.ProductCard{
			ID:            product.ID,
			Handle:        product.Handle,
			Title:         product.Title,
			FeaturedImage: product.FeaturedImage,
		}
		for i, v := range product.Variants {
			if i == 0 || v.Price.Amount.LessThan(card.Price.Amount) {
				card.Price = v.Price
			}
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (p *Platform) GetProduct(ctx context.Context, handle string) (domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, product := range p.products {
		if product.Handle == handle {
			return product, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (p *Platform) addLines(c *cart, lines []domain.LineInput) error {
	for _, in := range lines {
		if _, _, ok := p.lookup(in.MerchandiseID); !ok {
			return fmt.Errorf("merchandise[%s]: %w", in.MerchandiseID, ErrMerchandiseNotFound)
		}

		i := slices.IndexFunc(c.lines, func(l line) bool { return l.merchandiseID == in.MerchandiseID })
		if i >= 0 {
			c.lines[i].quantity += in.Quantity
			continue
		}
		c.lines = append(c.lines, line{
			id:            p.nextID("CartLine"),
			merchandiseID: in.MerchandiseID,
			quantity:      in.Quantity,
		})
	}
	return nil
}

func (p *Platform) summary(c *cart) domain.CartSummary {
	total := 0
	for _, l := range c.lines {
		total += l.quantity
	}
	return domain.CartSummary{
		ID:            c.id,
		CheckoutURL:   checkoutBaseURL + c.id,
		TotalQuantity: total,
	}
}

func (p *Platform) fullCart(c *cart) (domain.Cart, error) {
	summary := p.summary(c)
	out := domain.Cart{
		ID:            summary.ID,
		CheckoutURL:   summary.CheckoutURL,
		TotalQuantity: summary.TotalQuantity,
	}

	subtotal := decimal.Zero
	unit := currency.USD
	for i, l := range c.lines {
		product, v, ok := p.lookup(l.merchandiseID)
		if !ok {
			return domain.Cart{}, fmt.Errorf("merchandise[%s]: %w", l.merchandiseID, ErrMerchandiseNotFound)
		}
		if i == 0 {
			unit = v.Price.Currency
		}

		lineTotal := v.Price.Amount.Mul(decimal.NewFromInt(int64(l.quantity)))
		subtotal = subtotal.Add(lineTotal)

		out.Lines = append(out.Lines, domain.CartLine{
			ID:       l.id,
			Quantity: l.quantity,
			Merchandise: domain.Merchandise{
				ID:            v.ID,
				Title:         v.Title,
				ProductTitle:  product.Title,
				ProductHandle: product.Handle,
				FeaturedImage: product.FeaturedImage,
				Price:         v.Price,
			},
			Cost: domain.LineCost{
				AmountPerQuantity: v.Price,
				TotalAmount:       domain.Money{Amount: lineTotal, Currency: v.Price.Currency},
			},
		})
	}

	out.Cost = domain.CartCost{
		Subtotal: domain.Money{Amount: subtotal, Currency: unit},
		Total:    domain.Money{Amount: subtotal, Currency: unit},
	}
	return out, nil
}

func (p *Platform) lookup(merchandiseID string) (domain.Product, domain.Variant, bool) {
	for _, product := range p.products {
		if v, ok := product.Variant(merchandiseID); ok {
			return product, v, true
		}
	}
	return domain.Product{}, domain.Variant{}, false
}

func (p *Platform) nextID(kind string) string {
	p.seq++
	return fmt.Sprintf("gid://memcommerce/%s/%d", kind, p.seq)
}

func (p *Platform) Health(ctx context.Context) domain.Health {
	return domain.Health{OK: true, Shop: "memcommerce"}
}
