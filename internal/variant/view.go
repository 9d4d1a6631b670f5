package variant

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
)

const DefaultLowStockThreshold = 2

type Config struct {
	LowStockThreshold int
	StockAware        bool
}

func DefaultConfig() Config {
	return Config{LowStockThreshold: DefaultLowStockThreshold}
}

type StockBadge string

const (
	BadgeNone       StockBadge = ""
	BadgeInStock    StockBadge = "in_stock"
	BadgeLowStock   StockBadge = "low_stock"
	BadgeOutOfStock StockBadge = "out_of_stock"
)

// ValueView is one option value button.
type ValueView struct {
	Value     string
	Selected  bool
	Available bool
	Stock     int
	LowStock  bool
}

type OptionView struct {
	Name   string
	Values []ValueView
}

// ViewModel is everything a product page renders for the current selection.
type ViewModel struct {
	Selection     domain.Selection
	Variant       *domain.Variant
	Options       []OptionView
	Badge         StockBadge
	BadgeText     string
	DisplayPrice  *domain.Money
	Image         *domain.Image
	CanAddToCart  bool
	MerchandiseID string
}

// DeriveView repairs sel against p and derives the full view from scratch.
func DeriveView(p domain.Product, sel domain.Selection, cfg Config) ViewModel {
	r := NewResolver(p.Options, p.Variants, WithStockAwareAvailability(cfg.StockAware))
	return r.deriveView(r.Repair(sel), p, cfg)
}

// deriveView expects an already repaired selection.
func (r *Resolver) deriveView(sel domain.Selection, p domain.Product, cfg Config) ViewModel {
	vm := ViewModel{
		Selection: sel.Clone(),
		Options:   make([]OptionView, 0, len(r.options)),
	}

	for _, opt := range r.options {
		ov := OptionView{Name: opt.Name, Values: make([]ValueView, 0, len(opt.Values))}
		for _, value := range opt.Values {
			stock := r.Stock(sel.With(opt.Name, value))
			ov.Values = append(ov.Values, ValueView{
				Value:     value,
				Selected:  sel[opt.Name] == value,
				Available: r.Available(opt.Name, value, sel),
				Stock:     stock,
				LowStock:  stock > 0 && stock <= cfg.LowStockThreshold,
			})
		}
		vm.Options = append(vm.Options, ov)
	}

	if current, ok := r.Resolve(sel); ok {
		vm.Variant = &current
		vm.CanAddToCart = true
		vm.MerchandiseID = current.ID
		vm.Badge, vm.BadgeText = r.badge(current, cfg.LowStockThreshold)
	}

	if vm.Variant != nil {
		price := vm.Variant.Price
		vm.DisplayPrice = &price
	} else if def, ok := r.DefaultVariant(); ok {
		price := def.Price
		vm.DisplayPrice = &price
	}

	gallery := Gallery(p.Images, p.FeaturedImage)
	vm.Image = ImageFor(vm.Variant, gallery, MainImage(gallery, p.FeaturedImage))

	return vm
}

func (r *Resolver) badge(v domain.Variant, threshold int) (StockBadge, string) {
	if !r.purchasable(v) {
		return BadgeOutOfStock, "Out of stock"
	}
	if v.QuantityAvailable != nil && v.Stock() <= threshold {
		return BadgeLowStock, fmt.Sprintf("Only %d left", v.Stock())
	}
	return BadgeInStock, "In stock"
}
