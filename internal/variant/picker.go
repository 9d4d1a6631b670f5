package variant

import (
	"net/url"

	"github.com/nikolayk812/storefront/internal/domain"
)

type State int

const (
	StateDefault State = iota
	StateUserAdjusted
	StateForced
)

func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateUserAdjusted:
		return "user-adjusted"
	case StateForced:
		return "forced"
	}
	return "unknown"
}

// VariantParam is the link query key that restores a selection by variant id.
const VariantParam = "variant"

// Picker holds the selection for one product view. Every mutation repairs the
// selection, and View derives the rendering from scratch. A Picker belongs to a
// single view and is not safe for concurrent use.
type Picker struct {
	product  domain.Product
	resolver *Resolver
	cfg      Config

	selection domain.Selection
	state     State
}

func NewPicker(p domain.Product, cfg Config) *Picker {
	picker := &Picker{
		product:  p,
		resolver: NewResolver(p.Options, p.Variants, WithStockAwareAvailability(cfg.StockAware)),
		cfg:      cfg,
		state:    StateDefault,
	}

	initial := domain.Selection{}
	if v, ok := picker.resolver.DefaultVariant(); ok {
		initial = domain.SelectionFromVariant(v)
	}
	picker.selection = picker.resolver.Repair(initial)

	return picker
}

func (p *Picker) State() State {
	return p.state
}

func (p *Picker) Selection() domain.Selection {
	return p.selection.Clone()
}

func (p *Picker) View() ViewModel {
	return p.resolver.deriveView(p.selection, p.product, p.cfg)
}

// Select applies a click on an option value. A click is accepted only when the
// value is available under the current selection, the same test View uses to
// enable the button, and the result is repaired in declared option order.
// Ignored clicks report false.
func (p *Picker) Select(option, value string) bool {
	if !p.declared(option, value) {
		return false
	}
	if !p.resolver.Available(option, value, p.selection) {
		return false
	}

	p.selection = p.resolver.Repair(p.selection.With(option, value))
	p.state = StateUserAdjusted
	return true
}

// Force adopts the named variant's option values. It reports false when the
// variant is unknown or the selection already equals the forced one.
func (p *Picker) Force(variantID string) bool {
	v, ok := p.product.Variant(variantID)
	if !ok {
		return false
	}

	next := p.resolver.Repair(domain.SelectionFromVariant(v))
	if next.Equal(p.selection) {
		return false
	}

	p.selection = next
	p.state = StateForced
	return true
}

// ForceImage forces the variant a clicked thumbnail stands for.
func (p *Picker) ForceImage(img domain.Image) bool {
	v, ok := VariantForImage(img, p.product.Variants)
	if !ok {
		return false
	}
	return p.Force(v.ID)
}

// Restore applies a shareable link: a variant id wins over per-option values.
func (p *Picker) Restore(values url.Values) bool {
	if id := values.Get(VariantParam); id != "" {
		return p.Force(id)
	}

	parsed := domain.ParseSelection(values, p.product.Options)
	if len(parsed) == 0 {
		return false
	}

	next := p.resolver.Repair(parsed)
	if next.Equal(p.selection) {
		return false
	}

	p.selection = next
	p.state = StateForced
	return true
}

// Link encodes the current selection as link query values.
func (p *Picker) Link() url.Values {
	values := p.selection.Query()
	if v, ok := p.resolver.Resolve(p.selection); ok {
		values.Set(VariantParam, v.ID)
	}
	return values
}

func (p *Picker) declared(option, value string) bool {
	for _, opt := range p.product.Options {
		if opt.Name != option {
			continue
		}
		for _, allowed := range opt.Values {
			if allowed == value {
				return true
			}
		}
	}
	return false
}
