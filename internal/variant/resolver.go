// Package variant maps a partial, possibly invalid option selection onto a
// concrete purchasable variant. Everything here is a pure function of the
// option schema, the variant list and the selection; nothing performs I/O and
// nothing returns an error. A selection without a match is a normal state.
package variant

import "github.com/nikolayk812/storefront/internal/domain"

// Resolver answers availability questions for one product.
type Resolver struct {
	options  []domain.Option
	variants []domain.Variant

	stockAware bool
}

type Option func(*Resolver)

// WithStockAwareAvailability additionally treats variants whose known stock is
// zero or less as not purchasable. Variants with unknown stock stay purchasable.
func WithStockAwareAvailability(enabled bool) Option {
	return func(r *Resolver) {
		r.stockAware = enabled
	}
}

func NewResolver(options []domain.Option, variants []domain.Variant, opts ...Option) *Resolver {
	r := &Resolver{
		options:  options,
		variants: variants,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Options() []domain.Option {
	return r.options
}

func (r *Resolver) Variants() []domain.Variant {
	return r.variants
}

// Matches reports whether v carries the selected value for every option in sel.
// Options absent from sel impose no constraint.
func Matches(v domain.Variant, sel domain.Selection) bool {
	for name, value := range sel {
		got, ok := v.OptionValue(name)
		if !ok || got != value {
			return false
		}
	}
	return true
}

func (r *Resolver) purchasable(v domain.Variant) bool {
	if !v.AvailableForSale {
		return false
	}
	if r.stockAware && v.QuantityAvailable != nil && *v.QuantityAvailable <= 0 {
		return false
	}
	return true
}

// DefaultVariant is the first purchasable variant, else the first variant.
func (r *Resolver) DefaultVariant() (domain.Variant, bool) {
	for _, v := range r.variants {
		if r.purchasable(v) {
			return v, true
		}
	}
	if len(r.variants) == 0 {
		return domain.Variant{}, false
	}
	return r.variants[0], true
}

// Resolve returns the variant whose full option set is named by sel.
// An incomplete selection, or one naming a missing combination, resolves to nothing.
func (r *Resolver) Resolve(sel domain.Selection) (domain.Variant, bool) {
	for _, v := range r.variants {
		if len(v.SelectedOptions) != len(sel) {
			continue
		}
		if Matches(v, sel) {
			return v, true
		}
	}
	return domain.Variant{}, false
}

// Available reports whether picking value for option still leaves a purchasable
// completion, holding the other chosen options fixed.
func (r *Resolver) Available(option, value string, sel domain.Selection) bool {
	trial := sel.With(option, value)
	for _, v := range r.variants {
		if r.purchasable(v) && Matches(v, trial) {
			return true
		}
	}
	return false
}

// Stock sums known stock over purchasable variants matching trial.
func (r *Resolver) Stock(trial domain.Selection) int {
	total := 0
	for _, v := range r.variants {
		if r.purchasable(v) && Matches(v, trial) {
			total += v.Stock()
		}
	}
	return total
}

// Repair walks options in declared order and replaces any value that no longer
// has a purchasable completion with the first declared value that does, or
// unsets the option when none does. Passes repeat until the selection settles,
// bounded by the number of options.
func (r *Resolver) Repair(sel domain.Selection) domain.Selection {
	current := r.known(sel)

	for pass := 0; pass < len(r.options)+2; pass++ {
		next := r.repairPass(current)
		if next.Equal(current) {
			return current
		}
		current = next
	}

	// Still moving: keep only options that are completable, in declared order.
	settled := current.Clone()
	for _, opt := range r.options {
		value, ok := settled[opt.Name]
		if ok && !r.Available(opt.Name, value, settled) {
			delete(settled, opt.Name)
		}
	}
	return settled
}

func (r *Resolver) repairPass(sel domain.Selection) domain.Selection {
	next := sel.Clone()
	for _, opt := range r.options {
		value, ok := next[opt.Name]
		if ok && r.Available(opt.Name, value, next) {
			continue
		}

		fallback, found := r.firstAvailable(opt, next)
		if found {
			next[opt.Name] = fallback
			continue
		}
		delete(next, opt.Name)
	}
	return next
}

func (r *Resolver) firstAvailable(opt domain.Option, sel domain.Selection) (string, bool) {
	for _, value := range opt.Values {
		if r.Available(opt.Name, value, sel) {
			return value, true
		}
	}
	return "", false
}

// known drops selections for options the product does not declare.
func (r *Resolver) known(sel domain.Selection) domain.Selection {
	out := make(domain.Selection, len(sel))
	for _, opt := range r.options {
		if value, ok := sel[opt.Name]; ok {
			out[opt.Name] = value
		}
	}
	return out
}
