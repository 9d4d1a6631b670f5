package domain

// DefaultProductLimit is the product list size used when the caller asks for none.
const DefaultProductLimit = 24

type Image struct {
	URL     string
	AltText string
}

type Option struct {
	Name   string
	Values []string
}

type SelectedOption struct {
	Name  string
	Value string
}

type Variant struct {
	ID               string
	Title            string
	AvailableForSale bool
	Price            Money
	SelectedOptions  []SelectedOption
	// QuantityAvailable is nil when the platform does not track stock for the variant.
	QuantityAvailable *int
	Image             *Image
}

// OptionValue returns the variant's value for the named option.
func (v Variant) OptionValue(name string) (string, bool) {
	for _, o := range v.SelectedOptions {
		if o.Name == name {
			return o.Value, true
		}
	}
	return "", false
}

// Stock returns the known stock count, treating unknown as 0. Oversold
// variants report negative quantities, which count as 0.
func (v Variant) Stock() int {
	if v.QuantityAvailable == nil {
		return 0
	}
	return max(0, *v.QuantityAvailable)
}

type Product struct {
	ID              string
	Handle          string
	Title           string
	DescriptionHTML string
	FeaturedImage   *Image
	Images          []Image
	Options         []Option
	Variants        []Variant
}

func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// ProductCard is the compact listing shape.
type ProductCard struct {
	ID            string
	Handle        string
	Title         string
	FeaturedImage *Image
	Price         Money
}
