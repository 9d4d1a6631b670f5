package httpapi

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/variant"
)

type AddToCartRequest struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
	Quantity      *int   `json:"quantity" binding:"omitempty,gt=0"`
}

type UpdateLineRequest struct {
	CartID   string `json:"cartId"`
	LineID   string `json:"lineId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type RemoveLinesRequest struct {
	CartID  string   `json:"cartId"`
	LineIDs []string `json:"lineIds" binding:"required,min=1,dive,required"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Shop    string `json:"shop,omitempty"`
	Message string `json:"message,omitempty"`
}

type MoneyDTO struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
	Formatted    string `json:"formatted"`
}

type ImageDTO struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

type CartSummaryDTO struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
}

type MerchandiseDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ProductTitle  string    `json:"productTitle"`
	ProductHandle string    `json:"productHandle"`
	Image         *ImageDTO `json:"image,omitempty"`
	Price         MoneyDTO  `json:"price"`
}

type LineCostDTO struct {
	AmountPerQuantity MoneyDTO `json:"amountPerQuantity"`
	TotalAmount       MoneyDTO `json:"totalAmount"`
}

type CartLineDTO struct {
	ID          string         `json:"id"`
	Quantity    int            `json:"quantity"`
	Merchandise MerchandiseDTO `json:"merchandise"`
	Cost        LineCostDTO    `json:"cost"`
}

type CartCostDTO struct {
	Subtotal MoneyDTO `json:"subtotal"`
	Total    MoneyDTO `json:"total"`
}

type CartDTO struct {
	ID            string        `json:"id"`
	CheckoutURL   string        `json:"checkoutUrl"`
	TotalQuantity int           `json:"totalQuantity"`
	Lines         []CartLineDTO `json:"lines"`
	Cost          CartCostDTO   `json:"cost"`
}

type ProductCardDTO struct {
	ID            string    `json:"id"`
	Handle        string    `json:"handle"`
	Title         string    `json:"title"`
	FeaturedImage *ImageDTO `json:"featuredImage,omitempty"`
	Price         MoneyDTO  `json:"price"`
}

type OptionDTO struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type SelectedOptionDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type VariantDTO struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	AvailableForSale  bool                `json:"availableForSale"`
	QuantityAvailable *int                `json:"quantityAvailable"`
	Price             MoneyDTO            `json:"price"`
	SelectedOptions   []SelectedOptionDTO `json:"selectedOptions"`
	Image             *ImageDTO           `json:"image,omitempty"`
}

type ProductDTO struct {
	ID              string       `json:"id"`
	Handle          string       `json:"handle"`
	Title           string       `json:"title"`
	DescriptionHTML string       `json:"descriptionHtml"`
	FeaturedImage   *ImageDTO    `json:"featuredImage,omitempty"`
	Images          []ImageDTO   `json:"images"`
	Options         []OptionDTO  `json:"options"`
	Variants        []VariantDTO `json:"variants"`
}

type ValueViewDTO struct {
	Value     string `json:"value"`
	Selected  bool   `json:"selected"`
	Available bool   `json:"available"`
	Stock     int    `json:"stock"`
	LowStock  bool   `json:"lowStock"`
}

type OptionViewDTO struct {
	Name   string         `json:"name"`
	Values []ValueViewDTO `json:"values"`
}

type ProductViewDTO struct {
	Handle        string            `json:"handle"`
	State         string            `json:"state"`
	Selection     map[string]string `json:"selection"`
	Link          string            `json:"link"`
	VariantID     string            `json:"variantId,omitempty"`
	Options       []OptionViewDTO   `json:"options"`
	Badge         string            `json:"badge,omitempty"`
	BadgeText     string            `json:"badgeText,omitempty"`
	DisplayPrice  *MoneyDTO         `json:"displayPrice,omitempty"`
	Image         *ImageDTO         `json:"image,omitempty"`
	Gallery       []ImageDTO        `json:"gallery"`
	CanAddToCart  bool              `json:"canAddToCart"`
	MerchandiseID string            `json:"merchandiseId,omitempty"`
	Message       string            `json:"message,omitempty"`
}

const unavailableSelection = "Unavailable selection"

func toMoneyDTO(m domain.Money) MoneyDTO {
	return MoneyDTO{
		Amount:       m.Amount.String(),
		CurrencyCode: m.Currency.String(),
		Formatted:    m.Format(),
	}
}

func toImageDTO(img *domain.Image) *ImageDTO {
	if img == nil {
		return nil
	}
	return &ImageDTO{URL: img.URL, AltText: img.AltText}
}

func toImageDTOs(images []domain.Image) []ImageDTO {
	out := make([]ImageDTO, 0, len(images))
	for _, img := range images {
		out = append(out, ImageDTO{URL: img.URL, AltText: img.AltText})
	}
	return out
}

func toCartSummaryDTO(s domain.CartSummary) CartSummaryDTO {
	return CartSummaryDTO{ID: s.ID, CheckoutURL: s.CheckoutURL, TotalQuantity: s.TotalQuantity}
}

func toCartDTO(c domain.Cart) CartDTO {
	lines := make([]CartLineDTO, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, CartLineDTO{
			ID:       l.ID,
			Quantity: l.Quantity,
			Merchandise: MerchandiseDTO{
				ID:            l.Merchandise.ID,
				Title:         l.Merchandise.Title,
				ProductTitle:  l.Merchandise.ProductTitle,
				ProductHandle: l.Merchandise.ProductHandle,
				Image:         toImageDTO(l.Merchandise.FeaturedImage),
				Price:         toMoneyDTO(l.Merchandise.Price),
			},
			Cost: LineCostDTO{
				AmountPerQuantity: toMoneyDTO(l.Cost.AmountPerQuantity),
				TotalAmount:       toMoneyDTO(l.Cost.TotalAmount),
			},
		})
	}

	return CartDTO{
		ID:            c.ID,
		CheckoutURL:   c.CheckoutURL,
		TotalQuantity: c.TotalQuantity,
		Lines:         lines,
		Cost: CartCostDTO{
			Subtotal: toMoneyDTO(c.Cost.Subtotal),
			Total:    toMoneyDTO(c.Cost.Total),
		},
	}
}

func toProductCardDTOs(cards []domain.ProductCard) []ProductCardDTO {
	out := make([]ProductCardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, ProductCardDTO{
			ID:            c.ID,
			Handle:        c.Handle,
			Title:         c.Title,
			FeaturedImage: toImageDTO(c.FeaturedImage),
			Price:         toMoneyDTO(c.Price),
		})
	}
	return out
}

func toProductDTO(p domain.Product) ProductDTO {
	out := ProductDTO{
		ID:              p.ID,
		Handle:          p.Handle,
		Title:           p.Title,
		DescriptionHTML: p.DescriptionHTML,
		FeaturedImage:   toImageDTO(p.FeaturedImage),
		Images:          toImageDTOs(p.Images),
		Options:         make([]OptionDTO, 0, len(p.Options)),
		Variants:        make([]VariantDTO, 0, len(p.Variants)),
	}
	for _, o := range p.Options {
		out.Options = append(out.Options, OptionDTO{Name: o.Name, Values: o.Values})
	}
	for _, v := range p.Variants {
		vd := VariantDTO{
			ID:                v.ID,
			Title:             v.Title,
			AvailableForSale:  v.AvailableForSale,
			QuantityAvailable: v.QuantityAvailable,
			Price:             toMoneyDTO(v.Price),
			Image:             toImageDTO(v.Image),
		}
		for _, so := range v.SelectedOptions {
			vd.SelectedOptions = append(vd.SelectedOptions, SelectedOptionDTO{Name: so.Name, Value: so.Value})
		}
		out.Variants = append(out.Variants, vd)
	}
	return out
}

func toProductViewDTO(p domain.Product, picker *variant.Picker) ProductViewDTO {
	vm := picker.View()

	out := ProductViewDTO{
		Handle:        p.Handle,
		State:         picker.State().String(),
		Selection:     vm.Selection,
		Link:          picker.Link().Encode(),
		Options:       make([]OptionViewDTO, 0, len(vm.Options)),
		Badge:         string(vm.Badge),
		BadgeText:     vm.BadgeText,
		Image:         toImageDTO(vm.Image),
		Gallery:       toImageDTOs(variant.Gallery(p.Images, p.FeaturedImage)),
		CanAddToCart:  vm.CanAddToCart,
		MerchandiseID: vm.MerchandiseID,
	}
	if vm.Variant != nil {
		out.VariantID = vm.Variant.ID
	}
	if vm.DisplayPrice != nil {
		price := toMoneyDTO(*vm.DisplayPrice)
		out.DisplayPrice = &price
	}
	if !vm.CanAddToCart {
		out.Message = unavailableSelection
	}

	for _, o := range vm.Options {
		ov := OptionViewDTO{Name: o.Name, Values: make([]ValueViewDTO, 0, len(o.Values))}
		for _, v := range o.Values {
			ov.Values = append(ov.Values, ValueViewDTO{
				Value:     v.Value,
				Selected:  v.Selected,
				Available: v.Available,
				Stock:     v.Stock,
				LowStock:  v.LowStock,
			})
		}
		out.Options = append(out.Options, ov)
	}
	return out
}
