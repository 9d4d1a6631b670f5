package domain_test

import (
	"testing"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestVariantStock(t *testing.T) {
	quantity := func(n int) *int { return &n }

	tests := []struct {
		name     string
		quantity *int
		want     int
	}{
		{name: "unknown", want: 0},
		{name: "in stock", quantity: quantity(7), want: 7},
		{name: "sold out", quantity: quantity(0), want: 0},
		{name: "oversold", quantity: quantity(-3), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := domain.Variant{QuantityAvailable: tt.quantity}
			assert.Equal(t, tt.want, v.Stock())
		})
	}
}
