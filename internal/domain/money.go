package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// ParseMoney builds Money from the string amount and ISO code the remote platform returns.
func ParseMoney(amount, currencyCode string) (Money, error) {
	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("amount[%s] is not valid: %w", amount, err)
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return Money{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	return Money{Amount: parsedAmount, Currency: parsedCurrency}, nil
}

// Format renders the amount at the currency's standard scale followed by its ISO code.
func (m Money) Format() string {
	scale, _ := currency.Standard.Rounding(m.Currency)
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(int32(scale)), m.Currency.String())
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}
