package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrPriceNotNumeric  = errors.New("price is not a number")
	ErrPriceNotPositive = errors.New("price must be greater than zero")
	ErrPriceTooPrecise  = errors.New("price must have at most 2 decimal places")
	ErrPriceTooLarge    = errors.New("price must be below 10000000000")
)

// Prices are stored as NUMERIC(12,2).
const priceScale = 2

var priceLimit = decimal.New(1, 10)

// Price is a positive decimal amount in rupees.
type Price struct {
	d decimal.Decimal
}

// ParsePrice rejects empty, non-numeric and non-positive input instead of
// silently producing NaN or zero. Anything it accepts fits NUMERIC(12,2)
// exactly: at most 2 decimal places and below 1e10.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, ErrPriceNotNumeric
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, ErrPriceNotNumeric
	}
	if !d.IsPositive() {
		return Price{}, ErrPriceNotPositive
	}
	if !d.Equal(d.Truncate(priceScale)) {
		return Price{}, ErrPriceTooPrecise
	}
	if d.GreaterThanOrEqual(priceLimit) {
		return Price{}, ErrPriceTooLarge
	}
	return Price{d: d}, nil
}

// MustPrice is for tests and constants.
func MustPrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) IsPositive() bool { return p.d.IsPositive() }
func (p Price) GreaterThan(o Price) bool { return p.d.GreaterThan(o.d) }
func (p Price) Equal(o Price) bool { return p.d.Equal(o.d) }
func (p Price) String() string { return p.d.StringFixed(2) }
func (p Price) Decimal() decimal.Decimal { return p.d }
func PriceFromDecimal(d decimal.Decimal) Price { return Price{d: d} }
