package model

import (
	"strings"
	"time"

	"seller-onboarding/internal/domain"

	"github.com/google/uuid"
)

// Catalog bounds for a single registration.
const (
	MinProducts = 30
	MaxProducts = 200
)

// Product is a catalog entry belonging to one seller.
type Product struct {
	ID        string
	SellerID  string
	Name      string
	Image1URL string
	Image2URL string
	Image3URL string
	MRP       Price
	MSP       Price
	CreatedAt time.Time
}

// NewProduct validates the pricing invariant MSP <= MRP.
func NewProduct(sellerID, name string, urls [3]string, mrp, msp Price) (*Product, error) {
	name = strings.TrimSpace(name)
	if sellerID == "" || name == "" {
		return nil, domain.ErrInvalidArgument
	}
	for _, u := range urls {
		if u == "" {
			return nil, domain.ErrInvalidArgument
		}
	}
	if !mrp.IsPositive() || !msp.IsPositive() || msp.GreaterThan(mrp) {
		return nil, domain.ErrInvalidArgument
	}
	return &Product{
		ID:        uuid.NewString(),
		SellerID:  sellerID,
		Name:      name,
		Image1URL: urls[0],
		Image2URL: urls[1],
		Image3URL: urls[2],
		MRP:       mrp,
		MSP:       msp,
		CreatedAt: time.Now(),
	}, nil
}
