package model

import (
	"strings"
	"time"

	"seller-onboarding/internal/domain"

	"github.com/google/uuid"
)

// GSTNumberLength is the exact length of an Indian GSTIN.
const GSTNumberLength = 15

// IsGSTNumber reports whether s is exactly 15 ASCII letters or digits.
// Case is not checked; callers upper-case before storing.
func IsGSTNumber(s string) bool {
	if len(s) != GSTNumberLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

// Seller is a registered shop. ShopImageURL points at object storage.
type Seller struct {
	ID           string
	Name         string
	PhoneNumber  string
	GSTNumber    string
	ShopImageURL string
	CreatedAt    time.Time
}

func NewSeller(name, phone, gst, shopImageURL string) (*Seller, error) {
	name = strings.TrimSpace(name)
	if name == "" || !IsPhone(phone) || !IsGSTNumber(gst) || shopImageURL == "" {
		return nil, domain.ErrInvalidArgument
	}
	gst = strings.ToUpper(gst)
	return &Seller{
		ID:           uuid.NewString(),
		Name:         name,
		PhoneNumber:  phone,
		GSTNumber:    gst,
		ShopImageURL: shopImageURL,
		CreatedAt:    time.Now(),
	}, nil
}

func (s *Seller) IsZero() bool { return s == nil || s.ID == "" }
