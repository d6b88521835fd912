package model

import (
	"time"

	"seller-onboarding/internal/domain"

	"github.com/google/uuid"
)

// Collection links one tasker to one seller registration event.
type Collection struct {
	ID        string
	TaskerID  string
	SellerID  string
	CreatedAt time.Time
}

func NewCollection(taskerID, sellerID string) (*Collection, error) {
	if taskerID == "" || sellerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Collection{
		ID:        uuid.NewString(),
		TaskerID:  taskerID,
		SellerID:  sellerID,
		CreatedAt: time.Now(),
	}, nil
}
