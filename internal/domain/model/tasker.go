package model

import (
	"strings"
	"time"

	"seller-onboarding/internal/domain"

	"github.com/google/uuid"
)

// Tasker is the field agent who onboards sellers. Unique by Phone.
type Tasker struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}

func NewTasker(name, phone string) (*Tasker, error) {
	name = strings.TrimSpace(name)
	if name == "" || !IsPhone(phone) {
		return nil, domain.ErrInvalidArgument
	}
	return &Tasker{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}, nil
}

func (t *Tasker) IsZero() bool { return t == nil || t.ID == "" }
