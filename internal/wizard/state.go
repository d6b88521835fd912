// Package wizard holds the client-side onboarding form: its state, the
// actions that change it and the gates that decide when a step is complete.
package wizard

import "seller-onboarding/internal/domain/model"

type Step int

const (
	StepTasker Step = iota
	StepSeller
	StepProducts
)

func (s Step) String() string {
	switch s {
	case StepTasker:
		return "tasker"
	case StepSeller:
		return "seller"
	case StepProducts:
		return "products"
	default:
		return "unknown"
	}
}

type TaskerDetails struct {
	Name  string
	Phone string
}

type SellerDetails struct {
	SellerName        string
	SellerPhoneNumber string
	GSTNumber         string
	ShopImage         model.ImagePayload // empty until captured
}

// Product keeps prices as typed text; they are parsed at validation time.
type Product struct {
	Name   string
	Image1 model.ImagePayload
	Image2 model.ImagePayload
	Image3 model.ImagePayload
	MRP    string
	MSP    string
}

func (p Product) Images() [3]model.ImagePayload {
	return [3]model.ImagePayload{p.Image1, p.Image2, p.Image3}
}

type State struct {
	Step           Step
	TaskerDetails  TaskerDetails
	SellerDetails  SellerDetails
	Products       []Product
	CurrentProduct Product
}

// Initial is the empty wizard at step 0.
func Initial() State { return State{} }

func (s State) clone() State {
	if s.Products != nil {
		s.Products = append([]Product(nil), s.Products...)
	}
	return s
}
