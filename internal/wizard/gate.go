package wizard

import (
	"errors"
	"fmt"
	"strings"

	"seller-onboarding/internal/domain/model"
)

var ErrStepIncomplete = errors.New("step incomplete")

// GateError lists what keeps a step (or a product draft) from completing.
type GateError struct {
	Step    Step
	Reasons []string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s step incomplete: %s", e.Step, strings.Join(e.Reasons, "; "))
}

func (e *GateError) Is(target error) bool { return target == ErrStepIncomplete }

func gate(step Step, reasons []string) error {
	if len(reasons) == 0 {
		return nil
	}
	return &GateError{Step: step, Reasons: reasons}
}

// CheckStep reports whether the current step of s may be left forwards.
// On the products step that means the list is ready to submit.
func CheckStep(s State) error {
	switch s.Step {
	case StepTasker:
		return gate(StepTasker, taskerReasons(s.TaskerDetails))
	case StepSeller:
		return gate(StepSeller, sellerReasons(s.SellerDetails))
	case StepProducts:
		return gate(StepProducts, productListReasons(len(s.Products)))
	default:
		return gate(s.Step, []string{"unknown step"})
	}
}

func taskerReasons(t TaskerDetails) []string {
	var r []string
	if strings.TrimSpace(t.Name) == "" {
		r = append(r, "name is required")
	}
	if len(model.DigitsOnly(t.Phone)) != model.PhoneDigits {
		r = append(r, "phone must have 10 digits")
	}
	return r
}

func sellerReasons(s SellerDetails) []string {
	var r []string
	if strings.TrimSpace(s.SellerName) == "" {
		r = append(r, "seller name is required")
	}
	if len(model.DigitsOnly(s.SellerPhoneNumber)) != model.PhoneDigits {
		r = append(r, "seller phone must have 10 digits")
	}
	if !model.IsGSTNumber(s.GSTNumber) {
		r = append(r, "GST number must be 15 letters or digits")
	}
	if s.ShopImage.IsZero() {
		r = append(r, "shop image is required")
	}
	return r
}

func productListReasons(n int) []string {
	switch {
	case n < model.MinProducts:
		return []string{fmt.Sprintf("at least %d products are required, have %d", model.MinProducts, n)}
	case n > model.MaxProducts:
		return []string{fmt.Sprintf("at most %d products are allowed, have %d", model.MaxProducts, n)}
	}
	return nil
}

// CheckProductDraft validates p before it may be added to a list that
// already holds existing products.
func CheckProductDraft(p Product, existing int) error {
	var r []string
	if strings.TrimSpace(p.Name) == "" {
		r = append(r, "product name is required")
	}
	for i, img := range p.Images() {
		if img.IsZero() {
			r = append(r, fmt.Sprintf("image %d is required", i+1))
		}
	}
	mrp, errMRP := model.ParsePrice(p.MRP)
	if errMRP != nil {
		r = append(r, "mrp: "+errMRP.Error())
	}
	msp, errMSP := model.ParsePrice(p.MSP)
	if errMSP != nil {
		r = append(r, "msp: "+errMSP.Error())
	}
	if errMRP == nil && errMSP == nil && msp.GreaterThan(mrp) {
		r = append(r, "msp must not exceed mrp")
	}
	if existing >= model.MaxProducts {
		r = append(r, fmt.Sprintf("product list is full (%d)", model.MaxProducts))
	}
	return gate(StepProducts, r)
}

// FormatPhone keeps the digits of input (at most 10) grouped 3-3-4.
func FormatPhone(input string) string {
	d := model.DigitsOnly(input)
	if len(d) > model.PhoneDigits {
		d = d[:model.PhoneDigits]
	}
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "-" + d[3:]
	default:
		return d[:3] + "-" + d[3:6] + "-" + d[6:]
	}
}
