package wizard

import (
	"errors"
	"strings"

	"seller-onboarding/internal/domain/model"
)

var ErrFirstStep = errors.New("already at the first step")

// Controller drives a Store the way the step views do: gates are enforced
// here, never in the reducer.
type Controller struct {
	store *Store
}

func NewController(store *Store) *Controller {
	if store == nil {
		store = NewStore()
	}
	return &Controller{store: store}
}

func (c *Controller) State() State { return c.store.State() }

// Next advances one step when the current step's gate passes.
// On the last step it only validates.
func (c *Controller) Next() error {
	s := c.store.State()
	if err := CheckStep(s); err != nil {
		return err
	}
	if s.Step < StepProducts {
		c.store.Dispatch(SetStep{Step: s.Step + 1})
	}
	return nil
}

// Back moves one step back. Entered data is kept.
func (c *Controller) Back() error {
	s := c.store.State()
	if s.Step == StepTasker {
		return ErrFirstStep
	}
	c.store.Dispatch(SetStep{Step: s.Step - 1})
	return nil
}

// SetTasker stores the name and the display-formatted phone.
func (c *Controller) SetTasker(name, phone string) {
	c.store.Dispatch(UpdateTasker{Patch: TaskerPatch{Name: Ptr(name), Phone: Ptr(FormatPhone(phone))}})
}

func (c *Controller) UpdateTasker(p TaskerPatch) { c.store.Dispatch(UpdateTasker{Patch: p}) }

func (c *Controller) UpdateSeller(p SellerPatch) {
	if p.SellerPhoneNumber != nil {
		p.SellerPhoneNumber = Ptr(FormatPhone(*p.SellerPhoneNumber))
	}
	if p.GSTNumber != nil {
		p.GSTNumber = Ptr(upperGST(*p.GSTNumber))
	}
	c.store.Dispatch(UpdateSeller{Patch: p})
}

func (c *Controller) SetShopImage(img model.ImagePayload) {
	c.store.Dispatch(UpdateSeller{Patch: SellerPatch{ShopImage: Ptr(string(img))}})
}

func (c *Controller) UpdateCurrentProduct(p ProductPatch) {
	c.store.Dispatch(UpdateCurrentProduct{Patch: p})
}

// AddProduct appends the current draft when it passes CheckProductDraft.
func (c *Controller) AddProduct() error {
	s := c.store.State()
	if err := CheckProductDraft(s.CurrentProduct, len(s.Products)); err != nil {
		return err
	}
	c.store.Dispatch(AddProduct{})
	return nil
}

func (c *Controller) RemoveProduct(i int) { c.store.Dispatch(RemoveProduct{Index: i}) }

// ReadyToSubmit is the products gate.
func (c *Controller) ReadyToSubmit() error {
	return gate(StepProducts, productListReasons(len(c.store.State().Products)))
}

func (c *Controller) Undo() bool { return c.store.Undo() }

func (c *Controller) Reset() { c.store.Dispatch(ResetForm{}) }

// upperGST mirrors the GSTIN input box: upper case, at most 15 characters.
func upperGST(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) > model.GSTNumberLength {
		s = s[:model.GSTNumberLength]
	}
	return s
}
