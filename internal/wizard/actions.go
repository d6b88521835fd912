package wizard

// Action is the closed set of state transitions.
type Action interface{ isAction() }

type SetStep struct{ Step Step }

// UpdateTasker merges the non-nil fields of Patch.
type UpdateTasker struct{ Patch TaskerPatch }

type UpdateSeller struct{ Patch SellerPatch }

type UpdateCurrentProduct struct{ Patch ProductPatch }

// AddProduct appends CurrentProduct and clears it.
type AddProduct struct{}

// RemoveProduct drops the product at Index; out of range is a no-op.
type RemoveProduct struct{ Index int }

type ResetForm struct{}

func (SetStep) isAction()              {}
func (UpdateTasker) isAction()         {}
func (UpdateSeller) isAction()         {}
func (UpdateCurrentProduct) isAction() {}
func (AddProduct) isAction()           {}
func (RemoveProduct) isAction()        {}
func (ResetForm) isAction()            {}

type TaskerPatch struct {
	Name  *string
	Phone *string
}

type SellerPatch struct {
	SellerName        *string
	SellerPhoneNumber *string
	GSTNumber         *string
	ShopImage         *string
}

type ProductPatch struct {
	Name   *string
	Image1 *string
	Image2 *string
	Image3 *string
	MRP    *string
	MSP    *string
}

// Ptr is shorthand for building patches.
func Ptr[T any](v T) *T { return &v }
