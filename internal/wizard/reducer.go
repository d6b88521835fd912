package wizard

import "seller-onboarding/internal/domain/model"

// Apply returns the state after action. It never mutates s and never fails;
// unknown actions return s unchanged.
func Apply(s State, action Action) State {
	next := s.clone()
	switch a := action.(type) {
	case SetStep:
		next.Step = a.Step
	case UpdateTasker:
		set(&next.TaskerDetails.Name, a.Patch.Name)
		set(&next.TaskerDetails.Phone, a.Patch.Phone)
	case UpdateSeller:
		set(&next.SellerDetails.SellerName, a.Patch.SellerName)
		set(&next.SellerDetails.SellerPhoneNumber, a.Patch.SellerPhoneNumber)
		set(&next.SellerDetails.GSTNumber, a.Patch.GSTNumber)
		setImage(&next.SellerDetails.ShopImage, a.Patch.ShopImage)
	case UpdateCurrentProduct:
		p := &next.CurrentProduct
		set(&p.Name, a.Patch.Name)
		setImage(&p.Image1, a.Patch.Image1)
		setImage(&p.Image2, a.Patch.Image2)
		setImage(&p.Image3, a.Patch.Image3)
		set(&p.MRP, a.Patch.MRP)
		set(&p.MSP, a.Patch.MSP)
	case AddProduct:
		next.Products = append(next.Products, next.CurrentProduct)
		next.CurrentProduct = Product{}
	case RemoveProduct:
		if a.Index < 0 || a.Index >= len(next.Products) {
			return s
		}
		next.Products = append(next.Products[:a.Index], next.Products[a.Index+1:]...)
	case ResetForm:
		return Initial()
	default:
		return s
	}
	return next
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setImage(dst *model.ImagePayload, v *string) {
	if v != nil {
		*dst = model.ImagePayload(*v)
	}
}
