package usecase

import (
	"context"
	"errors"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/domain/ports/repository"
)

var _ AdminUseCase = (*adminUC)(nil)

// AdminUseCase exposes read-only views over completed registrations.
type AdminUseCase interface {
	GetSeller(ctx context.Context, sellerID string) (*SellerRegistration, error)
	GetTaskerByPhone(ctx context.Context, phone string) (*TaskerRegistrations, error)
	Stats(ctx context.Context) (*RegistrationStats, error)
}

type SellerRegistration struct {
	Seller   *model.Seller
	Tasker   *model.Tasker
	Products []*model.Product
}

type TaskerRegistrations struct {
	Tasker    *model.Tasker
	SellerIDs []string
}

type RegistrationStats struct {
	Taskers  int
	Sellers  int
	Products int
}

type adminUC struct {
	taskers     repository.TaskerRepository
	sellers     repository.SellerRepository
	collections repository.CollectionRepository
	products    repository.ProductRepository
}

func NewAdminUseCase(
	taskers repository.TaskerRepository,
	sellers repository.SellerRepository,
	collections repository.CollectionRepository,
	products repository.ProductRepository,
) *adminUC {
	return &adminUC{taskers: taskers, sellers: sellers, collections: collections, products: products}
}

func (a *adminUC) GetSeller(ctx context.Context, sellerID string) (*SellerRegistration, error) {
	if sellerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	seller, err := a.sellers.FindByID(ctx, repository.NoTX, sellerID)
	if err != nil {
		return nil, err
	}
	out := &SellerRegistration{Seller: seller}

	coll, err := a.collections.FindBySellerID(ctx, repository.NoTX, sellerID)
	switch {
	case err == nil:
		if out.Tasker, err = a.taskers.FindByID(ctx, repository.NoTX, coll.TaskerID); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrNotFound):
		// seller without a link cannot happen through Register, but tolerate it
	default:
		return nil, err
	}

	if out.Products, err = a.products.ListBySeller(ctx, repository.NoTX, sellerID); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *adminUC) GetTaskerByPhone(ctx context.Context, phone string) (*TaskerRegistrations, error) {
	phone = model.DigitsOnly(phone)
	if !model.IsPhone(phone) {
		return nil, domain.ErrInvalidArgument
	}
	t, err := a.taskers.FindByPhone(ctx, repository.NoTX, phone)
	if err != nil {
		return nil, err
	}
	ids, err := a.collections.ListSellerIDsByTasker(ctx, repository.NoTX, t.ID)
	if err != nil {
		return nil, err
	}
	return &TaskerRegistrations{Tasker: t, SellerIDs: ids}, nil
}

func (a *adminUC) Stats(ctx context.Context) (*RegistrationStats, error) {
	var s RegistrationStats
	var err error
	if s.Taskers, err = a.taskers.Count(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if s.Sellers, err = a.sellers.Count(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if s.Products, err = a.products.Count(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	return &s, nil
}
