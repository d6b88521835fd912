package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/domain/ports/adapter"
	"seller-onboarding/internal/domain/ports/repository"
	"seller-onboarding/internal/infra/logging"
	"seller-onboarding/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Compile-time check
var _ RegistrationUseCase = (*registrationUC)(nil)

// RegistrationUseCase performs the one-shot seller onboarding write.
type RegistrationUseCase interface {
	// Register persists tasker, seller, collection and products atomically,
	// uploading every image on the way. Either everything is stored or nothing is.
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
}

type TaskerInput struct {
	Name  string
	Phone string
}

type SellerInput struct {
	Name        string
	PhoneNumber string
	GSTNumber   string
	ShopImage   model.ImagePayload
}

type ProductInput struct {
	Name   string
	Images [3]model.ImagePayload
	MRP    model.Price
	MSP    model.Price
}

type RegisterInput struct {
	Tasker   TaskerInput
	Seller   SellerInput
	Products []ProductInput
}

type RegisterResult struct {
	TaskerID     string
	SellerID     string
	TaskerReused bool
	ProductCount int
}

const defaultProductConcurrency = 8

type registrationUC struct {
	taskers     repository.TaskerRepository
	sellers     repository.SellerRepository
	collections repository.CollectionRepository
	products    repository.ProductRepository
	uploader    adapter.ImageUploader
	tm          repository.TransactionManager
	log         *zerolog.Logger

	productConcurrency int
	dev                bool
}

// NewRegistrationUseCase wires the registration write path.
// productConcurrency bounds how many products upload in parallel; <=0 uses a default.
// Outside dev mode personal data in failure logs is redacted.
func NewRegistrationUseCase(
	taskers repository.TaskerRepository,
	sellers repository.SellerRepository,
	collections repository.CollectionRepository,
	products repository.ProductRepository,
	uploader adapter.ImageUploader,
	tm repository.TransactionManager,
	productConcurrency int,
	dev bool,
	logger *zerolog.Logger,
) *registrationUC {
	if productConcurrency <= 0 {
		productConcurrency = defaultProductConcurrency
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &registrationUC{
		taskers:            taskers,
		sellers:            sellers,
		collections:        collections,
		products:           products,
		uploader:           uploader,
		tm:                 tm,
		log:                logger,
		productConcurrency: productConcurrency,
		dev:                dev,
	}
}

func (r *registrationUC) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	defer logging.TraceDuration(r.log, "RegistrationUC.Register")()
	l := logging.With(ctx, r.log)

	if err := in.validate(); err != nil {
		metrics.IncRegistration(metrics.OutcomeInvalid)
		return nil, err
	}

	var res RegisterResult
	err := r.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		// 1. Find or create tasker. An existing tasker is reused untouched.
		candidate, err := model.NewTasker(in.Tasker.Name, in.Tasker.Phone)
		if err != nil {
			return err
		}
		tasker, err := r.taskers.UpsertByPhone(ctx, tx, candidate)
		if err != nil {
			return persistenceErr("upsert tasker", err)
		}
		res.TaskerID = tasker.ID
		res.TaskerReused = tasker.ID != candidate.ID

		// 2. Shop image
		shopURL, err := r.uploader.Upload(ctx, in.Seller.ShopImage, adapter.FolderShopImages)
		if err != nil {
			return uploadErr("shop image", err)
		}

		// 3. Seller
		seller, err := model.NewSeller(in.Seller.Name, in.Seller.PhoneNumber, in.Seller.GSTNumber, shopURL)
		if err != nil {
			return err
		}
		if err := r.sellers.Create(ctx, tx, seller); err != nil {
			return persistenceErr("create seller", err)
		}
		res.SellerID = seller.ID

		// 4. Collection link
		coll, err := model.NewCollection(tasker.ID, seller.ID)
		if err != nil {
			return err
		}
		if err := r.collections.Create(ctx, tx, coll); err != nil {
			return persistenceErr("create collection", err)
		}

		// 5. Products
		if err := r.createProducts(ctx, tx, seller.ID, in.Products); err != nil {
			return err
		}
		res.ProductCount = len(in.Products)
		return nil
	})
	if err != nil {
		metrics.IncRegistration(outcomeOf(err))
		l.Error().Err(err).
			Str("tasker_phone", logging.Redact(in.Tasker.Phone, r.dev)).
			Int("products", len(in.Products)).
			Msg("registration failed")
		return nil, err
	}

	metrics.IncRegistration(metrics.OutcomeSucceeded)
	metrics.AddProductsRegistered(res.ProductCount)
	l.Info().
		Str("tasker_id", res.TaskerID).
		Str("seller_id", res.SellerID).
		Bool("tasker_reused", res.TaskerReused).
		Int("products", res.ProductCount).
		Msg("registration completed")
	return &res, nil
}

// createProducts fans out per product. Each product waits for its own three
// uploads before its row is inserted; inserts share one tx and are serialised.
func (r *registrationUC) createProducts(ctx context.Context, tx repository.Tx, sellerID string, items []ProductInput) error {
	var insertMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.productConcurrency)

	for i := range items {
		item := items[i]
		idx := i
		g.Go(func() error {
			var urls [3]string
			ig, ictx := errgroup.WithContext(gctx)
			for j := range item.Images {
				j := j
				ig.Go(func() error {
					u, err := r.uploader.Upload(ictx, item.Images[j], adapter.FolderProductImages)
					if err != nil {
						return uploadErr(fmt.Sprintf("product %d image %d", idx, j+1), err)
					}
					urls[j] = u
					return nil
				})
			}
			if err := ig.Wait(); err != nil {
				return err
			}

			p, err := model.NewProduct(sellerID, item.Name, urls, item.MRP, item.MSP)
			if err != nil {
				return err
			}
			insertMu.Lock()
			defer insertMu.Unlock()
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := r.products.Create(gctx, tx, p); err != nil {
				return persistenceErr(fmt.Sprintf("create product %d", idx), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// validate rejects everything the model constructors would reject inside the
// transaction, so a bad field never costs an upload.
func (in RegisterInput) validate() error {
	v := &domain.ValidationError{}
	if strings.TrimSpace(in.Tasker.Name) == "" {
		v.Add("taskerDetails.name", "too_small", "is required")
	}
	if !model.IsPhone(in.Tasker.Phone) {
		v.Add("taskerDetails.phone", "invalid_string", "must be exactly 10 digits")
	}
	if strings.TrimSpace(in.Seller.Name) == "" {
		v.Add("sellerDetails.name", "too_small", "is required")
	}
	if !model.IsPhone(in.Seller.PhoneNumber) {
		v.Add("sellerDetails.phoneNumber", "invalid_string", "must be exactly 10 digits")
	}
	if !model.IsGSTNumber(in.Seller.GSTNumber) {
		v.Add("sellerDetails.gstNumber", "invalid_string", "must be 15 letters or digits")
	}
	if !in.Seller.ShopImage.LooksValid() {
		v.Add("sellerDetails.shopImage", "invalid_string", "must be an image data URL")
	}

	if n := len(in.Products); n < model.MinProducts {
		v.Add("products", "too_small", fmt.Sprintf("at least %d products are required", model.MinProducts))
	} else if n > model.MaxProducts {
		v.Add("products", "too_big", fmt.Sprintf("at most %d products are allowed", model.MaxProducts))
	}
	for i, p := range in.Products {
		if strings.TrimSpace(p.Name) == "" {
			v.Add(fmt.Sprintf("products.%d.name", i), "too_small", "is required")
		}
		for j, img := range p.Images {
			if !img.LooksValid() {
				v.Add(fmt.Sprintf("products.%d.image%d", i, j+1), "invalid_string", "must be an image data URL")
			}
		}
		if !p.MRP.IsPositive() {
			v.Add(fmt.Sprintf("products.%d.mrp", i), "too_small", "must be greater than zero")
		}
		if !p.MSP.IsPositive() {
			v.Add(fmt.Sprintf("products.%d.msp", i), "too_small", "must be greater than zero")
		}
		if p.MSP.GreaterThan(p.MRP) {
			v.Add(fmt.Sprintf("products.%d.msp", i), "too_big", "msp must not exceed mrp")
		}
	}
	return v.OrNil()
}

func uploadErr(what string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrUpload, what, err)
}

func persistenceErr(what string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, what, err)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrUpload):
		return metrics.OutcomeUploadFailed
	case errors.Is(err, domain.ErrPersistence):
		return metrics.OutcomePersistFailed
	default:
		return metrics.OutcomeFailed
	}
}
