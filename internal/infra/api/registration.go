package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/infra/logging"
	"seller-onboarding/internal/usecase"
)

// SuccessMessage is returned with every 201.
const SuccessMessage = "Registration completed successfully"

type TaskerDetails struct {
	Name  string `json:"name" validate:"notblank"`
	Phone string `json:"phone" validate:"phone"`
}

type SellerDetails struct {
	Name        string `json:"name" validate:"notblank"`
	PhoneNumber string `json:"phoneNumber" validate:"phone"`
	GSTNumber   string `json:"gstNumber" validate:"len=15,gstin"`
	ShopImage   string `json:"shopImage" validate:"dataimage"`
}

type Product struct {
	Name   string `json:"name" validate:"notblank"`
	Image1 string `json:"image1" validate:"dataimage"`
	Image2 string `json:"image2" validate:"dataimage"`
	Image3 string `json:"image3" validate:"dataimage"`
	MRP    string `json:"mrp" validate:"required"`
	MSP    string `json:"msp" validate:"required"`
}

// RegistrationRequest is the POST /api/registration body.
type RegistrationRequest struct {
	TaskerDetails TaskerDetails `json:"taskerDetails"`
	SellerDetails SellerDetails `json:"sellerDetails"`
	Products      []Product     `json:"products" validate:"min=30,max=200,dive"`
}

type RegistrationData struct {
	TaskerID string `json:"taskerId"`
	SellerID string `json:"sellerId"`
	Message  string `json:"message"`
}

type RegistrationHandler struct {
	uc  usecase.RegistrationUseCase
	v   *Validator
	log *zerolog.Logger
}

func NewRegistrationHandler(uc usecase.RegistrationUseCase, v *Validator, logger *zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{uc: uc, v: v, log: logger}
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	l := logging.With(r.Context(), h.log)

	var req RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "Payload too large")
			return
		}
		writeIssues(w, []domain.Issue{{Path: "", Code: "invalid_json", Message: "request body is not valid JSON"}})
		return
	}

	in, verr := h.toInput(&req)
	if verr != nil {
		writeIssues(w, verr.Issues)
		return
	}

	res, err := h.uc.Register(r.Context(), in)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeIssues(w, ve.Issues)
			return
		}
		l.Error().Err(err).Msg("registration request failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeData(w, http.StatusCreated, RegistrationData{
		TaskerID: res.TaskerID,
		SellerID: res.SellerID,
		Message:  SuccessMessage,
	})
}

// toInput validates tags, then parses prices explicitly so a non-numeric
// or non-positive amount is reported per field.
func (h *RegistrationHandler) toInput(req *RegistrationRequest) (usecase.RegisterInput, *domain.ValidationError) {
	if verr := h.v.Validate(req); verr != nil {
		return usecase.RegisterInput{}, verr
	}

	verr := &domain.ValidationError{}
	in := usecase.RegisterInput{
		Tasker: usecase.TaskerInput{Name: req.TaskerDetails.Name, Phone: req.TaskerDetails.Phone},
		Seller: usecase.SellerInput{
			Name:        req.SellerDetails.Name,
			PhoneNumber: req.SellerDetails.PhoneNumber,
			GSTNumber:   req.SellerDetails.GSTNumber,
			ShopImage:   model.ImagePayload(req.SellerDetails.ShopImage),
		},
		Products: make([]usecase.ProductInput, 0, len(req.Products)),
	}
	for i, p := range req.Products {
		mrp, err := model.ParsePrice(p.MRP)
		if err != nil {
			verr.Add(fmt.Sprintf("products.%d.mrp", i), priceCode(err), err.Error())
		}
		msp, err := model.ParsePrice(p.MSP)
		if err != nil {
			verr.Add(fmt.Sprintf("products.%d.msp", i), priceCode(err), err.Error())
		}
		in.Products = append(in.Products, usecase.ProductInput{
			Name:   p.Name,
			Images: [3]model.ImagePayload{model.ImagePayload(p.Image1), model.ImagePayload(p.Image2), model.ImagePayload(p.Image3)},
			MRP:    mrp,
			MSP:    msp,
		})
	}
	if len(verr.Issues) > 0 {
		return usecase.RegisterInput{}, verr
	}
	return in, nil
}

func priceCode(err error) string {
	switch {
	case errors.Is(err, model.ErrPriceNotPositive):
		return "too_small"
	case errors.Is(err, model.ErrPriceTooLarge):
		return "too_big"
	case errors.Is(err, model.ErrPriceTooPrecise):
		return "not_multiple_of"
	default:
		return "invalid_type"
	}
}
