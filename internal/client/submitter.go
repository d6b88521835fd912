// Package client submits a finished onboarding wizard to the registration API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/infra/api"
	"seller-onboarding/internal/infra/logging"
	"seller-onboarding/internal/wizard"
)

const registrationPath = "/api/registration"

var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// ValidationFailedError is a 400 from the server.
type ValidationFailedError struct {
	Issues []domain.Issue
}

func (e *ValidationFailedError) Error() string {
	return (&domain.ValidationError{Issues: e.Issues}).Error()
}

func (e *ValidationFailedError) Is(target error) bool { return target == domain.ErrInvalidArgument }

// ServerError is any other non-2xx answer.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("registration failed: http %d", e.Status)
	}
	return fmt.Sprintf("registration failed: http %d: %s", e.Status, e.Message)
}

type Result struct {
	TaskerID string
	SellerID string
	Message  string
}

// Submitter posts wizard state to the registration endpoint. Only one
// submission runs at a time; a second concurrent call fails fast.
type Submitter struct {
	baseURL string
	client  *http.Client
	log     *zerolog.Logger
	busy    atomic.Bool
}

// NewSubmitter builds a Submitter for baseURL (e.g. http://localhost:8080).
// A nil client gets a 5 minute timeout, matching the server's request budget.
func NewSubmitter(baseURL string, client *http.Client, logger *zerolog.Logger) *Submitter {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Submitter{baseURL: strings.TrimRight(baseURL, "/"), client: client, log: logger}
}

// Busy reports whether a submission is outstanding.
func (s *Submitter) Busy() bool { return s.busy.Load() }

// Submit sends s as a RegistrationRequest. The state is not modified;
// on failure the caller may submit again.
func (s *Submitter) Submit(ctx context.Context, st wizard.State) (*Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer s.busy.Store(false)
	defer logging.TraceDuration(s.log, "Submitter.Submit")()

	body, err := json.Marshal(Request(st))
	if err != nil {
		return nil, fmt.Errorf("encode registration: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+registrationPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post registration: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read registration response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
		if decodeErr != nil || !env.Success {
			return nil, &ServerError{Status: resp.StatusCode, Message: "malformed success response"}
		}
		s.log.Info().
			Str("tasker_id", env.Data.TaskerID).
			Str("seller_id", env.Data.SellerID).
			Int("products", len(st.Products)).
			Msg("registration submitted")
		return &Result{TaskerID: env.Data.TaskerID, SellerID: env.Data.SellerID, Message: env.Data.Message}, nil
	case resp.StatusCode == http.StatusBadRequest && decodeErr == nil && len(env.Errors) > 0:
		s.log.Warn().Int("issues", len(env.Errors)).Msg("registration rejected")
		return nil, &ValidationFailedError{Issues: env.Errors}
	default:
		msg := env.Error
		if decodeErr != nil {
			msg = strings.TrimSpace(string(raw))
		}
		s.log.Error().Int("status", resp.StatusCode).Str("error", msg).Msg("registration failed")
		return nil, &ServerError{Status: resp.StatusCode, Message: msg}
	}
}

type envelope struct {
	Success bool                 `json:"success"`
	Data    api.RegistrationData `json:"data"`
	Error   string               `json:"error"`
	Errors  []domain.Issue       `json:"errors"`
}

// Request maps wizard state to the wire body: phones as bare digits,
// GST upper-cased, prices as typed.
func Request(st wizard.State) api.RegistrationRequest {
	req := api.RegistrationRequest{
		TaskerDetails: api.TaskerDetails{
			Name:  strings.TrimSpace(st.TaskerDetails.Name),
			Phone: model.DigitsOnly(st.TaskerDetails.Phone),
		},
		SellerDetails: api.SellerDetails{
			Name:        strings.TrimSpace(st.SellerDetails.SellerName),
			PhoneNumber: model.DigitsOnly(st.SellerDetails.SellerPhoneNumber),
			GSTNumber:   strings.ToUpper(st.SellerDetails.GSTNumber),
			ShopImage:   string(st.SellerDetails.ShopImage),
		},
		Products: make([]api.Product, 0, len(st.Products)),
	}
	for _, p := range st.Products {
		req.Products = append(req.Products, api.Product{
			Name:   strings.TrimSpace(p.Name),
			Image1: string(p.Image1),
			Image2: string(p.Image2),
			Image3: string(p.Image3),
			MRP:    strings.TrimSpace(p.MRP),
			MSP:    strings.TrimSpace(p.MSP),
		})
	}
	return req
}
