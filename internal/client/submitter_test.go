//go:build !integration

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/infra/api"
	"seller-onboarding/internal/wizard"
)

func filledState(n int) wizard.State {
	st := wizard.State{
		Step:          wizard.StepProducts,
		TaskerDetails: wizard.TaskerDetails{Name: " Ravi ", Phone: "987-654-3210"},
		SellerDetails: wizard.SellerDetails{
			SellerName:        "Sharma General Store",
			SellerPhoneNumber: "912-345-6780",
			GSTNumber:         "27aapfu0939f1zv",
			ShopImage:         "data:image/jpeg;base64,AA",
		},
	}
	for i := 0; i < n; i++ {
		st.Products = append(st.Products, wizard.Product{
			Name:   fmt.Sprintf("Product %d", i),
			Image1: "data:image/png;base64,AA",
			Image2: "data:image/png;base64,AB",
			Image3: "data:image/png;base64,AC",
			MRP:    "120",
			MSP:    " 99.50 ",
		})
	}
	return st
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post(registrationPath, h)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestRequest_Normalises(t *testing.T) {
	req := Request(filledState(2))

	if req.TaskerDetails.Name != "Ravi" || req.TaskerDetails.Phone != "9876543210" {
		t.Errorf("unexpected tasker %+v", req.TaskerDetails)
	}
	if req.SellerDetails.PhoneNumber != "9123456780" || req.SellerDetails.GSTNumber != "27AAPFU0939F1ZV" {
		t.Errorf("unexpected seller %+v", req.SellerDetails)
	}
	if len(req.Products) != 2 || req.Products[1].MSP != "99.50" {
		t.Errorf("unexpected products %+v", req.Products)
	}
}

func TestSubmitter_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("created returns ids", func(t *testing.T) {
		var got api.RegistrationRequest
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"success":true,"data":{"taskerId":"t-1","sellerId":"s-1","message":"Registration completed successfully"}}`))
		})

		res, err := NewSubmitter(srv.URL+"/", nil, nil).Submit(ctx, filledState(30))
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if res.TaskerID != "t-1" || res.SellerID != "s-1" || res.Message != api.SuccessMessage {
			t.Errorf("unexpected result %+v", res)
		}
		if len(got.Products) != 30 || got.TaskerDetails.Phone != "9876543210" {
			t.Errorf("server received %+v", got.TaskerDetails)
		}
	})

	t.Run("400 surfaces field issues", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"errors":[{"path":"products","code":"too_small","message":"at least 30"}]}`))
		})

		_, err := NewSubmitter(srv.URL, nil, nil).Submit(ctx, filledState(3))
		var vf *ValidationFailedError
		if !errors.As(err, &vf) {
			t.Fatalf("expected ValidationFailedError, got %v", err)
		}
		if len(vf.Issues) != 1 || vf.Issues[0].Path != "products" {
			t.Errorf("unexpected issues %+v", vf.Issues)
		}
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Error("validation failure should match ErrInvalidArgument")
		}
	})

	t.Run("500 is a ServerError with the generic message", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"error":"Internal server error"}`))
		})

		_, err := NewSubmitter(srv.URL, nil, nil).Submit(ctx, filledState(30))
		var se *ServerError
		if !errors.As(err, &se) {
			t.Fatalf("expected ServerError, got %v", err)
		}
		if se.Status != http.StatusInternalServerError || se.Message != "Internal server error" {
			t.Errorf("unexpected server error %+v", se)
		}
	})

	t.Run("non JSON error body is kept as message", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		})

		_, err := NewSubmitter(srv.URL, nil, nil).Submit(ctx, filledState(30))
		var se *ServerError
		if !errors.As(err, &se) || se.Message != "bad gateway" {
			t.Fatalf("unexpected error %v", err)
		}
	})

	t.Run("second concurrent submit is refused and the flag clears", func(t *testing.T) {
		release := make(chan struct{})
		entered := make(chan struct{})
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"success":true,"data":{"taskerId":"t","sellerId":"s","message":"ok"}}`))
		})
		sub := NewSubmitter(srv.URL, nil, nil)

		done := make(chan error, 1)
		go func() {
			_, err := sub.Submit(ctx, filledState(30))
			done <- err
		}()

		select {
		case <-entered:
		case <-time.After(5 * time.Second):
			t.Fatal("first submission never reached the server")
		}
		if !sub.Busy() {
			t.Error("expected busy while in flight")
		}
		if _, err := sub.Submit(ctx, filledState(30)); !errors.Is(err, ErrSubmissionInFlight) {
			t.Errorf("expected ErrSubmissionInFlight, got %v", err)
		}

		close(release)
		if err := <-done; err != nil {
			t.Fatalf("first submission failed: %v", err)
		}
		if sub.Busy() {
			t.Error("busy flag must clear after completion")
		}
	})

	t.Run("transport failure re-enables submission", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		sub := NewSubmitter(url, nil, nil)
		if _, err := sub.Submit(ctx, filledState(30)); err == nil {
			t.Fatal("expected transport error")
		}
		if sub.Busy() {
			t.Error("busy flag must clear after failure")
		}
	})
}
