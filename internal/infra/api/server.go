package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"seller-onboarding/internal/usecase"
)

// Pinger reports backend liveness for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AdminRoutes mounts the admin API; web.Server implements it.
type AdminRoutes interface {
	RegisterRoutes(r chi.Router)
}

type Options struct {
	Registration   usecase.RegistrationUseCase
	Admin          AdminRoutes // nil disables the admin API
	Limiter        Limiter     // nil disables rate limiting
	DB             Pinger      // nil skips the database check
	BodyLimit      int64
	RequestTimeout time.Duration
	Logger         *zerolog.Logger
}

// NewRouter builds the HTTP surface: registration, admin, health and metrics.
func NewRouter(o Options) *chi.Mux {
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		TraceID(),
		ClientIP(),
		RequestLog(o.Logger),
		Recover(o.Logger),
	)

	r.Get("/health", healthHandler(o.DB))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	reg := NewRegistrationHandler(o.Registration, NewValidator(), o.Logger)
	r.Group(func(r chi.Router) {
		if o.Limiter != nil {
			r.Use(RateLimit(o.Limiter, "/api/registration", o.Logger))
		}
		if o.BodyLimit > 0 {
			r.Use(BodyLimit(o.BodyLimit))
		}
		if o.RequestTimeout > 0 {
			r.Use(Timeout(o.RequestTimeout))
		}
		r.Post("/api/registration", reg.Register)
	})

	if o.Admin != nil {
		o.Admin.RegisterRoutes(r)
	}
	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
