package web

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"seller-onboarding/internal/infra/logging"
	"seller-onboarding/internal/infra/metrics"
	"seller-onboarding/internal/usecase"
)

// Server is the read-only admin API over completed registrations.
type Server struct {
	adminUC usecase.AdminUseCase
	apiKey  string
	auth    *AuthManager
	log     *zerolog.Logger
	dev     bool
}

func NewServer(adminUC usecase.AdminUseCase, apiKey string, auth *AuthManager, logger *zerolog.Logger, dev bool) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Server{adminUC: adminUC, apiKey: apiKey, auth: auth, log: logger, dev: dev}
}

// RegisterRoutes mounts /api/admin on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/sellers/{id}", sellerGetHandler(s.adminUC, s.dev))
			r.Get("/taskers/{phone}", taskerGetHandler(s.adminUC, s.dev))
			r.Get("/stats", statsHandler(s.adminUC))
		})
	})
}

// authMiddleware accepts a valid admin JWT from the bearer header or cookie.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.auth == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loginRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	l := logging.With(r.Context(), s.log)

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if s.auth == nil || s.apiKey == "" || subtle.ConstantTimeCompare([]byte(req.Key), []byte(s.apiKey)) != 1 {
		metrics.IncAdminLogin("unauthorized")
		l.Warn().Msg("admin login rejected")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		l.Error().Err(err).Msg("mint admin token")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	metrics.IncAdminLogin("authorized")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.auth != nil {
		s.auth.Clear(w)
	}
	w.WriteHeader(http.StatusNoContent)
}
