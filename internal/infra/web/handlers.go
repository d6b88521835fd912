package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/infra/logging"
	"seller-onboarding/internal/usecase"
)

type taskerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type sellerView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phone_number"`
	GSTNumber    string    `json:"gst_number"`
	ShopImageURL string    `json:"shop_image_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type productView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ImageURLs []string `json:"image_urls"`
	MRP       string   `json:"mrp"`
	MSP       string   `json:"msp"`
}

func newTaskerView(t *model.Tasker, dev bool) *taskerView {
	if t == nil {
		return nil
	}
	return &taskerView{ID: t.ID, Name: t.Name, Phone: logging.Redact(t.Phone, dev), CreatedAt: t.CreatedAt}
}

// sellerGetHandler returns a seller with its tasker and full product list.
func sellerGetHandler(adminUC usecase.AdminUseCase, dev bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg, err := adminUC.GetSeller(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err, "Failed to get seller")
			return
		}

		products := make([]productView, 0, len(reg.Products))
		for _, p := range reg.Products {
			products = append(products, productView{
				ID:        p.ID,
				Name:      p.Name,
				ImageURLs: []string{p.Image1URL, p.Image2URL, p.Image3URL},
				MRP:       p.MRP.String(),
				MSP:       p.MSP.String(),
			})
		}
		s := reg.Seller
		writeJSON(w, http.StatusOK, struct {
			Seller   sellerView    `json:"seller"`
			Tasker   *taskerView   `json:"tasker"`
			Products []productView `json:"products"`
		}{
			Seller: sellerView{
				ID:           s.ID,
				Name:         s.Name,
				PhoneNumber:  s.PhoneNumber,
				GSTNumber:    s.GSTNumber,
				ShopImageURL: s.ShopImageURL,
				CreatedAt:    s.CreatedAt,
			},
			Tasker:   newTaskerView(reg.Tasker, dev),
			Products: products,
		})
	}
}

// taskerGetHandler looks a tasker up by phone; dashes and spaces are accepted.
func taskerGetHandler(adminUC usecase.AdminUseCase, dev bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg, err := adminUC.GetTaskerByPhone(r.Context(), chi.URLParam(r, "phone"))
		if err != nil {
			writeDomainError(w, err, "Failed to get tasker")
			return
		}
		ids := reg.SellerIDs
		if ids == nil {
			ids = []string{}
		}
		writeJSON(w, http.StatusOK, struct {
			Tasker    *taskerView `json:"tasker"`
			SellerIDs []string    `json:"seller_ids"`
		}{
			Tasker:    newTaskerView(reg.Tasker, dev),
			SellerIDs: ids,
		})
	}
}

func statsHandler(adminUC usecase.AdminUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := adminUC.Stats(r.Context())
		if err != nil {
			http.Error(w, "Failed to get totals", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Taskers  int `json:"total_taskers"`
			Sellers  int `json:"total_sellers"`
			Products int `json:"total_products"`
		}{st.Taskers, st.Sellers, st.Products})
	}
}

func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
