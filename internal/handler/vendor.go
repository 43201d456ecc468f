package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rowanhale/seatwell/internal/auth"
	"github.com/rowanhale/seatwell/internal/model"
	"github.com/rowanhale/seatwell/internal/store"
)

type VendorHandler struct {
	vendorStore *store.VendorStore
	logger      *slog.Logger
}

func NewVendorHandler(vs *store.VendorStore, logger *slog.Logger) *VendorHandler {
	return &VendorHandler{vendorStore: vs, logger: logger}
}

// Search is the public vendor directory: approved profiles only.
func (h *VendorHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vendors, err := h.vendorStore.Search(q.Get("category"), q.Get("city"), q.Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search vendors")
		return
	}
	if vendors == nil {
		vendors = []model.VendorProfile{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

type vendorProfileRequest struct {
	BusinessName string `json:"business_name"`
	Category     string `json:"category"`
	City         string `json:"city"`
	Description  string `json:"description"`
	PriceRange   string `json:"price_range"`
}

func (h *VendorHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req vendorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	if req.BusinessName == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "business name and category are required")
		return
	}

	profile, err := h.vendorStore.Upsert(ac.UserID, req.BusinessName, req.Category, req.City, req.Description, req.PriceRange)
	if err != nil {
		h.logger.Error("upsert vendor profile", "error", err, "user_id", ac.UserID)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *VendorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	profile, err := h.vendorStore.GetByUserID(ac.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "no profile yet")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
