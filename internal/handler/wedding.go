package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rowanhale/seatwell/internal/auth"
	"github.com/rowanhale/seatwell/internal/model"
	"github.com/rowanhale/seatwell/internal/store"
)

type WeddingHandler struct {
	weddingStore *store.WeddingStore
	logger       *slog.Logger
}

func NewWeddingHandler(ws *store.WeddingStore, logger *slog.Logger) *WeddingHandler {
	return &WeddingHandler{weddingStore: ws, logger: logger}
}

type weddingRequest struct {
	Title       string     `json:"title"`
	WeddingDate *time.Time `json:"wedding_date"`
	Venue       string     `json:"venue"`
}

func (h *WeddingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req weddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	wedding, err := h.weddingStore.Create(ac.UserID, req.Title, req.WeddingDate, req.Venue)
	if err != nil {
		h.logger.Error("create wedding", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create wedding")
		return
	}

	writeJSON(w, http.StatusCreated, wedding)
}

func (h *WeddingHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	weddings, err := h.weddingStore.ListByCouple(ac.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list weddings")
		return
	}
	if weddings == nil {
		weddings = []model.Wedding{}
	}
	writeJSON(w, http.StatusOK, weddings)
}

// load fetches the wedding and checks the actor may manage it. Writes the
// error response itself and returns nil on any failure.
func (h *WeddingHandler) load(w http.ResponseWriter, r *http.Request) *model.Wedding {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil
	}

	wedding, err := h.weddingStore.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get wedding")
		return nil
	}
	if wedding == nil {
		writeError(w, http.StatusNotFound, "wedding not found")
		return nil
	}

	ac, _ := auth.FromContext(r.Context())
	if !auth.CanManageWedding(ac, wedding) {
		writeError(w, http.StatusForbidden, "forbidden")
		return nil
	}
	return wedding
}

func (h *WeddingHandler) Get(w http.ResponseWriter, r *http.Request) {
	wedding := h.load(w, r)
	if wedding == nil {
		return
	}
	writeJSON(w, http.StatusOK, wedding)
}

func (h *WeddingHandler) Update(w http.ResponseWriter, r *http.Request) {
	wedding := h.load(w, r)
	if wedding == nil {
		return
	}

	var req weddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	updated, err := h.weddingStore.Update(wedding.ID, req.Title, req.WeddingDate, req.Venue)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update wedding")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

type staffAccessRequest struct {
	PublicCode string `json:"public_code"`
	PIN        string `json:"pin"`
}

// SetStaffAccess sets the wedding code + PIN pair that door staff use to
// open sessions on event day.
func (h *WeddingHandler) SetStaffAccess(w http.ResponseWriter, r *http.Request) {
	wedding := h.load(w, r)
	if wedding == nil {
		return
	}

	var req staffAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.PublicCode = strings.ToUpper(strings.TrimSpace(req.PublicCode))
	if len(req.PublicCode) < 4 {
		writeError(w, http.StatusBadRequest, "public code must be at least 4 characters")
		return
	}
	if len(req.PIN) < 4 || len(req.PIN) > 6 || !isDigits(req.PIN) {
		writeError(w, http.StatusBadRequest, "PIN must be 4-6 digits")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash PIN")
		return
	}

	updated, err := h.weddingStore.SetStaffAccess(wedding.ID, req.PublicCode, string(hash))
	if err != nil {
		h.logger.Error("set staff access", "error", err, "wedding_id", wedding.ID)
		writeError(w, http.StatusInternalServerError, "failed to set staff access")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
