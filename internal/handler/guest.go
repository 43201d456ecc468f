package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/rowanhale/seatwell/internal/auth"
	"github.com/rowanhale/seatwell/internal/model"
	"github.com/rowanhale/seatwell/internal/store"
)

const qrImageSize = 256

type GuestHandler struct {
	guestStore   *store.GuestStore
	weddingStore *store.WeddingStore
	logger       *slog.Logger
}

func NewGuestHandler(gs *store.GuestStore, ws *store.WeddingStore, logger *slog.Logger) *GuestHandler {
	return &GuestHandler{guestStore: gs, weddingStore: ws, logger: logger}
}

type guestRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	TableAssignment string `json:"table_assignment"`
	DietaryNote     string `json:"dietary_note"`
}

// loadWedding resolves {id} and checks management rights. Writes the error
// response itself and returns nil on failure.
func (h *GuestHandler) loadWedding(w http.ResponseWriter, r *http.Request) *model.Wedding {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wedding id")
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

// loadGuest resolves {guestID} within the wedding's scope.
func (h *GuestHandler) loadGuest(w http.ResponseWriter, r *http.Request, weddingID int64) *model.Guest {
	guestID, err := pathID(r, "guestID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guest id")
		return nil
	}
	guest, err := h.guestStore.GetByIDForWedding(guestID, weddingID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get guest")
		return nil
	}
	if guest == nil {
		writeError(w, http.StatusNotFound, "guest not found")
		return nil
	}
	return guest
}

func (h *GuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}

	var req guestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	guest, err := h.guestStore.Create(wedding.ID, req.Name, req.Phone, req.Email, req.TableAssignment, req.DietaryNote)
	if err != nil {
		h.logger.Error("create guest", "error", err, "wedding_id", wedding.ID)
		writeError(w, http.StatusInternalServerError, "failed to create guest")
		return
	}

	writeJSON(w, http.StatusCreated, guest)
}

func (h *GuestHandler) List(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}

	guests, err := h.guestStore.ListWithStatus(wedding.ID, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list guests")
		return
	}
	if guests == nil {
		guests = []model.GuestStatus{}
	}
	writeJSON(w, http.StatusOK, guests)
}

func (h *GuestHandler) Update(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}
	guest := h.loadGuest(w, r, wedding.ID)
	if guest == nil {
		return
	}

	var req guestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	updated, err := h.guestStore.Update(guest.ID, req.Name, req.Phone, req.Email, req.TableAssignment, req.DietaryNote)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update guest")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *GuestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}
	guest := h.loadGuest(w, r, wedding.ID)
	if guest == nil {
		return
	}

	if err := h.guestStore.Delete(guest.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete guest")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// QRCode renders the guest's check-in token as a PNG for invitations and
// place cards.
func (h *GuestHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}
	guest := h.loadGuest(w, r, wedding.ID)
	if guest == nil {
		return
	}

	png, err := qrcode.Encode(guest.CheckinToken, qrcode.Medium, qrImageSize)
	if err != nil {
		h.logger.Error("encode qr", "error", err, "guest_id", guest.ID)
		writeError(w, http.StatusInternalServerError, "failed to encode QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
