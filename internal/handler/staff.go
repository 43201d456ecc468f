package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rowanhale/seatwell/internal/auth"
	"github.com/rowanhale/seatwell/internal/checkin"
	"github.com/rowanhale/seatwell/internal/middleware"
	"github.com/rowanhale/seatwell/internal/model"
)

type StaffHandler struct {
	authority   *checkin.Authority
	coordinator *checkin.Coordinator
	stats       *checkin.StatsAggregator
	logger      *slog.Logger
}

func NewStaffHandler(a *checkin.Authority, c *checkin.Coordinator, s *checkin.StatsAggregator, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{authority: a, coordinator: c, stats: s, logger: logger}
}

type staffLoginRequest struct {
	WeddingCode string `json:"wedding_code"`
	PIN         string `json:"pin"`
}

// Login exchanges a wedding code + PIN for a short-lived session token.
func (h *StaffHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req staffLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.WeddingCode = strings.ToUpper(strings.TrimSpace(req.WeddingCode))

	sess, err := h.authority.Verify(req.WeddingCode, req.PIN)
	if err != nil {
		if errors.Is(err, checkin.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, checkin.ErrInvalidCredentials.Error())
			return
		}
		h.logger.Error("staff login", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
	})
}

func (h *StaffHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.StaffTokenHeader)
	if err := h.authority.Revoke(token); err != nil {
		h.logger.Error("staff logout", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// CheckInScan records a check-in from a QR token scan.
func (h *StaffHandler) CheckInScan(w http.ResponseWriter, r *http.Request) {
	sc, _ := auth.StaffFromContext(r.Context())

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	result, err := h.coordinator.CheckInByToken(sc.WeddingID, req.Token, sc.SessionID)
	h.writeCheckInResult(w, result, err)
}

// CheckInManual records a check-in located by guest ID (via name search).
func (h *StaffHandler) CheckInManual(w http.ResponseWriter, r *http.Request) {
	sc, _ := auth.StaffFromContext(r.Context())

	var req struct {
		GuestID int64 `json:"guest_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.GuestID <= 0 {
		writeError(w, http.StatusBadRequest, "guest_id is required")
		return
	}

	result, err := h.coordinator.CheckInByGuestID(sc.WeddingID, req.GuestID, sc.SessionID)
	h.writeCheckInResult(w, result, err)
}

func (h *StaffHandler) writeCheckInResult(w http.ResponseWriter, result *checkin.Result, err error) {
	if err != nil {
		if errors.Is(err, checkin.ErrGuestNotFound) {
			writeError(w, http.StatusNotFound, checkin.ErrGuestNotFound.Error())
			return
		}
		h.logger.Error("check-in", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	// Duplicates are a success: same shape, duplicate flag set.
	writeJSON(w, http.StatusOK, result)
}

func (h *StaffHandler) Stats(w http.ResponseWriter, r *http.Request) {
	sc, _ := auth.StaffFromContext(r.Context())

	stats, err := h.stats.Stats(sc.WeddingID)
	if err != nil {
		h.logger.Error("stats", "error", err, "wedding_id", sc.WeddingID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if stats.Recent == nil {
		stats.Recent = []model.RecentCheckIn{}
	}
	writeJSON(w, http.StatusOK, stats)
}

// Guests lists the wedding's guests with check-in status for the staff
// console, filtered by an optional name search.
func (h *StaffHandler) Guests(w http.ResponseWriter, r *http.Request) {
	sc, _ := auth.StaffFromContext(r.Context())

	guests, err := h.stats.GuestList(sc.WeddingID, r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("staff guest list", "error", err, "wedding_id", sc.WeddingID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if guests == nil {
		guests = []model.GuestStatus{}
	}
	writeJSON(w, http.StatusOK, guests)
}
