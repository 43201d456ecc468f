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

type LeadHandler struct {
	leadStore    *store.LeadStore
	vendorStore  *store.VendorStore
	weddingStore *store.WeddingStore
	logger       *slog.Logger
}

func NewLeadHandler(ls *store.LeadStore, vs *store.VendorStore, ws *store.WeddingStore, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{leadStore: ls, vendorStore: vs, weddingStore: ws, logger: logger}
}

type createLeadRequest struct {
	WeddingID int64  `json:"wedding_id"`
	Message   string `json:"message"`
}

// Create opens a lead from a couple to the vendor in {id}.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	if ac.Role != model.RoleCouple {
		writeError(w, http.StatusForbidden, "only couples can contact vendors")
		return
	}

	vendorID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vendor id")
		return
	}
	vendor, err := h.vendorStore.GetByID(vendorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get vendor")
		return
	}
	if vendor == nil || vendor.Status != model.VendorApproved {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}

	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	wedding, err := h.weddingStore.GetByID(req.WeddingID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get wedding")
		return
	}
	if !auth.CanManageWedding(ac, wedding) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	lead, err := h.leadStore.Create(vendor.ID, wedding.ID, ac.UserID, strings.TrimSpace(req.Message))
	if err != nil {
		h.logger.Error("create lead", "error", err, "vendor_id", vendor.ID)
		writeError(w, http.StatusInternalServerError, "failed to create lead")
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

// List returns the caller's side of the lead pipeline: leads they opened
// for couples, leads against their profile for vendors.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var (
		leads []model.Lead
		err   error
	)
	switch ac.Role {
	case model.RoleCouple:
		leads, err = h.leadStore.ListByCouple(ac.UserID)
	case model.RoleVendor:
		profile, perr := h.vendorStore.GetByUserID(ac.UserID)
		if perr != nil {
			writeError(w, http.StatusInternalServerError, "failed to get profile")
			return
		}
		if profile == nil {
			writeJSON(w, http.StatusOK, []model.Lead{})
			return
		}
		leads, err = h.leadStore.ListByVendor(profile.ID)
	default:
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	if leads == nil {
		leads = []model.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

// loadLead resolves {id} and checks the actor is a party to the lead.
// Returns the lead and the vendor-side user ID.
func (h *LeadHandler) loadLead(w http.ResponseWriter, r *http.Request) (*model.Lead, int64) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lead id")
		return nil, 0
	}
	lead, err := h.leadStore.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get lead")
		return nil, 0
	}
	if lead == nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return nil, 0
	}
	vendor, err := h.vendorStore.GetByID(lead.VendorID)
	if err != nil || vendor == nil {
		writeError(w, http.StatusInternalServerError, "failed to get vendor")
		return nil, 0
	}

	ac, _ := auth.FromContext(r.Context())
	if !auth.CanActOnLead(ac, lead, vendor.UserID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return nil, 0
	}
	return lead, vendor.UserID
}

func (h *LeadHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	lead, _ := h.loadLead(w, r)
	if lead == nil {
		return
	}

	messages, err := h.leadStore.ListMessages(lead.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []model.LeadMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *LeadHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	lead, _ := h.loadLead(w, r)
	if lead == nil {
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		writeError(w, http.StatusBadRequest, "body is required")
		return
	}

	ac, _ := auth.FromContext(r.Context())
	msg, err := h.leadStore.AddMessage(lead.ID, ac.UserID, req.Body)
	if err != nil {
		h.logger.Error("add lead message", "error", err, "lead_id", lead.ID)
		writeError(w, http.StatusInternalServerError, "failed to add message")
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *LeadHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	lead, vendorUserID := h.loadLead(w, r)
	if lead == nil {
		return
	}

	ac, _ := auth.FromContext(r.Context())
	if !auth.CanUpdateLeadStatus(ac, vendorUserID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	switch req.Status {
	case model.LeadNew, model.LeadContacted, model.LeadClosed:
	default:
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, err := h.leadStore.SetStatus(lead.ID, req.Status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update lead")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
