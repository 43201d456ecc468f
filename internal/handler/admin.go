package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rowanhale/seatwell/internal/auth"
	"github.com/rowanhale/seatwell/internal/model"
	"github.com/rowanhale/seatwell/internal/store"
)

const auditPageSize = 100

type AdminHandler struct {
	vendorStore *store.VendorStore
	auditStore  *store.AuditStore
	logger      *slog.Logger
}

func NewAdminHandler(vs *store.VendorStore, as *store.AuditStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{vendorStore: vs, auditStore: as, logger: logger}
}

// ListVendors shows the moderation queue, defaulting to pending profiles.
func (h *AdminHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = model.VendorPending
	}
	switch status {
	case model.VendorPending, model.VendorApproved, model.VendorSuspended:
	default:
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	vendors, err := h.vendorStore.ListByStatus(status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list vendors")
		return
	}
	if vendors == nil {
		vendors = []model.VendorProfile{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

// SetVendorStatus approves or suspends a profile and records the decision
// in the audit log.
func (h *AdminHandler) SetVendorStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vendor id")
		return
	}

	vendor, err := h.vendorStore.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get vendor")
		return
	}
	if vendor == nil {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}

	var req struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	switch req.Status {
	case model.VendorApproved, model.VendorSuspended:
	default:
		writeError(w, http.StatusBadRequest, "status must be approved or suspended")
		return
	}

	updated, err := h.vendorStore.SetStatus(vendor.ID, req.Status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update vendor")
		return
	}

	ac, _ := auth.FromContext(r.Context())
	detail := fmt.Sprintf("%s -> %s", vendor.Status, req.Status)
	if req.Reason != "" {
		detail += ": " + req.Reason
	}
	if err := h.auditStore.Record(ac.UserID, "vendor_status", "vendor_profile", vendor.ID, detail); err != nil {
		// The moderation change already committed; log and keep going.
		h.logger.Error("record audit entry", "error", err, "vendor_id", vendor.ID)
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.auditStore.List(auditPageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit log")
		return
	}
	if entries == nil {
		entries = []model.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
