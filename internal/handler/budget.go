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

type BudgetHandler struct {
	budgetStore  *store.BudgetStore
	weddingStore *store.WeddingStore
	logger       *slog.Logger
}

func NewBudgetHandler(bs *store.BudgetStore, ws *store.WeddingStore, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{budgetStore: bs, weddingStore: ws, logger: logger}
}

type budgetItemRequest struct {
	Category       string `json:"category"`
	Description    string `json:"description"`
	EstimatedCents int64  `json:"estimated_cents"`
	ActualCents    int64  `json:"actual_cents"`
	Paid           bool   `json:"paid"`
}

func (req *budgetItemRequest) validate() string {
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		return "category is required"
	}
	if req.EstimatedCents < 0 || req.ActualCents < 0 {
		return "amounts must not be negative"
	}
	return ""
}

func (h *BudgetHandler) loadWedding(w http.ResponseWriter, r *http.Request) *model.Wedding {
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

func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}

	var req budgetItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.budgetStore.Create(wedding.ID, req.Category, req.Description, req.EstimatedCents, req.ActualCents, req.Paid)
	if err != nil {
		h.logger.Error("create budget item", "error", err, "wedding_id", wedding.ID)
		writeError(w, http.StatusInternalServerError, "failed to create budget item")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}

	items, err := h.budgetStore.ListByWedding(wedding.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list budget items")
		return
	}
	if items == nil {
		items = []model.BudgetItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *BudgetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}

	summary, err := h.budgetStore.Summary(wedding.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute budget summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// loadItem resolves {itemID} and confirms it belongs to the wedding, so a
// couple cannot edit another wedding's line items by ID guessing.
func (h *BudgetHandler) loadItem(w http.ResponseWriter, r *http.Request, weddingID int64) *model.BudgetItem {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return nil
	}
	item, err := h.budgetStore.GetByID(itemID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get budget item")
		return nil
	}
	if item == nil || item.WeddingID != weddingID {
		writeError(w, http.StatusNotFound, "budget item not found")
		return nil
	}
	return item
}

func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}
	item := h.loadItem(w, r, wedding.ID)
	if item == nil {
		return
	}

	var req budgetItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.budgetStore.Update(item.ID, req.Category, req.Description, req.EstimatedCents, req.ActualCents, req.Paid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update budget item")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	wedding := h.loadWedding(w, r)
	if wedding == nil {
		return
	}
	item := h.loadItem(w, r, wedding.ID)
	if item == nil {
		return
	}

	if err := h.budgetStore.Delete(item.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete budget item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
