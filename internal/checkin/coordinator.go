package checkin

import (
	"log/slog"

	"github.com/rowanhale/seatwell/internal/model"
	"github.com/rowanhale/seatwell/internal/store"
	ws "github.com/rowanhale/seatwell/internal/websocket"
)

// Result is the uniform answer to any check-in attempt. Duplicate marks the
// idempotent case: the guest was already checked in and Record carries the
// original timestamp and attribution.
type Result struct {
	GuestID   int64                `json:"guest_id"`
	GuestName string               `json:"guest_name"`
	Record    *model.CheckInRecord `json:"record"`
	Duplicate bool                 `json:"duplicate"`
}

// Coordinator turns a token scan or manual lookup into at most one ledger
// row per guest, safe under any number of concurrent staff devices.
type Coordinator struct {
	guests   *store.GuestStore
	checkIns *store.CheckInStore
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewCoordinator(gs *store.GuestStore, cs *store.CheckInStore, hub *ws.Hub, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		guests:   gs,
		checkIns: cs,
		hub:      hub,
		logger:   logger,
	}
}

// CheckInByToken records a check-in for the guest holding the scanned token.
// The lookup is scoped to the session's wedding; a token minted for another
// wedding is ErrGuestNotFound here.
func (c *Coordinator) CheckInByToken(weddingID int64, token string, staffSessionID int64) (*Result, error) {
	guest, err := c.guests.GetByTokenForWedding(token, weddingID)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}
	return c.record(guest, staffSessionID, model.CheckInMethodScan)
}

// CheckInByGuestID records a check-in located by manual name search, for
// guests whose QR code is unreadable or unavailable.
func (c *Coordinator) CheckInByGuestID(weddingID, guestID, staffSessionID int64) (*Result, error) {
	guest, err := c.guests.GetByIDForWedding(guestID, weddingID)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}
	return c.record(guest, staffSessionID, model.CheckInMethodManual)
}

func (c *Coordinator) record(guest *model.Guest, staffSessionID int64, method string) (*Result, error) {
	rec, created, err := c.checkIns.CreateIfAbsent(guest.ID, guest.WeddingID, staffSessionID, method)
	if err != nil {
		return nil, err
	}

	if created {
		c.logger.Info("guest checked in",
			"wedding_id", guest.WeddingID,
			"guest_id", guest.ID,
			"method", method,
			"staff_session_id", staffSessionID,
		)
		c.broadcast(guest, rec)
	}

	return &Result{
		GuestID:   guest.ID,
		GuestName: guest.Name,
		Record:    rec,
		Duplicate: !created,
	}, nil
}

func (c *Coordinator) broadcast(guest *model.Guest, rec *model.CheckInRecord) {
	if c.hub == nil {
		return
	}
	c.hub.Broadcast(guest.WeddingID, ws.NewMessage("checkin", "created", guest.ID, map[string]any{
		"guest_name":    guest.Name,
		"method":        rec.Method,
		"checked_in_at": rec.CheckedInAt,
	}))
}
