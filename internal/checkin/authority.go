package checkin

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rowanhale/seatwell/internal/model"
	"github.com/rowanhale/seatwell/internal/store"
)

// Authority issues and validates short-lived staff sessions. A session binds
// an opaque token to one wedding; many devices may hold concurrent sessions
// for the same event.
type Authority struct {
	weddings   *store.WeddingStore
	sessions   *store.StaffSessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewAuthority(ws *store.WeddingStore, ss *store.StaffSessionStore, ttl time.Duration, logger *slog.Logger) *Authority {
	return &Authority{
		weddings:   ws,
		sessions:   ss,
		sessionTTL: ttl,
		logger:     logger,
	}
}

// Verify checks a wedding code + PIN pair and mints a session on success.
// Every failure path returns ErrInvalidCredentials so a caller cannot probe
// which half was wrong.
func (a *Authority) Verify(code, pin string) (*model.StaffSession, error) {
	wedding, err := a.weddings.GetByPublicCode(code)
	if err != nil {
		return nil, err
	}
	if wedding == nil || wedding.PINHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(wedding.PINHash), []byte(pin)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := a.sessions.Create(wedding.ID, a.sessionTTL)
	if err != nil {
		return nil, err
	}

	a.logger.Info("staff session issued", "wedding_id", wedding.ID, "session_id", sess.ID, "expires_at", sess.ExpiresAt)
	return sess, nil
}

// Validate resolves a staff token to its session. Read-only; sessions are
// not renewed by use.
func (a *Authority) Validate(token string) (*model.StaffSession, error) {
	sess, err := a.sessions.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrInvalidSession
	}
	return sess, nil
}

// Revoke deletes the session so the token stops working before its natural
// expiry (staff logout).
func (a *Authority) Revoke(token string) error {
	return a.sessions.DeleteByToken(token)
}
