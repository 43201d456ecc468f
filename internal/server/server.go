package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/rowanhale/seatwell/internal/auth"
	"github.com/rowanhale/seatwell/internal/checkin"
	"github.com/rowanhale/seatwell/internal/config"
	"github.com/rowanhale/seatwell/internal/handler"
	"github.com/rowanhale/seatwell/internal/middleware"
	"github.com/rowanhale/seatwell/internal/model"
	"github.com/rowanhale/seatwell/internal/store"
	ws "github.com/rowanhale/seatwell/internal/websocket"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

type Server struct {
	db  *sql.DB
	hub *ws.Hub

	authH    *handler.AuthHandler
	weddingH *handler.WeddingHandler
	guestH   *handler.GuestHandler
	budgetH  *handler.BudgetHandler
	vendorH  *handler.VendorHandler
	leadH    *handler.LeadHandler
	adminH   *handler.AdminHandler
	staffH   *handler.StaffHandler

	issuer        *auth.TokenIssuer
	userStore     *store.UserStore
	staffSessions *store.StaffSessionStore
	authority     *checkin.Authority
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	weddingStore := store.NewWeddingStore(db)
	guestStore := store.NewGuestStore(db)
	checkInStore := store.NewCheckInStore(db)
	staffSessionStore := store.NewStaffSessionStore(db)
	budgetStore := store.NewBudgetStore(db)
	vendorStore := store.NewVendorStore(db)
	leadStore := store.NewLeadStore(db)
	auditStore := store.NewAuditStore(db)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	authority := checkin.NewAuthority(weddingStore, staffSessionStore, cfg.StaffSessionTTL, logger.With("component", "staff_auth"))
	coordinator := checkin.NewCoordinator(guestStore, checkInStore, hub, logger.With("component", "checkin"))
	statsAgg := checkin.NewStatsAggregator(guestStore, checkInStore)

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, issuer, logger.With("component", "auth")),
		weddingH:      handler.NewWeddingHandler(weddingStore, logger.With("component", "wedding")),
		guestH:        handler.NewGuestHandler(guestStore, weddingStore, logger.With("component", "guest")),
		budgetH:       handler.NewBudgetHandler(budgetStore, weddingStore, logger.With("component", "budget")),
		vendorH:       handler.NewVendorHandler(vendorStore, logger.With("component", "vendor")),
		leadH:         handler.NewLeadHandler(leadStore, vendorStore, weddingStore, logger.With("component", "lead")),
		adminH:        handler.NewAdminHandler(vendorStore, auditStore, logger.With("component", "admin")),
		staffH:        handler.NewStaffHandler(authority, coordinator, statsAgg, logger.With("component", "staff")),
		issuer:        issuer,
		userStore:     userStore,
		staffSessions: staffSessionStore,
		authority:     authority,
		rateLimiter:   middleware.NewRateLimiter(),
		logger:        logger,
	}
}

// StaffSessionStore exposes the session store for the expiry cleanup loop.
func (s *Server) StaffSessionStore() *store.StaffSessionStore {
	return s.staffSessions
}

// RateLimiter exposes the limiter for periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Router builds the full HTTP handler with middleware applied.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(s.issuer, s.userStore)
	requireAdmin := middleware.RequireRole(model.RoleAdmin)
	requireVendor := middleware.RequireRole(model.RoleVendor)
	requireStaff := middleware.RequireStaff(s.authority)
	limitLogin := middleware.RateLimit(s.rateLimiter, middleware.RealIP, loginRateLimit, loginRateWindow)

	authed := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return requireAuth(requireAdmin(h))
	}
	vendor := func(h http.HandlerFunc) http.Handler {
		return requireAuth(requireVendor(h))
	}
	staff := func(h http.HandlerFunc) http.Handler {
		return requireStaff(h)
	}

	// Accounts
	mux.Handle("POST /api/auth/register", limitLogin(http.HandlerFunc(s.authH.Register)))
	mux.Handle("POST /api/auth/login", limitLogin(http.HandlerFunc(s.authH.Login)))
	mux.Handle("GET /api/me", authed(s.authH.Me))

	// Weddings
	mux.Handle("POST /api/weddings", authed(s.weddingH.Create))
	mux.Handle("GET /api/weddings", authed(s.weddingH.List))
	mux.Handle("GET /api/weddings/{id}", authed(s.weddingH.Get))
	mux.Handle("PUT /api/weddings/{id}", authed(s.weddingH.Update))
	mux.Handle("PUT /api/weddings/{id}/staff-access", authed(s.weddingH.SetStaffAccess))

	// Guests
	mux.Handle("POST /api/weddings/{id}/guests", authed(s.guestH.Create))
	mux.Handle("GET /api/weddings/{id}/guests", authed(s.guestH.List))
	mux.Handle("PUT /api/weddings/{id}/guests/{guestID}", authed(s.guestH.Update))
	mux.Handle("DELETE /api/weddings/{id}/guests/{guestID}", authed(s.guestH.Delete))
	mux.Handle("GET /api/weddings/{id}/guests/{guestID}/qr", authed(s.guestH.QRCode))

	// Budget
	mux.Handle("POST /api/weddings/{id}/budget", authed(s.budgetH.Create))
	mux.Handle("GET /api/weddings/{id}/budget", authed(s.budgetH.List))
	mux.Handle("GET /api/weddings/{id}/budget/summary", authed(s.budgetH.Summary))
	mux.Handle("PUT /api/weddings/{id}/budget/{itemID}", authed(s.budgetH.Update))
	mux.Handle("DELETE /api/weddings/{id}/budget/{itemID}", authed(s.budgetH.Delete))

	// Vendor directory and profile
	mux.HandleFunc("GET /api/vendors", s.vendorH.Search)
	mux.Handle("POST /api/vendor/profile", vendor(s.vendorH.UpsertProfile))
	mux.Handle("GET /api/vendor/profile", vendor(s.vendorH.GetProfile))

	// Leads and messages
	mux.Handle("POST /api/vendors/{id}/leads", authed(s.leadH.Create))
	mux.Handle("GET /api/leads", authed(s.leadH.List))
	mux.Handle("GET /api/leads/{id}/messages", authed(s.leadH.ListMessages))
	mux.Handle("POST /api/leads/{id}/messages", authed(s.leadH.AddMessage))
	mux.Handle("PUT /api/leads/{id}/status", authed(s.leadH.SetStatus))

	// Admin
	mux.Handle("GET /api/admin/vendors", admin(s.adminH.ListVendors))
	mux.Handle("PUT /api/admin/vendors/{id}/status", admin(s.adminH.SetVendorStatus))
	mux.Handle("GET /api/admin/audit", admin(s.adminH.AuditLog))

	// Staff check-in console
	mux.Handle("POST /api/staff/login", limitLogin(http.HandlerFunc(s.staffH.Login)))
	mux.Handle("POST /api/staff/logout", staff(s.staffH.Logout))
	mux.Handle("POST /api/staff/checkin/scan", staff(s.staffH.CheckInScan))
	mux.Handle("POST /api/staff/checkin/manual", staff(s.staffH.CheckInManual))
	mux.Handle("GET /api/staff/stats", staff(s.staffH.Stats))
	mux.Handle("GET /api/staff/guests", staff(s.staffH.Guests))

	logged := middleware.RequestLogger(s.logger.With("component", "http"))(mux)

	// The websocket upgrade needs the raw ResponseWriter, so it mounts
	// outside the logging wrapper.
	root := http.NewServeMux()
	root.Handle("GET /api/staff/ws", requireStaff(ws.HandleWebSocket(s.hub)))
	root.Handle("/", logged)
	return root
}
