package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rowanhale/seatwell/internal/auth"
	"github.com/rowanhale/seatwell/internal/checkin"
)

// StaffTokenHeader carries the opaque staff session token on every
// staff-scoped request.
const StaffTokenHeader = "X-Staff-Token"

// RequireStaff validates the staff session token and populates
// auth.StaffContext with the session and its wedding scope.
func RequireStaff(authority *checkin.Authority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(StaffTokenHeader)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "staff session required")
				return
			}

			sess, err := authority.Validate(token)
			if err != nil {
				// Only a rejected session is the caller's fault; a storage
				// failure must not read as a revoked credential.
				if errors.Is(err, checkin.ErrInvalidSession) {
					writeError(w, http.StatusUnauthorized, "invalid or expired staff session")
				} else {
					writeError(w, http.StatusInternalServerError, "internal error")
				}
				return
			}

			sc := auth.StaffContext{SessionID: sess.ID, WeddingID: sess.WeddingID}
			ctx := auth.WithStaff(r.Context(), sc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
