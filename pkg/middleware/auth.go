package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/floodops/pafs/modules/accounts/domain/account"
	"github.com/floodops/pafs/pkg/composables"
	"github.com/floodops/pafs/pkg/httpapi"
)

// Authorize resolves the authenticated principal named by the X-User-ID
// header and places it in the request context. The upstream gateway owns
// credential verification; this layer only hydrates the account.
func Authorize(accounts account.Repository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or malformed user id", nil)
				return
			}

			principal, err := accounts.GetByUserID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, account.ErrNotFound) {
					_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "unknown user", nil)
					return
				}
				_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
				return
			}
			if principal.Disabled() {
				_ = httpapi.WriteError(w, http.StatusForbidden, "ACCOUNT_DISABLED", "account is disabled", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(composables.WithUser(r.Context(), principal)))
		})
	}
}
