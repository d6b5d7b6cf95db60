package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/pawhub/pawhub/internal/repository"
)

// RequireAdmin gates admin-only routes. The flag embedded in the
// token is only a hint: a privileged action re-reads the persisted
// user row, so a demoted admin loses access immediately instead of
// at token expiry. Must run after Auth.
func RequireAdmin(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())

			user, err := userRepo.GetByID(r.Context(), userID)
			if err != nil {
				logrus.WithError(err).Error("admin check failed")
				writeEnvelope(w, http.StatusInternalServerError, "Something went wrong", "internal")
				return
			}
			if user == nil || !user.IsAdmin {
				writeEnvelope(w, http.StatusForbidden, "Administrator access required", "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
