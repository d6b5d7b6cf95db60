package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pawhub/pawhub/internal/auth"
)

type contextKey string

const ClaimsKey contextKey = "auth_claims"

// Auth extracts and verifies the bearer token, rejects revoked
// tokens, and stores the verified claims in the request context.
func Auth(issuer *auth.Issuer, denylist *auth.Denylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Missing token")
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")

			claims, err := issuer.Verify(tokenStr)
			if err != nil {
				// Same status either way, but expiry and forgery are
				// different signals operationally.
				if errors.Is(err, auth.ErrTokenExpired) {
					logrus.WithField("path", r.URL.Path).Debug("expired token")
				} else {
					logrus.WithField("path", r.URL.Path).Warn("invalid token")
				}
				unauthorized(w, "Invalid or expired token")
				return
			}

			if denylist != nil && claims.TokenID != uuid.Nil {
				revoked, err := denylist.IsRevoked(r.Context(), claims.TokenID)
				if err != nil {
					logrus.WithError(err).Error("denylist lookup failed")
					unauthorized(w, "Invalid or expired token")
					return
				}
				if revoked {
					unauthorized(w, "Token has been revoked")
					return
				}
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims returns the verified claims stored by Auth. Only valid on
// requests that passed through the middleware.
func GetClaims(ctx context.Context) *auth.Claims {
	return ctx.Value(ClaimsKey).(*auth.Claims)
}

func GetUserID(ctx context.Context) uuid.UUID {
	return GetClaims(ctx).UserID
}

func unauthorized(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusUnauthorized, message, "unauthorized")
}
