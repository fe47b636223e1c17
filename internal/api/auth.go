package api

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"loancalc/pkg/config"
	"loancalc/pkg/token"
)

// ClientAuth identifies the caller from a bearer token.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// Outside prod a missing Authorization header falls back to X-Client-ID, and
// then to the shared "anonymous" client, so local tools work without tokens.
func ClientAuth(cfg config.Config, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				v, err := token.Verify(strings.TrimSpace(authz[7:]), cfg.Auth.TokenSecret, cfg.Auth.Audience, time.Now())
				if err != nil {
					log.Debug("rejected bearer token", zap.Error(err))
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
					return
				}
				next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), Client{ID: v.ClientID, Name: v.Name})))
				return
			}

			if cfg.IsProd() {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing token")
				return
			}

			id := strings.TrimSpace(r.Header.Get("X-Client-ID"))
			if id == "" {
				id = "anonymous"
			}
			next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), Client{ID: id})))
		})
	}
}
