// Package api implements the harmoni REST API using chi.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/starford/harmoni/internal/auth"
)

// Admin authentication modes.
const (
	AuthDisabled = "disabled"
	AuthToken    = "token"
	AuthBasic    = "basic"
)

const basicRealm = `Basic realm="harmoni admin", charset="UTF-8"`

// AuthConfig selects how admin requests are authenticated.
type AuthConfig struct {
	Mode         string
	Token        string
	Username     string
	PasswordHash string
}

// AuthMiddleware returns middleware guarding the admin routes.
// In disabled mode all requests pass through. Token mode expects
// "Authorization: Bearer <token>". Basic mode checks the username and an
// argon2id password hash.
func AuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch cfg.Mode {
			case AuthToken:
				h := r.Header.Get("Authorization")
				if !strings.HasPrefix(h, "Bearer ") || !auth.EqualString(strings.TrimPrefix(h, "Bearer "), cfg.Token) {
					writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
					return
				}
			case AuthBasic:
				if !checkBasic(r, cfg) {
					w.Header().Set("WWW-Authenticate", basicRealm)
					writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkBasic(r *http.Request, cfg AuthConfig) bool {
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	// The hash is checked whatever the username.
	match, err := auth.VerifyPassword(pass, cfg.PasswordHash)
	if err != nil {
		slog.Error("admin password hash unusable", slog.String("error", err.Error()))
		return false
	}
	return match && auth.EqualString(user, cfg.Username)
}
