package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/icares/memberportal/internal/config"
	"github.com/icares/memberportal/internal/domain"
	"github.com/icares/memberportal/internal/service"
)

type contextKey string

const SessionKey contextKey = "session"

// RequireAuth is the gate in front of every protected page. Requests
// without a live session are redirected to fallback and go no further;
// the rest proceed with the session snapshot in the request context.
func RequireAuth(authService *service.AuthService, cfg *config.Config, fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sessionFromRequest(r, authService, cfg)
			if err != nil {
				if !errors.Is(err, service.ErrInvalidSession) {
					log.Printf("ERROR [middleware.RequireAuth] session lookup failed: %v", err)
				}
				http.Redirect(w, r, fallback, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectIfAuthenticated is the inverse gate, used on the login and
// registration pages so an authenticated user cannot re-enter them.
func RedirectIfAuthenticated(authService *service.AuthService, cfg *config.Config, target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := sessionFromRequest(r, authService, cfg); err == nil {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionFromRequest(r *http.Request, authService *service.AuthService, cfg *config.Config) (*domain.UserSession, error) {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil {
		return nil, service.ErrInvalidSession
	}
	return authService.ValidateToken(r.Context(), cookie.Value)
}

func GetSession(ctx context.Context) (*domain.UserSession, bool) {
	session, ok := ctx.Value(SessionKey).(*domain.UserSession)
	return session, ok
}
