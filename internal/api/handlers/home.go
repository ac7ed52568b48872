package handlers

import (
	"net/http"

	"github.com/icares/memberportal/internal/config"
	"github.com/icares/memberportal/internal/service"
)

type HomeHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewHomeHandler(authService *service.AuthService, cfg *config.Config) *HomeHandler {
	return &HomeHandler{authService: authService, cfg: cfg}
}

// Index sends authenticated visitors to their profile and everyone else
// to the login page.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cfg.CookieName); err == nil {
		if _, err := h.authService.ValidateToken(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
			return
		}
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
