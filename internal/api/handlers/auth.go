package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/icares/memberportal/internal/api/views"
	"github.com/icares/memberportal/internal/config"
	"github.com/icares/memberportal/internal/domain"
	"github.com/icares/memberportal/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, cfg: cfg}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	views.Render(w, "login.html", views.LoginData{})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if email == "" || password == "" {
		views.Render(w, "login.html", views.LoginData{
			Error: "Please enter both email and password.",
			Email: email,
		})
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("ERROR [auth.Login] login failed: %v", err)
		}
		// One generic message for unknown email and wrong password alike.
		views.Render(w, "login.html", views.LoginData{
			Error: "Invalid email or password.",
			Email: email,
		})
		return
	}

	h.setSessionCookie(w, result)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	views.Render(w, "register.html", views.RegisterData{})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))

	_, err := h.userService.Register(r.Context(), service.RegisterInput{
		Name:            name,
		Email:           email,
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	})
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			views.Render(w, "register.html", views.RegisterData{
				Errors: verrs,
				Name:   name,
				Email:  email,
			})
			return
		}
		log.Printf("ERROR [auth.Register] registration failed: %v", err)
		views.Render(w, "register.html", views.RegisterData{
			Errors: []string{"Registration failed. Please try again."},
			Name:   name,
			Email:  email,
		})
		return
	}

	// Show the confirmation, then send the browser to the login page.
	w.Header().Set("Refresh", "2; url=/login")
	views.Render(w, "register.html", views.RegisterData{
		Success: "Registration successful! Redirecting to login...",
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cfg.CookieName); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			log.Printf("ERROR [auth.Logout] failed to destroy session: %v", err)
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, result *service.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.Session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
