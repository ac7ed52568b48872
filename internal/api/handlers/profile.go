package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/icares/memberportal/internal/api/middleware"
	"github.com/icares/memberportal/internal/api/views"
	"github.com/icares/memberportal/internal/domain"
	"github.com/icares/memberportal/internal/service"
)

type ProfileHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewProfileHandler(userService *service.UserService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{userService: userService, authService: authService}
}

// Show renders the profile page, or the edit form when ?edit=true.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.userService.GetByID(r.Context(), session.UserID)
	if err != nil {
		log.Printf("ERROR [profile.Show] failed to load user: %v", err)
		http.Redirect(w, r, "/logout", http.StatusSeeOther)
		return
	}

	views.Render(w, "profile.html", views.ProfileData{
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		Editing:   r.URL.Query().Get("edit") == "true",
	})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))

	user, err := h.userService.UpdateProfile(r.Context(), service.UpdateProfileInput{
		UserID:          session.UserID,
		Name:            name,
		Email:           email,
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	})
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			// Re-render the edit form with submitted values; password
			// fields are never echoed back.
			views.Render(w, "profile.html", views.ProfileData{
				Name:    name,
				Email:   email,
				Editing: true,
				Errors:  verrs,
			})
			return
		}
		log.Printf("ERROR [profile.Update] update failed: %v", err)
		views.Render(w, "profile.html", views.ProfileData{
			Name:    name,
			Email:   email,
			Editing: true,
			Errors:  []string{"Profile update failed. Please try again."},
		})
		return
	}

	// Keep the session snapshot in step with the new identity.
	if err := h.authService.RefreshSnapshot(r.Context(), user.ID, user.Name, user.Email); err != nil {
		log.Printf("ERROR [profile.Update] failed to refresh session snapshot: %v", err)
	}

	views.Render(w, "profile.html", views.ProfileData{
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		Success:   "Profile updated successfully!",
	})
}
