package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/icares/memberportal/internal/domain"
	"github.com/icares/memberportal/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserService handles registration and profile editing. Form validation
// collects every failure before reporting, so a submission with three
// problems comes back with three messages.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	var errs domain.ValidationErrors

	if input.Name == "" {
		errs.Add("Full name is required.")
	}

	if input.Email == "" {
		errs.Add("Email address is required.")
	} else if !emailPattern.MatchString(input.Email) {
		errs.Add("Invalid email format.")
	}

	if input.Password == "" {
		errs.Add("Password is required.")
	} else if len(input.Password) < minPasswordLength {
		errs.Add("Password must be at least 6 characters long.")
	}

	if input.Password != input.ConfirmPassword {
		errs.Add("Passwords do not match.")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	exists, err := s.userRepo.EmailExists(ctx, input.Email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		errs.Add("Email address already registered.")
		return nil, errs
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two registrations can race past the existence check; the unique
		// index on users.email is the arbiter either way.
		if errors.Is(err, domain.ErrEmailTaken) {
			errs.Add("Email address already registered.")
			return nil, errs
		}
		return nil, err
	}

	return user, nil
}

type UpdateProfileInput struct {
	UserID          uuid.UUID
	Name            string
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	var errs domain.ValidationErrors

	if input.Name == "" {
		errs.Add("Full name is required.")
	}

	if input.Email == "" {
		errs.Add("Email address is required.")
	} else if !emailPattern.MatchString(input.Email) {
		errs.Add("Invalid email format.")
	}

	if !errs.HasErrors() {
		exists, err := s.userRepo.EmailExists(ctx, input.Email, input.UserID)
		if err != nil {
			return nil, err
		}
		if exists {
			errs.Add("Email address already in use by another account.")
		}
	}

	// The stored hash is replaced only when a new password is supplied and
	// the caller proves knowledge of the current one.
	newHash := ""
	if input.NewPassword != "" {
		if len(input.NewPassword) < minPasswordLength {
			errs.Add("New password must be at least 6 characters long.")
		}
		if input.NewPassword != input.ConfirmPassword {
			errs.Add("New passwords do not match.")
		}
		if !errs.HasErrors() {
			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
				errs.Add("Current password is incorrect.")
			} else {
				hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
				if err != nil {
					return nil, err
				}
				newHash = string(hashed)
			}
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	user.Name = input.Name
	user.Email = input.Email
	if newHash != "" {
		user.PasswordHash = newHash
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			errs.Add("Email address already in use by another account.")
			return nil, errs
		}
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
