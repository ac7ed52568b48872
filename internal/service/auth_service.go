package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/icares/memberportal/internal/config"
	"github.com/icares/memberportal/internal/domain"
	"github.com/icares/memberportal/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrUserNotFound       = domain.ErrUserNotFound
)

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config

	// Compared against on the unknown-email path so that login failures
	// cost the same whether or not the account exists.
	dummyHash []byte
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("memberportal-no-such-account"), bcrypt.DefaultCost)
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		dummyHash:   dummy,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult carries the established session and the raw cookie token.
// The token is only ever held in memory and in the client's cookie; the
// database sees its SHA-256 hash.
type AuthResult struct {
	Session *domain.UserSession
	Token   string
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a hash verification anyway; unknown email and wrong
			// password must be indistinguishable to the caller.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(input.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	// One active session per user: a new login replaces any prior one.
	_ = s.sessionRepo.DeleteByUserID(ctx, user.ID)

	session := &domain.UserSession{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: HashToken(token),
		Name:      user.Name,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{Session: session, Token: token}, nil
}

// ValidateToken resolves a cookie token to its live session. Expired
// sessions are removed on sight and reported as invalid.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.UserSession, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Logout destroys the server-side session for token. Logging out with no
// matching session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByTokenHash(ctx, HashToken(token))
}

// RefreshSnapshot rewrites the identity snapshot held by the user's
// sessions after a profile update.
func (s *AuthService) RefreshSnapshot(ctx context.Context, userID uuid.UUID, name, email string) error {
	return s.sessionRepo.UpdateSnapshotByUserID(ctx, userID, name, email)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
