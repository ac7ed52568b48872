package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/icares/memberportal/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// EmailExists reports whether email belongs to a user other than
	// excludingID. Pass uuid.Nil to check against all users.
	EmailExists(ctx context.Context, email string, excludingID uuid.UUID) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	UpdateSnapshotByUserID(ctx context.Context, userID uuid.UUID, name, email string) error
	DeleteExpired(ctx context.Context) error
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
}
