package repository

import (
	"context"

	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserSession, error)
	GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.UserSession, error)
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error
	// DeleteByIDAndUser reports how many rows were removed so callers can
	// distinguish an already-gone session.
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteByUserIDExcept(ctx context.Context, userID, keepID uuid.UUID) error
}

type LinkRepository interface {
	Create(ctx context.Context, link *domain.Link) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Link, error)
	List(ctx context.Context, category string) ([]*domain.Link, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, link *domain.Link) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type FileRepository interface {
	Create(ctx context.Context, file *domain.UploadedFile) error
	List(ctx context.Context) ([]*domain.UploadedFile, error)
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Link    LinkRepository
	File    FileRepository
}
