package postgres

import (
	"context"

	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.UserSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserSession, error) {
	var session domain.UserSession
	err := r.db.WithContext(ctx).Preload("User").First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.UserSession, error) {
	var session domain.UserSession
	err := r.db.WithContext(ctx).Preload("User").
		First(&session, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateRefreshToken replaces the session's token wholesale; rotation never
// appends.
func (r *sessionRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	return r.db.WithContext(ctx).Model(&domain.UserSession{}).
		Where("id = ?", id).
		Update("refresh_token", refreshToken).Error
}

func (r *sessionRepository) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&domain.UserSession{}, "id = ? AND user_id = ?", id, userID)
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.UserSession{}, "user_id = ?", userID).Error
}

func (r *sessionRepository) DeleteByUserIDExcept(ctx context.Context, userID, keepID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.UserSession{}, "user_id = ? AND id <> ?", userID, keepID).Error
}
