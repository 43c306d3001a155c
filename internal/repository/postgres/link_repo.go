package postgres

import (
	"context"

	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *linkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *domain.Link) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *linkRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	var link domain.Link
	err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) List(ctx context.Context, category string) ([]*domain.Link, error) {
	var links []*domain.Link
	query := r.db.WithContext(ctx).Order("category ASC, sort_order ASC, created_at ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *linkRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&domain.Link{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *linkRepository) Update(ctx context.Context, link *domain.Link) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *linkRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Link{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
