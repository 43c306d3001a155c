package postgres

import (
	"context"

	"github.com/alex/dev-tools-portal/internal/domain"
	"gorm.io/gorm"
)

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *fileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *domain.UploadedFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepository) List(ctx context.Context) ([]*domain.UploadedFile, error) {
	var files []*domain.UploadedFile
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}
