package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"armentum/internal/model"
)

// FileRepository defines stored file persistence operations.
type FileRepository interface {
	Create(ctx context.Context, file *model.StoredFile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StoredFile, error)
	List(ctx context.Context, tipo string, limit, offset int) ([]model.StoredFile, int64, error)
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new file repository.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

// Create records an uploaded file.
func (r *fileRepository) Create(ctx context.Context, file *model.StoredFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// Delete removes a file record.
func (r *fileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.StoredFile{}, "id = ?", id).Error
}

// FindByID finds a file record by ID.
func (r *fileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StoredFile, error) {
	var file model.StoredFile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// List returns a page of file records plus the total count, newest first,
// optionally filtered by file type.
func (r *fileRepository) List(ctx context.Context, tipo string, limit, offset int) ([]model.StoredFile, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.StoredFile{})
	if tipo != "" {
		query = query.Where("tipo = ?", tipo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var files []model.StoredFile
	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&files).Error
	if err != nil {
		return nil, 0, err
	}
	return files, total, nil
}
