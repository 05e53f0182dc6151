package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"store-it/internal/models"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db: db}
}

func (r *MediaRepo) Insert(ctx context.Context, m *models.Media) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// ListByUser returns the user's media newest first. Callers pass limit+1
// to detect whether another page exists.
func (r *MediaRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Media, error) {
	var rows []models.Media
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateCloudfrontURL backfills the cached derived URL.
func (r *MediaRepo) UpdateCloudfrontURL(ctx context.Context, id, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("id = ?", id).
		Update("cloudfront_url", url).Error
}
