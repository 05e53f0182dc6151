package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"store-it/internal/models"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// FindWithUser loads the session joined with its owning user.
// Returns (nil, nil) when the token is unknown.
func (r *SessionRepo) FindWithUser(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", token).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", token).
		Update("expires_at", expiresAt).Error
}

// Delete is idempotent; removing an unknown token is not an error.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("id = ?", token).Delete(&models.Session{}).Error
}
