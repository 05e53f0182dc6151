package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"store-it/internal/models"
	"store-it/internal/transcode"
	"store-it/internal/utils"
)

// MediaStore is the metadata persistence behind the pipeline.
type MediaStore interface {
	Insert(ctx context.Context, m *models.Media) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Media, error)
	UpdateCloudfrontURL(ctx context.Context, id, url string) error
}

// BlobStore is the object storage backend.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	PresignRead(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// UploadFile is one inbound multipart file.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// MediaItem is the outbound representation of a media row plus its
// derived public URL. Error carries a per-item failure annotation when
// URL derivation degraded.
type MediaItem struct {
	ID            string    `json:"id"`
	MediaType     string    `json:"mediaType"`
	UserID        string    `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	CloudfrontURL *string   `json:"cloudfrontUrl"`
	OriginalURL   string    `json:"originalUrl,omitempty"`
	Error         string    `json:"error,omitempty"`
}

type MediaService struct {
	repo       MediaStore
	store      BlobStore
	transcoder transcode.Transcoder
	cdnDomain  string
	presignTTL time.Duration
	log        *zap.SugaredLogger
}

func NewMediaService(repo MediaStore, store BlobStore, tr transcode.Transcoder, cdnDomain string, presignTTL time.Duration, log *zap.SugaredLogger) *MediaService {
	return &MediaService{
		repo:       repo,
		store:      store,
		transcoder: tr,
		cdnDomain:  cdnDomain,
		presignTTL: presignTTL,
		log:        log,
	}
}

// Upload runs the per-file pipeline: admit, name, transcode videos,
// store, record. Files are processed strictly in order and the first
// transform/store failure aborts the rest of the batch; rows already
// written stay committed. URL derivation for the stored batch happens
// afterwards and degrades per item.
func (s *MediaService) Upload(ctx context.Context, userID string, files []UploadFile) ([]MediaItem, error) {
	for _, f := range files {
		if len(f.Data) == 0 {
			return nil, fmt.Errorf("%w: file %s", utils.ErrEmptyFile, f.Name)
		}
	}

	uploaded := make([]models.Media, 0, len(files))
	for _, f := range files {
		m, err := s.uploadOne(ctx, userID, f)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		uploaded = append(uploaded, *m)
	}

	return s.resolveBatch(ctx, uploaded, false), nil
}

func (s *MediaService) uploadOne(ctx context.Context, userID string, f UploadFile) (*models.Media, error) {
	name := f.Name
	if name == "" {
		name = "abc"
	}
	key := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString(), name)

	data := f.Data
	contentType := f.ContentType
	if strings.HasPrefix(contentType, "video/") {
		converted, ct, err := s.transcoder.Transcode(ctx, data, contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrTranscodeFailed, err)
		}
		data, contentType = converted, ct
	}

	cloudURL, err := s.store.Upload(ctx, key, contentType, data)
	if err != nil {
		s.log.Errorw("blob upload failed", "object", key, "error", err)
		return nil, fmt.Errorf("%w: %v", utils.ErrStorageFailure, err)
	}

	mediaType := models.MediaTypeVideo
	if strings.HasPrefix(contentType, "image/") {
		mediaType = models.MediaTypeImage
	}
	m := &models.Media{
		ID:        uuid.NewString(),
		MediaType: mediaType,
		CloudURL:  cloudURL,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		s.log.Errorw("media insert failed", "object", key, "error", err)
		return nil, err
	}
	return m, nil
}

// List pages through the user's media newest first and resolves a public
// URL per item, backfilling missing cached URLs along the way.
func (s *MediaService) List(ctx context.Context, userID string, page, limit int) ([]MediaItem, bool, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 30
	}
	offset := (page - 1) * limit

	// one extra row decides hasMore
	rows, err := s.repo.ListByUser(ctx, userID, limit+1, offset)
	if err != nil {
		return nil, false, err
	}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	return s.resolveBatch(ctx, rows, true), hasMore, nil
}
