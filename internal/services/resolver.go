package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"store-it/internal/models"
)

// resolveBatch derives a public URL for every media row concurrently.
// Resolution is fail-soft: a failed item carries a nil URL and an error
// annotation, never failing the batch.
func (s *MediaService) resolveBatch(ctx context.Context, rows []models.Media, backfill bool) []MediaItem {
	items := make([]MediaItem, len(rows))
	var wg sync.WaitGroup
	for i, m := range rows {
		wg.Add(1)
		go func(i int, m models.Media) {
			defer wg.Done()
			items[i] = s.resolveOne(ctx, m, backfill)
		}(i, m)
	}
	wg.Wait()
	return items
}

func (s *MediaService) resolveOne(ctx context.Context, m models.Media, backfill bool) MediaItem {
	item := MediaItem{
		ID:        m.ID,
		MediaType: m.MediaType,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}

	// cache hit: no backend calls, returned verbatim
	if m.CloudfrontURL != nil && strings.Contains(*m.CloudfrontURL, s.cdnDomain) {
		item.CloudfrontURL = m.CloudfrontURL
		return item
	}
	item.OriginalURL = m.CloudURL

	key, err := objectKeyFromURL(m.CloudURL)
	if err != nil {
		s.log.Errorw("invalid cloud url", "media_id", m.ID, "url", m.CloudURL)
		item.Error = "Invalid cloud URL (missing object name)"
		return item
	}

	var derived string
	if s.cdnDomain != "" {
		derived = fmt.Sprintf("https://%s/%s", s.cdnDomain, url.PathEscape(key))
	} else {
		derived, err = s.store.PresignRead(ctx, key, s.presignTTL)
		if err != nil {
			s.log.Errorw("presign failed", "media_id", m.ID, "object", key, "error", err)
			item.Error = fmt.Sprintf("Failed to generate public URL: %v", err)
			return item
		}
	}

	// best-effort backfill; the derived URL is valid for this response
	// regardless of whether the cache write sticks
	if backfill && m.CloudfrontURL == nil {
		if err := s.repo.UpdateCloudfrontURL(ctx, m.ID, derived); err != nil {
			s.log.Errorw("cloudfront url backfill failed", "media_id", m.ID, "error", err)
		}
	}

	item.CloudfrontURL = &derived
	return item
}

// objectKeyFromURL recovers the object key from the canonical
// backing-store URL: the URL-decoded path after the bucket host.
func objectKeyFromURL(cloudURL string) (string, error) {
	u, err := url.Parse(cloudURL)
	if err != nil {
		return "", err
	}
	escaped := strings.TrimPrefix(u.EscapedPath(), "/")
	if escaped == "" {
		return "", fmt.Errorf("missing object name in %q", cloudURL)
	}
	key, err := url.PathUnescape(escaped)
	if err != nil {
		return "", err
	}
	return key, nil
}
