package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"store-it/internal/middleware"
	"store-it/internal/models"
	service "store-it/internal/services"
)

type memMediaStore struct {
	rows []models.Media
}

func (m *memMediaStore) Insert(_ context.Context, row *models.Media) error {
	m.rows = append(m.rows, *row)
	return nil
}

func (m *memMediaStore) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.Media, error) {
	var owned []models.Media
	for _, row := range m.rows {
		if row.UserID == userID {
			owned = append(owned, row)
		}
	}
	if offset >= len(owned) {
		return nil, nil
	}
	owned = owned[offset:]
	if len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

func (m *memMediaStore) UpdateCloudfrontURL(_ context.Context, id, url string) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].CloudfrontURL = &url
		}
	}
	return nil
}

type memBlobStore struct{}

func (memBlobStore) Upload(_ context.Context, key, contentType string, data []byte) (string, error) {
	return "https://bucket.s3.us-east-1.amazonaws.com/" + key, nil
}

func (memBlobStore) PresignRead(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.s3.us-east-1.amazonaws.com/" + key + "?signed=1", nil
}

type noopTranscoder struct{}

func (noopTranscoder) Transcode(_ context.Context, data []byte, _ string) ([]byte, string, error) {
	return data, "video/webm", nil
}

type staticValidator struct {
	user *models.User
}

func (v *staticValidator) Validate(_ context.Context, token string) (*models.User, error) {
	if token == "good-token" {
		return v.user, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func newMediaApp() (*fiber.App, *memMediaStore) {
	log := zap.NewNop().Sugar()
	repo := &memMediaStore{}
	svc := service.NewMediaService(repo, memBlobStore{}, noopTranscoder{}, "", time.Hour, log)
	h := NewMediaHandler(svc, log)
	authed := middleware.RequireAuth(&staticValidator{user: &models.User{ID: "u1", Username: "ann1"}})

	app := fiber.New()
	app.Post("/media", authed, h.Upload)
	app.Get("/media/list", authed, h.List)
	return app, repo
}

type formFile struct {
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, files []formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename="%s"`, f.name))
		hdr.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func uploadMedia(t *testing.T, app *fiber.App, files []formFile) (int, map[string]any) {
	t.Helper()
	body, contentType := multipartBody(t, files)
	req := httptest.NewRequest("POST", "/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestUploadMultipartFiles(t *testing.T) {
	app, repo := newMediaApp()

	status, body := uploadMedia(t, app, []formFile{
		{name: "a.png", contentType: "image/png", data: []byte("png-bytes")},
		{name: "b.jpg", contentType: "image/jpeg", data: []byte("jpg-bytes")},
	})
	assert.Equal(t, fiber.StatusOK, status)

	media := body["media"].([]any)
	require.Len(t, media, 2)
	for _, raw := range media {
		item := raw.(map[string]any)
		assert.Equal(t, "image", item["mediaType"])
		assert.Equal(t, "u1", item["userId"])
		assert.Contains(t, item["cloudfrontUrl"], "signed=1")
	}
	assert.Len(t, repo.rows, 2)
}

func TestUploadRejectsEmptyMultipartFile(t *testing.T) {
	app, repo := newMediaApp()

	status, body := uploadMedia(t, app, []formFile{
		{name: "empty.png", contentType: "image/png", data: nil},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Empty(t, repo.rows)
}

func TestUploadRequiresMediaField(t *testing.T) {
	app, _ := newMediaApp()

	status, body := uploadMedia(t, app, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestUploadRequiresAuth(t *testing.T) {
	app, _ := newMediaApp()

	body, contentType := multipartBody(t, []formFile{
		{name: "a.png", contentType: "image/png", data: []byte("png-bytes")},
	})
	req := httptest.NewRequest("POST", "/media", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestListHandlerPagination(t *testing.T) {
	app, repo := newMediaApp()
	for i := 0; i < 3; i++ {
		repo.rows = append(repo.rows, models.Media{
			ID:        fmt.Sprintf("m%d", i),
			MediaType: models.MediaTypeImage,
			CloudURL:  fmt.Sprintf("https://bucket.s3.us-east-1.amazonaws.com/obj-%d", i),
			UserID:    "u1",
			CreatedAt: time.Now().UTC(),
		})
	}

	req := httptest.NewRequest("GET", "/media/list?page=1&limit=2", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body["media"].([]any), 2)
	assert.Equal(t, true, body["hasMore"])
}
