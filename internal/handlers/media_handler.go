package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"store-it/internal/middleware"
	service "store-it/internal/services"
	"store-it/internal/utils"
)

type MediaHandler struct {
	svc *service.MediaService
	log *zap.SugaredLogger
}

func NewMediaHandler(svc *service.MediaService, log *zap.SugaredLogger) *MediaHandler {
	return &MediaHandler{svc: svc, log: log}
}

// POST /media (multipart/form-data, field "media", one or more files)
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	form, err := c.MultipartForm()
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "malformed multipart body")
	}
	headers := form.File["media"]
	if len(headers) == 0 {
		return utils.JSONError(c, fiber.StatusBadRequest, "no media files in request")
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return utils.JSONError(c, fiber.StatusInternalServerError, "cannot open uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return utils.JSONError(c, fiber.StatusInternalServerError, "cannot read uploaded file")
		}
		files = append(files, service.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	items, err := h.svc.Upload(c.Context(), user.ID, files)
	if err != nil {
		if errors.Is(err, utils.ErrEmptyFile) {
			return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
		}
		h.log.Errorw("upload request failed", "user_id", user.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to process upload request",
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Uploaded", "media": items})
}

// GET /media/list?page=&limit=
func (h *MediaHandler) List(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "30"))

	items, hasMore, err := h.svc.List(c.Context(), user.ID, page, limit)
	if err != nil {
		h.log.Errorw("media list failed", "user_id", user.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to fetch media",
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"media": items, "hasMore": hasMore})
}
