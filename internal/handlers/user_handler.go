package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"store-it/internal/auth"
	"store-it/internal/middleware"
	"store-it/internal/utils"
)

type UserHandler struct {
	svc *auth.Service
	log *zap.SugaredLogger
}

func NewUserHandler(svc *auth.Service, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// GET /me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"user": user})
}

type editProfileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	UserID   string `json:"userId"`
}

// POST /edit-profile
func (h *UserHandler) EditProfile(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	var req editProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "malformed body")
	}
	if req.UserID != "" && req.UserID != user.ID {
		return utils.JSONError(c, fiber.StatusUnauthorized, "cannot edit another user's profile")
	}
	if req.Password != "" && !utils.ValidPassword(req.Password) {
		return utils.JSONError(c, fiber.StatusBadRequest, "password must be at least 8 characters with a letter and a digit")
	}

	updated, err := h.svc.UpdateProfile(c.Context(), user.ID, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			return utils.JSONError(c, fiber.StatusBadRequest, "User does not exist!")
		}
		h.log.Errorw("edit profile failed", "user_id", user.ID, "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"user": updated})
}
