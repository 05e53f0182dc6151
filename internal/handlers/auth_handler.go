package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"store-it/internal/auth"
	"store-it/internal/middleware"
	"store-it/internal/utils"
)

type AuthHandler struct {
	svc      *auth.Service
	sessions *auth.SessionManager
	log      *zap.SugaredLogger
}

func NewAuthHandler(svc *auth.Service, sessions *auth.SessionManager, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, log: log}
}

type signupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type validateRequest struct {
	SessionID string `json:"sessionId"`
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "malformed body")
	}
	if req.Username == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "username is required")
	}
	if !utils.ValidPassword(req.Password) {
		return utils.JSONError(c, fiber.StatusBadRequest, "password must be at least 8 characters with a letter and a digit")
	}

	user, token, err := h.svc.Signup(c.Context(), req.Name, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return utils.JSONError(c, fiber.StatusConflict, "Username already taken!")
		}
		h.log.Errorw("signup failed", "username", req.Username, "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{"user": user, "sessionId": token})
}

// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "malformed body")
	}

	user, token, err := h.svc.Login(c.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{"user": user, "sessionId": token})
	case errors.Is(err, utils.ErrUserNotFound):
		return utils.JSONError(c, fiber.StatusConflict, "User does not exist!")
	case errors.Is(err, utils.ErrInvalidCredentials):
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid login details!")
	default:
		h.log.Errorw("login failed", "username", req.Username, "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
}

// POST /auth/logout — idempotent, works with any bearer token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := middleware.BearerToken(c)
	if err := h.sessions.Invalidate(c.Context(), token); err != nil {
		h.log.Errorw("logout failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "Logged out"})
}

// POST /validate — resolves a raw session token to its user.
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	var req validateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "malformed body")
	}
	user, err := h.sessions.Validate(c.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, utils.ErrUnauthenticated) {
			return utils.JSONError(c, fiber.StatusBadRequest, "Session expired, please login again!")
		}
		h.log.Errorw("validate failed", "error", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{"user": user})
}
