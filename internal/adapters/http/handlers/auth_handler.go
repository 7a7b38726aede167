package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gad-officerhub/internal/adapters/persistence/repositories"
	"gad-officerhub/internal/adapters/persistence/session"
	"gad-officerhub/internal/config"
	"gad-officerhub/internal/pkg/jwt"
	"gad-officerhub/internal/pkg/password"
	"gad-officerhub/internal/pkg/response"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	cfg      *config.Config
	users    *repositories.UserRepository
	sessions *session.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config, users *repositories.UserRepository, sessions *session.Store) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users, sessions: sessions}
}

// LoginRequest represents login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a user and mints a session-bound access token
// @Summary Login
// @Description Authenticate with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	user, err := h.users.GetByUsername(c.Context(), req.Username)
	if err != nil || !password.Verify(req.Password, user.Password) {
		return response.Unauthorized(c, "Invalid username or password")
	}

	// Each login opens a fresh server-side session.
	sessionID := uuid.NewString()

	token, err := jwt.GenerateAccessToken(
		user.ID, user.OfficerID, user.Username, user.Role, sessionID,
		h.cfg.JWT.Secret, h.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.AccessTokenMins) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"role":       user.Role,
			"officer_id": user.OfficerID,
		},
	})
}

// Logout drops the server-side session and clears the cookie
// @Summary Logout
// @Description End the current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sessionID, ok := c.Locals("sessionID").(string); ok && sessionID != "" {
		h.sessions.Reset(sessionID)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	return response.Success(c, "Logout successful", nil)
}

// Me returns the authenticated account
// @Summary Current user
// @Description Get the logged-in user's account details
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user,
	})
}
