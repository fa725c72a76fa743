package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/nexus/backend/internal/auth"
	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/storage"
)

// AuthHandler mints the mock single-user session. Any email/password pair is
// accepted; no credential is stored or verified. The session user is the
// only thing persisted.
type AuthHandler struct {
	Sessions *storage.Adapter
	Tokens   *auth.TokenManager
}

// NewAuthHandler builds the session handler.
func NewAuthHandler(sessions *storage.Adapter, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Tokens: tokens}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// Signup accepts any credentials and creates the session user.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now().UTC(),
	}

	return h.startSession(c, user)
}

// Login accepts any credentials; the display name falls back to the local
// part of the email.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	return h.startSession(c, user)
}

// Logout drops the persisted session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return unauthorized(c)
	}

	h.Sessions.DeleteUser(c.Request().Context())
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Me returns the persisted session user.
func (h *AuthHandler) Me(c echo.Context) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return unauthorized(c)
	}

	user, ok := h.Sessions.LoadUser(c.Request().Context())
	if !ok {
		return notFound(c, "session not found")
	}

	return c.JSON(http.StatusOK, map[string]models.User{"user": user})
}

func (h *AuthHandler) startSession(c echo.Context, user models.User) error {
	token, expiresAt, err := h.Tokens.NewAccessToken(user.ID)
	if err != nil {
		return serverError(c)
	}

	h.Sessions.SaveUser(c.Request().Context(), user)

	return c.JSON(http.StatusOK, SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}
