package handlers

import (
	"errors"
	"net/http"

	"taskmanager/internal/auth"
	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles register, login and account endpoints.
type AuthHandler struct {
	tokens  *auth.TokenStore
	userSvc *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(tokens *auth.TokenStore, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{tokens: tokens, userSvc: userSvc}
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Account"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /register/ [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.tokens.GetOrCreate(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterResponse{Token: token, UserID: user.ID, Email: user.Email})
}

// Login godoc
// @Summary      Login
// @Description  Returns the user's token, creating it on first login.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid credentials"})
			return
		}
		internalError(c, err)
		return
	}
	token, err := h.tokens.GetOrCreate(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

// TestAuth godoc
// @Summary      Check authentication
// @Tags         auth
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  dto.TestAuthResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /test-auth/ [get]
func (h *AuthHandler) TestAuth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.TestAuthResponse{
		Message: "Authentication successful!",
		User:    auth.UsernameFromContext(c),
	})
}

// DeleteAccount godoc
// @Summary      Delete the current account
// @Description  Removes the user with all categories, tags, tasks and subtasks, and revokes the token.
// @Tags         auth
// @Security     TokenAuth
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /account/ [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	if err := h.userSvc.Delete(c.Request.Context(), userID); err != nil && !errors.Is(err, service.ErrNotFound) {
		internalError(c, err)
		return
	}
	if err := h.tokens.Revoke(c.Request.Context(), userID); err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SimpleTest godoc
// @Summary      Plain-text liveness probe
// @Tags         auth
// @Produce      plain
// @Success      200  {string}  string
// @Router       /simple-test/ [get]
func SimpleTest(c *gin.Context) {
	c.String(http.StatusOK, "This is a test view")
}
