package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/security"
	"fintrack/internal/services"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(claims security.Claims, ttl time.Duration) (string, error)
}

// AuthHandler handles signup and login.
type AuthHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
	tokens       TokenIssuer
	tokenTTL     time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, auditService services.AuditServicer, tokens TokenIssuer, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		auditService: auditService,
		tokens:       tokens,
		tokenTTL:     tokenTTL,
	}
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

// LoginRequest carries OAuth2 password-flow credentials. Username is the email.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup handles user registration
// @Summary     Register a new user
// @Description Create an account with email, full name and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignupRequest true "User registration data"
// @Success     201 {object} models.User "User created"
// @Failure     400 {object} ErrorResponse "Email already registered"
// @Failure     422 {object} ErrorResponse "Validation error"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.FullName, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, services.AuditActionSignup, "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, user)
}

// Login handles user login
// @Summary     Log in
// @Description Exchange email and password for a bearer token. Accepts a form post or JSON.
// @Tags        auth
// @Accept      x-www-form-urlencoded,json
// @Produce     json
// @Param       username formData string true "Email address"
// @Param       password formData string true "Password"
// @Success     200 {object} TokenResponse "Access token"
// @Failure     401 {object} ErrorResponse "Incorrect email or password"
// @Failure     422 {object} ErrorResponse "Validation error"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	var bindErr error
	if strings.HasPrefix(c.ContentType(), "application/json") {
		bindErr = c.ShouldBindJSON(&req)
	} else {
		bindErr = c.ShouldBind(&req)
	}
	if bindErr != nil {
		respondWithError(c, bindingError(bindErr))
		return
	}

	user, err := h.userService.AttemptLogin(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
		}
		respondWithError(c, err)
		return
	}

	token, err := h.tokens.Issue(security.Claims{UserID: user.ID, Role: user.Role}, h.tokenTTL)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, services.AuditActionLogin, "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
