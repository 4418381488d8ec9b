package handler

import (
	appidentity "github.com/campusmarket/backend/internal/application/identity"
	"github.com/campusmarket/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	BaseHandler
	accounts *appidentity.AccountService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts *appidentity.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// RegisterForm describes the registration form
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.Success(c, registerForm)
}

// Register creates an account from a form or JSON body
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), appidentity.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// LoginForm describes the login form
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.Success(c, loginForm)
}

// Login authenticates by email and password and issues a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.accounts.Authenticate(c.Request.Context(), appidentity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		Token: TokenResponse{
			AccessToken: result.AccessToken,
			TokenType:   result.TokenType,
			ExpiresAt:   result.ExpiresAt,
		},
		Account: result.Account,
	})
}

// Logout revokes the presented token. Anonymous callers get a successful no-op.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Success(c, LogoutResponse{LoggedOut: false})
		return
	}

	accountID, err := uuid.Parse(claims.UserID)
	if err != nil {
		h.Unauthorized(c, "Invalid account in token")
		return
	}

	if err := h.accounts.Logout(c.Request.Context(), appidentity.LogoutInput{
		AccountID: accountID,
		TokenID:   claims.ID,
		ExpiresAt: claims.GetExpiresAtTime(),
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LogoutResponse{LoggedOut: true})
}

// Me returns the authenticated account
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	account, err := h.accounts.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}
