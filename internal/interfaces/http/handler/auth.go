package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/orderhub/backend/internal/application/identity"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/interfaces/http/middleware"
)

// AuthHandler serves account and session endpoints
type AuthHandler struct {
	BaseHandler
	accounts *identityapp.AccountService
	auth     gin.HandlerFunc
}

// NewAuthHandler creates a new auth handler. The auth middleware guards
// the endpoints that require a session.
func NewAuthHandler(accounts *identityapp.AccountService, auth gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{accounts: accounts, auth: auth}
}

// RegisterRoutes registers account routes on the API group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.POST("/register", h.Register)
		user.POST("/register/confirm", h.ConfirmEmail)
		user.POST("/login", h.Login)
		user.POST("/password_reset", h.RequestPasswordReset)
		user.POST("/password_reset/confirm", h.ConfirmPasswordReset)

		authed := user.Group("", h.auth)
		{
			authed.POST("/logout", h.Logout)
			authed.GET("/details", h.GetAccount)
			authed.POST("/details", h.UpdateAccount)
		}
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Type      string `json:"type"`
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.accounts.Register(c.Request.Context(), identityapp.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Type:      identity.UserType(req.Type),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

type confirmRequest struct {
	Email string `json:"email" binding:"required"`
	Token string `json:"token" binding:"required"`
}

// ConfirmEmail activates an account with a confirmation token
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.accounts.ConfirmEmail(c.Request.Context(), identityapp.ConfirmInput{
		Email: req.Email,
		Token: req.Token,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"confirmed": true})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and issues an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout revokes the presented access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.accounts.Logout(c.Request.Context(), identityapp.LogoutInput{
		TokenJTI:     claims.ID,
		RemainingTTL: claims.GetRemainingTTL(),
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"logged_out": true})
}

// GetAccount returns the authenticated user's profile
func (h *AuthHandler) GetAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	info, err := h.accounts.GetAccount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

type updateAccountRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Company   *string `json:"company"`
	Position  *string `json:"position"`
	Password  *string `json:"password"`
}

// UpdateAccount applies partial profile changes
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	info, err := h.accounts.UpdateAccount(c.Request.Context(), identityapp.UpdateAccountInput{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Password:  req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

type passwordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestPasswordReset starts a password reset
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.accounts.RequestPasswordReset(c.Request.Context(), identityapp.RequestPasswordResetInput{
		Email: req.Email,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"sent": true})
}

type passwordResetConfirmRequest struct {
	Email    string `json:"email" binding:"required"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ConfirmPasswordReset completes a password reset
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req passwordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.accounts.ConfirmPasswordReset(c.Request.Context(), identityapp.ConfirmPasswordResetInput{
		Email:    req.Email,
		Token:    req.Token,
		Password: req.Password,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"reset": true})
}
