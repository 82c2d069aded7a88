package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skills-platform-backend/internal/delivery/http/middleware"
	"skills-platform-backend/internal/delivery/http/response"
	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"
	"skills-platform-backend/pkg/auth"
)

type UserHandler struct {
	authUC domain.AuthUsecase
	userUC domain.UserUsecase
}

func NewUserHandler(public *gin.RouterGroup, tokens *auth.Manager, authUC domain.AuthUsecase, userUC domain.UserUsecase) {
	handler := &UserHandler{
		authUC: authUC,
		userUC: userUC,
	}

	user := public.Group("/user")
	{
		user.POST("/send-otp", handler.SendOTP)
		user.POST("/verify-otp/register", handler.Register)
		user.POST("/login", handler.Login)
		user.POST("/verify-otp/password-reset-token", handler.PasswordResetToken)
	}

	reset := user.Group("")
	reset.Use(middleware.AuthMiddleware(tokens, auth.TokenPasswordReset))
	{
		reset.POST("/reset-password", handler.ResetPassword)
	}

	refresh := user.Group("")
	refresh.Use(middleware.AuthMiddleware(tokens, auth.TokenRefresh))
	{
		refresh.POST("/refresh-token", handler.RefreshToken)
	}

	protected := user.Group("")
	protected.Use(middleware.AuthMiddleware(tokens, auth.TokenAccess))
	{
		protected.POST("/profile", handler.CreateProfile)
		protected.GET("/profile", handler.GetProfile)
	}
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *UserHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.SendOTP(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Verification code sent", nil)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.authUC.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User registered", result)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	pair, err := h.authUC.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Logged in", pair)
}

func (h *UserHandler) PasswordResetToken(c *gin.Context) {
	var req domain.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, err := h.authUC.VerifyOTPForPasswordReset(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Reset token issued", gin.H{"reset_token": token})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	var req domain.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.ResetPassword(c.Request.Context(), userID, &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated", nil)
}

func (h *UserHandler) RefreshToken(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	pair, err := h.authUC.RefreshTokens(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tokens refreshed", pair)
}

func (h *UserHandler) CreateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	var req domain.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.CreateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Profile created", user)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	populate := domain.UserPopulate{
		City:      c.Query("populate_city") == "true",
		Direction: c.Query("populate_direction") == "true",
		Skills:    c.Query("populate_skills") == "true",
	}

	user, err := h.userUC.GetProfile(c.Request.Context(), userID, populate)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", user)
}
