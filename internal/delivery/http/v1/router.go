package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skills-platform-backend/config"
	"skills-platform-backend/internal/delivery/http/middleware"
	"skills-platform-backend/internal/delivery/http/response"
	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/auth"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	UserUC      domain.UserUsecase
	DirectionUC domain.DirectionUsecase
	SkillUC     domain.SkillUsecase
	LocationUC  domain.LocationUsecase
	Tokens      *auth.Manager
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must be first
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, auth.TokenAccess))

	NewUserHandler(v1, deps.Tokens, deps.AuthUC, deps.UserUC)
	NewDirectionHandler(v1, protected, deps.DirectionUC)
	NewSkillHandler(v1, protected, deps.SkillUC)
	NewLocationHandler(v1, protected, deps.LocationUC)

	return r
}
