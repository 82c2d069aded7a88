package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skills-platform-backend/internal/delivery/http/response"
	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"
)

type DirectionHandler struct {
	directionUC domain.DirectionUsecase
}

func NewDirectionHandler(public *gin.RouterGroup, protected *gin.RouterGroup, directionUC domain.DirectionUsecase) {
	handler := &DirectionHandler{directionUC: directionUC}

	publicGroup := public.Group("/directions")
	{
		publicGroup.GET("/autocomplete", handler.Autocomplete)
		publicGroup.GET("/:id", handler.GetByID)
	}

	protectedGroup := protected.Group("/directions")
	{
		protectedGroup.POST("/ai-directions", handler.AIDirections)
		protectedGroup.POST("", handler.Create)
		protectedGroup.DELETE("/:id", handler.Delete)
	}
}

func (h *DirectionHandler) AIDirections(c *gin.Context) {
	var req domain.AIDirectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	salaries, err := h.directionUC.GetAIDirections(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "AI direction suggestions", salaries)
}

func (h *DirectionHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	result, err := h.directionUC.Autocomplete(c.Request.Context(), query, page, perPage)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Directions", result)
}

func (h *DirectionHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid direction id"))
		return
	}

	direction, err := h.directionUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Direction", direction)
}

func (h *DirectionHandler) Create(c *gin.Context) {
	var req domain.CreateDirectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	direction, err := h.directionUC.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Direction created", direction)
}

func (h *DirectionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid direction id"))
		return
	}

	if err := h.directionUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Direction deleted", nil)
}
