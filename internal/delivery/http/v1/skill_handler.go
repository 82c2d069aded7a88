package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skills-platform-backend/internal/delivery/http/response"
	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"
)

type SkillHandler struct {
	skillUC domain.SkillUsecase
}

func NewSkillHandler(public *gin.RouterGroup, protected *gin.RouterGroup, skillUC domain.SkillUsecase) {
	handler := &SkillHandler{skillUC: skillUC}

	publicGroup := public.Group("/skill")
	{
		publicGroup.GET("/autocomplete", handler.Autocomplete)
		publicGroup.GET("/:id", handler.GetByID)
	}

	protectedGroup := protected.Group("/skill")
	{
		protectedGroup.POST("", handler.Create)
		protectedGroup.DELETE("/:id", handler.Delete)
	}
}

func (h *SkillHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	result, err := h.skillUC.Autocomplete(c.Request.Context(), query, page, perPage)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills", result)
}

func (h *SkillHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid skill id"))
		return
	}

	skill, err := h.skillUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill", skill)
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req domain.CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	skill, err := h.skillUC.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skill created", skill)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid skill id"))
		return
	}

	if err := h.skillUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill deleted", nil)
}
