package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skills-platform-backend/internal/delivery/http/response"
	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"
)

type LocationHandler struct {
	locationUC domain.LocationUsecase
}

func NewLocationHandler(public *gin.RouterGroup, protected *gin.RouterGroup, locationUC domain.LocationUsecase) {
	handler := &LocationHandler{locationUC: locationUC}

	publicGroup := public.Group("/locations")
	{
		publicGroup.GET("/countries", handler.ListCountries)
		publicGroup.GET("/countries/:id/cities", handler.ListCities)
	}

	protectedGroup := protected.Group("/locations")
	{
		protectedGroup.POST("/countries", handler.CreateCountry)
		protectedGroup.POST("/cities", handler.CreateCity)
	}
}

func (h *LocationHandler) ListCountries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	result, err := h.locationUC.ListCountries(c.Request.Context(), page, perPage)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Countries", result)
}

func (h *LocationHandler) ListCities(c *gin.Context) {
	countryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid country id"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	result, err := h.locationUC.ListCitiesByCountry(c.Request.Context(), countryID, page, perPage)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Cities", result)
}

func (h *LocationHandler) CreateCountry(c *gin.Context) {
	var req domain.CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	country, err := h.locationUC.CreateCountry(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Country created", country)
}

func (h *LocationHandler) CreateCity(c *gin.Context) {
	var req domain.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	city, err := h.locationUC.CreateCity(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "City created", city)
}
