package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/vivario/reservation-service/internal/dto"
	"github.com/vivario/reservation-service/internal/models"
	"github.com/vivario/reservation-service/internal/service"
)

type CatalogHandler struct {
	svc      service.CatalogService
	validate *validator.Validate
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc, validate: validator.New()}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	experiences := e.Group("/api/v1/experiences")
	experiences.GET("", h.ListExperiences)
	experiences.GET("/:id", h.GetExperience)

	// admin surface
	experiences.POST("", h.CreateExperience)
	experiences.PUT("/:id", h.UpdateExperience)
}

func (h *CatalogHandler) ListExperiences(c echo.Context) error {
	onlyActive := c.QueryParam("active") != "false"
	experiences, err := h.svc.ListExperiences(c.Request().Context(), onlyActive)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ExperienceResponse, len(experiences))
	for i, e := range experiences {
		resp[i] = dto.ToExperienceResponse(&e)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) GetExperience(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}

	experience, err := h.svc.GetExperience(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "experience not found")
	}
	return c.JSON(http.StatusOK, dto.ToExperienceResponse(experience))
}

func (h *CatalogHandler) CreateExperience(c echo.Context) error {
	return h.saveExperience(c, 0)
}

func (h *CatalogHandler) UpdateExperience(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}
	return h.saveExperience(c, uint(id))
}

func (h *CatalogHandler) saveExperience(c echo.Context, id uint) error {
	var req dto.UpsertExperienceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	experience := &models.Experience{
		ID:        id,
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ImageURL:  req.ImageURL,
		Active:    active,
	}
	if err := h.svc.SaveExperience(c.Request().Context(), experience); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	return c.JSON(status, dto.ToExperienceResponse(experience))
}
