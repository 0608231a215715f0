package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/vivario/reservation-service/internal/dto"
	"github.com/vivario/reservation-service/internal/i18n"
	"github.com/vivario/reservation-service/internal/service"
	"github.com/vivario/reservation-service/internal/wizard"
)

type WizardHandler struct {
	svc        service.WizardService
	validator  wizard.Validator
	validate   *validator.Validate
	translator *i18n.Translator
}

func NewWizardHandler(svc service.WizardService, v wizard.Validator, translator *i18n.Translator) *WizardHandler {
	return &WizardHandler{
		svc:        svc,
		validator:  v,
		validate:   validator.New(),
		translator: translator,
	}
}

func (h *WizardHandler) RegisterRoutes(e *echo.Echo) {
	sessions := e.Group("/api/v1/wizard/sessions")
	sessions.POST("", h.StartSession)
	sessions.GET("/:sid", h.GetDraft)

	sessions.POST("/:sid/participants", h.AddParticipant)
	sessions.PATCH("/:sid/participants/:pid", h.UpdateParticipant)
	sessions.DELETE("/:sid/participants/:pid", h.RemoveParticipant)

	sessions.PUT("/:sid/deferral", h.ToggleDeferral)
	sessions.PUT("/:sid/notes", h.SetNotes)

	sessions.POST("/:sid/next", h.Next)
	sessions.POST("/:sid/back", h.Back)

	sessions.GET("/:sid/cart", h.GetCart)
	sessions.POST("/:sid/cart", h.AddToCart)
	sessions.DELETE("/:sid/cart/:experienceId", h.RemoveFromCart)
	sessions.PUT("/:sid/adjustments/:experienceId", h.SetAdjustment)

	sessions.POST("/:sid/finish", h.Finish)
}

func (h *WizardHandler) StartSession(c echo.Context) error {
	draft, err := h.svc.StartSession(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) GetDraft(c echo.Context) error {
	draft, err := h.svc.GetDraft(c.Request().Context(), c.Param("sid"))
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) AddParticipant(c echo.Context) error {
	draft, err := h.svc.AddParticipant(c.Request().Context(), c.Param("sid"))
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) UpdateParticipant(c echo.Context) error {
	var req dto.UpdateParticipantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	patch := wizard.ParticipantPatch{
		Name:       req.Name,
		Phone:      req.Phone,
		BirthDate:  req.BirthDate,
		NationalID: req.NationalID,
		Gender:     req.Gender,
	}
	draft, err := h.svc.UpdateParticipant(c.Request().Context(), c.Param("sid"), c.Param("pid"), patch)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) RemoveParticipant(c echo.Context) error {
	draft, err := h.svc.RemoveParticipant(c.Request().Context(), c.Param("sid"), c.Param("pid"))
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) ToggleDeferral(c echo.Context) error {
	var req dto.ToggleDeferralRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	draft, err := h.svc.ToggleDeferral(c.Request().Context(), c.Param("sid"), req.Enabled)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) SetNotes(c echo.Context) error {
	var req dto.SetNotesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	draft, err := h.svc.SetNotes(c.Request().Context(), c.Param("sid"), req.Notes)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) Next(c echo.Context) error {
	draft, err := h.svc.Next(c.Request().Context(), c.Param("sid"))
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) Back(c echo.Context) error {
	draft, err := h.svc.Back(c.Request().Context(), c.Param("sid"))
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) GetCart(c echo.Context) error {
	items, err := h.svc.CartItems(c.Request().Context(), c.Param("sid"))
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WizardHandler) AddToCart(c echo.Context) error {
	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.AddToCart(c.Request().Context(), c.Param("sid"), req.ExperienceID); err != nil {
		return h.mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WizardHandler) RemoveFromCart(c echo.Context) error {
	experienceID, err := strconv.ParseUint(c.Param("experienceId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}

	if err := h.svc.RemoveFromCart(c.Request().Context(), c.Param("sid"), uint(experienceID)); err != nil {
		return h.mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WizardHandler) SetAdjustment(c echo.Context) error {
	experienceID, err := strconv.ParseUint(c.Param("experienceId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}

	var req dto.SetAdjustmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	draft, err := h.svc.SetAdjustment(
		c.Request().Context(),
		c.Param("sid"),
		uint(experienceID),
		req.Men,
		req.Women,
		wizard.DateRange{From: req.From, To: req.To},
	)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft, h.validator))
}

func (h *WizardHandler) Finish(c echo.Context) error {
	reservation, err := h.svc.Finish(c.Request().Context(), c.Param("sid"))
	if err != nil {
		return h.mapError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":     h.translator.T("reservation.submitted", nil),
		"reservation": dto.ToReservationResponse(reservation),
	})
}

// mapError translates service sentinels into HTTP errors. Gate errors pass
// through untouched so the central error handler can render them.
func (h *WizardHandler) mapError(err error) error {
	var gateErr *wizard.GateError
	if errors.As(err, &gateErr) {
		return err
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, wizard.ErrParticipantNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExperienceNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, wizard.ErrLastParticipant):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExperienceNotInCart):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
