package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vivario/reservation-service/internal/dto"
	"github.com/vivario/reservation-service/internal/i18n"
	"github.com/vivario/reservation-service/internal/normalize"
	"github.com/vivario/reservation-service/internal/service"
	"github.com/vivario/reservation-service/pkg/cep"
)

type AddressHandler struct {
	svc        *service.AddressService
	translator *i18n.Translator
}

func NewAddressHandler(svc *service.AddressService, translator *i18n.Translator) *AddressHandler {
	return &AddressHandler{svc: svc, translator: translator}
}

func (h *AddressHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/address/:code", h.Lookup)
}

// Lookup resolves a postal code for address autofill. The session id ties
// the request to the wizard session's stale-response protection.
func (h *AddressHandler) Lookup(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session_id is required")
	}

	addr, err := h.svc.Resolve(c.Request().Context(), sessionID, c.Param("code"))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidPostalCode):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStaleLookup):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, cep.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, h.translator.T("address.not_found", nil))
	default:
		// the wizard fails silently on lookup problems; surface the cause for the log only
		return echo.NewHTTPError(http.StatusBadGateway, "postal code lookup unavailable")
	}

	return c.JSON(http.StatusOK, dto.AddressResponse{
		AddressLine: addr.AddressLine,
		City:        addr.City,
		State:       addr.State,
		PostalCode:  normalize.MaskPostalCode(c.Param("code")),
	})
}
