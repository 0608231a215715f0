package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vivario/reservation-service/internal/dto"
	"github.com/vivario/reservation-service/internal/i18n"
	"github.com/vivario/reservation-service/internal/wizard"
)

// NewErrorHandler builds the central echo error handler. Gate refusals from
// the wizard core carry message keys and structured params; everything
// user-facing is translated here, at the very edge.
func NewErrorHandler(translator *i18n.Translator) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var gateErr *wizard.GateError
		if errors.As(err, &gateErr) {
			_ = c.JSON(http.StatusUnprocessableEntity, gateErrorResponse(gateErr, translator))
			return
		}

		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}

		_ = c.JSON(code, dto.ErrorResponse{Message: msg})
	}
}

// gateErrorResponse renders exactly one aggregated notification per refused
// action: the first offending participant and their first issue, or the
// first deficient experience.
func gateErrorResponse(gateErr *wizard.GateError, translator *i18n.Translator) dto.ErrorResponse {
	params := i18n.Params{}
	if gateErr.Index > 0 {
		params["index"] = gateErr.Index
		params["message"] = translator.T(gateErr.IssueKey, nil)
	}
	if gateErr.Experience != "" {
		params["experience"] = gateErr.Experience
	}

	return dto.ErrorResponse{
		Message:          translator.T(gateErr.Key, params),
		Step:             string(gateErr.Step),
		ParticipantIndex: gateErr.Index,
		Experience:       gateErr.Experience,
	}
}
