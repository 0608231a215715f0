package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivario/reservation-service/internal/dto"
	"github.com/vivario/reservation-service/internal/i18n"
	"github.com/vivario/reservation-service/internal/wizard"
)

func render(t *testing.T, err error, locale string) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewErrorHandler(i18n.New(locale))
	handler(err, c)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestErrorHandler_ParticipantGateError(t *testing.T) {
	rec, resp := render(t, &wizard.GateError{
		Step:     wizard.StepPeople,
		Key:      wizard.KeyParticipantInvalid,
		Index:    2,
		IssueKey: wizard.IssueNationalIDInvalid,
	}, "en")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Participant 2: National ID is invalid", resp.Message)
	assert.Equal(t, string(wizard.StepPeople), resp.Step)
	assert.Equal(t, 2, resp.ParticipantIndex)
}

func TestErrorHandler_CapacityGateError_Portuguese(t *testing.T) {
	rec, resp := render(t, &wizard.GateError{
		Step:       wizard.StepExperiences,
		Key:        wizard.KeyCapacityShort,
		Experience: "Trilha Noturna",
	}, "pt")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Quantidade de participantes insuficiente para a experiência Trilha Noturna", resp.Message)
	assert.Equal(t, "Trilha Noturna", resp.Experience)
}

func TestErrorHandler_HTTPErrorPassthrough(t *testing.T) {
	rec, resp := render(t, echo.NewHTTPError(http.StatusNotFound, "session not found"), "en")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "session not found", resp.Message)
}

func TestErrorHandler_UnknownErrorIs500(t *testing.T) {
	rec, _ := render(t, assert.AnError, "en")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
