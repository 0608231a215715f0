package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivario/reservation-service/internal/dto"
	"github.com/vivario/reservation-service/internal/i18n"
	"github.com/vivario/reservation-service/internal/service"
	"github.com/vivario/reservation-service/pkg/cep"
)

type staticLookup struct {
	addr *cep.Address
	err  error
}

func (s *staticLookup) Lookup(ctx context.Context, code string) (*cep.Address, error) {
	return s.addr, s.err
}

func lookupRequest(t *testing.T, h *AddressHandler, code, sessionID string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	target := "/api/v1/address/" + code
	if sessionID != "" {
		target += "?session_id=" + sessionID
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("code")
	c.SetParamValues(code)

	return rec, h.Lookup(c)
}

func TestLookup_Handler_Success(t *testing.T) {
	svc := service.NewAddressService(&staticLookup{
		addr: &cep.Address{AddressLine: "Av. Bento Gonçalves", City: "Porto Alegre", State: "RS"},
	})
	h := NewAddressHandler(svc, i18n.New("en"))

	rec, err := lookupRequest(t, h, "91501970", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AddressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Porto Alegre", resp.City)
	assert.Equal(t, "91501-970", resp.PostalCode)
}

func TestLookup_Handler_RequiresSessionID(t *testing.T) {
	h := NewAddressHandler(service.NewAddressService(&staticLookup{}), i18n.New("en"))

	_, err := lookupRequest(t, h, "91501970", "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestLookup_Handler_NotFoundIsTranslated(t *testing.T) {
	svc := service.NewAddressService(&staticLookup{err: cep.ErrNotFound})
	h := NewAddressHandler(svc, i18n.New("pt"))

	_, err := lookupRequest(t, h, "00000000", "sess-1")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, "CEP não encontrado", he.Message)
}

func TestLookup_Handler_ShortCodeRejected(t *testing.T) {
	h := NewAddressHandler(service.NewAddressService(&staticLookup{}), i18n.New("en"))

	_, err := lookupRequest(t, h, "915", "sess-1")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
