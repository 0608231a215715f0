package cep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/91501970/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"logradouro":"Av. Bento Gonçalves","localidade":"Porto Alegre","uf":"RS"}`))
	}))
	defer srv.Close()

	addr, err := NewClient(srv.URL).Lookup(context.Background(), "91501970")
	require.NoError(t, err)
	assert.Equal(t, "Av. Bento Gonçalves", addr.AddressLine)
	assert.Equal(t, "Porto Alegre", addr.City)
	assert.Equal(t, "RS", addr.State)
}

func TestLookup_ProviderErroBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Lookup(context.Background(), "00000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Lookup(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrNotFound)
}
