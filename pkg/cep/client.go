// Package cep looks up Brazilian postal codes against a ViaCEP-compatible
// HTTP provider.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrNotFound = errors.New("postal code not found")

// Address is the subset of the provider response the wizard autofills from.
type Address struct {
	AddressLine string
	City        string
	State       string
}

type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup resolves a digits-only postal code. A provider "erro" body and a
// non-200 status both come back as ErrNotFound; the caller treats every
// failure as "no autofill".
func (c *Client) Lookup(ctx context.Context, postalCode string) (*Address, error) {
	url := fmt.Sprintf("%s/%s/json/", c.baseURL, postalCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNotFound
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.Erro {
		return nil, ErrNotFound
	}

	return &Address{
		AddressLine: body.Logradouro,
		City:        body.Localidade,
		State:       body.UF,
	}, nil
}
