package service

import (
	"context"
	"errors"
	"sync"

	"github.com/vivario/reservation-service/internal/normalize"
	"github.com/vivario/reservation-service/pkg/cep"
)

var (
	ErrInvalidPostalCode = errors.New("postal code must have 8 digits")
	ErrStaleLookup       = errors.New("a newer postal code lookup superseded this one")
)

// AddressLookup is the external postal-code collaborator.
type AddressLookup interface {
	Lookup(ctx context.Context, postalCode string) (*cep.Address, error)
}

// AddressService resolves postal codes for the wizard's address autofill.
// Each session holds a monotonically increasing request token; a response
// whose token is no longer the latest is discarded, so a slow lookup can
// never overwrite input typed after a newer one was fired.
type AddressService struct {
	lookup AddressLookup

	mu     sync.Mutex
	latest map[string]uint64
}

func NewAddressService(lookup AddressLookup) *AddressService {
	return &AddressService{
		lookup: lookup,
		latest: make(map[string]uint64),
	}
}

// Resolve normalizes raw postal-code input and queries the provider.
// Returns cep.ErrNotFound for unknown codes and ErrStaleLookup when a newer
// request for the same session started meanwhile.
func (s *AddressService) Resolve(ctx context.Context, sessionID, raw string) (*cep.Address, error) {
	code := normalize.DigitsOnly(raw)
	if len(code) != 8 {
		return nil, ErrInvalidPostalCode
	}

	s.mu.Lock()
	s.latest[sessionID]++
	token := s.latest[sessionID]
	s.mu.Unlock()

	addr, err := s.lookup.Lookup(ctx, code)

	s.mu.Lock()
	current := s.latest[sessionID]
	s.mu.Unlock()
	if token != current {
		return nil, ErrStaleLookup
	}

	if err != nil {
		return nil, err
	}
	return addr, nil
}

// Forget drops the session's token bookkeeping, e.g. when the session ends.
func (s *AddressService) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.latest, sessionID)
	s.mu.Unlock()
}
