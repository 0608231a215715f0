package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vivario/reservation-service/internal/models"
	"github.com/vivario/reservation-service/internal/repository"
	"github.com/vivario/reservation-service/internal/session"
	"github.com/vivario/reservation-service/internal/wizard"
	"github.com/vivario/reservation-service/pkg/rabbitmq"
)

var (
	ErrSessionNotFound     = errors.New("wizard session not found")
	ErrExperienceNotFound  = errors.New("experience not found")
	ErrExperienceNotInCart = errors.New("experience is not in the cart")
	ErrEmptyCart           = errors.New("cart is empty")
)

// WizardService owns every wizard session operation: the draft lifecycle,
// the cart, step transitions and the final submission.
type WizardService interface {
	StartSession(ctx context.Context) (*wizard.ReservationDraft, error)
	GetDraft(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error)

	AddParticipant(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error)
	UpdateParticipant(ctx context.Context, sessionID, participantID string, patch wizard.ParticipantPatch) (*wizard.ReservationDraft, error)
	RemoveParticipant(ctx context.Context, sessionID, participantID string) (*wizard.ReservationDraft, error)
	SetNotes(ctx context.Context, sessionID, notes string) (*wizard.ReservationDraft, error)
	ToggleDeferral(ctx context.Context, sessionID string, enabled bool) (*wizard.ReservationDraft, error)

	Next(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error)
	Back(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error)

	CartItems(ctx context.Context, sessionID string) ([]wizard.CartItem, error)
	AddToCart(ctx context.Context, sessionID string, experienceID uint) error
	RemoveFromCart(ctx context.Context, sessionID string, experienceID uint) error
	SetAdjustment(ctx context.Context, sessionID string, experienceID uint, men, women int, dateRange wizard.DateRange) (*wizard.ReservationDraft, error)

	Finish(ctx context.Context, sessionID string) (*models.Reservation, error)
}

type wizardService struct {
	machine         wizard.Machine
	drafts          session.DraftStore
	carts           session.CartStore
	experienceRepo  repository.ExperienceRepository
	reservationRepo repository.ReservationRepository
	publisher       *rabbitmq.Publisher
}

func NewWizardService(
	machine wizard.Machine,
	drafts session.DraftStore,
	carts session.CartStore,
	experienceRepo repository.ExperienceRepository,
	reservationRepo repository.ReservationRepository,
	publisher *rabbitmq.Publisher,
) WizardService {
	return &wizardService{
		machine:         machine,
		drafts:          drafts,
		carts:           carts,
		experienceRepo:  experienceRepo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
	}
}

func (s *wizardService) StartSession(ctx context.Context) (*wizard.ReservationDraft, error) {
	draft := wizard.NewDraft(uuid.NewString())
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *wizardService) GetDraft(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error) {
	draft, err := s.drafts.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return draft, err
}

// mutate loads the draft, applies fn and saves the result. fn returning an
// error leaves the stored draft untouched.
func (s *wizardService) mutate(ctx context.Context, sessionID string, fn func(d *wizard.ReservationDraft) error) (*wizard.ReservationDraft, error) {
	draft, err := s.GetDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *wizardService) AddParticipant(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error) {
	return s.mutate(ctx, sessionID, func(d *wizard.ReservationDraft) error {
		d.AddParticipant()
		return nil
	})
}

func (s *wizardService) UpdateParticipant(ctx context.Context, sessionID, participantID string, patch wizard.ParticipantPatch) (*wizard.ReservationDraft, error) {
	return s.mutate(ctx, sessionID, func(d *wizard.ReservationDraft) error {
		return d.UpdateParticipant(participantID, patch)
	})
}

func (s *wizardService) RemoveParticipant(ctx context.Context, sessionID, participantID string) (*wizard.ReservationDraft, error) {
	return s.mutate(ctx, sessionID, func(d *wizard.ReservationDraft) error {
		return d.RemoveParticipant(participantID)
	})
}

func (s *wizardService) SetNotes(ctx context.Context, sessionID, notes string) (*wizard.ReservationDraft, error) {
	return s.mutate(ctx, sessionID, func(d *wizard.ReservationDraft) error {
		d.Notes = notes
		return nil
	})
}

func (s *wizardService) ToggleDeferral(ctx context.Context, sessionID string, enabled bool) (*wizard.ReservationDraft, error) {
	return s.mutate(ctx, sessionID, func(d *wizard.ReservationDraft) error {
		return s.machine.ToggleDeferral(d, enabled)
	})
}

func (s *wizardService) Next(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error) {
	return s.mutate(ctx, sessionID, func(d *wizard.ReservationDraft) error {
		return s.machine.Next(d)
	})
}

func (s *wizardService) Back(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error) {
	return s.mutate(ctx, sessionID, func(d *wizard.ReservationDraft) error {
		s.machine.Back(d)
		return nil
	})
}

// CartItems resolves the session's cart ids against the catalog, preserving
// the order the visitor added them in.
func (s *wizardService) CartItems(ctx context.Context, sessionID string) ([]wizard.CartItem, error) {
	ids, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	experiences, err := s.experienceRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Experience, len(experiences))
	for _, e := range experiences {
		byID[e.ID] = e
	}

	items := make([]wizard.CartItem, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			continue // removed from the catalog since it was added
		}
		items = append(items, wizard.CartItem{
			ExperienceID: e.ID,
			Name:         e.Name,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
		})
	}
	return items, nil
}

func (s *wizardService) AddToCart(ctx context.Context, sessionID string, experienceID uint) error {
	if _, err := s.experienceRepo.FindByID(ctx, experienceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExperienceNotFound
		}
		return err
	}
	return s.carts.Add(ctx, sessionID, experienceID)
}

// RemoveFromCart drops the item and immediately prunes its adjustment from
// the draft, so reconciliation never sees an entry for a gone item.
func (s *wizardService) RemoveFromCart(ctx context.Context, sessionID string, experienceID uint) error {
	if err := s.carts.Remove(ctx, sessionID, experienceID); err != nil {
		return err
	}

	items, err := s.CartItems(ctx, sessionID)
	if err != nil {
		return err
	}
	_, err = s.mutate(ctx, sessionID, func(d *wizard.ReservationDraft) error {
		d.PruneAdjustments(items)
		return nil
	})
	if errors.Is(err, ErrSessionNotFound) {
		return nil // cart without a draft session, nothing to prune
	}
	return err
}

func (s *wizardService) SetAdjustment(ctx context.Context, sessionID string, experienceID uint, men, women int, dateRange wizard.DateRange) (*wizard.ReservationDraft, error) {
	items, err := s.CartItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	inCart := false
	for _, item := range items {
		if item.ExperienceID == experienceID {
			inCart = true
			break
		}
	}
	if !inCart {
		return nil, ErrExperienceNotInCart
	}

	return s.mutate(ctx, sessionID, func(d *wizard.ReservationDraft) error {
		d.SetAdjustment(experienceID, men, women, dateRange)
		d.PruneAdjustments(items)
		return nil
	})
}

// Finish re-validates the whole draft, persists the reservation with its
// items and participants in one transaction, announces it, clears the cart
// and resets the draft. On any failure the draft and cart are left exactly
// as they were.
func (s *wizardService) Finish(ctx context.Context, sessionID string) (*models.Reservation, error) {
	draft, err := s.GetDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := s.CartItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	draft.PruneAdjustments(items)

	payload, err := s.machine.BuildSubmission(draft, items)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		SessionID:             sessionID,
		Status:                models.StatusPending,
		Notes:                 payload.Notes,
		AllowPostConfirmation: payload.AllowPostConfirmation,
	}
	for _, line := range payload.Lines {
		reservation.Items = append(reservation.Items, models.ReservationItem{
			ExperienceID: line.ExperienceID,
			StartDate:    line.StartDate,
			EndDate:      line.EndDate,
			MembersCount: line.MembersCount,
			Men:          line.Men,
			Women:        line.Women,
		})
	}
	for _, p := range payload.Participants {
		reservation.Participants = append(reservation.Participants, models.Participant{
			Name:       p.Name,
			Phone:      p.Phone,
			BirthDate:  p.BirthDate,
			NationalID: p.NationalID,
			Gender:     p.Gender,
		})
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	// Announce after commit so consumers never see an uncommitted reservation
	if s.publisher != nil {
		if pubErr := s.publisher.Publish("reservation.submitted", reservation); pubErr != nil {
			log.Printf("[WizardService] failed to publish reservation %d: %v", reservation.ID, pubErr)
		}
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("[WizardService] failed to clear cart for session %s: %v", sessionID, err)
	}
	draft.Reset()
	if err := s.drafts.Save(ctx, draft); err != nil {
		log.Printf("[WizardService] failed to reset draft for session %s: %v", sessionID, err)
	}

	return reservation, nil
}
