// Package wizard holds the reservation wizard's domain core: the in-session
// draft, participant validation, the two-step state machine, the capacity
// reconciliation check, and the submission payload assembler. The package
// has no transport, storage, or framework imports, so every rule is testable
// with plain values.
package wizard

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderFemale      Gender = "FEMALE"
	GenderMale        Gender = "MALE"
	GenderOther       Gender = "OTHER"
	GenderNotInformed Gender = "NOT_INFORMED"
)

// Known reports membership in the closed gender set.
func (g Gender) Known() bool {
	switch g {
	case GenderFemale, GenderMale, GenderOther, GenderNotInformed:
		return true
	}
	return false
}

const (
	// MaxCapacityPerField caps the men/women counters of one adjustment.
	MaxCapacityPerField = 1000
)

var (
	ErrLastParticipant     = errors.New("cannot remove the last participant row")
	ErrParticipantNotFound = errors.New("participant not found in draft")
)

// ParticipantDraft is one editable row of the People step. Fields hold raw
// user input (display-masked phone/ID, either date format); the canonical
// forms are derived on demand, never stored here.
type ParticipantDraft struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date"`
	NationalID string `json:"national_id"`
	Gender     string `json:"gender"`
}

// ParticipantPatch updates individual fields of a row; nil means unchanged.
type ParticipantPatch struct {
	Name       *string
	Phone      *string
	BirthDate  *string
	NationalID *string
	Gender     *string
}

type DateRange struct {
	From string `json:"from"` // ISO date or empty
	To   string `json:"to"`
}

// ExperienceAdjustment is the per-experience capacity entry of the
// Experiences step, keyed by ExperienceID.
type ExperienceAdjustment struct {
	ExperienceID uint      `json:"experience_id"`
	Men          int       `json:"men"`
	Women        int       `json:"women"`
	DateRange    DateRange `json:"date_range"`
	SavedAt      time.Time `json:"saved_at"`
}

type Step string

const (
	StepPeople      Step = "people"
	StepExperiences Step = "experiences"
)

// CartItem is the wizard's read-only view of one experience in the cart.
type CartItem struct {
	ExperienceID uint
	Name         string
	StartDate    *time.Time
	EndDate      *time.Time
}

// ReservationDraft is the whole-wizard aggregate for one session. It lives
// only in the session store for the duration of the wizard and is reset on
// successful submission.
type ReservationDraft struct {
	SessionID             string                 `json:"session_id"`
	Step                  Step                   `json:"step"`
	Participants          []ParticipantDraft     `json:"participants"`
	AllowPostConfirmation bool                   `json:"allow_post_confirmation"`
	Notes                 string                 `json:"notes"`
	Adjustments           []ExperienceAdjustment `json:"adjustments"`
}

// NewDraft creates the initial draft: People step, one empty row.
func NewDraft(sessionID string) *ReservationDraft {
	return &ReservationDraft{
		SessionID:    sessionID,
		Step:         StepPeople,
		Participants: []ParticipantDraft{{ID: uuid.NewString()}},
	}
}

// Reset returns the draft to its initial lifecycle state, keeping the
// session identity.
func (d *ReservationDraft) Reset() {
	d.Step = StepPeople
	d.Participants = []ParticipantDraft{{ID: uuid.NewString()}}
	d.AllowPostConfirmation = false
	d.Notes = ""
	d.Adjustments = nil
}

// AddParticipant appends an empty row and returns it.
func (d *ReservationDraft) AddParticipant() ParticipantDraft {
	p := ParticipantDraft{ID: uuid.NewString()}
	d.Participants = append(d.Participants, p)
	return p
}

// UpdateParticipant applies a patch to the row with the given id. The row's
// id itself is never regenerated.
func (d *ReservationDraft) UpdateParticipant(id string, patch ParticipantPatch) error {
	for i := range d.Participants {
		if d.Participants[i].ID != id {
			continue
		}
		p := &d.Participants[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Phone != nil {
			p.Phone = *patch.Phone
		}
		if patch.BirthDate != nil {
			p.BirthDate = *patch.BirthDate
		}
		if patch.NationalID != nil {
			p.NationalID = *patch.NationalID
		}
		if patch.Gender != nil {
			p.Gender = *patch.Gender
		}
		return nil
	}
	return ErrParticipantNotFound
}

// RemoveParticipant deletes the row with the given id. The last remaining
// row cannot be removed; the wizard always shows at least one.
func (d *ReservationDraft) RemoveParticipant(id string) error {
	if len(d.Participants) <= 1 {
		return ErrLastParticipant
	}
	for i := range d.Participants {
		if d.Participants[i].ID == id {
			d.Participants = append(d.Participants[:i], d.Participants[i+1:]...)
			return nil
		}
	}
	return ErrParticipantNotFound
}

// SetAdjustment upserts the capacity entry for an experience. Counters are
// clamped into [0, MaxCapacityPerField].
func (d *ReservationDraft) SetAdjustment(experienceID uint, men, women int, dateRange DateRange) ExperienceAdjustment {
	adj := ExperienceAdjustment{
		ExperienceID: experienceID,
		Men:          clampCapacity(men),
		Women:        clampCapacity(women),
		DateRange:    dateRange,
		SavedAt:      time.Now(),
	}
	for i := range d.Adjustments {
		if d.Adjustments[i].ExperienceID == experienceID {
			d.Adjustments[i] = adj
			return adj
		}
	}
	d.Adjustments = append(d.Adjustments, adj)
	return adj
}

// AdjustmentFor returns the capacity entry for an experience, if any.
func (d *ReservationDraft) AdjustmentFor(experienceID uint) (ExperienceAdjustment, bool) {
	for _, a := range d.Adjustments {
		if a.ExperienceID == experienceID {
			return a, true
		}
	}
	return ExperienceAdjustment{}, false
}

// PruneAdjustments drops entries whose experience is no longer in the cart.
// Called on every cart mutation so reconciliation never sees stale entries.
func (d *ReservationDraft) PruneAdjustments(cart []CartItem) {
	inCart := make(map[uint]bool, len(cart))
	for _, item := range cart {
		inCart[item.ExperienceID] = true
	}
	kept := d.Adjustments[:0]
	for _, a := range d.Adjustments {
		if inCart[a.ExperienceID] {
			kept = append(kept, a)
		}
	}
	d.Adjustments = kept
}

func clampCapacity(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxCapacityPerField {
		return MaxCapacityPerField
	}
	return n
}
