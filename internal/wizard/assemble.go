package wizard

import (
	"strings"
	"time"

	"github.com/vivario/reservation-service/internal/normalize"
)

// ReservationLine is one outbound reservation entry per cart experience.
// Field names are part of the contract with the submission endpoint.
type ReservationLine struct {
	ExperienceID uint   `json:"experienceId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	MembersCount int    `json:"membersCount"`
	Men          int    `json:"men"`
	Women        int    `json:"women"`
}

// PayloadParticipant is the normalized projection of a valid row: masked
// phone and national ID, ISO birth date.
type PayloadParticipant struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birthDate"`
	NationalID string `json:"nationalId"`
	Gender     string `json:"gender"`
}

// Payload is the assembled submission for one wizard session.
type Payload struct {
	Lines                 []ReservationLine    `json:"reservations"`
	Participants          []PayloadParticipant `json:"participants"`
	Notes                 string               `json:"notes"`
	AllowPostConfirmation bool                 `json:"allowPostConfirmation"`
}

// BuildSubmission re-validates the whole draft and projects it into the
// outbound payload. Prior gate results are not trusted, the draft may have
// changed since they were computed.
func (m Machine) BuildSubmission(d *ReservationDraft, cart []CartItem) (*Payload, error) {
	if err := m.FinishGate(d, cart); err != nil {
		return nil, err
	}

	payload := &Payload{
		Notes:                 d.Notes,
		AllowPostConfirmation: d.AllowPostConfirmation,
		Lines:                 make([]ReservationLine, 0, len(cart)),
	}

	for _, item := range cart {
		// adjustment presence is guaranteed by FinishGate
		adj, _ := d.AdjustmentFor(item.ExperienceID)

		start := resolveDate(adj.DateRange.From, item.StartDate)
		end := resolveDate(adj.DateRange.To, item.EndDate)
		if start == "" || end == "" {
			return nil, &GateError{Step: StepExperiences, Key: KeyMissingDates, Experience: item.Name}
		}

		payload.Lines = append(payload.Lines, ReservationLine{
			ExperienceID: item.ExperienceID,
			StartDate:    start,
			EndDate:      end,
			MembersCount: adj.Men + adj.Women,
			Men:          adj.Men,
			Women:        adj.Women,
		})
	}

	if !d.AllowPostConfirmation {
		payload.Participants = make([]PayloadParticipant, 0, len(d.Participants))
		for _, p := range d.Participants {
			payload.Participants = append(payload.Participants, PayloadParticipant{
				Name:       strings.TrimSpace(p.Name),
				Phone:      normalize.MaskPhone(p.Phone),
				BirthDate:  normalize.ToISOIfPossible(p.BirthDate),
				NationalID: normalize.MaskNationalID(p.NationalID),
				Gender:     strings.TrimSpace(p.Gender),
			})
		}
	}

	return payload, nil
}

// resolveDate prefers the adjustment's range over the catalog date. Unlike
// birth dates, reservation dates may lie in future years, so only the ISO
// shape is checked here.
func resolveDate(adjusted string, fallback *time.Time) string {
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(adjusted)); err == nil {
		return t.Format("2006-01-02")
	}
	if fallback != nil && !fallback.IsZero() {
		return fallback.Format("2006-01-02")
	}
	return ""
}
