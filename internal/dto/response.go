package dto

import (
	"time"

	"github.com/vivario/reservation-service/internal/models"
	"github.com/vivario/reservation-service/internal/normalize"
	"github.com/vivario/reservation-service/internal/wizard"
)

// ParticipantView is one draft row as shown to the user: display-masked
// phone and national ID, plus the row's current validation issue keys.
type ParticipantView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	BirthDate  string   `json:"birth_date"`
	NationalID string   `json:"national_id"`
	Gender     string   `json:"gender"`
	Started    bool     `json:"started"`
	Valid      bool     `json:"valid"`
	Issues     []string `json:"issues,omitempty"`
}

type AdjustmentView struct {
	ExperienceID uint      `json:"experience_id"`
	Men          int       `json:"men"`
	Women        int       `json:"women"`
	From         string    `json:"from,omitempty"`
	To           string    `json:"to,omitempty"`
	SavedAt      time.Time `json:"saved_at"`
}

// DraftResponse is the whole wizard session state for the client.
type DraftResponse struct {
	SessionID             string            `json:"session_id"`
	Step                  wizard.Step       `json:"step"`
	Participants          []ParticipantView `json:"participants"`
	AllowPostConfirmation bool              `json:"allow_post_confirmation"`
	Notes                 string            `json:"notes"`
	Adjustments           []AdjustmentView  `json:"adjustments"`
}

func ToDraftResponse(d *wizard.ReservationDraft, v wizard.Validator) DraftResponse {
	resp := DraftResponse{
		SessionID:             d.SessionID,
		Step:                  d.Step,
		AllowPostConfirmation: d.AllowPostConfirmation,
		Notes:                 d.Notes,
		Participants:          make([]ParticipantView, len(d.Participants)),
		Adjustments:           make([]AdjustmentView, len(d.Adjustments)),
	}
	for i, p := range d.Participants {
		resp.Participants[i] = ParticipantView{
			ID:         p.ID,
			Name:       p.Name,
			Phone:      normalize.MaskPhone(p.Phone),
			BirthDate:  p.BirthDate,
			NationalID: normalize.MaskNationalID(p.NationalID),
			Gender:     p.Gender,
			Started:    v.PersonStarted(p),
			Valid:      v.PersonValid(p),
			Issues:     v.PersonIssues(p),
		}
	}
	for i, a := range d.Adjustments {
		resp.Adjustments[i] = AdjustmentView{
			ExperienceID: a.ExperienceID,
			Men:          a.Men,
			Women:        a.Women,
			From:         a.DateRange.From,
			To:           a.DateRange.To,
			SavedAt:      a.SavedAt,
		}
	}
	return resp
}

type ExperienceResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Price     float64    `json:"price"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	ImageURL  string     `json:"image_url"`
	Active    bool       `json:"active"`
}

func ToExperienceResponse(e *models.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:        e.ID,
		Name:      e.Name,
		Category:  e.Category,
		Price:     e.Price,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		ImageURL:  e.ImageURL,
		Active:    e.Active,
	}
}

type ReservationItemResponse struct {
	ExperienceID uint   `json:"experience_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	MembersCount int    `json:"members_count"`
	Men          int    `json:"men"`
	Women        int    `json:"women"`
}

type ReservationResponse struct {
	ID                    uint                      `json:"id"`
	SessionID             string                    `json:"session_id"`
	Status                models.ReservationStatus  `json:"status"`
	Notes                 string                    `json:"notes"`
	AllowPostConfirmation bool                      `json:"allow_post_confirmation"`
	Items                 []ReservationItemResponse `json:"items"`
	ParticipantsCount     int                       `json:"participants_count"`
	CreatedAt             time.Time                 `json:"created_at"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:                    r.ID,
		SessionID:             r.SessionID,
		Status:                r.Status,
		Notes:                 r.Notes,
		AllowPostConfirmation: r.AllowPostConfirmation,
		ParticipantsCount:     len(r.Participants),
		CreatedAt:             r.CreatedAt,
		Items:                 make([]ReservationItemResponse, len(r.Items)),
	}
	for i, item := range r.Items {
		resp.Items[i] = ReservationItemResponse{
			ExperienceID: item.ExperienceID,
			StartDate:    item.StartDate,
			EndDate:      item.EndDate,
			MembersCount: item.MembersCount,
			Men:          item.Men,
			Women:        item.Women,
		}
	}
	return resp
}

type AddressResponse struct {
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
}

type ErrorResponse struct {
	Message          string `json:"message"`
	Step             string `json:"step,omitempty"`
	ParticipantIndex int    `json:"participant_index,omitempty"`
	Experience       string `json:"experience,omitempty"`
}
