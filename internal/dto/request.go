package dto

import "time"

// UpdateParticipantRequest patches one draft row; absent fields stay as they
// are. Values arrive raw (masked or not); normalization happens inside the
// wizard core.
type UpdateParticipantRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	BirthDate  *string `json:"birth_date"`
	NationalID *string `json:"national_id"`
	Gender     *string `json:"gender"`
}

type ToggleDeferralRequest struct {
	Enabled bool `json:"enabled"`
}

type SetNotesRequest struct {
	Notes string `json:"notes"`
}

type SetAdjustmentRequest struct {
	Men   int    `json:"men" validate:"gte=0,lte=1000"`
	Women int    `json:"women" validate:"gte=0,lte=1000"`
	From  string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

type AddCartItemRequest struct {
	ExperienceID uint `json:"experience_id" validate:"required"`
}

type UpsertExperienceRequest struct {
	Name      string     `json:"name" validate:"required"`
	Category  string     `json:"category" validate:"omitempty,max=40"`
	Price     float64    `json:"price" validate:"gte=0"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date" validate:"omitempty,gtefield=StartDate"`
	ImageURL  string     `json:"image_url" validate:"omitempty,url"`
	Active    *bool      `json:"active"`
}
