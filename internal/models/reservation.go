package models

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is one submitted wizard session.
type Reservation struct {
	ID                    uint              `gorm:"primaryKey" json:"id"`
	SessionID             string            `gorm:"type:varchar(64);not null;index" json:"session_id"`
	Status                ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes                 string            `json:"notes"`
	AllowPostConfirmation bool              `gorm:"not null" json:"allow_post_confirmation"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`

	Items        []ReservationItem `gorm:"foreignKey:ReservationID" json:"items,omitempty"`
	Participants []Participant     `gorm:"foreignKey:ReservationID" json:"participants,omitempty"`
}

// ReservationItem is one reserved experience with its resolved dates and the
// capacity the visitor booked.
type ReservationItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReservationID uint      `gorm:"not null;index" json:"reservation_id"`
	ExperienceID  uint      `gorm:"not null" json:"experience_id"`
	StartDate     string    `gorm:"type:varchar(10);not null" json:"start_date"` // ISO date
	EndDate       string    `gorm:"type:varchar(10);not null" json:"end_date"`
	MembersCount  int       `gorm:"not null" json:"members_count"`
	Men           int       `gorm:"not null" json:"men"`
	Women         int       `gorm:"not null" json:"women"`
	CreatedAt     time.Time `json:"created_at"`

	Experience *Experience `gorm:"foreignKey:ExperienceID" json:"experience,omitempty"`
}

// Participant stores the normalized projection of one wizard row. Empty for
// post-confirmation reservations.
type Participant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReservationID uint      `gorm:"not null;index" json:"reservation_id"`
	Name          string    `gorm:"not null" json:"name"`
	Phone         string    `gorm:"type:varchar(20);not null" json:"phone"`
	BirthDate     string    `gorm:"type:varchar(10);not null" json:"birth_date"` // ISO date
	NationalID    string    `gorm:"type:varchar(14);not null" json:"national_id"`
	Gender        string    `gorm:"type:varchar(15);not null" json:"gender"`
	CreatedAt     time.Time `json:"created_at"`
}
