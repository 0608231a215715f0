package models

import "time"

// Experience is the local read model of the catalog. The admin service owns
// it; rows arrive over RabbitMQ and are upserted by the consumer.
type Experience struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Category  string     `gorm:"type:varchar(40)" json:"category"`
	Price     float64    `gorm:"not null" json:"price"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	ImageURL  string     `json:"image_url"`
	Active    bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
