package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing statuses. A listing flips Available -> Claimed exactly once, as a side
// effect of one of its requests reaching Claimed, and never transitions back.
const (
	ListingAvailable = "Available"
	ListingClaimed   = "Claimed"
)

// Listing is a donor-posted unit of surplus food. Location is the client's
// optional {lat, lng, address} object, stored opaquely.
type Listing struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	DonorID    uuid.UUID      `gorm:"column:donor_id;type:uuid;not null;index" json:"donorId"`
	ItemName   string         `gorm:"column:item_name;not null" json:"itemName"`
	Quantity   string         `gorm:"column:quantity;not null" json:"quantity"`
	ExpiryDate time.Time      `gorm:"column:expiry_date;not null" json:"expiryDate"`
	Status     string         `gorm:"column:status;not null;default:'Available'" json:"status"`
	Location   datatypes.JSON `gorm:"column:location" json:"location,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (Listing) TableName() string {
	return "listings"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
