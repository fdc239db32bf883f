package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationRequest links a recipient to a listing. DonorID is a write-time
// snapshot of the listing's donor, never re-derived after creation.
type DonationRequest struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ListingID    uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listingId"`
	RecipientID  uuid.UUID `gorm:"column:recipient_id;type:uuid;not null;index" json:"recipientId"`
	DonorID      uuid.UUID `gorm:"column:donor_id;type:uuid;not null;index" json:"donorId"`
	ContactName  string    `gorm:"column:contact_name;not null" json:"contactName"`
	ContactPhone string    `gorm:"column:contact_phone;not null" json:"contactPhone"`
	Notes        string    `gorm:"column:notes" json:"notes"`
	Status       string    `gorm:"column:status;not null;default:'Pending'" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (DonationRequest) TableName() string {
	return "donation_requests"
}

func (r *DonationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
