package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles accepted at registration.
const (
	RoleDonor     = "donor"
	RoleRecipient = "recipient"
	RoleAdmin     = "admin"
	RoleAnalyst   = "analyst"
)

// User is an account: identity plus a coarse role. Emails are stored lowercased
// so uniqueness is case-insensitive. The password hash never serializes.
type User struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email            string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash     string    `gorm:"column:password_hash;not null" json:"-"`
	Role             string    `gorm:"column:role;not null" json:"role"`
	OrganizationName string    `gorm:"column:organization_name;not null" json:"organizationName"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate sets the UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
