package models

import "gorm.io/gorm"

// User is the local record for an identity-provider account. It is created
// the first time a login syncs and refreshed on every later sync.
type User struct {
	gorm.Model
	ExternalID string  `gorm:"uniqueIndex;not null" json:"externalId"`
	Email      string  `gorm:"not null;default:''" json:"email"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	ImageURL   *string `json:"imageUrl"`
}
