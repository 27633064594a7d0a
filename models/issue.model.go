package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueSeverity enum
type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "LOW"
	SeverityMedium   IssueSeverity = "MEDIUM"
	SeverityHigh     IssueSeverity = "HIGH"
	SeverityCritical IssueSeverity = "CRITICAL"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusSubmitted  IssueStatus = "SUBMITTED"
	StatusAssigned   IssueStatus = "ASSIGNED"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusResolved   IssueStatus = "RESOLVED"
)

// ParseSeverity normalizes raw input (trim + uppercase) and reports whether
// it is one of the allowed severities.
func ParseSeverity(raw string) (IssueSeverity, bool) {
	s := IssueSeverity(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return s, true
	}
	return "", false
}

// ParseStatus normalizes raw input (trim + uppercase) and reports whether
// it is one of the allowed statuses.
func ParseStatus(raw string) (IssueStatus, bool) {
	s := IssueStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusSubmitted, StatusAssigned, StatusInProgress, StatusResolved:
		return s, true
	}
	return "", false
}

// Issue represents a citizen-submitted complaint
type Issue struct {
	ID           string        `gorm:"primaryKey;size:36" json:"id"`
	Description  string        `gorm:"type:text;not null" json:"description"`
	IssueType    string        `gorm:"not null" json:"issueType"`
	Severity     IssueSeverity `gorm:"not null" json:"severity"`
	Status       IssueStatus   `gorm:"not null;default:'SUBMITTED'" json:"status"`
	Location     *string       `json:"location"`
	Coordinates  *string       `json:"coordinates"` // "lat, lon"
	LocationName *string       `json:"locationName"`
	ImageURL     *string       `json:"imageUrl"`
	AssignedTo   *string       `json:"assignedTo"`
	UserID       *uint         `json:"userId"`
	User         *User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"user,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = StatusSubmitted
	}
	return nil
}
