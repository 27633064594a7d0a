package models

import "gorm.io/gorm"

// Vote is one endorsement event on an issue. The ledger is append-only:
// rows are never updated or deleted, and nothing de-duplicates votes per
// user or device on the server side.
type Vote struct {
	gorm.Model
	IssueID string `gorm:"size:36;index;not null" json:"issueId"`
	Issue   Issue  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
