package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		raw  string
		want IssueSeverity
		ok   bool
	}{
		{"LOW", SeverityLow, true},
		{"medium", SeverityMedium, true},
		{"High", SeverityHigh, true},
		{" critical ", SeverityCritical, true},
		{"URGENT", "", false},
		{"", "", false},
		{"LOW,HIGH", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseSeverity(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want IssueStatus
		ok   bool
	}{
		{"SUBMITTED", StatusSubmitted, true},
		{"resolved", StatusResolved, true},
		{"in_progress", StatusInProgress, true},
		{" Assigned ", StatusAssigned, true},
		{"DONE", "", false},
		{"IN PROGRESS", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseStatus(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
