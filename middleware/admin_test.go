package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdminEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		allowList string
		want      bool
	}{
		{"exact match", "admin@example.com", "admin@example.com", true},
		{"case insensitive email", "Admin@Example.COM", "admin@example.com", true},
		{"case insensitive list", "admin@example.com", "ADMIN@EXAMPLE.COM", true},
		{"whitespace in list", "admin@example.com", "  admin@example.com , other@x.com ", true},
		{"whitespace in email", "  admin@example.com  ", "admin@example.com", true},
		{"second entry matches", "other@x.com", "admin@example.com,other@x.com", true},
		{"not in list", "stranger@example.com", "admin@example.com,other@x.com", false},
		{"empty email", "", "admin@example.com", false},
		{"empty list", "admin@example.com", "", false},
		{"both empty", "", "", false},
		{"whitespace-only email", "   ", "admin@example.com", false},
		{"list of separators only", "admin@example.com", " , , ", false},
		{"partial match is not a match", "admin@example.com", "admin@example.community", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdminEmail(tt.email, tt.allowList))
		})
	}
}
