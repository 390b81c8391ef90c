package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Valid(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		expected bool
	}{
		{
			name:     "valid dining",
			category: CategoryDining,
			expected: true,
		},
		{
			name:     "valid other",
			category: CategoryOther,
			expected: true,
		},
		{
			name:     "invalid empty category",
			category: Category(""),
			expected: false,
		},
		{
			name:     "invalid unknown category",
			category: Category("gambling"),
			expected: false,
		},
		{
			name:     "invalid wrong case",
			category: Category("Dining"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.category.Valid())
		})
	}
}

func TestDirection_Valid(t *testing.T) {
	assert.True(t, DirectionDebit.Valid())
	assert.True(t, DirectionCredit.Valid())
	assert.False(t, Direction("").Valid())
	assert.False(t, Direction("outgoing").Valid())
}

func TestEmailMessage_SenderAddress(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		expected string
	}{
		{
			name:     "bare address",
			from:     "alerts@acme.com",
			expected: "alerts@acme.com",
		},
		{
			name:     "display name with angle brackets",
			from:     "Acme Bank <alerts@acme.com>",
			expected: "alerts@acme.com",
		},
		{
			name:     "mixed case is lowered",
			from:     "Chase Alerts <No-Reply@Alerts.Chase.COM>",
			expected: "no-reply@alerts.chase.com",
		},
		{
			name:     "surrounding whitespace is trimmed",
			from:     "  alerts@acme.com  ",
			expected: "alerts@acme.com",
		},
		{
			name:     "angle bracket inside display name",
			from:     `"Weird <Name>" <real@acme.com>`,
			expected: "real@acme.com",
		},
		{
			name:     "empty header",
			from:     "",
			expected: "",
		},
		{
			name:     "unclosed bracket falls back to the raw header",
			from:     "broken <alerts@acme.com",
			expected: "broken <alerts@acme.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := EmailMessage{From: tt.from}
			assert.Equal(t, tt.expected, msg.SenderAddress())
		})
	}
}

func TestEmailMessage_Valid(t *testing.T) {
	fetchErr := "message deleted upstream"

	assert.True(t, EmailMessage{ProviderMessageID: "m-1"}.Valid())
	assert.False(t, EmailMessage{}.Valid())
	assert.False(t, EmailMessage{ProviderMessageID: "m-1", FetchError: &fetchErr}.Valid())
}

func TestChangeNotification_Valid(t *testing.T) {
	base := ChangeNotification{
		TenantID:     "t-1",
		EmailAddress: "user@example.com",
		HistoryID:    42,
		ReceivedAt:   time.Now(),
	}
	assert.True(t, base.Valid())

	missingTenant := base
	missingTenant.TenantID = ""
	assert.False(t, missingTenant.Valid())

	missingEmail := base
	missingEmail.EmailAddress = ""
	assert.False(t, missingEmail.Valid())

	zeroCursor := base
	zeroCursor.HistoryID = 0
	assert.False(t, zeroCursor.Valid())
}
