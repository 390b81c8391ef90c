package notification

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersift/mail-ingestor/internal/domain"
)

func envelope(data string) []byte {
	return []byte(fmt.Sprintf(`{"message":{"data":%q,"messageId":"pub-1"},"subscription":"projects/p/subscriptions/s"}`, data))
}

func TestDecode(t *testing.T) {
	receivedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	change := []byte(`{"emailAddress":"user@example.com","historyId":123456}`)

	t.Run("standard base64 payload", func(t *testing.T) {
		payload := envelope(base64.StdEncoding.EncodeToString(change))

		notif, err := Decode("tenant-1", payload, receivedAt)
		require.NoError(t, err)
		assert.Equal(t, "tenant-1", notif.TenantID)
		assert.Equal(t, "user@example.com", notif.EmailAddress)
		assert.Equal(t, uint64(123456), notif.HistoryID)
		assert.Equal(t, receivedAt, notif.ReceivedAt)
	})

	t.Run("url-safe base64 payload", func(t *testing.T) {
		payload := envelope(base64.URLEncoding.EncodeToString(change))

		notif, err := Decode("tenant-1", payload, receivedAt)
		require.NoError(t, err)
		assert.Equal(t, uint64(123456), notif.HistoryID)
	})

	t.Run("history id delivered as a string", func(t *testing.T) {
		stringChange := []byte(`{"emailAddress":"user@example.com","historyId":"9988"}`)
		payload := envelope(base64.StdEncoding.EncodeToString(stringChange))

		notif, err := Decode("tenant-1", payload, receivedAt)
		require.NoError(t, err)
		assert.Equal(t, uint64(9988), notif.HistoryID)
	})
}

func TestDecode_Rejections(t *testing.T) {
	receivedAt := time.Now()
	valid := base64.StdEncoding.EncodeToString([]byte(`{"emailAddress":"user@example.com","historyId":1}`))

	tests := []struct {
		name     string
		tenantID string
		payload  []byte
	}{
		{
			name:     "missing tenant id",
			tenantID: "",
			payload:  envelope(valid),
		},
		{
			name:     "malformed envelope json",
			tenantID: "t-1",
			payload:  []byte(`{"message":`),
		},
		{
			name:     "empty message data",
			tenantID: "t-1",
			payload:  []byte(`{"message":{"data":""}}`),
		},
		{
			name:     "undecodable base64",
			tenantID: "t-1",
			payload:  envelope("!!not-base64!!"),
		},
		{
			name:     "malformed change payload",
			tenantID: "t-1",
			payload:  envelope(base64.StdEncoding.EncodeToString([]byte(`not json`))),
		},
		{
			name:     "missing email address",
			tenantID: "t-1",
			payload:  envelope(base64.StdEncoding.EncodeToString([]byte(`{"historyId":5}`))),
		},
		{
			name:     "zero history id",
			tenantID: "t-1",
			payload:  envelope(base64.StdEncoding.EncodeToString([]byte(`{"emailAddress":"a@b.com","historyId":0}`))),
		},
		{
			name:     "non-numeric history id",
			tenantID: "t-1",
			payload:  envelope(base64.StdEncoding.EncodeToString([]byte(`{"emailAddress":"a@b.com","historyId":"abc"}`))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.tenantID, tt.payload, receivedAt)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidNotification))
		})
	}
}
