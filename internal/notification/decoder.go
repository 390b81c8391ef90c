// Package notification decodes Gmail Pub/Sub push payloads into typed change
// notifications. Decoding is pure: no I/O, and malformed payloads are rejected
// deterministically rather than producing partial results.
package notification

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ledgersift/mail-ingestor/internal/domain"
)

// pushEnvelope is the Pub/Sub push delivery wrapper
type pushEnvelope struct {
	Message struct {
		// Data is the base64-encoded mailbox change payload
		Data string `json:"data"`
		// MessageID is the Pub/Sub message id (unused, kept for shape validation)
		MessageID string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// mailboxChange is the decoded Gmail notification body
type mailboxChange struct {
	EmailAddress string `json:"emailAddress"`
	// HistoryID arrives as a JSON number or string depending on the publisher
	HistoryID json.Number `json:"historyId"`
}

// Decode turns an opaque push payload into a ChangeNotification for the given
// tenant. It returns domain.ErrInvalidNotification (wrapped with the cause)
// for any payload that does not carry a usable mailbox change.
func Decode(tenantID string, payload []byte, receivedAt time.Time) (domain.ChangeNotification, error) {
	var none domain.ChangeNotification

	if tenantID == "" {
		return none, fmt.Errorf("%w: missing tenant id", domain.ErrInvalidNotification)
	}

	var envelope pushEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return none, fmt.Errorf("%w: malformed envelope: %v", domain.ErrInvalidNotification, err)
	}

	if envelope.Message.Data == "" {
		return none, fmt.Errorf("%w: empty message data", domain.ErrInvalidNotification)
	}

	decoded, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		// Pub/Sub emits standard base64 but some forwarders re-encode URL-safe
		decoded, err = base64.URLEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			return none, fmt.Errorf("%w: undecodable message data: %v", domain.ErrInvalidNotification, err)
		}
	}

	var change mailboxChange
	if err := json.Unmarshal(decoded, &change); err != nil {
		return none, fmt.Errorf("%w: malformed change payload: %v", domain.ErrInvalidNotification, err)
	}

	if change.EmailAddress == "" {
		return none, fmt.Errorf("%w: missing email address", domain.ErrInvalidNotification)
	}

	historyID, err := strconv.ParseUint(change.HistoryID.String(), 10, 64)
	if err != nil || historyID == 0 {
		return none, fmt.Errorf("%w: invalid history id %q", domain.ErrInvalidNotification, change.HistoryID.String())
	}

	return domain.ChangeNotification{
		TenantID:     tenantID,
		EmailAddress: change.EmailAddress,
		HistoryID:    historyID,
		ReceivedAt:   receivedAt,
	}, nil
}
