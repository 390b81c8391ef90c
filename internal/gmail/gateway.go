// Package gmail implements the email provider gateway on top of the Gmail
// REST API: watch registration, history deltas, per-message fetch and
// labeling, plus OAuth2 credential refresh.
package gmail

import (
	"context"
	"errors"
	"time"

	"github.com/ledgersift/mail-ingestor/internal/domain"
)

var (
	// ErrCursorExpired is returned when the provider no longer retains history
	// for the requested cursor; the caller must re-register the watch and
	// resume from the cursor the registration reports.
	ErrCursorExpired = errors.New("history cursor expired")

	// ErrMessageNotFound is returned when a single message has been deleted
	// upstream; this is a permanent per-message failure, not a delta failure.
	ErrMessageNotFound = errors.New("message not found")
)

// Credential is a short-lived access credential for one mailbox. Credentials
// are passed per invocation; there is no process-wide client state.
type Credential struct {
	AccessToken string    `json:"access_token"`
	Expiry      time.Time `json:"expiry"`
}

// NearExpiry reports whether the credential expires within margin of now
func (c Credential) NearExpiry(now time.Time, margin time.Duration) bool {
	return c.AccessToken == "" || !now.Add(margin).Before(c.Expiry)
}

// WatchResult is the outcome of registering a mailbox watch
type WatchResult struct {
	// HistoryID is the mailbox's history cursor at registration time
	HistoryID uint64 `json:"history_id"`
	// Expiry is when the provider will stop pushing notifications
	Expiry time.Time `json:"expiry"`
}

// DeltaResult is the outcome of one history fetch. NewHistoryID is only
// meaningful once every candidate in Messages is resolved (fetched or carrying
// a FetchError).
type DeltaResult struct {
	Messages     []domain.EmailMessage `json:"messages"`
	NewHistoryID uint64                `json:"new_history_id"`
}

// Gateway defines the provider operations the ingestion core consumes
type Gateway interface {
	// RegisterWatch registers (or re-registers) the push watch for a mailbox
	RegisterWatch(ctx context.Context, cred Credential, emailAddress string) (WatchResult, error)

	// DeregisterWatch stops the push watch for a mailbox
	DeregisterWatch(ctx context.Context, cred Credential, emailAddress string) error

	// FetchDelta lists messages added since the cursor and resolves each one.
	// A single message's permanent fetch failure is recorded on that message;
	// transient failures fail the whole call so the caller can retry it.
	FetchDelta(ctx context.Context, cred Credential, emailAddress string, sinceHistoryID uint64) (DeltaResult, error)

	// GetMessage fetches and parses a single message
	GetMessage(ctx context.Context, cred Credential, emailAddress, messageID string) (domain.EmailMessage, error)

	// Label applies a named label to a message, creating the label if needed
	Label(ctx context.Context, cred Credential, emailAddress, messageID, labelName string) error
}

// TokenRefresher exchanges a stored refresh token for a fresh access credential
type TokenRefresher interface {
	// Refresh returns a new credential. A revoked or invalid refresh token
	// yields domain.ErrCredentialRevoked, which must not be retried.
	Refresh(ctx context.Context, refreshToken string) (Credential, error)
}
