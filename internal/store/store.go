package store

import (
	"context"
	"time"

	"github.com/ledgersift/mail-ingestor/internal/store/schema"
)

// CreateAccountInput carries the fields needed to link (or re-link) a mailbox
type CreateAccountInput struct {
	TenantID      string
	EmailAddress  string
	CredentialRef string
	WorkflowID    string
}

// CreateSourceMessageInput carries the raw message fields persisted before
// any processing step runs
type CreateSourceMessageInput struct {
	TenantID          string
	ProviderMessageID string
	ThreadID          string
	FromAddress       string
	ToAddress         string
	Subject           string
	MessageDate       time.Time
	Body              string
	WorkflowID        string
}

// CreateExtractedResultInput carries the fields of an accepted extraction
type CreateExtractedResultInput struct {
	TenantID        string
	SourceMessageID uint64
	TransactionDate time.Time
	Merchant        string
	Amount          float64
	Currency        string
	Category        string
	Direction       string
	AccountRef      string
	Confidence      float64
	Raw             []byte
	RunID           string
}

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for database operations. All mutations are
// single-document atomic updates or unique-key conditional upserts; the
// pipeline's invariants never need multi-document transactions.
type Store interface {
	// UpsertAccount creates the subscription account or refreshes the
	// credential reference and workflow id of an existing one, reactivating it
	UpsertAccount(ctx context.Context, input CreateAccountInput) (*schema.SubscriptionAccount, error)

	// GetAccount retrieves a subscription account by tenant and mailbox,
	// returning domain.ErrAccountNotFound (wrapped) when no row exists
	GetAccount(ctx context.Context, tenantID, emailAddress string) (*schema.SubscriptionAccount, error)

	// UpdateAccountWatch records a successful watch registration
	UpdateAccountWatch(ctx context.Context, tenantID, emailAddress string, expiry time.Time, historyID uint64) error

	// AdvanceAccountCursor moves the cursor forward; a stale historyID is a no-op
	AdvanceAccountCursor(ctx context.Context, tenantID, emailAddress string, historyID uint64) error

	// RecordAccountError increments the error counter and stores the last error
	RecordAccountError(ctx context.Context, tenantID, emailAddress, message string) error

	// DeactivateAccount soft-deletes the account
	DeactivateAccount(ctx context.Context, tenantID, emailAddress string) error

	// GetSourceMessage retrieves a source message by its per-tenant provider id
	GetSourceMessage(ctx context.Context, tenantID, providerMessageID string) (*schema.SourceMessage, error)

	// CreateSourceMessage persists a raw message; on the (tenant_id,
	// provider_message_id) conflict it returns the existing row with created=false
	CreateSourceMessage(ctx context.Context, input CreateSourceMessageInput) (msg *schema.SourceMessage, created bool, err error)

	// MarkMessageFailed records a terminal per-message failure
	MarkMessageFailed(ctx context.Context, messageID uint64, reason string, ruleID *uint64, confidence *float64) error

	// MarkMessageProcessed records a terminal per-message success with links
	// to the rule and result
	MarkMessageProcessed(ctx context.Context, messageID uint64, ruleID, resultID uint64, confidence float64) error

	// GetActiveRules retrieves a tenant's active rules ordered by priority
	// descending then creation order
	GetActiveRules(ctx context.Context, tenantID string) ([]*schema.MatchRule, error)

	// CreateExtractedResult persists an accepted extraction; on the
	// (tenant_id, source_message_id) conflict it returns the existing row's id
	// with created=false
	CreateExtractedResult(ctx context.Context, input CreateExtractedResultInput) (resultID uint64, created bool, err error)

	// IncrementRuleMatched bumps the rule's success counter and success rate atomically
	IncrementRuleMatched(ctx context.Context, ruleID uint64) error

	// IncrementRuleFailed bumps the rule's failure counter and success rate atomically
	IncrementRuleFailed(ctx context.Context, ruleID uint64) error
}
