package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/ledgersift/mail-ingestor/internal/domain"
)

// Signal and query names on the mailbox lifecycle workflow
const (
	// NotificationSignalName delivers decoded change notifications
	NotificationSignalName = "mailbox-notification"
	// StopSignalName requests an orderly unlink of the mailbox
	StopSignalName = "mailbox-stop"
	// StatusQueryName returns a StatusReport
	StatusQueryName = "status"
)

// MailboxWorkflowID derives the stable workflow id for one tenant mailbox.
// One lifecycle instance per mailbox is what keeps per-tenant processing
// single-threaded.
func MailboxWorkflowID(tenantID, emailAddress string) string {
	return fmt.Sprintf("mailbox-lifecycle/%s/%s", tenantID, emailAddress)
}

// MailboxLifecycleParams starts (or continues) one mailbox lifecycle
type MailboxLifecycleParams struct {
	TenantID      string `json:"tenant_id"`
	EmailAddress  string `json:"email_address"`
	CredentialRef string `json:"credential_ref"`
	// Pending carries notifications handed over across a history reset
	Pending []domain.ChangeNotification `json:"pending,omitempty"`
	// ResumeWatchExpiry is set only on a history reset; a non-zero value
	// skips watch re-registration so the cursor is preserved
	ResumeWatchExpiry time.Time `json:"resume_watch_expiry,omitempty"`
	// ResumeCredentialExpiry carries the cached credential lifetime across
	// a history reset
	ResumeCredentialExpiry time.Time `json:"resume_credential_expiry,omitempty"`
}

// StatusReport answers the status query
type StatusReport struct {
	Phase         string    `json:"phase"`
	WatchExpiry   time.Time `json:"watch_expiry"`
	Cursor        uint64    `json:"cursor"`
	PendingCount  int       `json:"pending_count"`
	ProcessedRun  int       `json:"processed_this_run"`
	LastError     string    `json:"last_error,omitempty"`
	ErrorCount    int       `json:"error_count"`
	StartedAt     time.Time `json:"started_at"`
	CredentialRef string    `json:"credential_ref"`
}

// WorkerCore defines the interface for the mailbox ingestion workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockCoreWorker
type WorkerCore interface {
	// MailboxLifecycle keeps one tenant mailbox's watch alive and ingests
	// every notification it receives
	MailboxLifecycle(ctx workflow.Context, params MailboxLifecycleParams) error
}

// WorkerCoreConfig tunes the lifecycle state machine
type WorkerCoreConfig struct {
	// RenewalBuffer is how long before watch expiry the renewal runs
	RenewalBuffer time.Duration
	// RenewalRetryInterval spaces retries after a failed renewal
	RenewalRetryInterval time.Duration
	// ConfidenceThreshold is the inclusive acceptance bound for extractions
	ConfidenceThreshold float64
	// ProcessedLabel is applied to messages that produced a result
	ProcessedLabel string
	// HistoryEventLimit triggers a history reset once exceeded
	HistoryEventLimit int
	// MaxRunDuration triggers a history reset once exceeded
	MaxRunDuration time.Duration
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	if config.RenewalRetryInterval <= 0 {
		config.RenewalRetryInterval = 5 * time.Minute
	}
	return &workerCore{
		config:   config,
		executor: executor,
	}
}
