package workflows

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/ledgersift/mail-ingestor/internal/domain"
	"github.com/ledgersift/mail-ingestor/internal/gmail"
	"github.com/ledgersift/mail-ingestor/internal/logger"
	"github.com/ledgersift/mail-ingestor/internal/matcher"
	"github.com/ledgersift/mail-ingestor/internal/store"
	"github.com/ledgersift/mail-ingestor/internal/store/schema"
)

// Application error types the lifecycle inspects to pick a recovery path
const (
	// ErrTypeCredentialRevoked marks a permanently dead credential
	ErrTypeCredentialRevoked = "CredentialRevoked"
	// ErrTypeCursorExpired marks a history cursor the provider no longer
	// retains; recovery is re-registering the watch, not retrying the fetch
	ErrTypeCursorExpired = "CursorExpired"
)

// CredentialStatus reports the lifetime of the cached access credential
// without exposing the token itself to workflow history
type CredentialStatus struct {
	Expiry time.Time `json:"expiry"`
}

// SavedMessage is the persistence outcome for one raw message
type SavedMessage struct {
	MessageID uint64 `json:"message_id"`
	// Created is false when the message had been seen before
	Created bool `json:"created"`
	// Terminal reports whether a previous run already finished this message,
	// successfully or not; a replayed delta skips terminal messages
	Terminal bool `json:"terminal"`
}

// MatchOutcome names the winning rule for a message; a nil outcome means no
// rule matched
type MatchOutcome struct {
	RuleID   uint64 `json:"rule_id"`
	BankName string `json:"bank_name"`
	Prompt   string `json:"prompt"`
	Score    int    `json:"score"`
}

// SavedResult is the persistence outcome for an accepted extraction
type SavedResult struct {
	ResultID uint64 `json:"result_id"`
	// Created is false when a result already existed for the message
	Created bool `json:"created"`
}

// FieldExtractor is the AI extraction capability the executor invokes
type FieldExtractor interface {
	Extract(ctx context.Context, prompt string, msg domain.EmailMessage) (domain.ExtractionOutcome, error)
}

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_core.go -package=mocks -mock_names=Executor=MockCoreExecutor
type Executor interface {
	// UpsertAccount creates or reactivates the subscription account
	UpsertAccount(ctx context.Context, input store.CreateAccountInput) (*schema.SubscriptionAccount, error)

	// RefreshCredential forces a refresh of the cached access credential for
	// a credential reference and reports its new expiry
	RefreshCredential(ctx context.Context, credentialRef string) (CredentialStatus, error)

	// RegisterWatch registers the provider push watch for a mailbox
	RegisterWatch(ctx context.Context, credentialRef, emailAddress string) (gmail.WatchResult, error)

	// DeregisterWatch stops the provider push watch for a mailbox
	DeregisterWatch(ctx context.Context, credentialRef, emailAddress string) error

	// UpdateAccountWatch records a successful watch registration
	UpdateAccountWatch(ctx context.Context, tenantID, emailAddress string, expiry time.Time, historyID uint64) error

	// FetchDelta retrieves the messages added since the cursor
	FetchDelta(ctx context.Context, credentialRef, emailAddress string, sinceHistoryID uint64) (gmail.DeltaResult, error)

	// AdvanceCursor moves the account's cursor forward after a fully
	// resolved delta
	AdvanceCursor(ctx context.Context, tenantID, emailAddress string, historyID uint64) error

	// SaveSourceMessage persists the raw message, absorbing duplicates
	SaveSourceMessage(ctx context.Context, tenantID, workflowID string, msg domain.EmailMessage) (SavedMessage, error)

	// MatchMessage scores the tenant's active rules against the message
	MatchMessage(ctx context.Context, tenantID string, msg domain.EmailMessage) (*MatchOutcome, error)

	// ExtractFields runs the AI extraction with the rule's prompt
	ExtractFields(ctx context.Context, prompt string, msg domain.EmailMessage) (domain.ExtractionOutcome, error)

	// SaveExtractedResult persists an accepted extraction, absorbing duplicates
	SaveExtractedResult(ctx context.Context, input store.CreateExtractedResultInput) (SavedResult, error)

	// RecordRuleMatched bumps the rule's success counter and rate
	RecordRuleMatched(ctx context.Context, ruleID uint64) error

	// RecordRuleFailed bumps the rule's failure counter and rate
	RecordRuleFailed(ctx context.Context, ruleID uint64) error

	// LabelMessage tags the message in the provider mailbox
	LabelMessage(ctx context.Context, credentialRef, emailAddress, providerMessageID, labelName string) error

	// MarkMessageProcessed records a terminal per-message success
	MarkMessageProcessed(ctx context.Context, messageID, ruleID, resultID uint64, confidence float64) error

	// MarkMessageFailed records a terminal per-message failure
	MarkMessageFailed(ctx context.Context, messageID uint64, reason string, ruleID *uint64, confidence *float64) error

	// RecordAccountError increments the account's error counter
	RecordAccountError(ctx context.Context, tenantID, emailAddress, message string) error

	// DeactivateAccount soft-deletes the account
	DeactivateAccount(ctx context.Context, tenantID, emailAddress string) error
}

// ExecutorConfig tunes credential handling
type ExecutorConfig struct {
	// RefreshMargin is how close to expiry a cached credential may get
	// before gateway calls refresh it
	RefreshMargin time.Duration
}

// executor is the concrete implementation of Executor
type executor struct {
	config    ExecutorConfig
	store     store.Store
	gateway   gmail.Gateway
	refresher gmail.TokenRefresher
	vault     gmail.CredentialVault
	extractor FieldExtractor

	mu    sync.Mutex
	creds map[string]gmail.Credential
}

// NewExecutor creates a new activity executor
func NewExecutor(
	config ExecutorConfig,
	st store.Store,
	gateway gmail.Gateway,
	refresher gmail.TokenRefresher,
	vault gmail.CredentialVault,
	extractor FieldExtractor,
) Executor {
	return &executor{
		config:    config,
		store:     st,
		gateway:   gateway,
		refresher: refresher,
		vault:     vault,
		extractor: extractor,
		creds:     map[string]gmail.Credential{},
	}
}

// credential returns a usable access credential for the reference, refreshing
// when the cached one is missing or near expiry
func (e *executor) credential(ctx context.Context, credentialRef string, force bool) (gmail.Credential, error) {
	e.mu.Lock()
	cred, ok := e.creds[credentialRef]
	e.mu.Unlock()
	if ok && !force && !cred.NearExpiry(time.Now(), e.config.RefreshMargin) {
		return cred, nil
	}

	refreshToken, err := e.vault.RefreshToken(ctx, credentialRef)
	if err != nil {
		return gmail.Credential{}, temporal.NewNonRetryableApplicationError(
			err.Error(), ErrTypeCredentialRevoked, err)
	}
	cred, err = e.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialRevoked) {
			return gmail.Credential{}, temporal.NewNonRetryableApplicationError(
				err.Error(), ErrTypeCredentialRevoked, err)
		}
		return gmail.Credential{}, err
	}

	e.mu.Lock()
	e.creds[credentialRef] = cred
	e.mu.Unlock()
	return cred, nil
}

// classifyGatewayErr maps gateway sentinels onto non-retryable application
// errors so the lifecycle can choose a recovery path
func classifyGatewayErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrCredentialRevoked):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeCredentialRevoked, err)
	case errors.Is(err, gmail.ErrCursorExpired):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeCursorExpired, err)
	default:
		return err
	}
}

// UpsertAccount creates or reactivates the subscription account
func (e *executor) UpsertAccount(ctx context.Context, input store.CreateAccountInput) (*schema.SubscriptionAccount, error) {
	account, err := e.store.UpsertAccount(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("upsert account: %w", err)
	}
	return account, nil
}

// RefreshCredential forces a credential refresh
func (e *executor) RefreshCredential(ctx context.Context, credentialRef string) (CredentialStatus, error) {
	cred, err := e.credential(ctx, credentialRef, true)
	if err != nil {
		return CredentialStatus{}, err
	}
	return CredentialStatus{Expiry: cred.Expiry}, nil
}

// RegisterWatch registers the provider push watch
func (e *executor) RegisterWatch(ctx context.Context, credentialRef, emailAddress string) (gmail.WatchResult, error) {
	cred, err := e.credential(ctx, credentialRef, false)
	if err != nil {
		return gmail.WatchResult{}, err
	}
	watch, err := e.gateway.RegisterWatch(ctx, cred, emailAddress)
	if err != nil {
		return gmail.WatchResult{}, classifyGatewayErr(err)
	}
	return watch, nil
}

// DeregisterWatch stops the provider push watch
func (e *executor) DeregisterWatch(ctx context.Context, credentialRef, emailAddress string) error {
	cred, err := e.credential(ctx, credentialRef, false)
	if err != nil {
		return err
	}
	if err := e.gateway.DeregisterWatch(ctx, cred, emailAddress); err != nil {
		return classifyGatewayErr(err)
	}
	return nil
}

// UpdateAccountWatch records a successful watch registration
func (e *executor) UpdateAccountWatch(ctx context.Context, tenantID, emailAddress string, expiry time.Time, historyID uint64) error {
	return e.store.UpdateAccountWatch(ctx, tenantID, emailAddress, expiry, historyID)
}

// FetchDelta retrieves the messages added since the cursor
func (e *executor) FetchDelta(ctx context.Context, credentialRef, emailAddress string, sinceHistoryID uint64) (gmail.DeltaResult, error) {
	cred, err := e.credential(ctx, credentialRef, false)
	if err != nil {
		return gmail.DeltaResult{}, err
	}
	delta, err := e.gateway.FetchDelta(ctx, cred, emailAddress, sinceHistoryID)
	if err != nil {
		return gmail.DeltaResult{}, classifyGatewayErr(err)
	}
	return delta, nil
}

// AdvanceCursor moves the account cursor forward
func (e *executor) AdvanceCursor(ctx context.Context, tenantID, emailAddress string, historyID uint64) error {
	return e.store.AdvanceAccountCursor(ctx, tenantID, emailAddress, historyID)
}

// SaveSourceMessage persists the raw message before anything else touches it
func (e *executor) SaveSourceMessage(ctx context.Context, tenantID, workflowID string, msg domain.EmailMessage) (SavedMessage, error) {
	row, created, err := e.store.CreateSourceMessage(ctx, store.CreateSourceMessageInput{
		TenantID:          tenantID,
		ProviderMessageID: msg.ProviderMessageID,
		ThreadID:          msg.ThreadID,
		FromAddress:       msg.From,
		ToAddress:         msg.To,
		Subject:           msg.Subject,
		MessageDate:       msg.Date,
		Body:              msg.Body,
		WorkflowID:        workflowID,
	})
	if err != nil {
		return SavedMessage{}, fmt.Errorf("save source message: %w", err)
	}
	terminal := row.Processed || row.ProcessingError != nil
	return SavedMessage{MessageID: row.ID, Created: created, Terminal: terminal}, nil
}

// MatchMessage scores the tenant's active rules against the message
func (e *executor) MatchMessage(ctx context.Context, tenantID string, msg domain.EmailMessage) (*MatchOutcome, error) {
	stored, err := e.store.GetActiveRules(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load active rules: %w", err)
	}
	rules := matcher.Compile(stored)
	best, ok := matcher.Best(msg, rules)
	if !ok {
		logger.DebugCtx(ctx, "no rule matched message",
			zap.String("tenantID", tenantID),
			zap.String("providerMessageID", msg.ProviderMessageID),
			zap.Int("activeRules", len(rules)),
		)
		return nil, nil
	}
	return &MatchOutcome{
		RuleID:   best.Rule.ID,
		BankName: best.Rule.BankName,
		Prompt:   best.Rule.ExtractionPrompt,
		Score:    best.Score,
	}, nil
}

// ExtractFields runs the AI extraction with the rule's prompt
func (e *executor) ExtractFields(ctx context.Context, prompt string, msg domain.EmailMessage) (domain.ExtractionOutcome, error) {
	outcome, err := e.extractor.Extract(ctx, prompt, msg)
	if err != nil {
		return domain.ExtractionOutcome{}, fmt.Errorf("extract fields: %w", err)
	}
	return outcome, nil
}

// SaveExtractedResult persists an accepted extraction
func (e *executor) SaveExtractedResult(ctx context.Context, input store.CreateExtractedResultInput) (SavedResult, error) {
	resultID, created, err := e.store.CreateExtractedResult(ctx, input)
	if err != nil {
		return SavedResult{}, fmt.Errorf("save extracted result: %w", err)
	}
	if !created {
		logger.InfoCtx(ctx, "extracted result already exists",
			zap.String("tenantID", input.TenantID),
			zap.Uint64("sourceMessageID", input.SourceMessageID),
		)
	}
	return SavedResult{ResultID: resultID, Created: created}, nil
}

// RecordRuleMatched bumps the rule's success counter and rate
func (e *executor) RecordRuleMatched(ctx context.Context, ruleID uint64) error {
	return e.store.IncrementRuleMatched(ctx, ruleID)
}

// RecordRuleFailed bumps the rule's failure counter and rate
func (e *executor) RecordRuleFailed(ctx context.Context, ruleID uint64) error {
	return e.store.IncrementRuleFailed(ctx, ruleID)
}

// LabelMessage tags the message in the provider mailbox
func (e *executor) LabelMessage(ctx context.Context, credentialRef, emailAddress, providerMessageID, labelName string) error {
	cred, err := e.credential(ctx, credentialRef, false)
	if err != nil {
		return err
	}
	if err := e.gateway.Label(ctx, cred, emailAddress, providerMessageID, labelName); err != nil {
		return classifyGatewayErr(err)
	}
	return nil
}

// MarkMessageProcessed records a terminal per-message success
func (e *executor) MarkMessageProcessed(ctx context.Context, messageID, ruleID, resultID uint64, confidence float64) error {
	return e.store.MarkMessageProcessed(ctx, messageID, ruleID, resultID, confidence)
}

// MarkMessageFailed records a terminal per-message failure
func (e *executor) MarkMessageFailed(ctx context.Context, messageID uint64, reason string, ruleID *uint64, confidence *float64) error {
	return e.store.MarkMessageFailed(ctx, messageID, reason, ruleID, confidence)
}

// RecordAccountError increments the account's error counter
func (e *executor) RecordAccountError(ctx context.Context, tenantID, emailAddress, message string) error {
	return e.store.RecordAccountError(ctx, tenantID, emailAddress, message)
}

// DeactivateAccount soft-deletes the account
func (e *executor) DeactivateAccount(ctx context.Context, tenantID, emailAddress string) error {
	return e.store.DeactivateAccount(ctx, tenantID, emailAddress)
}
