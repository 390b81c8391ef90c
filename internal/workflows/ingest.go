package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/ledgersift/mail-ingestor/internal/domain"
	"github.com/ledgersift/mail-ingestor/internal/logger"
	"github.com/ledgersift/mail-ingestor/internal/store"
)

// ingestMessage runs the full pipeline for one message: persist raw, match,
// extract, gate on confidence, persist the result and update rule stats.
// Business failures (no rule, low confidence, dead message) are terminal
// per-message outcomes, never errors. A returned error means the message is
// still unresolved and the caller must not advance the cursor past it.
func (w *workerCore) ingestMessage(ctx workflow.Context, params MailboxLifecycleParams, state *lifecycleState, msg domain.EmailMessage) error {
	info := workflow.GetInfo(ctx)

	// Step 1+2: persist the raw message first. The unique key on
	// (tenant_id, provider_message_id) doubles as the dedup check.
	var saved SavedMessage
	err := workflow.ExecuteActivity(ctx, w.executor.SaveSourceMessage,
		params.TenantID, info.WorkflowExecution.ID, msg).Get(ctx, &saved)
	if err != nil {
		return fmt.Errorf("save source message %s: %w", msg.ProviderMessageID, err)
	}
	if !saved.Created && saved.Terminal {
		logger.DebugWf(ctx, "Skipping already processed message",
			zap.String("tenantID", params.TenantID),
			zap.String("providerMessageID", msg.ProviderMessageID),
		)
		return nil
	}

	// A message the provider would no longer serve is a terminal failure
	if msg.FetchError != nil {
		return w.failMessage(ctx, saved.MessageID,
			fmt.Sprintf("%s: %s", domain.FailureFetch, *msg.FetchError), nil, nil)
	}

	// Step 3: pick the best rule
	var match *MatchOutcome
	err = workflow.ExecuteActivity(ctx, w.executor.MatchMessage, params.TenantID, msg).Get(ctx, &match)
	if err != nil {
		return fmt.Errorf("match message %s: %w", msg.ProviderMessageID, err)
	}
	if match == nil {
		return w.failMessage(ctx, saved.MessageID, domain.FailureNoMatchingRule, nil, nil)
	}

	// Step 4: run the extraction with the rule's prompt
	extractCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    4,
		},
	})
	var outcome domain.ExtractionOutcome
	err = workflow.ExecuteActivity(extractCtx, w.executor.ExtractFields, match.Prompt, msg).Get(ctx, &outcome)
	if err != nil {
		// Attempts exhausted; record against the message, not the account
		w.bumpRuleFailed(ctx, match.RuleID)
		return w.failMessage(ctx, saved.MessageID,
			fmt.Sprintf("extraction failed: %v", err), &match.RuleID, nil)
	}

	// Step 5: confidence gate, inclusive at the threshold
	if outcome.Fields == nil || outcome.Confidence < w.config.ConfidenceThreshold {
		reason := domain.FailureLowConfidence
		if outcome.FailureReason != "" {
			reason = fmt.Sprintf("%s: %s", domain.FailureLowConfidence, outcome.FailureReason)
		}
		logger.InfoWf(ctx, "Extraction rejected by confidence gate",
			zap.String("tenantID", params.TenantID),
			zap.String("providerMessageID", msg.ProviderMessageID),
			zap.Uint64("ruleID", match.RuleID),
			zap.Float64("confidence", outcome.Confidence),
			zap.Float64("threshold", w.config.ConfidenceThreshold),
		)
		w.bumpRuleFailed(ctx, match.RuleID)
		return w.failMessage(ctx, saved.MessageID, reason, &match.RuleID, &outcome.Confidence)
	}

	// Step 6: persist the result; a duplicate is success, not an error
	var result SavedResult
	err = workflow.ExecuteActivity(ctx, w.executor.SaveExtractedResult, store.CreateExtractedResultInput{
		TenantID:        params.TenantID,
		SourceMessageID: saved.MessageID,
		TransactionDate: outcome.Fields.Date,
		Merchant:        outcome.Fields.Merchant,
		Amount:          outcome.Fields.Amount,
		Currency:        outcome.Fields.Currency,
		Category:        string(outcome.Fields.Category),
		Direction:       string(outcome.Fields.Direction),
		AccountRef:      outcome.Fields.AccountRef,
		Confidence:      outcome.Confidence,
		Raw:             outcome.Raw,
		RunID:           info.WorkflowExecution.RunID,
	}).Get(ctx, &result)
	if err != nil {
		return fmt.Errorf("save extracted result for message %s: %w", msg.ProviderMessageID, err)
	}

	if result.Created {
		err = workflow.ExecuteActivity(ctx, w.executor.RecordRuleMatched, match.RuleID).Get(ctx, nil)
		if err != nil {
			logger.WarnWf(ctx, "Failed to update rule success stats",
				zap.Uint64("ruleID", match.RuleID), zap.Error(err))
		}
	}

	// Labeling is best-effort and never rolls back persistence
	labelCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 3},
	})
	err = workflow.ExecuteActivity(labelCtx, w.executor.LabelMessage,
		params.CredentialRef, params.EmailAddress, msg.ProviderMessageID, w.config.ProcessedLabel).Get(ctx, nil)
	if err != nil {
		logger.WarnWf(ctx, "Failed to label message",
			zap.String("providerMessageID", msg.ProviderMessageID), zap.Error(err))
	}

	err = workflow.ExecuteActivity(ctx, w.executor.MarkMessageProcessed,
		saved.MessageID, match.RuleID, result.ResultID, outcome.Confidence).Get(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark message %s processed: %w", msg.ProviderMessageID, err)
	}

	logger.InfoWf(ctx, "Message ingested",
		zap.String("tenantID", params.TenantID),
		zap.String("providerMessageID", msg.ProviderMessageID),
		zap.String("bank", match.BankName),
		zap.Uint64("resultID", result.ResultID),
		zap.Float64("confidence", outcome.Confidence),
	)
	return nil
}

// failMessage records a terminal per-message failure
func (w *workerCore) failMessage(ctx workflow.Context, messageID uint64, reason string, ruleID *uint64, confidence *float64) error {
	err := workflow.ExecuteActivity(ctx, w.executor.MarkMessageFailed,
		messageID, reason, ruleID, confidence).Get(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark message %d failed: %w", messageID, err)
	}
	return nil
}

// bumpRuleFailed updates rule stats without letting a stats failure disturb
// the message outcome
func (w *workerCore) bumpRuleFailed(ctx workflow.Context, ruleID uint64) {
	err := workflow.ExecuteActivity(ctx, w.executor.RecordRuleFailed, ruleID).Get(ctx, nil)
	if err != nil {
		logger.WarnWf(ctx, "Failed to update rule failure stats",
			zap.Uint64("ruleID", ruleID), zap.Error(err))
	}
}
