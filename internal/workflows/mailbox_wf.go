package workflows

import (
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/ledgersift/mail-ingestor/internal/domain"
	"github.com/ledgersift/mail-ingestor/internal/gmail"
	"github.com/ledgersift/mail-ingestor/internal/logger"
	"github.com/ledgersift/mail-ingestor/internal/store"
	"github.com/ledgersift/mail-ingestor/internal/store/schema"
)

const (
	phaseInitializing = "initializing"
	phaseActive       = "active"
	phaseProcessing   = "processing"
	phaseRenewing     = "renewing"
	phaseStopping     = "stopping"
	phaseStopped      = "stopped"
	phaseError        = "error"

	// credentialRefreshMargin is how close to expiry the credential may get
	// before renewal refreshes it proactively
	credentialRefreshMargin = 5 * time.Minute
)

// lifecycleState is the in-run state of one mailbox lifecycle. It is rebuilt
// from persisted account data on every history reset.
type lifecycleState struct {
	phase       string
	watchExpiry time.Time
	credExpiry  time.Time
	cursor      uint64
	renewAt     time.Time
	pending     []domain.ChangeNotification
	processed   int
	lastError   string
	errorCount  int
	startedAt   time.Time
	stopping    bool
}

// MailboxLifecycle keeps one tenant mailbox's watch subscription alive and
// ingests every change notification delivered to it. It is the only writer
// for its account row, which is what makes cursor advancement safe without
// locking.
func (w *workerCore) MailboxLifecycle(ctx workflow.Context, params MailboxLifecycleParams) error {
	logger.InfoWf(ctx, "Starting mailbox lifecycle",
		zap.String("tenantID", params.TenantID),
		zap.String("emailAddress", params.EmailAddress),
		zap.Int("handedOver", len(params.Pending)),
	)

	state := &lifecycleState{
		phase:     phaseInitializing,
		pending:   params.Pending,
		startedAt: workflow.Now(ctx),
	}

	if err := workflow.SetQueryHandler(ctx, StatusQueryName, func() (StatusReport, error) {
		return StatusReport{
			Phase:         state.phase,
			WatchExpiry:   state.watchExpiry,
			Cursor:        state.cursor,
			PendingCount:  len(state.pending),
			ProcessedRun:  state.processed,
			LastError:     state.lastError,
			ErrorCount:    state.errorCount,
			StartedAt:     state.startedAt,
			CredentialRef: params.CredentialRef,
		}, nil
	}); err != nil {
		return fmt.Errorf("register status query handler: %w", err)
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	})

	if err := w.initialize(ctx, params, state); err != nil {
		state.phase = phaseError
		return err
	}

	notifCh := workflow.GetSignalChannel(ctx, NotificationSignalName)
	stopCh := workflow.GetSignalChannel(ctx, StopSignalName)
	state.renewAt = state.watchExpiry.Add(-w.config.RenewalBuffer)

	for {
		// History hygiene: reset the run between deltas, never mid-delta
		if !state.stopping && len(state.pending) == 0 && w.shouldReset(ctx, state) {
			w.drainSignals(ctx, notifCh, stopCh, state)
			if !state.stopping {
				logger.InfoWf(ctx, "Resetting lifecycle history",
					zap.String("tenantID", params.TenantID),
					zap.Int("processedThisRun", state.processed),
				)
				return workflow.NewContinueAsNewError(ctx, w.MailboxLifecycle, MailboxLifecycleParams{
					TenantID:               params.TenantID,
					EmailAddress:           params.EmailAddress,
					CredentialRef:          params.CredentialRef,
					Pending:                state.pending,
					ResumeWatchExpiry:      state.watchExpiry,
					ResumeCredentialExpiry: state.credExpiry,
				})
			}
		}

		// The one suspension point: renewal deadline, notification, or stop
		if len(state.pending) == 0 && !state.stopping {
			state.phase = phaseActive
			timerCtx, cancelTimer := workflow.WithCancel(ctx)
			timer := workflow.NewTimer(timerCtx, state.renewAt.Sub(workflow.Now(ctx)))

			selector := workflow.NewSelector(ctx)
			selector.AddFuture(timer, func(workflow.Future) {})
			selector.AddReceive(notifCh, func(c workflow.ReceiveChannel, _ bool) {
				var n domain.ChangeNotification
				c.Receive(ctx, &n)
				state.pending = append(state.pending, n)
			})
			selector.AddReceive(stopCh, func(c workflow.ReceiveChannel, _ bool) {
				c.Receive(ctx, nil)
				state.stopping = true
			})
			selector.Select(ctx)
			cancelTimer()
			w.drainSignals(ctx, notifCh, stopCh, state)
		}

		// A stop observed here still lets an already-queued delta finish
		if len(state.pending) > 0 {
			state.phase = phaseProcessing
			if err := w.processNotifications(ctx, params, state); err != nil {
				state.phase = phaseError
				return err
			}
		}

		if state.stopping {
			break
		}

		if !workflow.Now(ctx).Before(state.renewAt) {
			w.renew(ctx, params, state)
		}
	}

	return w.stop(ctx, params, state)
}

// initialize persists the account, refreshes the credential and registers the
// watch. On a history reset the registration is skipped so the cursor and
// expiry carry over unchanged.
func (w *workerCore) initialize(ctx workflow.Context, params MailboxLifecycleParams, state *lifecycleState) error {
	info := workflow.GetInfo(ctx)

	var account *schema.SubscriptionAccount
	err := workflow.ExecuteActivity(ctx, w.executor.UpsertAccount, store.CreateAccountInput{
		TenantID:      params.TenantID,
		EmailAddress:  params.EmailAddress,
		CredentialRef: params.CredentialRef,
		WorkflowID:    info.WorkflowExecution.ID,
	}).Get(ctx, &account)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to upsert account: %w", err),
			zap.String("tenantID", params.TenantID),
		)
		return err
	}
	state.cursor = account.LastHistoryID
	state.errorCount = account.ErrorCount
	if account.LastError != nil {
		state.lastError = *account.LastError
	}

	if !params.ResumeWatchExpiry.IsZero() {
		state.watchExpiry = params.ResumeWatchExpiry
		state.credExpiry = params.ResumeCredentialExpiry
		return nil
	}

	var cred CredentialStatus
	err = workflow.ExecuteActivity(ctx, w.executor.RefreshCredential, params.CredentialRef).Get(ctx, &cred)
	if err != nil {
		return w.permanentAccountError(ctx, params, state, fmt.Errorf("refresh credential: %w", err))
	}
	state.credExpiry = cred.Expiry

	var watch gmail.WatchResult
	err = workflow.ExecuteActivity(ctx, w.executor.RegisterWatch, params.CredentialRef, params.EmailAddress).Get(ctx, &watch)
	if err != nil {
		return w.permanentAccountError(ctx, params, state, fmt.Errorf("register watch: %w", err))
	}

	err = workflow.ExecuteActivity(ctx, w.executor.UpdateAccountWatch,
		params.TenantID, params.EmailAddress, watch.Expiry, watch.HistoryID).Get(ctx, nil)
	if err != nil {
		return w.permanentAccountError(ctx, params, state, fmt.Errorf("record watch: %w", err))
	}

	state.watchExpiry = watch.Expiry
	if watch.HistoryID > state.cursor {
		state.cursor = watch.HistoryID
	}
	logger.InfoWf(ctx, "Watch registered",
		zap.String("tenantID", params.TenantID),
		zap.Uint64("cursor", state.cursor),
		zap.Time("watchExpiry", state.watchExpiry),
	)
	return nil
}

// processNotifications drains the pending queue in arrival order. Only a
// revoked credential stops the lifecycle; every other failure is recorded on
// the account and the loop continues.
func (w *workerCore) processNotifications(ctx workflow.Context, params MailboxLifecycleParams, state *lifecycleState) error {
	for len(state.pending) > 0 {
		notif := state.pending[0]
		state.pending = state.pending[1:]
		if err := w.handleNotification(ctx, params, state, notif); err != nil {
			return err
		}
	}
	return nil
}

// handleNotification fetches one delta and ingests every message in it. The
// cursor advances only after the whole delta is durably resolved, so a crash
// mid-batch replays from the old cursor and dedup absorbs the repeats.
func (w *workerCore) handleNotification(ctx workflow.Context, params MailboxLifecycleParams, state *lifecycleState, notif domain.ChangeNotification) error {
	fetchCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	})

	var delta gmail.DeltaResult
	err := workflow.ExecuteActivity(fetchCtx, w.executor.FetchDelta,
		params.CredentialRef, params.EmailAddress, state.cursor).Get(ctx, &delta)
	if err != nil {
		switch errType(err) {
		case ErrTypeCredentialRevoked:
			return w.permanentAccountError(ctx, params, state, fmt.Errorf("fetch delta: %w", err))
		case ErrTypeCursorExpired:
			logger.WarnWf(ctx, "History cursor expired, re-registering watch",
				zap.String("tenantID", params.TenantID),
				zap.Uint64("cursor", state.cursor),
			)
			w.recordAccountError(ctx, params, state, fmt.Errorf("cursor expired at %d: %w", state.cursor, err))
			w.renew(ctx, params, state)
			return nil
		default:
			// The cursor is unchanged; the next notification retries this span
			w.recordAccountError(ctx, params, state, fmt.Errorf("fetch delta: %w", err))
			return nil
		}
	}

	logger.InfoWf(ctx, "Processing delta",
		zap.String("tenantID", params.TenantID),
		zap.Uint64("fromCursor", state.cursor),
		zap.Uint64("toCursor", delta.NewHistoryID),
		zap.Int("messages", len(delta.Messages)),
	)

	for i := range delta.Messages {
		if err := w.ingestMessage(ctx, params, state, delta.Messages[i]); err != nil {
			if errType(err) == ErrTypeCredentialRevoked {
				return w.permanentAccountError(ctx, params, state, err)
			}
			// Recorded against the account; the message stays unprocessed and
			// the cursor stays put so a later delta replays it
			w.recordAccountError(ctx, params, state, err)
			return nil
		}
	}

	if delta.NewHistoryID > state.cursor {
		err = workflow.ExecuteActivity(ctx, w.executor.AdvanceCursor,
			params.TenantID, params.EmailAddress, delta.NewHistoryID).Get(ctx, nil)
		if err != nil {
			w.recordAccountError(ctx, params, state, fmt.Errorf("advance cursor: %w", err))
			return nil
		}
		state.cursor = delta.NewHistoryID
	}
	state.processed += len(delta.Messages)
	return nil
}

// renew refreshes the credential when needed and re-registers the watch. A
// failure schedules a retry instead of stopping notification handling.
func (w *workerCore) renew(ctx workflow.Context, params MailboxLifecycleParams, state *lifecycleState) {
	state.phase = phaseRenewing
	now := workflow.Now(ctx)

	if state.credExpiry.IsZero() || !now.Add(credentialRefreshMargin).Before(state.credExpiry) {
		var cred CredentialStatus
		err := workflow.ExecuteActivity(ctx, w.executor.RefreshCredential, params.CredentialRef).Get(ctx, &cred)
		if err != nil {
			w.recordAccountError(ctx, params, state, fmt.Errorf("refresh credential: %w", err))
			state.renewAt = now.Add(w.config.RenewalRetryInterval)
			return
		}
		state.credExpiry = cred.Expiry
	}

	var watch gmail.WatchResult
	err := workflow.ExecuteActivity(ctx, w.executor.RegisterWatch, params.CredentialRef, params.EmailAddress).Get(ctx, &watch)
	if err != nil {
		w.recordAccountError(ctx, params, state, fmt.Errorf("renew watch: %w", err))
		state.renewAt = now.Add(w.config.RenewalRetryInterval)
		return
	}

	err = workflow.ExecuteActivity(ctx, w.executor.UpdateAccountWatch,
		params.TenantID, params.EmailAddress, watch.Expiry, watch.HistoryID).Get(ctx, nil)
	if err != nil {
		w.recordAccountError(ctx, params, state, fmt.Errorf("record renewed watch: %w", err))
		state.renewAt = now.Add(w.config.RenewalRetryInterval)
		return
	}

	state.watchExpiry = watch.Expiry
	if watch.HistoryID > state.cursor {
		state.cursor = watch.HistoryID
	}
	state.renewAt = watch.Expiry.Add(-w.config.RenewalBuffer)
	logger.InfoWf(ctx, "Watch renewed",
		zap.String("tenantID", params.TenantID),
		zap.Time("watchExpiry", state.watchExpiry),
		zap.Uint64("cursor", state.cursor),
	)
}

// stop deregisters the watch best-effort and marks the account inactive
func (w *workerCore) stop(ctx workflow.Context, params MailboxLifecycleParams, state *lifecycleState) error {
	state.phase = phaseStopping
	logger.InfoWf(ctx, "Stopping mailbox lifecycle",
		zap.String("tenantID", params.TenantID),
		zap.String("emailAddress", params.EmailAddress),
	)

	stopCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 2},
	})
	err := workflow.ExecuteActivity(stopCtx, w.executor.DeregisterWatch,
		params.CredentialRef, params.EmailAddress).Get(ctx, nil)
	if err != nil {
		// The account goes inactive regardless
		logger.WarnWf(ctx, "Failed to deregister watch",
			zap.String("tenantID", params.TenantID),
			zap.Error(err),
		)
	}

	err = workflow.ExecuteActivity(ctx, w.executor.DeactivateAccount,
		params.TenantID, params.EmailAddress).Get(ctx, nil)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to deactivate account: %w", err),
			zap.String("tenantID", params.TenantID),
		)
		return err
	}
	state.phase = phaseStopped
	return nil
}

// drainSignals absorbs everything already queued without blocking
func (w *workerCore) drainSignals(ctx workflow.Context, notifCh, stopCh workflow.ReceiveChannel, state *lifecycleState) {
	for {
		var n domain.ChangeNotification
		if !notifCh.ReceiveAsync(&n) {
			break
		}
		state.pending = append(state.pending, n)
	}
	for stopCh.ReceiveAsync(nil) {
		state.stopping = true
	}
}

// shouldReset reports whether this run's replay history has grown past the
// configured bounds
func (w *workerCore) shouldReset(ctx workflow.Context, state *lifecycleState) bool {
	if w.config.HistoryEventLimit > 0 && workflow.GetInfo(ctx).GetCurrentHistoryLength() > w.config.HistoryEventLimit {
		return true
	}
	if w.config.MaxRunDuration > 0 && workflow.Now(ctx).Sub(state.startedAt) > w.config.MaxRunDuration {
		return true
	}
	return false
}

// recordAccountError notes a recoverable failure on the account and keeps
// the loop running
func (w *workerCore) recordAccountError(ctx workflow.Context, params MailboxLifecycleParams, state *lifecycleState, cause error) {
	state.lastError = cause.Error()
	state.errorCount++
	logger.ErrorWf(ctx, cause,
		zap.String("tenantID", params.TenantID),
		zap.String("emailAddress", params.EmailAddress),
	)
	err := workflow.ExecuteActivity(ctx, w.executor.RecordAccountError,
		params.TenantID, params.EmailAddress, cause.Error()).Get(ctx, nil)
	if err != nil {
		logger.WarnWf(ctx, "Failed to record account error", zap.Error(err))
	}
}

// permanentAccountError records the failure, deactivates the account and
// returns the error that ends the lifecycle
func (w *workerCore) permanentAccountError(ctx workflow.Context, params MailboxLifecycleParams, state *lifecycleState, cause error) error {
	w.recordAccountError(ctx, params, state, cause)
	err := workflow.ExecuteActivity(ctx, w.executor.DeactivateAccount,
		params.TenantID, params.EmailAddress).Get(ctx, nil)
	if err != nil {
		logger.WarnWf(ctx, "Failed to deactivate account", zap.Error(err))
	}
	return cause
}

// errType extracts the application error type from an activity failure
func errType(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Type()
	}
	return ""
}
