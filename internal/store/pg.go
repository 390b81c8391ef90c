package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledgersift/mail-ingestor/internal/domain"
	"github.com/ledgersift/mail-ingestor/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values. database/sql treats MaxOpenConns=0 as "unlimited" and
// MaxIdleConns=0 as "no idle connections", neither of which we want by default.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// UpsertAccount creates the subscription account or refreshes the credential
// reference and workflow id of an existing one, reactivating it
func (s *pgStore) UpsertAccount(ctx context.Context, input CreateAccountInput) (*schema.SubscriptionAccount, error) {
	account := schema.SubscriptionAccount{
		TenantID:      input.TenantID,
		EmailAddress:  input.EmailAddress,
		CredentialRef: input.CredentialRef,
		WorkflowID:    input.WorkflowID,
		IsActive:      true,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "email_address"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"credential_ref": input.CredentialRef,
			"workflow_id":    input.WorkflowID,
			"is_active":      true,
			"updated_at":     gorm.Expr("now()"),
		}),
	}).Create(&account).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert subscription account: %w", err)
	}

	// The upsert path does not populate generated columns; read the row back
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND email_address = ?", input.TenantID, input.EmailAddress).
		First(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to load subscription account: %w", err)
	}

	return &account, nil
}

// GetAccount retrieves a subscription account by tenant and mailbox
func (s *pgStore) GetAccount(ctx context.Context, tenantID, emailAddress string) (*schema.SubscriptionAccount, error) {
	var account schema.SubscriptionAccount
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND email_address = ?", tenantID, emailAddress).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrAccountNotFound, tenantID, emailAddress)
		}
		return nil, fmt.Errorf("failed to get subscription account: %w", err)
	}

	return &account, nil
}

// UpdateAccountWatch records a successful watch registration
func (s *pgStore) UpdateAccountWatch(ctx context.Context, tenantID, emailAddress string, expiry time.Time, historyID uint64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.SubscriptionAccount{}).
		Where("tenant_id = ? AND email_address = ?", tenantID, emailAddress).
		Updates(map[string]interface{}{
			"watch_expiry": expiry,
			// The watch response reports the mailbox's current history id; only
			// move forward so a re-registration never rewinds the cursor
			"last_history_id": gorm.Expr("GREATEST(last_history_id, ?)", historyID),
			"updated_at":      gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update account watch: %w", err)
	}

	return nil
}

// AdvanceAccountCursor moves the cursor forward; a stale historyID is a no-op
func (s *pgStore) AdvanceAccountCursor(ctx context.Context, tenantID, emailAddress string, historyID uint64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.SubscriptionAccount{}).
		Where("tenant_id = ? AND email_address = ? AND last_history_id < ?", tenantID, emailAddress, historyID).
		Updates(map[string]interface{}{
			"last_history_id": historyID,
			"updated_at":      gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to advance account cursor: %w", err)
	}

	return nil
}

// RecordAccountError increments the error counter and stores the last error
func (s *pgStore) RecordAccountError(ctx context.Context, tenantID, emailAddress, message string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.SubscriptionAccount{}).
		Where("tenant_id = ? AND email_address = ?", tenantID, emailAddress).
		Updates(map[string]interface{}{
			"error_count": gorm.Expr("error_count + 1"),
			"last_error":  message,
			"updated_at":  gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record account error: %w", err)
	}

	return nil
}

// DeactivateAccount soft-deletes the account
func (s *pgStore) DeactivateAccount(ctx context.Context, tenantID, emailAddress string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.SubscriptionAccount{}).
		Where("tenant_id = ? AND email_address = ?", tenantID, emailAddress).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	return nil
}

// GetSourceMessage retrieves a source message by its per-tenant provider id
func (s *pgStore) GetSourceMessage(ctx context.Context, tenantID, providerMessageID string) (*schema.SourceMessage, error) {
	var msg schema.SourceMessage
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND provider_message_id = ?", tenantID, providerMessageID).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get source message: %w", err)
	}

	return &msg, nil
}

// CreateSourceMessage persists a raw message; on the (tenant_id,
// provider_message_id) conflict it returns the existing row with created=false
func (s *pgStore) CreateSourceMessage(ctx context.Context, input CreateSourceMessageInput) (*schema.SourceMessage, bool, error) {
	msg := schema.SourceMessage{
		TenantID:          input.TenantID,
		ProviderMessageID: input.ProviderMessageID,
		ThreadID:          input.ThreadID,
		FromAddress:       input.FromAddress,
		ToAddress:         input.ToAddress,
		Subject:           input.Subject,
		MessageDate:       input.MessageDate,
		Body:              input.Body,
		WorkflowID:        input.WorkflowID,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "provider_message_id"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(&msg).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to create source message: %w", err)
	}

	// ID == 0 means the insert hit the conflict; fetch the existing row
	if msg.ID == 0 {
		existing, err := s.GetSourceMessage(ctx, input.TenantID, input.ProviderMessageID)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, fmt.Errorf("source message vanished after conflict: %s", input.ProviderMessageID)
		}
		return existing, false, nil
	}

	return &msg, true, nil
}

// MarkMessageFailed records a terminal per-message failure
func (s *pgStore) MarkMessageFailed(ctx context.Context, messageID uint64, reason string, ruleID *uint64, confidence *float64) error {
	updates := map[string]interface{}{
		"processed":        false,
		"processing_error": reason,
		"updated_at":       gorm.Expr("now()"),
	}
	if ruleID != nil {
		updates["matched_rule_id"] = *ruleID
	}
	if confidence != nil {
		updates["confidence"] = *confidence
	}

	err := s.db.WithContext(ctx).
		Model(&schema.SourceMessage{}).
		Where("id = ?", messageID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to mark message failed: %w", err)
	}

	return nil
}

// MarkMessageProcessed records a terminal per-message success with links to
// the rule and result
func (s *pgStore) MarkMessageProcessed(ctx context.Context, messageID uint64, ruleID, resultID uint64, confidence float64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.SourceMessage{}).
		Where("id = ?", messageID).
		Updates(map[string]interface{}{
			"processed":        true,
			"processing_error": nil,
			"matched_rule_id":  ruleID,
			"result_id":        resultID,
			"confidence":       confidence,
			"updated_at":       gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark message processed: %w", err)
	}

	return nil
}

// GetActiveRules retrieves a tenant's active rules ordered by priority
// descending then creation order
func (s *pgStore) GetActiveRules(ctx context.Context, tenantID string) ([]*schema.MatchRule, error) {
	var rules []*schema.MatchRule
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("priority DESC, id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active rules: %w", err)
	}

	return rules, nil
}

// CreateExtractedResult persists an accepted extraction; on the (tenant_id,
// source_message_id) conflict it returns the existing row's id with created=false
func (s *pgStore) CreateExtractedResult(ctx context.Context, input CreateExtractedResultInput) (uint64, bool, error) {
	result := schema.ExtractedResult{
		TenantID:        input.TenantID,
		SourceMessageID: input.SourceMessageID,
		TransactionDate: input.TransactionDate,
		Merchant:        input.Merchant,
		Amount:          input.Amount,
		Currency:        input.Currency,
		Category:        input.Category,
		Direction:       input.Direction,
		AccountRef:      input.AccountRef,
		Confidence:      input.Confidence,
		Raw:             input.Raw,
		RunID:           input.RunID,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "source_message_id"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(&result).Error
	if err != nil {
		return 0, false, fmt.Errorf("failed to create extracted result: %w", err)
	}

	// ID == 0 means a result already exists for this source message; the
	// duplicate is absorbed, never overwritten
	if result.ID == 0 {
		var existing schema.ExtractedResult
		err := s.db.WithContext(ctx).
			Where("tenant_id = ? AND source_message_id = ?", input.TenantID, input.SourceMessageID).
			First(&existing).Error
		if err != nil {
			return 0, false, fmt.Errorf("failed to load existing extracted result: %w", err)
		}
		return existing.ID, false, nil
	}

	return result.ID, true, nil
}

// IncrementRuleMatched bumps the rule's success counter and success rate
// atomically. The expressions read the pre-update column values, so the rate
// is computed against the incremented counts in a single statement.
func (s *pgStore) IncrementRuleMatched(ctx context.Context, ruleID uint64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.MatchRule{}).
		Where("id = ?", ruleID).
		Updates(map[string]interface{}{
			"matched_count": gorm.Expr("matched_count + 1"),
			"success_rate":  gorm.Expr("(matched_count + 1)::float / (matched_count + 1 + failed_count)"),
			"updated_at":    gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to increment rule matched count: %w", err)
	}

	return nil
}

// IncrementRuleFailed bumps the rule's failure counter and success rate atomically
func (s *pgStore) IncrementRuleFailed(ctx context.Context, ruleID uint64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.MatchRule{}).
		Where("id = ?", ruleID).
		Updates(map[string]interface{}{
			"failed_count": gorm.Expr("failed_count + 1"),
			"success_rate": gorm.Expr("matched_count::float / (matched_count + failed_count + 1)"),
			"updated_at":   gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to increment rule failed count: %w", err)
	}

	return nil
}
