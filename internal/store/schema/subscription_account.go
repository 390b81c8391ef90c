package schema

import (
	"time"
)

// SubscriptionAccount represents the subscription_accounts table - one row per
// linked tenant mailbox. Created on link request, mutated by the lifecycle
// workflow on every renewal/fetch/error, soft-deleted (inactive) on unlink.
type SubscriptionAccount struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TenantID identifies the owning tenant
	TenantID string `gorm:"column:tenant_id;not null;type:text;uniqueIndex:idx_accounts_tenant_email,priority:1"`
	// EmailAddress is the watched mailbox address
	EmailAddress string `gorm:"column:email_address;not null;type:text;uniqueIndex:idx_accounts_tenant_email,priority:2"`
	// CredentialRef references the stored refresh token for this mailbox
	CredentialRef string `gorm:"column:credential_ref;not null;type:text"`
	// WatchExpiry is when the current Gmail watch registration expires
	WatchExpiry *time.Time `gorm:"column:watch_expiry;type:timestamptz"`
	// LastHistoryID is the last fully processed history cursor
	LastHistoryID uint64 `gorm:"column:last_history_id;not null;default:0"`
	// IsActive indicates whether the mailbox subscription is live
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// ErrorCount counts unrecoverable external errors observed by the lifecycle
	ErrorCount int `gorm:"column:error_count;not null;default:0"`
	// LastError is the most recent account-level error message
	LastError *string `gorm:"column:last_error;type:text"`
	// WorkflowID is the lifecycle workflow id owning this account
	WorkflowID string `gorm:"column:workflow_id;not null;type:text"`
	// CreatedAt is when the account was linked
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the account row was last mutated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the SubscriptionAccount model
func (SubscriptionAccount) TableName() string {
	return "subscription_accounts"
}
