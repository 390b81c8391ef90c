package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ExtractedResult represents the extracted_results table - the structured
// transaction extracted from one source message. Immutable once created;
// (tenant_id, source_message_id) is the second dedup key of the pipeline and
// a second extraction attempt for the same source message is a no-op.
type ExtractedResult struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TenantID identifies the owning tenant
	TenantID string `gorm:"column:tenant_id;not null;type:text;uniqueIndex:idx_results_tenant_message,priority:1"`
	// SourceMessageID references the source message this result was extracted from
	SourceMessageID uint64 `gorm:"column:source_message_id;not null;uniqueIndex:idx_results_tenant_message,priority:2"`
	// TransactionDate is the transaction date reported in the message
	TransactionDate time.Time `gorm:"column:transaction_date;not null;type:timestamptz"`
	// Merchant is the counterparty name
	Merchant string `gorm:"column:merchant;not null;type:text"`
	// Amount is the transaction amount, always positive
	Amount float64 `gorm:"column:amount;not null"`
	// Currency is the ISO 4217 currency code
	Currency string `gorm:"column:currency;not null;type:varchar(3)"`
	// Category is one of the closed category set
	Category string `gorm:"column:category;not null;type:text"`
	// Direction is debit or credit
	Direction string `gorm:"column:direction;not null;type:text"`
	// AccountRef is the masked account reference from the message
	AccountRef string `gorm:"column:account_ref;type:text"`
	// Confidence is the extraction confidence that passed the gate
	Confidence float64 `gorm:"column:confidence;not null"`
	// Raw is the unparsed extractor response, kept for audit
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// RunID is the workflow run that produced this result
	RunID string `gorm:"column:run_id;not null;type:text"`
	// CreatedAt is when the result was persisted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ExtractedResult model
func (ExtractedResult) TableName() string {
	return "extracted_results"
}
