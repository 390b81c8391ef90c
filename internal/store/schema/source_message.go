package schema

import (
	"time"
)

// SourceMessage represents the source_messages table - the raw record of every
// provider message seen for a tenant. Created on first sight, updated exactly
// once to processed=true or to a terminal error state, never deleted.
// (tenant_id, provider_message_id) is the first dedup key of the pipeline.
type SourceMessage struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TenantID identifies the owning tenant
	TenantID string `gorm:"column:tenant_id;not null;type:text;uniqueIndex:idx_messages_tenant_provider,priority:1"`
	// ProviderMessageID is the provider-assigned message id, unique per tenant
	ProviderMessageID string `gorm:"column:provider_message_id;not null;type:text;uniqueIndex:idx_messages_tenant_provider,priority:2"`
	// ThreadID is the provider conversation id
	ThreadID string `gorm:"column:thread_id;type:text"`
	// FromAddress is the raw From header
	FromAddress string `gorm:"column:from_address;type:text"`
	// ToAddress is the raw To header
	ToAddress string `gorm:"column:to_address;type:text"`
	// Subject is the message subject
	Subject string `gorm:"column:subject;type:text"`
	// MessageDate is the Date header of the message
	MessageDate time.Time `gorm:"column:message_date;type:timestamptz"`
	// Body is the plain-text body
	Body string `gorm:"column:body;type:text"`
	// Processed indicates the pipeline reached a terminal success for this message
	Processed bool `gorm:"column:processed;not null;default:false"`
	// WorkflowID is the lifecycle run that ingested this message
	WorkflowID string `gorm:"column:workflow_id;type:text"`
	// MatchedRuleID links the rule that matched, when one did
	MatchedRuleID *uint64 `gorm:"column:matched_rule_id"`
	// ResultID links the persisted extracted result, when one was accepted
	ResultID *uint64 `gorm:"column:result_id"`
	// Confidence is the extraction confidence observed for this message
	Confidence *float64 `gorm:"column:confidence"`
	// ProcessingError is the terminal per-message failure reason, when processing failed
	ProcessingError *string `gorm:"column:processing_error;type:text"`
	// CreatedAt is when the raw message was first persisted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when processing metadata was last written
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the SourceMessage model
func (SourceMessage) TableName() string {
	return "source_messages"
}
