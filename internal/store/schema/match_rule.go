package schema

import (
	"time"

	"gorm.io/datatypes"
)

// MatchRule represents the match_rules table - tenant-configured criteria
// mapping a message's sender/subject/body to an extraction prompt. Rule
// content is seeded externally; only the usage counters mutate here.
type MatchRule struct {
	// ID is the internal database primary key; creation order breaks score ties
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TenantID identifies the owning tenant
	TenantID string `gorm:"column:tenant_id;not null;type:text;index:idx_rules_tenant_active,priority:1"`
	// BankName is the human-readable source name (e.g. "Chase", "Revolut")
	BankName string `gorm:"column:bank_name;not null;type:text"`
	// FromAddresses is a JSON array of sender addresses or fragments to match
	FromAddresses datatypes.JSON `gorm:"column:from_addresses;not null;type:jsonb"`
	// SubjectPatterns is a JSON array of regular expressions applied to the subject
	SubjectPatterns datatypes.JSON `gorm:"column:subject_patterns;type:jsonb"`
	// BodyKeywords is a JSON array of case-insensitive keywords applied to the body
	BodyKeywords datatypes.JSON `gorm:"column:body_keywords;type:jsonb"`
	// ExtractionPrompt is the rule-specific prompt fed to the extraction model
	ExtractionPrompt string `gorm:"column:extraction_prompt;not null;type:text"`
	// IsActive indicates whether the rule participates in matching
	IsActive bool `gorm:"column:is_active;not null;default:true;index:idx_rules_tenant_active,priority:2"`
	// Priority is the tenant-assigned base score and tie breaker
	Priority int `gorm:"column:priority;not null;default:0"`
	// MatchedCount counts messages that matched this rule and extracted successfully
	MatchedCount int64 `gorm:"column:matched_count;not null;default:0"`
	// FailedCount counts messages that matched but failed the confidence gate
	FailedCount int64 `gorm:"column:failed_count;not null;default:0"`
	// SuccessRate is matched_count/(matched_count+failed_count), maintained atomically
	SuccessRate float64 `gorm:"column:success_rate;not null;default:0"`
	// CreatedAt is when the rule was seeded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the counters were last bumped
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MatchRule model
func (MatchRule) TableName() string {
	return "match_rules"
}
