package domain

import (
	"strings"
	"time"
)

// Category is the closed set of transaction categories the extractor may emit
type Category string

const (
	CategoryGroceries     Category = "groceries"
	CategoryDining        Category = "dining"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryTravel        Category = "travel"
	CategoryIncome        Category = "income"
	CategoryTransfer      Category = "transfer"
	CategoryFees          Category = "fees"
	CategoryOther         Category = "other"
)

// Categories lists every accepted category, in the order shown to the extractor prompt
var Categories = []Category{
	CategoryGroceries,
	CategoryDining,
	CategoryTransport,
	CategoryShopping,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealth,
	CategoryTravel,
	CategoryIncome,
	CategoryTransfer,
	CategoryFees,
	CategoryOther,
}

// Valid reports whether the category belongs to the closed set
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Direction indicates whether a transaction moves money out of or into the account
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Valid reports whether the direction is one of the two accepted values
func (d Direction) Valid() bool {
	return d == DirectionDebit || d == DirectionCredit
}

// ChangeNotification is the decoded form of a Gmail Pub/Sub push payload.
// It is ephemeral: consumed once by the lifecycle workflow, never persisted.
type ChangeNotification struct {
	// TenantID identifies the tenant whose mailbox changed
	TenantID string `json:"tenant_id"`
	// EmailAddress is the watched mailbox address
	EmailAddress string `json:"email_address"`
	// HistoryID is the opaque cursor hint reported by the provider
	HistoryID uint64 `json:"history_id"`
	// ReceivedAt is when the push payload reached the ingress
	ReceivedAt time.Time `json:"received_at"`
}

// Valid reports whether the notification carries the minimum usable fields
func (n ChangeNotification) Valid() bool {
	return n.TenantID != "" && n.EmailAddress != "" && n.HistoryID > 0
}

// EmailMessage is a fetched message candidate before persistence.
// FetchError is set when the per-message body fetch failed permanently; such
// candidates still count toward resolving the delta.
type EmailMessage struct {
	ProviderMessageID string    `json:"provider_message_id"`
	ThreadID          string    `json:"thread_id"`
	From              string    `json:"from"`
	To                string    `json:"to"`
	Subject           string    `json:"subject"`
	Date              time.Time `json:"date"`
	Body              string    `json:"body"`
	FetchError        *string   `json:"fetch_error,omitempty"`
}

// Valid reports whether the message candidate is usable for ingestion
func (m EmailMessage) Valid() bool {
	return m.ProviderMessageID != "" && m.FetchError == nil
}

// SenderAddress extracts the bare address from a possibly display-named
// From header, lowercased ("Acme Bank <alerts@acme.com>" -> "alerts@acme.com")
func (m EmailMessage) SenderAddress() string {
	from := strings.TrimSpace(m.From)
	if start := strings.LastIndex(from, "<"); start >= 0 {
		if end := strings.LastIndex(from, ">"); end > start {
			from = from[start+1 : end]
		}
	}
	return strings.ToLower(strings.TrimSpace(from))
}

// ExtractedFields is the validated structured output of one extraction call
type ExtractedFields struct {
	// Date is the transaction date reported in the message
	Date time.Time `json:"date"`
	// Merchant is the counterparty name
	Merchant string `json:"merchant"`
	// Amount is the transaction amount, always positive
	Amount float64 `json:"amount"`
	// Currency is the ISO 4217 currency code
	Currency string `json:"currency"`
	// Category is one of the closed category set
	Category Category `json:"category"`
	// Direction is debit or credit
	Direction Direction `json:"direction"`
	// AccountRef is the masked account reference from the message (e.g. "****1234")
	AccountRef string `json:"account_ref"`
}

// ExtractionOutcome is the result of one extraction attempt. A malformed
// model response yields Fields == nil with Confidence forced to 0, never an error.
type ExtractionOutcome struct {
	Fields     *ExtractedFields `json:"fields,omitempty"`
	Confidence float64          `json:"confidence"`
	// Raw is the unparsed model response, kept for audit
	Raw []byte `json:"raw,omitempty"`
	// FailureReason is set when the response failed validation
	FailureReason string `json:"failure_reason,omitempty"`
}

// Processing failure reasons recorded on a SourceMessage as terminal
// per-message outcomes.
const (
	FailureNoMatchingRule = "no matching rule"
	FailureLowConfidence  = "low confidence"
	FailureFetch          = "message fetch failed"
)
