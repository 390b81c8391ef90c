// Package extraction turns a matched message into structured transaction
// fields by prompting an LLM and validating the JSON it returns. A response
// that fails validation is a zero-confidence outcome, never an error.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/ledgersift/mail-ingestor/internal/domain"
)

const (
	temperature = 0.1

	systemInstructions = `You extract one financial transaction from an email.
Respond with a single JSON object and nothing else, using exactly these keys:
{"date":"YYYY-MM-DD","merchant":"...","amount":0.0,"currency":"XXX","category":"...","direction":"debit|credit","account_ref":"...","confidence":0.0}
"category" must be one of: %s.
"confidence" is your own 0.0-1.0 estimate of how certain the extraction is.
If a field is absent from the email, make your best inference and lower the confidence.`
)

// Config selects the model endpoint
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Invoker prompts a model and validates its output
type Invoker struct {
	model llms.Model
}

// New creates an invoker backed by an OpenAI-compatible endpoint
func New(cfg Config) (*Invoker, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create extraction model: %w", err)
	}
	return &Invoker{model: model}, nil
}

// NewWithModel creates an invoker over an existing model, used by tests
func NewWithModel(model llms.Model) *Invoker {
	return &Invoker{model: model}
}

// rawResult mirrors the JSON shape the prompt demands
type rawResult struct {
	Date       string   `json:"date"`
	Merchant   string   `json:"merchant"`
	Amount     *float64 `json:"amount"`
	Currency   string   `json:"currency"`
	Category   string   `json:"category"`
	Direction  string   `json:"direction"`
	AccountRef string   `json:"account_ref"`
	Confidence *float64 `json:"confidence"`
}

// Extract runs the rule's prompt against the message content. Transport
// errors are returned for retry; a response the model produced but that fails
// validation comes back as a zero-confidence outcome instead.
func (inv *Invoker) Extract(ctx context.Context, prompt string, msg domain.EmailMessage) (domain.ExtractionOutcome, error) {
	content := fmt.Sprintf("From: %s\nSubject: %s\nDate: %s\n\n%s",
		msg.From, msg.Subject, msg.Date.Format(time.RFC3339), msg.Body)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem,
			fmt.Sprintf(systemInstructions, strings.Join(categoryNames(), ", "))),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt+"\n\n"+content),
	}

	resp, err := inv.model.GenerateContent(ctx, messages,
		llms.WithTemperature(temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return domain.ExtractionOutcome{}, fmt.Errorf("generate extraction: %w", err)
	}
	if len(resp.Choices) == 0 {
		return failure(nil, "model returned no choices"), nil
	}

	raw := []byte(stripFences(resp.Choices[0].Content))
	var parsed rawResult
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return failure(raw, fmt.Sprintf("unparseable response: %v", err)), nil
	}
	fields, reason := validate(parsed)
	if reason != "" {
		return failure(raw, reason), nil
	}

	confidence := 0.0
	if parsed.Confidence != nil {
		confidence = *parsed.Confidence
	}
	if confidence < 0 || confidence > 1 {
		return failure(raw, fmt.Sprintf("confidence %v out of range", confidence)), nil
	}
	return domain.ExtractionOutcome{Fields: fields, Confidence: confidence, Raw: raw}, nil
}

func validate(r rawResult) (*domain.ExtractedFields, string) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, fmt.Sprintf("invalid date %q", r.Date)
	}
	if strings.TrimSpace(r.Merchant) == "" {
		return nil, "missing merchant"
	}
	if r.Amount == nil {
		return nil, "missing amount"
	}
	if *r.Amount <= 0 {
		return nil, fmt.Sprintf("non-positive amount %v", *r.Amount)
	}
	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if len(currency) != 3 {
		return nil, fmt.Sprintf("invalid currency %q", r.Currency)
	}
	category := domain.Category(strings.ToLower(strings.TrimSpace(r.Category)))
	if !category.Valid() {
		return nil, fmt.Sprintf("unknown category %q", r.Category)
	}
	direction := domain.Direction(strings.ToLower(strings.TrimSpace(r.Direction)))
	if !direction.Valid() {
		return nil, fmt.Sprintf("invalid direction %q", r.Direction)
	}
	return &domain.ExtractedFields{
		Date:       date,
		Merchant:   strings.TrimSpace(r.Merchant),
		Amount:     *r.Amount,
		Currency:   currency,
		Category:   category,
		Direction:  direction,
		AccountRef: strings.TrimSpace(r.AccountRef),
	}, ""
}

func failure(raw []byte, reason string) domain.ExtractionOutcome {
	return domain.ExtractionOutcome{Confidence: 0, Raw: raw, FailureReason: reason}
}

// stripFences tolerates models that wrap JSON in a markdown code block
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func categoryNames() []string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return names
}
