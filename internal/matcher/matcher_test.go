package matcher

import (
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/ledgersift/mail-ingestor/internal/domain"
	"github.com/ledgersift/mail-ingestor/internal/logger"
	"github.com/ledgersift/mail-ingestor/internal/store/schema"
)

func TestMain(m *testing.M) {
	_ = logger.Initialize(logger.Config{Debug: true})
	os.Exit(m.Run())
}

func testRule(id uint64, priority int, from []string, subjects []string, keywords []string) Rule {
	r := Rule{
		ID:               id,
		BankName:         "Test Bank",
		Priority:         priority,
		FromAddresses:    from,
		BodyKeywords:     keywords,
		ExtractionPrompt: "extract",
	}
	for _, p := range subjects {
		r.SubjectPatterns = append(r.SubjectPatterns, regexp.MustCompile("(?i)"+p))
	}
	return r
}

func testMsg(from, subject, body string) domain.EmailMessage {
	return domain.EmailMessage{
		ProviderMessageID: "m-1",
		From:              from,
		Subject:           subject,
		Body:              body,
		Date:              time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBest_Scoring(t *testing.T) {
	tests := []struct {
		name      string
		msg       domain.EmailMessage
		rule      Rule
		wantScore int
		wantOK    bool
	}{
		{
			name:      "exact sender match",
			msg:       testMsg("no-reply@alerts.chase.com", "Receipt", "total"),
			rule:      testRule(1, 0, []string{"no-reply@alerts.chase.com"}, nil, nil),
			wantScore: 10,
			wantOK:    true,
		},
		{
			name:      "exact sender match through display name",
			msg:       testMsg("Chase Alerts <No-Reply@Alerts.Chase.com>", "Receipt", "total"),
			rule:      testRule(1, 0, []string{"no-reply@alerts.chase.com"}, nil, nil),
			wantScore: 10,
			wantOK:    true,
		},
		{
			name:      "partial sender match on domain fragment",
			msg:       testMsg("receipts@mail.revolut.com", "Receipt", "total"),
			rule:      testRule(1, 0, []string{"revolut.com"}, nil, nil),
			wantScore: 5,
			wantOK:    true,
		},
		{
			name:   "no sender match discards the rule",
			msg:    testMsg("spam@example.org", "Receipt", "total"),
			rule:   testRule(1, 0, []string{"chase.com"}, nil, nil),
			wantOK: false,
		},
		{
			name:      "subject hits add two each",
			msg:       testMsg("a@chase.com", "Your card transaction alert", ""),
			rule:      testRule(1, 0, []string{"chase.com"}, []string{"transaction", "card"}, nil),
			wantScore: 5 + 2 + 2,
			wantOK:    true,
		},
		{
			name:   "declared subject patterns with zero hits discard the rule",
			msg:    testMsg("a@chase.com", "Weekly newsletter", "transaction inside body"),
			rule:   testRule(1, 0, []string{"chase.com"}, []string{"transaction"}, nil),
			wantOK: false,
		},
		{
			name:      "body keywords add one each case-insensitively",
			msg:       testMsg("a@chase.com", "Alert", "You SPENT $12 at a MERCHANT"),
			rule:      testRule(1, 0, []string{"chase.com"}, nil, []string{"spent", "merchant"}),
			wantScore: 5 + 1 + 1,
			wantOK:    true,
		},
		{
			name:   "declared body keywords with zero hits discard the rule",
			msg:    testMsg("a@chase.com", "Alert", "nothing relevant"),
			rule:   testRule(1, 0, []string{"chase.com"}, nil, []string{"spent"}),
			wantOK: false,
		},
		{
			name:      "priority contributes to the score",
			msg:       testMsg("a@chase.com", "Alert", ""),
			rule:      testRule(1, 7, []string{"chase.com"}, nil, nil),
			wantScore: 5 + 7,
			wantOK:    true,
		},
		{
			name:   "negative priority can sink the total below zero",
			msg:    testMsg("a@chase.com", "Alert", ""),
			rule:   testRule(1, -20, []string{"chase.com"}, nil, nil),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := Best(tt.msg, []Rule{tt.rule})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantScore, match.Score)
			}
		})
	}
}

func TestBest_TieBreaking(t *testing.T) {
	msg := testMsg("a@chase.com", "Alert", "")

	t.Run("equal scores go to the higher priority", func(t *testing.T) {
		// Both score partial sender plus priority; shift the sender bonus so
		// the totals collide: 5+7 vs 10+2
		low := testRule(1, 7, []string{"chase.com"}, nil, nil)
		high := testRule(2, 2, []string{"a@chase.com"}, nil, nil)

		match, ok := Best(msg, []Rule{low, high})
		require.True(t, ok)
		assert.Equal(t, uint64(1), match.Rule.ID, "same score, priority 7 beats priority 2")
	})

	t.Run("equal score and priority go to the older rule", func(t *testing.T) {
		a := testRule(4, 3, []string{"chase.com"}, nil, nil)
		b := testRule(2, 3, []string{"chase.com"}, nil, nil)

		match, ok := Best(msg, []Rule{a, b})
		require.True(t, ok)
		assert.Equal(t, uint64(2), match.Rule.ID)
	})

	t.Run("higher score wins regardless of priority", func(t *testing.T) {
		strong := testRule(1, 0, []string{"a@chase.com"}, nil, nil)
		weak := testRule(2, 4, []string{"chase.com"}, nil, nil)

		match, ok := Best(msg, []Rule{weak, strong})
		require.True(t, ok)
		assert.Equal(t, uint64(1), match.Rule.ID)
	})
}

func TestCompile(t *testing.T) {
	stored := []*schema.MatchRule{
		{
			ID:               1,
			BankName:         "Chase",
			FromAddresses:    datatypes.JSON(`["no-reply@alerts.chase.com"]`),
			SubjectPatterns:  datatypes.JSON(`["transaction"]`),
			BodyKeywords:     datatypes.JSON(`["spent"]`),
			ExtractionPrompt: "p1",
			Priority:         3,
		},
		{
			ID:              2,
			BankName:        "Broken Regex",
			FromAddresses:   datatypes.JSON(`["x@y.com"]`),
			SubjectPatterns: datatypes.JSON(`["("]`),
		},
		{
			ID:            3,
			BankName:      "Broken JSON",
			FromAddresses: datatypes.JSON(`{not a list`),
		},
		{
			ID:            4,
			BankName:      "Minimal",
			FromAddresses: datatypes.JSON(`["bank.example"]`),
		},
	}

	rules := Compile(stored)

	require.Len(t, rules, 2, "rules with invalid patterns or payloads are skipped")
	assert.Equal(t, uint64(1), rules[0].ID)
	assert.Equal(t, "Chase", rules[0].BankName)
	assert.Len(t, rules[0].SubjectPatterns, 1)
	assert.True(t, rules[0].SubjectPatterns[0].MatchString("Card TRANSACTION alert"))
	assert.Equal(t, uint64(4), rules[1].ID)
	assert.Empty(t, rules[1].SubjectPatterns)
	assert.Empty(t, rules[1].BodyKeywords)
}
