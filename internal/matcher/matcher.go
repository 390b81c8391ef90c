// Package matcher scores a tenant's rules against an incoming message and
// picks the single best rule to extract with.
package matcher

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ledgersift/mail-ingestor/internal/domain"
	"github.com/ledgersift/mail-ingestor/internal/logger"
	"github.com/ledgersift/mail-ingestor/internal/store/schema"
)

const (
	exactSenderScore   = 10
	partialSenderScore = 5
	subjectHitScore    = 2
	bodyHitScore       = 1
)

// Rule is a match rule with its subject patterns compiled
type Rule struct {
	ID               uint64
	BankName         string
	Priority         int
	FromAddresses    []string
	SubjectPatterns  []*regexp.Regexp
	BodyKeywords     []string
	ExtractionPrompt string
}

// Match is a scored rule selection
type Match struct {
	Rule  Rule
	Score int
}

// Compile converts stored rules into matchable ones. A rule carrying an
// invalid subject pattern is skipped and logged, never a hard error.
func Compile(stored []*schema.MatchRule) []Rule {
	rules := make([]Rule, 0, len(stored))
	for _, s := range stored {
		r := Rule{
			ID:               s.ID,
			BankName:         s.BankName,
			Priority:         s.Priority,
			ExtractionPrompt: s.ExtractionPrompt,
		}
		if err := decodeList([]byte(s.FromAddresses), &r.FromAddresses); err != nil {
			logger.Warn("skipping rule with malformed from_addresses", zap.Uint64("ruleID", s.ID), zap.Error(err))
			continue
		}
		var subjects []string
		if err := decodeList([]byte(s.SubjectPatterns), &subjects); err != nil {
			logger.Warn("skipping rule with malformed subject_patterns", zap.Uint64("ruleID", s.ID), zap.Error(err))
			continue
		}
		if err := decodeList([]byte(s.BodyKeywords), &r.BodyKeywords); err != nil {
			logger.Warn("skipping rule with malformed body_keywords", zap.Uint64("ruleID", s.ID), zap.Error(err))
			continue
		}

		valid := true
		for _, pattern := range subjects {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				logger.Warn("skipping rule with invalid subject pattern",
					zap.Uint64("ruleID", s.ID), zap.String("pattern", pattern), zap.Error(err))
				valid = false
				break
			}
			r.SubjectPatterns = append(r.SubjectPatterns, re)
		}
		if !valid {
			continue
		}
		rules = append(rules, r)
	}
	return rules
}

func decodeList(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// Best returns the highest-scoring rule for the message, or ok=false when no
// rule survives. Ties go to the higher declared priority, then to the rule
// created first.
func Best(msg domain.EmailMessage, rules []Rule) (Match, bool) {
	sender := msg.SenderAddress()
	subject := msg.Subject
	body := strings.ToLower(msg.Body)

	var (
		best  Match
		found bool
	)
	for _, rule := range rules {
		score, ok := score(rule, sender, subject, body)
		if !ok {
			continue
		}
		if !found || better(Match{Rule: rule, Score: score}, best) {
			best = Match{Rule: rule, Score: score}
			found = true
		}
	}
	return best, found
}

func score(rule Rule, sender, subject, body string) (int, bool) {
	senderScore := 0
	for _, addr := range rule.FromAddresses {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" {
			continue
		}
		if addr == sender {
			senderScore = exactSenderScore
			break
		}
		if strings.Contains(sender, addr) && senderScore < partialSenderScore {
			senderScore = partialSenderScore
		}
	}
	if senderScore == 0 {
		return 0, false
	}

	subjectHits := 0
	for _, re := range rule.SubjectPatterns {
		if re.MatchString(subject) {
			subjectHits++
		}
	}
	if len(rule.SubjectPatterns) > 0 && subjectHits == 0 {
		return 0, false
	}

	bodyHits := 0
	for _, kw := range rule.BodyKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(body, kw) {
			bodyHits++
		}
	}
	if len(rule.BodyKeywords) > 0 && bodyHits == 0 {
		return 0, false
	}

	total := rule.Priority + senderScore + subjectHitScore*subjectHits + bodyHitScore*bodyHits
	if total <= 0 {
		return 0, false
	}
	return total, true
}

func better(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Rule.Priority != b.Rule.Priority {
		return a.Rule.Priority > b.Rule.Priority
	}
	return a.Rule.ID < b.Rule.ID
}
