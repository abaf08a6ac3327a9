// Package parser provides the fallback rule-based activity parser. The real
// natural-language parser is an external collaborator (typically an LLM);
// when none is configured this keyword matcher keeps the log-activity flow
// working, the same way the engine falls back when an optional backend is
// missing.
package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/questlog/questlog/internal/domain"
)

// Rules is a deterministic keyword/regex parser.
type Rules struct{}

// NewRules creates the fallback parser.
func NewRules() *Rules { return &Rules{} }

var (
	hoursRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h)\b`)
	minutesRe = regexp.MustCompile(`(\d+)\s*(?:minutes?|mins?|m)\b`)
)

// categoryKeywords maps lowercase substrings to categories. First match wins
// in the order below.
var categoryKeywords = []struct {
	words    []string
	category domain.Category
}{
	{[]string{"work", "study", "studied", "studying", "meeting", "code", "coding", "project", "interview", "course"}, domain.CategoryCareer},
	{[]string{"gym", "run", "ran", "running", "workout", "yoga", "walk", "walked", "swim", "slept", "meditat"}, domain.CategoryHealth},
	{[]string{"clean", "laundry", "dishes", "groceries", "cook", "cooked", "errand", "chore"}, domain.CategoryChores},
	{[]string{"friend", "family", "dinner with", "party", "call with", "date"}, domain.CategorySocial},
	{[]string{"game", "gaming", "netflix", "movie", "tv", "scroll", "youtube", "relax"}, domain.CategoryLeisure},
}

// Parse extracts a category and duration from free-form text. Unmatched text
// defaults to a 30-minute Career entry so logging never fails outright.
func (r *Rules) Parse(_ context.Context, text string) (domain.ParsedActivity, error) {
	lower := strings.ToLower(text)

	parsed := domain.ParsedActivity{
		Name:        strings.TrimSpace(text),
		Category:    domain.CategoryCareer,
		DurationMin: 30,
	}

	for _, ck := range categoryKeywords {
		if containsAny(lower, ck.words) {
			parsed.Category = ck.category
			break
		}
	}

	if m := hoursRe.FindStringSubmatch(lower); m != nil {
		if h, err := strconv.ParseFloat(m[1], 64); err == nil && h > 0 {
			parsed.DurationMin = int(h * 60)
		}
	} else if m := minutesRe.FindStringSubmatch(lower); m != nil {
		if mins, err := strconv.Atoi(m[1]); err == nil && mins > 0 {
			parsed.DurationMin = mins
		}
	}

	return parsed, nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
