package domain

import "context"

// ParsedActivity is the structured result of natural-language activity
// parsing. The parser itself (LLM or rules) is an external collaborator;
// the engine consumes its output and trusts it.
type ParsedActivity struct {
	Name        string   `json:"activity_name"`
	Category    Category `json:"category"`
	DurationMin int      `json:"duration_minutes"`
}

// ActivityParser extracts structure from free-form activity text such as
// "Studied for 2 hours".
type ActivityParser interface {
	Parse(ctx context.Context, text string) (ParsedActivity, error)
}
