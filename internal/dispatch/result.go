// Package dispatch orchestrates a single fabric invocation: resolve the
// source, pick a pattern (explicit, classified, or suggested), load content,
// run the model in isolation, and render the outcome envelope.
package dispatch

import "github.com/patternagent/fabric-agent/internal/pattern"

// Outcome is the terminal value of a dispatch. Exactly one of the three
// variants is produced per invocation: Success, Failure, or SuggestionSet.
type Outcome interface {
	outcome()
}

// Success carries the model's output for a determined pattern.
type Success struct {
	Pattern      string
	AutoSelected bool
	Body         string
}

// Failure carries a terminal error: source resolution, content loading, or
// model invocation. Source holds the original source string, or the pattern
// name for invocation failures, or "" when neither applies.
type Failure struct {
	Source  string
	Message string
}

// SuggestionSet is produced when no explicit pattern was given and
// classification found no match. It is not an error.
type SuggestionSet struct {
	Task        string
	Suggestions []pattern.Suggestion
	Hint        string
}

func (Success) outcome()       {}
func (Failure) outcome()       {}
func (SuggestionSet) outcome() {}
