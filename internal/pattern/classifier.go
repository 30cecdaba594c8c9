package pattern

import (
	"strings"

	"github.com/patternagent/fabric-agent/internal/source"
)

// Classify selects a pattern for a free-text task description, optionally
// informed by the resolved source kind. It walks the source-action fast path
// first, then the ordered rule table; the first fully satisfied rule wins.
// Returns false when the task is empty or nothing matches.
func Classify(task string, kind source.Kind) (string, bool) {
	taskNorm := strings.ToLower(strings.TrimSpace(task))
	if taskNorm == "" {
		return "", false
	}

	// Medium known from the source prefix: a single action keyword decides.
	if actions, ok := sourceActions[kind]; ok {
		for _, a := range actions {
			if strings.Contains(taskNorm, a.Action) {
				return a.Pattern, true
			}
		}
	}

	for _, rule := range autoSelectRules {
		if matches(rule, taskNorm, kind) {
			return rule.Pattern, true
		}
	}

	return "", false
}

func matches(rule Rule, taskNorm string, kind source.Kind) bool {
	for _, term := range rule.Required {
		if !strings.Contains(taskNorm, term) {
			return false
		}
	}

	if len(rule.AnyOf) == 0 {
		return true
	}
	for _, term := range rule.AnyOf {
		if strings.Contains(taskNorm, term) {
			return true
		}
	}
	// The source kind stands in for the medium words.
	for _, k := range rule.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
