package pattern

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	minSuggestions = 2
	maxSuggestions = 4
)

// Suggestion is one ranked pattern candidate for an unmatched task.
type Suggestion struct {
	Pattern   string
	Rationale string
}

// CatalogEntry describes one pattern in the curated suggestion catalog:
// its declared keyword set and a short role description.
type CatalogEntry struct {
	Pattern     string   `yaml:"pattern"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

// defaultSuggestCatalog is the curated set of common patterns scored for
// suggestions. Deliberately small: scoring the full 230+ pattern library
// produces noise, not relevance. Declaration order breaks score ties.
var defaultSuggestCatalog = []CatalogEntry{
	{Pattern: "summarize", Description: "general-purpose summary of any content", Keywords: []string{"summarize", "summary", "short", "brief", "tldr", "overview"}},
	{Pattern: "extract_wisdom", Description: "pull key insights, quotes, and takeaways from content", Keywords: []string{"extract", "wisdom", "insights", "takeaways", "lessons", "learn"}},
	{Pattern: "youtube_summary", Description: "summarize a video transcript", Keywords: []string{"youtube", "video", "transcript", "watch"}},
	{Pattern: "summarize_paper", Description: "summarize an academic paper", Keywords: []string{"paper", "academic", "research", "study", "findings"}},
	{Pattern: "analyze_claims", Description: "evaluate truth claims and arguments", Keywords: []string{"claims", "truth", "facts", "verify", "arguments", "evidence"}},
	{Pattern: "explain_code", Description: "explain what a piece of code does", Keywords: []string{"code", "explain", "function", "program", "repository"}},
	{Pattern: "improve_writing", Description: "refine grammar, clarity, and style of a text", Keywords: []string{"improve", "writing", "rewrite", "grammar", "polish", "edit"}},
	{Pattern: "extract_ideas", Description: "list the ideas presented in content", Keywords: []string{"ideas", "concepts", "points", "brainstorm"}},
	{Pattern: "analyze_threat_report", Description: "analyze a security threat report", Keywords: []string{"threat", "security", "report", "attack", "vulnerability"}},
	{Pattern: "create_video_chapters", Description: "generate chapter timestamps for a video", Keywords: []string{"chapters", "timestamps", "sections", "video"}},
}

// LoadSuggestCatalog reads a curated catalog override from a YAML file.
func LoadSuggestCatalog(path string) ([]CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []CatalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing suggestion catalog %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("suggestion catalog %s is empty", path)
	}
	return entries, nil
}

// Suggest ranks the default curated catalog against a task description.
func Suggest(task string) []Suggestion {
	return SuggestFrom(defaultSuggestCatalog, task)
}

// SuggestFrom scores every catalog entry by overlap between its keywords and
// the task's normalized terms, returning the top 2-4 distinct patterns. The
// result is never empty for a non-empty catalog: with no overlap at all, the
// head of the catalog is proposed with role descriptions as rationale.
func SuggestFrom(entries []CatalogEntry, task string) []Suggestion {
	taskNorm := strings.ToLower(strings.TrimSpace(task))

	type scored struct {
		entry   CatalogEntry
		score   int
		matched []string
	}

	ranked := make([]scored, 0, len(entries))
	for _, e := range entries {
		var matched []string
		for _, kw := range e.Keywords {
			if strings.Contains(taskNorm, kw) {
				matched = append(matched, kw)
			}
		}
		ranked = append(ranked, scored{entry: e, score: len(matched), matched: matched})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var out []Suggestion
	included := make(map[string]bool)
	for _, r := range ranked {
		if r.score == 0 || len(out) >= maxSuggestions {
			break
		}
		out = append(out, Suggestion{
			Pattern:   r.entry.Pattern,
			Rationale: "matches: " + strings.Join(r.matched, ", "),
		})
		included[r.entry.Pattern] = true
	}

	// Pad from catalog declaration order so the caller always has options.
	for _, e := range entries {
		if len(out) >= minSuggestions {
			break
		}
		if included[e.Pattern] {
			continue
		}
		out = append(out, Suggestion{Pattern: e.Pattern, Rationale: e.Description})
		included[e.Pattern] = true
	}

	return out
}
