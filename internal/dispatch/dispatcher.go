package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/patternagent/fabric-agent/internal/pattern"
	"github.com/patternagent/fabric-agent/internal/source"
)

// Runner executes a pattern template against content.
//
// Precondition on implementations: every Run call must be a fresh, isolated
// model invocation carrying no prior conversation turns, and its result must
// not be appended to any shared history. The llm providers satisfy this
// structurally (one process exec or one stateless HTTP request per call).
type Runner interface {
	Run(ctx context.Context, systemPrompt, input string) (string, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, systemPrompt, input string) (string, error)

func (f RunnerFunc) Run(ctx context.Context, systemPrompt, input string) (string, error) {
	return f(ctx, systemPrompt, input)
}

// Request is a single structured invocation. At least one of Source or
// InputText must yield content; Pattern and Task are both optional, but the
// classification and suggestion paths require Task.
type Request struct {
	Task      string
	Pattern   string
	Source    string
	InputText string
}

const suggestionHint = "Run again with an explicit pattern, e.g. --pattern <name>."

// Dispatcher wires the resolver, loaders, pattern catalog, and model runner
// into the single dispatch entry point. Safe for concurrent use; it holds no
// mutable state across calls.
type Dispatcher struct {
	catalog        *pattern.Catalog
	loaders        *source.Loaders
	runner         Runner
	suggestCatalog []pattern.CatalogEntry
	verbose        bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithVerbose enables verbose logging to stderr.
func WithVerbose(verbose bool) Option {
	return func(d *Dispatcher) { d.verbose = verbose }
}

// WithSuggestCatalog overrides the curated suggestion catalog.
func WithSuggestCatalog(entries []pattern.CatalogEntry) Option {
	return func(d *Dispatcher) { d.suggestCatalog = entries }
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(catalog *pattern.Catalog, loaders *source.Loaders, runner Runner, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		catalog: catalog,
		loaders: loaders,
		runner:  runner,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs one invocation end to end. Every call terminates in exactly
// one Outcome; no error propagates past this boundary, and no retries are
// performed.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Outcome {
	id := uuid.NewString()
	d.logf("[dispatch %s] task=%q pattern=%q source=%q input=%d chars",
		id, req.Task, req.Pattern, req.Source, len(req.InputText))

	if req.Task == "" && req.Pattern == "" {
		return Failure{Message: "either 'task' or 'pattern' must be provided"}
	}

	spec, err := source.Resolve(req.Source)
	if err != nil {
		var resolveErr *source.ResolveError
		if errors.As(err, &resolveErr) {
			return Failure{Source: req.Source, Message: resolveErr.Message}
		}
		return Failure{Source: req.Source, Message: err.Error()}
	}

	// Pattern precedence: explicit beats classified; classification miss
	// yields suggestions before any content is loaded or model is called.
	var chosen string
	var autoSelected bool
	switch {
	case req.Pattern != "":
		chosen = pattern.NormalizeName(req.Pattern)
	default:
		if name, ok := pattern.Classify(req.Task, spec.Kind); ok {
			chosen = name
			autoSelected = true
		} else {
			d.logf("[dispatch %s] no rule matched, suggesting", id)
			return SuggestionSet{
				Task:        req.Task,
				Suggestions: d.suggest(req.Task),
				Hint:        suggestionHint,
			}
		}
	}
	d.logf("[dispatch %s] pattern=%s auto_selected=%t", id, chosen, autoSelected)

	content := req.InputText
	if content == "" {
		if spec.Kind == source.KindRaw {
			return Failure{Source: req.Source, Message: "no content: provide a source (yt:, pdf:, url:, github:, file:) or input text"}
		}
		content, err = d.loaders.Load(ctx, spec)
		if err != nil {
			var loadErr *source.LoadError
			if errors.As(err, &loadErr) {
				return Failure{Source: loadErr.Source, Message: loadErr.Message}
			}
			return Failure{Source: spec.Original, Message: err.Error()}
		}
		d.logf("[dispatch %s] loaded %d chars from %s", id, len(content), spec.Original)
	}

	template, err := d.catalog.Template(chosen)
	if err != nil {
		return Failure{Source: chosen, Message: err.Error()}
	}

	body, err := d.runner.Run(ctx, template, content)
	if err != nil {
		return Failure{Source: chosen, Message: fmt.Sprintf("pattern execution failed: %v", err)}
	}

	d.logf("[dispatch %s] done, %d chars", id, len(body))
	return Success{Pattern: chosen, AutoSelected: autoSelected, Body: body}
}

func (d *Dispatcher) suggest(task string) []pattern.Suggestion {
	if len(d.suggestCatalog) > 0 {
		return pattern.SuggestFrom(d.suggestCatalog, task)
	}
	return pattern.Suggest(task)
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
