package source

import (
	"context"
	"fmt"
)

// Loader fetches raw text content for one source kind.
type Loader interface {
	// Load fetches the content behind a normalized identifier.
	Load(ctx context.Context, identifier string) (string, error)
}

// LoadError is the single failure shape all loader errors are normalized
// into. Message carries the delegated loader's error text unchanged.
type LoadError struct {
	Source  string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %s", e.Source, e.Message)
}

// Loaders maps source kinds to their loader. The adapter performs no
// retries; retry policy, if any, belongs to the individual loader.
type Loaders struct {
	byKind map[Kind]Loader
}

// LoadersOption configures a Loaders adapter.
type LoadersOption func(*Loaders)

// WithLoader overrides the loader for a kind. Used by tests and by callers
// that bring their own fetch implementations.
func WithLoader(kind Kind, l Loader) LoadersOption {
	return func(ls *Loaders) {
		ls.byKind[kind] = l
	}
}

// NewLoaders creates the default loader set.
func NewLoaders(opts ...LoadersOption) *Loaders {
	ls := &Loaders{
		byKind: map[Kind]Loader{
			KindYouTube: NewYouTubeLoader(),
			KindPDF:     NewPDFLoader(),
			KindURL:     NewWebLoader(),
			KindGitHub:  NewGitHubLoader(),
			KindFile:    FileLoader{},
		},
	}
	for _, opt := range opts {
		opt(ls)
	}
	return ls
}

// Load dispatches to the loader for spec.Kind and normalizes any failure
// into a *LoadError. KindRaw is not loadable; callers supply raw text
// directly and must not reach this adapter with it.
func (ls *Loaders) Load(ctx context.Context, spec Spec) (string, error) {
	if spec.Kind == KindRaw {
		return "", &LoadError{Source: spec.Original, Message: "raw sources carry no loader; supply input text directly"}
	}

	loader, ok := ls.byKind[spec.Kind]
	if !ok {
		return "", &LoadError{Source: spec.Original, Message: fmt.Sprintf("no loader for kind %q", spec.Kind)}
	}

	content, err := loader.Load(ctx, spec.Identifier)
	if err != nil {
		return "", &LoadError{Source: spec.Original, Message: err.Error()}
	}
	return content, nil
}
