package cmd

import (
	"context"

	"github.com/patternagent/fabric-agent/internal/config"
	"github.com/patternagent/fabric-agent/internal/dispatch"
	"github.com/patternagent/fabric-agent/internal/llm"
	"github.com/patternagent/fabric-agent/internal/pattern"
	"github.com/patternagent/fabric-agent/internal/source"
)

// buildDispatcher assembles a dispatcher from the saved configuration.
// The returned cleanup releases the LLM provider.
func buildDispatcher() (*dispatch.Dispatcher, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	provider, err := llm.NewDefault(llm.Config{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		Verbose:  verbose,
	})
	if err != nil {
		return nil, nil, err
	}

	runner := dispatch.RunnerFunc(func(ctx context.Context, systemPrompt, input string) (string, error) {
		return provider.Execute(ctx, &llm.Request{SystemPrompt: systemPrompt, UserPrompt: input})
	})

	opts := []dispatch.Option{dispatch.WithVerbose(verbose)}
	if entries, err := pattern.LoadSuggestCatalog(config.SuggestCatalogPath()); err == nil {
		opts = append(opts, dispatch.WithSuggestCatalog(entries))
	}

	d := dispatch.NewDispatcher(
		pattern.NewCatalog(cfg.PatternsDir),
		source.NewLoaders(),
		runner,
		opts...,
	)

	cleanup := func() { _ = provider.Close() }
	return d, cleanup, nil
}
