package bootstrap

import (
	// Import LLM providers for registration side-effects.
	// Each provider package contains an init() function that registers
	// the provider with the global registry.
	_ "github.com/patternagent/fabric-agent/internal/llm/claudecode"
	_ "github.com/patternagent/fabric-agent/internal/llm/geminicli"
	_ "github.com/patternagent/fabric-agent/internal/llm/openaiapi"
)

// The bootstrap package is imported from main.go to ensure all providers
// are registered before any command runs.
