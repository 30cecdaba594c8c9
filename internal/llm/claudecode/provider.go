// Package claudecode provides the Claude Code CLI LLM provider.
package claudecode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/patternagent/fabric-agent/internal/llm"
)

const (
	providerName   = "claudecode"
	displayName    = "Claude Code CLI"
	command        = "claude"
	defaultModel   = "sonnet" // Claude CLI accepts short aliases: sonnet, opus, haiku
	defaultTimeout = 300 * time.Second
)

func init() {
	// Check if CLI is available
	path, _ := exec.LookPath(command)
	available := path != ""

	llm.RegisterProvider(providerName, newProvider, llm.ProviderInfo{
		Name:         providerName,
		DisplayName:  displayName,
		DefaultModel: defaultModel,
		Available:    available,
		Path:         path,
		Models: []llm.ModelInfo{
			{ID: "haiku", DisplayName: "Haiku", Description: "Fast and efficient", Recommended: false},
			{ID: "sonnet", DisplayName: "Sonnet", Description: "Balanced capability", Recommended: true},
			{ID: "opus", DisplayName: "Opus", Description: "Highest capability", Recommended: false},
		},
		APIKey: llm.APIKeyConfig{Required: false},
	})
}

// Provider implements llm.Provider for Claude Code CLI.
type Provider struct {
	model   string
	timeout time.Duration
	verbose bool
	cliPath string
}

// Compile-time check: Provider must implement Provider interface
var _ llm.Provider = (*Provider)(nil)

// newProvider creates a new Claude Code provider.
// Returns error if Claude CLI is not installed.
func newProvider(cfg llm.Config) (llm.Provider, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("claude CLI not installed: run 'npm install -g @anthropic-ai/claude-code' to install")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		model:   model,
		timeout: defaultTimeout,
		verbose: cfg.Verbose,
		cliPath: path,
	}, nil
}

func (p *Provider) Name() string {
	return providerName
}

// Execute runs one isolated claude invocation. Each call is a fresh process
// in -p print mode; no session or conversation state carries over.
func (p *Provider) Execute(ctx context.Context, req *llm.Request) (string, error) {
	args := []string{"-p", req.UserPrompt, "--output-format", "text"}
	if req.SystemPrompt != "" {
		args = append(args, "--append-system-prompt", req.SystemPrompt)
	}
	if p.model != "" {
		args = append(args, "--model", p.model)
	}

	if p.verbose {
		fmt.Fprintf(os.Stderr, "[claudecode] Model: %s, System: %d chars, Input: %d chars\n",
			p.model, len(req.SystemPrompt), len(req.UserPrompt))
	}

	cmdCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, p.cliPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("claude CLI timed out after %v", p.timeout)
		}
		return "", fmt.Errorf("claude CLI failed: %w\nstderr: %s", err, stderr.String())
	}

	response := strings.TrimSpace(stdout.String())

	if p.verbose {
		fmt.Fprintf(os.Stderr, "[claudecode] Response: %d chars\n", len(response))
	}

	return response, nil
}

// Close is a no-op for CLI-based providers.
func (p *Provider) Close() error {
	return nil
}
