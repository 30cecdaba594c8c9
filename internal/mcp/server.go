// Package mcp serves the fabric tool over the Model Context Protocol so AI
// assistants can run Fabric patterns as isolated subagents.
package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patternagent/fabric-agent/internal/dispatch"
)

// FabricInput is the input schema for the fabric tool.
type FabricInput struct {
	Task      string `json:"task,omitempty" jsonschema:"Description of what to accomplish. Used for auto-selecting the appropriate Fabric pattern."`
	Pattern   string `json:"pattern,omitempty" jsonschema:"Specific Fabric pattern name to run. If not provided, auto-selects based on task or suggests options."`
	Source    string `json:"source,omitempty" jsonschema:"Content source URI: yt:VIDEO, pdf:PATH_OR_URL, url:PAGE, github:owner/repo, file:PATH. Content is loaded inside the tool and stays out of the host conversation."`
	InputText string `json:"input_text,omitempty" jsonschema:"Content to process directly. Prefer 'source' when possible to keep large content out of the host context."`
}

// Server exposes the dispatcher as an MCP tool over stdio.
type Server struct {
	dispatcher *dispatch.Dispatcher
	version    string
}

// NewServer creates a new MCP server instance.
func NewServer(dispatcher *dispatch.Dispatcher, version string) *Server {
	return &Server{dispatcher: dispatcher, version: version}
}

// Run serves the fabric tool over stdio until ctx is cancelled or the
// transport closes.
func (s *Server) Run(ctx context.Context) error {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "fabric-agent",
		Version: s.version,
	}, nil)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name: "fabric",
		Description: "Execute a Fabric AI pattern as an isolated subagent: summarization, " +
			"content extraction, security analysis, code review, and more. Patterns run in " +
			"isolation, so large inputs stay out of the main conversation. When processing " +
			"YouTube videos, PDFs, web pages, repositories, or local files, pass the 'source' " +
			"parameter instead of loading content first.",
	}, s.handleFabric)

	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

// handleFabric dispatches one tool call and renders the outcome envelope.
func (s *Server) handleFabric(ctx context.Context, _ *sdkmcp.CallToolRequest, input FabricInput) (*sdkmcp.CallToolResult, any, error) {
	outcome := s.dispatcher.Dispatch(ctx, dispatch.Request{
		Task:      input.Task,
		Pattern:   input.Pattern,
		Source:    input.Source,
		InputText: input.InputText,
	})

	// Every outcome, including errors, renders into the envelope; the
	// host always receives parseable tagged text.
	result := &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: dispatch.Render(outcome)},
		},
	}
	if _, failed := outcome.(dispatch.Failure); failed {
		result.IsError = true
	}
	return result, nil, nil
}
