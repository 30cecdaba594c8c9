package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// MCPRegistrationConfig represents the MCP configuration structure
// Used for Claude Desktop, Claude Code, Cursor
type MCPRegistrationConfig struct {
	MCPServers map[string]MCPServerConfig `json:"mcpServers"`
}

// VSCodeMCPConfig represents the VS Code MCP configuration structure
type VSCodeMCPConfig struct {
	Servers map[string]VSCodeServerConfig `json:"servers"`
	Inputs  []interface{}                 `json:"inputs,omitempty"`
}

// MCPServerConfig represents a single MCP server configuration
type MCPServerConfig struct {
	Type    string            `json:"type,omitempty"` // Optional for Claude Code, recommended for Cursor
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// VSCodeServerConfig represents VS Code MCP server configuration
type VSCodeServerConfig struct {
	Type    string            `json:"type"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

var mcpRegisterCmd = &cobra.Command{
	Use:   "register [app]",
	Short: "Register fabric-agent as an MCP server with a host application",
	Long: `Write the fabric-agent MCP server entry into a host application's MCP
configuration. Supported apps: claude-desktop, claude-code, cursor, vscode.
Without an argument, an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return registerMCP(args[0])
		}
		promptMCPRegistration()
		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpRegisterCmd)
}

// promptMCPRegistration interactively selects host apps to register with.
func promptMCPRegistration() {
	items := []string{
		"Claude Desktop (global)",
		"Claude Code (project)",
		"Cursor (project)",
		"VS Code Copilot (project)",
		"All",
		"Skip",
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     "Register the fabric tool with which MCP host",
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}

	index, _, err := prompt.Run()
	if err != nil {
		fmt.Println("\nSkipped MCP registration")
		return
	}

	apps := []string{"claude-desktop", "claude-code", "cursor", "vscode"}

	switch {
	case index < len(apps):
		if err := registerMCP(apps[index]); err != nil {
			fmt.Printf("❌ Failed to register %s: %v\n", getAppDisplayName(apps[index]), err)
		} else {
			fmt.Printf("\n✅ MCP registration complete! Restart %s to use the fabric tool.\n", getAppDisplayName(apps[index]))
		}
	case index == len(apps): // All
		successCount := 0
		for _, app := range apps {
			if registerMCP(app) == nil {
				successCount++
			}
		}
		if successCount > 0 {
			fmt.Printf("\n✅ MCP registration complete! Registered to %d app(s).\n", successCount)
			fmt.Println("   Restart/reload the apps to use the fabric tool.")
		}
	default: // Skip
		fmt.Println("Skipped MCP registration")
	}
}

// registerMCP writes the fabric-agent server entry for the specified app.
func registerMCP(app string) error {
	configPath := getMCPConfigPath(app)
	if configPath == "" {
		return fmt.Errorf("%s config path could not be determined", getAppDisplayName(app))
	}

	binPath, err := os.Executable()
	if err != nil {
		binPath = "fabric-agent" // fall back to PATH lookup by the host
	}

	isProjectConfig := app != "claude-desktop"
	if isProjectConfig {
		fmt.Printf("\n✓ Configuring %s (project-specific)\n", getAppDisplayName(app))
	} else {
		fmt.Printf("\n✓ Configuring %s (global)\n", getAppDisplayName(app))
	}
	fmt.Printf("  Location: %s\n", configPath)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	existingData, err := os.ReadFile(configPath)
	fileExists := err == nil

	var data []byte

	if app == "vscode" {
		// VS Code uses a different top-level key
		var vscodeConfig VSCodeMCPConfig

		if fileExists {
			if err := json.Unmarshal(existingData, &vscodeConfig); err != nil {
				backupConfig(configPath, existingData, true)
				vscodeConfig = VSCodeMCPConfig{}
			} else {
				backupConfig(configPath, existingData, false)
			}
		} else {
			fmt.Printf("  Creating new configuration file\n")
		}

		if vscodeConfig.Servers == nil {
			vscodeConfig.Servers = make(map[string]VSCodeServerConfig)
		}
		vscodeConfig.Servers["fabric-agent"] = VSCodeServerConfig{
			Type:    "stdio",
			Command: binPath,
			Args:    []string{"mcp"},
		}

		data, err = json.MarshalIndent(vscodeConfig, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	} else {
		// Claude Desktop, Claude Code, Cursor use the standard format
		var config MCPRegistrationConfig

		if fileExists {
			if err := json.Unmarshal(existingData, &config); err != nil {
				backupConfig(configPath, existingData, true)
				config = MCPRegistrationConfig{}
			} else {
				backupConfig(configPath, existingData, false)
			}
		} else {
			fmt.Printf("  Creating new configuration file\n")
		}

		if config.MCPServers == nil {
			config.MCPServers = make(map[string]MCPServerConfig)
		}

		serverConfig := MCPServerConfig{
			Command: binPath,
			Args:    []string{"mcp"},
		}
		if app == "cursor" {
			serverConfig.Type = "stdio"
		}
		config.MCPServers["fabric-agent"] = serverConfig

		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("  ✓ fabric-agent MCP server registered\n")
	return nil
}

// backupConfig writes a .bak copy of an existing host config before editing.
func backupConfig(configPath string, existingData []byte, invalid bool) {
	backupPath := configPath + ".bak"
	if err := os.WriteFile(backupPath, existingData, 0644); err != nil {
		fmt.Printf("  ⚠ Failed to create backup: %v\n", err)
		return
	}
	if invalid {
		fmt.Printf("  ⚠ Invalid JSON, backup created: %s\n", filepath.Base(backupPath))
	} else {
		fmt.Printf("  Backup: %s\n", filepath.Base(backupPath))
	}
}

// getMCPConfigPath returns the MCP config file path for the specified app
func getMCPConfigPath(app string) string {
	homeDir, _ := os.UserHomeDir()

	// For project-specific configs, get current working directory (project root)
	cwd, _ := os.Getwd()

	var path string

	switch app {
	case "claude-desktop":
		// Global configuration
		switch runtime.GOOS {
		case "windows":
			path = filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
		case "darwin":
			path = filepath.Join(homeDir, "Library", "Application Support", "Claude", "claude_desktop_config.json")
		case "linux":
			path = filepath.Join(homeDir, ".config", "Claude", "claude_desktop_config.json")
		}
	case "claude-code":
		path = filepath.Join(cwd, ".mcp.json")
	case "cursor":
		path = filepath.Join(cwd, ".cursor", "mcp.json")
	case "vscode":
		path = filepath.Join(cwd, ".vscode", "mcp.json")
	}

	return path
}

// getAppDisplayName returns the display name for the app
func getAppDisplayName(app string) string {
	switch app {
	case "claude-desktop":
		return "Claude Desktop"
	case "claude-code":
		return "Claude Code"
	case "cursor":
		return "Cursor"
	case "vscode":
		return "VS Code"
	default:
		return app
	}
}
