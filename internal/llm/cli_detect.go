package llm

import (
	"os/exec"
	"strings"
)

// CLIInfo represents detected CLI information.
type CLIInfo struct {
	Provider  string
	Name      string
	Path      string
	Version   string
	Available bool
}

var cliProviders = []struct {
	Provider    string
	DisplayName string
	Command     string
}{
	{Provider: "claudecode", DisplayName: "Claude Code CLI", Command: "claude"},
	{Provider: "geminicli", DisplayName: "Gemini CLI", Command: "gemini"},
}

// DetectAvailableCLIs scans for installed CLI tools.
func DetectAvailableCLIs() []CLIInfo {
	var results []CLIInfo

	for _, info := range cliProviders {
		cli := CLIInfo{
			Provider:  info.Provider,
			Name:      info.DisplayName,
			Available: false,
		}

		path, err := exec.LookPath(info.Command)
		if err == nil {
			cli.Path = path
			cli.Available = true
			cli.Version = getCLIVersion(info.Command)
		}

		results = append(results, cli)
	}

	return results
}

func getCLIVersion(command string) string {
	cmd := exec.Command(command, "--version") // #nosec G204
	output, err := cmd.Output()
	if err != nil {
		return ""
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) > 0 {
		return strings.TrimSpace(lines[0])
	}

	return ""
}
