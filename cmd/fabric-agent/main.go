package main

import (
	"github.com/patternagent/fabric-agent/internal/cmd"

	// Bootstrap: register all LLM providers
	_ "github.com/patternagent/fabric-agent/internal/bootstrap"
)

// Version is set by build -ldflags "-X main.Version=x.y.z"
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	cmd.Execute()
}
