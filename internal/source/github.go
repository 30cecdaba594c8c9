package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/patternagent/fabric-agent/internal/util/env"
)

const githubAPIBase = "https://api.github.com"

// GitHubLoader fetches repository metadata and README text through the
// GitHub REST API. A GITHUB_TOKEN, when configured, raises rate limits and
// grants access to private repositories.
type GitHubLoader struct {
	client  *http.Client
	apiBase string
}

// NewGitHubLoader creates a GitHub repository loader.
func NewGitHubLoader() *GitHubLoader {
	return &GitHubLoader{client: newHTTPClient(), apiBase: githubAPIBase}
}

type repoInfo struct {
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
}

// Load fetches owner/repo metadata and its README.
func (l *GitHubLoader) Load(ctx context.Context, repo string) (string, error) {
	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if token := env.GetAPIKey("GITHUB_TOKEN"); token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	metaBody, err := fetch(ctx, l.client, l.apiBase+"/repos/"+repo, headers)
	if err != nil {
		return "", fmt.Errorf("repository %s: %w", repo, err)
	}

	var info repoInfo
	if err := json.Unmarshal(metaBody, &info); err != nil {
		return "", fmt.Errorf("repository %s: decoding metadata: %w", repo, err)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "# %s\n\n", info.FullName)
	if info.Description != "" {
		out.WriteString(info.Description + "\n\n")
	}
	if info.Language != "" {
		fmt.Fprintf(&out, "Language: %s\n", info.Language)
	}
	if len(info.Topics) > 0 {
		fmt.Fprintf(&out, "Topics: %s\n", strings.Join(info.Topics, ", "))
	}
	fmt.Fprintf(&out, "Stars: %d\n", info.Stars)

	// README is optional; metadata alone is still useful content.
	readmeHeaders := map[string]string{"Accept": "application/vnd.github.raw+json"}
	if auth, ok := headers["Authorization"]; ok {
		readmeHeaders["Authorization"] = auth
	}
	readme, err := fetch(ctx, l.client, l.apiBase+"/repos/"+repo+"/readme", readmeHeaders)
	if err == nil && len(readme) > 0 {
		out.WriteString("\n---\n\n")
		out.Write(readme)
	}

	return out.String(), nil
}
