package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAPIKey(t *testing.T) {
	t.Run("environment variable wins", func(t *testing.T) {
		t.Setenv("FABRIC_TEST_KEY", "from-env")
		assert.Equal(t, "from-env", GetAPIKey("FABRIC_TEST_KEY"))
	})

	t.Run("unset key is empty", func(t *testing.T) {
		assert.Equal(t, "", GetAPIKey("FABRIC_TEST_KEY_UNSET"))
	})
}

func TestLoadKeyFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# fabric-agent secrets
OPENAI_API_KEY=sk-test123

# another comment
GITHUB_TOKEN=ghp_abc
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	assert.Equal(t, "sk-test123", LoadKeyFromEnvFile(path, "OPENAI_API_KEY"))
	assert.Equal(t, "ghp_abc", LoadKeyFromEnvFile(path, "GITHUB_TOKEN"))
	assert.Equal(t, "", LoadKeyFromEnvFile(path, "MISSING_KEY"))
	assert.Equal(t, "", LoadKeyFromEnvFile(filepath.Join(t.TempDir(), "nope"), "OPENAI_API_KEY"))
}

func TestSaveKeyToEnvFile(t *testing.T) {
	t.Run("creates new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sub", ".env")
		require.NoError(t, SaveKeyToEnvFile(path, "OPENAI_API_KEY", "sk-new"))
		assert.Equal(t, "sk-new", LoadKeyFromEnvFile(path, "OPENAI_API_KEY"))
	})

	t.Run("updates existing key preserving comments", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := `# keep this comment
OPENAI_API_KEY=sk-old

GITHUB_TOKEN=ghp_abc
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		require.NoError(t, SaveKeyToEnvFile(path, "OPENAI_API_KEY", "sk-new"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# keep this comment")
		assert.Contains(t, string(data), "OPENAI_API_KEY=sk-new")
		assert.NotContains(t, string(data), "sk-old")
		assert.Equal(t, "ghp_abc", LoadKeyFromEnvFile(path, "GITHUB_TOKEN"))
	})

	t.Run("appends missing key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GITHUB_TOKEN=ghp_abc\n"), 0600))

		require.NoError(t, SaveKeyToEnvFile(path, "OPENAI_API_KEY", "sk-new"))

		assert.Equal(t, "ghp_abc", LoadKeyFromEnvFile(path, "GITHUB_TOKEN"))
		assert.Equal(t, "sk-new", LoadKeyFromEnvFile(path, "OPENAI_API_KEY"))
	})
}
