// Package env loads API keys and secrets from the environment or the
// fabric-agent .env file.
package env

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// EnvFilePath returns the path to the fabric-agent .env file
// (~/.config/fabric-agent/.env).
func EnvFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".fabric-agent", ".env")
	}
	return filepath.Join(home, ".config", "fabric-agent", ".env")
}

// GetAPIKey retrieves an API key. The system environment variable wins;
// the .env file is the fallback.
func GetAPIKey(keyName string) string {
	if key := os.Getenv(keyName); key != "" {
		return key
	}
	return LoadKeyFromEnvFile(EnvFilePath(), keyName)
}

// LoadKeyFromEnvFile reads a specific key from a .env file.
func LoadKeyFromEnvFile(envPath, key string) string {
	file, err := os.Open(envPath)
	if err != nil {
		return ""
	}
	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	prefix := key + "="

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}

	return ""
}

// SaveKeyToEnvFile saves a key-value pair to a .env file, preserving
// existing lines, comments, and blank lines.
func SaveKeyToEnvFile(envPath, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(envPath), 0700); err != nil {
		return err
	}

	var lines []string
	keyFound := false
	existingFile, err := os.Open(envPath)
	if err == nil {
		scanner := bufio.NewScanner(existingFile)
		for scanner.Scan() {
			line := scanner.Text()
			trimmed := strings.TrimSpace(line)

			if trimmed != "" && !strings.HasPrefix(trimmed, "#") && strings.HasPrefix(trimmed, key+"=") {
				lines = append(lines, key+"="+value)
				keyFound = true
			} else {
				lines = append(lines, line)
			}
		}
		_ = existingFile.Close()
	} else if !os.IsNotExist(err) {
		return err
	}

	if !keyFound {
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, key+"="+value)
	}

	content := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(envPath, []byte(content), 0600)
}
