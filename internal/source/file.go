package source

import (
	"context"
	"fmt"
	"os"
)

// FileLoader reads local text files (markdown, txt, etc.).
type FileLoader struct{}

// Load reads the file at path. Home-directory shorthand is already expanded
// by the resolver.
func (FileLoader) Load(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", err
	}
	return string(data), nil
}
