package configutil

import (
	"fmt"
	"os"
	"strings"
)

// Secret is a credential-bearing config value. It can be provided
// inline, through an environment variable, or from a file on disk.
// Resolution order: environment variable, inline value, file.
type Secret struct {
	Value  string `json:"value"`
	EnvVar string `json:"env"`
	File   string `json:"file"`
}

func (s Secret) Resolve() (string, error) {
	if s.EnvVar != "" {
		v := strings.TrimSpace(os.Getenv(s.EnvVar))
		if v != "" {
			return v, nil
		}
	}
	if s.Value != "" {
		return strings.TrimSpace(s.Value), nil
	}
	if s.File != "" {
		contents, err := os.ReadFile(s.File)
		if err != nil {
			return "", fmt.Errorf("read secret file: %w", err)
		}
		v := strings.TrimSpace(string(contents))
		if v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("secret is empty: checked env %q, inline value and file %q", s.EnvVar, s.File)
}
