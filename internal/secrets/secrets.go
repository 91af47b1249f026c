// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the two API credentials answer-engine needs.
// Values come from the process environment (optionally seeded from a .env
// file) and fall back to a directory of plain-text key files, where the
// filename is the key name and the trimmed contents are the value.
//
// Supported key files: tavily-api-key, openai-api-key.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on warn but do not abort.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	if warn == nil {
		warn = os.Stderr
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	found := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			found[name] = value
		}
	}

	return found, nil
}
