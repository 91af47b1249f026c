// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables and key file names for each credential.
const (
	TavilyEnv  = "TAVILY_API_KEY"
	OpenAIEnv  = "OPENAI_API_KEY"
	TavilyFile = "tavily-api-key"
	OpenAIFile = "openai-api-key"
)

// Credentials holds the resolved API keys.
type Credentials struct {
	SearchKey string
	LLMKey    string
}

// ConfigurationError reports credentials that could not be resolved.
// Missing lists environment variable names in a fixed order.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing API credentials: %s (set them in the environment, a .env file, or .secrets/)",
		strings.Join(e.Missing, ", "))
}

// Resolve looks up both credentials, preferring lookup (normally os.Getenv)
// over the key files. It returns a *ConfigurationError naming every key
// that is empty or unset.
func Resolve(lookup func(string) string, files map[string]string) (Credentials, error) {
	pick := func(env, file string) string {
		if v := strings.TrimSpace(lookup(env)); v != "" {
			return v
		}
		return strings.TrimSpace(files[file])
	}

	creds := Credentials{
		SearchKey: pick(TavilyEnv, TavilyFile),
		LLMKey:    pick(OpenAIEnv, OpenAIFile),
	}

	var missing []string
	if creds.SearchKey == "" {
		missing = append(missing, TavilyEnv)
	}
	if creds.LLMKey == "" {
		missing = append(missing, OpenAIEnv)
	}
	if len(missing) > 0 {
		return Credentials{}, &ConfigurationError{Missing: missing}
	}
	return creds, nil
}

// LoadCredentials loads envFile into the process environment without
// overriding variables that are already set, reads secretsDir, and resolves
// both credentials. Either source may be absent.
func LoadCredentials(envFile, secretsDir string, warn io.Writer) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Credentials{}, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	files := map[string]string{}
	if secretsDir != "" {
		var err error
		files, err = Load(secretsDir, warn)
		if err != nil {
			return Credentials{}, err
		}
	}

	return Resolve(os.Getenv, files)
}
