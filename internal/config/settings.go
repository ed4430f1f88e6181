package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/netflix/go-env"
)

// Settings are tool-level knobs read from MINIGREP_* variables. They never
// affect which lines match.
type Settings struct {
	LogLevel    string        `env:"MINIGREP_LOG_LEVEL,default=warn"`
	CacheDir    string        `env:"MINIGREP_CACHE_DIR"`
	CacheSizeMB int           `env:"MINIGREP_CACHE_SIZE_MB,default=100"`
	CacheTTL    time.Duration `env:"MINIGREP_CACHE_TTL,default=10m"`
}

// LoadSettings reads Settings from environ (os.Environ format). Keys from
// extra fill in anything environ leaves unset.
func LoadSettings(environ []string, extra map[string]string) (*Settings, error) {
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	for k, v := range extra {
		if _, ok := es[k]; !ok {
			es[k] = v
		}
	}

	var s Settings
	if err := env.Unmarshal(es, &s); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if s.LogLevel == "" {
		s.LogLevel = "warn"
	}
	if s.CacheDir == "" {
		s.CacheDir = filepath.Join(os.TempDir(), "minigrep", "contents")
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("MINIGREP_LOG_LEVEL must be one of debug, info, warn, error (got %q)", s.LogLevel)
	}
	if s.CacheSizeMB < 1 {
		return fmt.Errorf("MINIGREP_CACHE_SIZE_MB must be positive (got %d)", s.CacheSizeMB)
	}
	if s.CacheTTL <= 0 {
		return fmt.Errorf("MINIGREP_CACHE_TTL must be positive (got %s)", s.CacheTTL)
	}
	return nil
}
