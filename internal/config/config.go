package config

import (
	"errors"
	"fmt"
)

// CaseInsensitiveEnv turns off case-sensitive matching when it is set,
// whatever its value.
const CaseInsensitiveEnv = "CASE_INSENSITIVE"

// LookupFunc reports the value of an environment-style variable and
// whether it is set at all. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

type ErrorKind int

const (
	MissingQuery ErrorKind = iota + 1
	MissingTargetPath
)

func (k ErrorKind) String() string {
	switch k {
	case MissingQuery:
		return "missing query"
	case MissingTargetPath:
		return "missing target path"
	default:
		return "unknown config error"
	}
}

var (
	ErrMissingQuery      = errors.New("didn't get a query string")
	ErrMissingTargetPath = errors.New("didn't get a file name")
)

// ConfigError reports why a SearchConfig could not be built.
type ConfigError struct {
	Kind ErrorKind
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.sentinel())
}

func (e *ConfigError) Unwrap() error {
	return e.sentinel()
}

func (e *ConfigError) sentinel() error {
	switch e.Kind {
	case MissingQuery:
		return ErrMissingQuery
	case MissingTargetPath:
		return ErrMissingTargetPath
	default:
		return nil
	}
}

// SearchConfig is immutable once built; use Resolve or NewSearchConfig.
type SearchConfig struct {
	query         string
	targetPath    string
	caseSensitive bool
}

func NewSearchConfig(query, targetPath string, caseSensitive bool) (SearchConfig, error) {
	c := SearchConfig{query: query, targetPath: targetPath, caseSensitive: caseSensitive}
	if err := c.Validate(); err != nil {
		return SearchConfig{}, err
	}
	return c, nil
}

func (c SearchConfig) Query() string       { return c.query }
func (c SearchConfig) TargetPath() string  { return c.targetPath }
func (c SearchConfig) CaseSensitive() bool { return c.caseSensitive }

func (c SearchConfig) Validate() error {
	if c.query == "" {
		return &ConfigError{Kind: MissingQuery}
	}
	if c.targetPath == "" {
		return &ConfigError{Kind: MissingTargetPath}
	}
	return nil
}

// Resolve builds a SearchConfig from os.Args-style arguments: args[0] is
// the program name and is skipped, then the query, then the target path.
// Anything after the target path is ignored. Case sensitivity is turned
// off when lookup reports CASE_INSENSITIVE as present, even if empty.
func Resolve(args []string, lookup LookupFunc) (SearchConfig, error) {
	if len(args) > 0 {
		args = args[1:]
	}

	if len(args) < 1 {
		return SearchConfig{}, &ConfigError{Kind: MissingQuery}
	}
	if len(args) < 2 {
		return SearchConfig{}, &ConfigError{Kind: MissingTargetPath}
	}

	caseSensitive := true
	if lookup != nil {
		if _, ok := lookup(CaseInsensitiveEnv); ok {
			caseSensitive = false
		}
	}

	// An explicitly empty argument counts as missing.
	return NewSearchConfig(args[0], args[1], caseSensitive)
}
