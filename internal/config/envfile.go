package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// ReadEnvFile parses a dotenv file without touching the process environment.
func ReadEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return vars, nil
}

// Layered returns a lookup that consults base first and falls back to vars.
// A key present in vars with an empty value still counts as set.
func Layered(base LookupFunc, vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if base != nil {
			if v, ok := base(key); ok {
				return v, true
			}
		}
		v, ok := vars[key]
		return v, ok
	}
}
