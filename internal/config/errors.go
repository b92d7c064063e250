package config

import "strings"

// ConfigurationError lists every problem found while loading settings.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return "settings validation failed: " + strings.Join(e.Problems, "; ")
}
