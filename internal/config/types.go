package config

import (
	"fmt"
	"log/slog"
	"slices"
)

// AuthType selects how the report endpoint is authenticated.
type AuthType string

const (
	AuthBasic  AuthType = "basic"
	AuthBearer AuthType = "bearer"
)

// DataType selects which kind of entity a run produces.
type DataType string

const (
	DataPeople DataType = "people"
	DataTeams  DataType = "teams"
)

// OutputType selects where transformed records go.
type OutputType string

const (
	OutputAPI OutputType = "api"
	OutputCSV OutputType = "csv"
)

// TestMode restricts a run to one side of the pipeline. The zero value is a
// normal run.
type TestMode string

const (
	TestNone TestMode = ""
	// TestPull fetches and transforms but never uploads.
	TestPull TestMode = "pull"
	// TestPush reads a local report file and uploads it.
	TestPush TestMode = "push"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

func parseEnum[T ~string](key, raw string, allowed ...T) (T, error) {
	v := T(raw)
	if slices.Contains(allowed, v) {
		return v, nil
	}

	var zero T

	return zero, fmt.Errorf("%s must be one of %v, got %q", key, allowed, raw)
}

// Secret holds a credential. It never prints its value.
type Secret string

const redacted = "**********"

// Value returns the plain credential.
func (s Secret) Value() string { return string(s) }

// IsSet reports whether the secret is non-empty.
func (s Secret) IsSet() bool { return s != "" }

func (s Secret) String() string {
	if s == "" {
		return ""
	}

	return redacted
}

func (s Secret) GoString() string { return s.String() }

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value { return slog.StringValue(s.String()) }
