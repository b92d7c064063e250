package config

import (
	"fmt"
	"strconv"
	"time"
)

// Lookup resolves one setting; ok is false when it is unset.
type Lookup func(key string) (value string, ok bool)

// String returns the value of key, or def when unset.
func (l Lookup) String(key string, def string) string {
	if v, ok := l(key); ok {
		return v
	}

	return def
}

func (l Lookup) Duration(key string, def time.Duration) (time.Duration, error) {
	if v, ok := l(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", key, err)
		}

		return d, nil
	}

	return def, nil
}

func (l Lookup) Bool(key string, def bool) (bool, error) {
	if v, ok := l(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("parse %s: %w", key, err)
		}

		return b, nil
	}

	return def, nil
}

func (l Lookup) Int(key string, def int) (int, error) {
	if v, ok := l(key); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", key, err)
		}

		return i, nil
	}

	return def, nil
}

// MapLookup serves settings from a map.
func MapLookup(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Chain consults each lookup in turn and returns the first hit.
func Chain(lookups ...Lookup) Lookup {
	return func(key string) (string, bool) {
		for _, l := range lookups {
			if v, ok := l(key); ok {
				return v, true
			}
		}

		return "", false
	}
}
