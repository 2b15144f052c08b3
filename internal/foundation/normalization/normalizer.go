package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer maps loosely written strings (any case, surrounding spaces,
// registered aliases) onto a closed set of enum values.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string
}

// NewNormalizer creates a normalizer named after the field it guards. Keys are
// matched case-insensitively.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))

	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize returns the matching value, or the default when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.validValues[clean(raw)]; ok {
		return value
	}
	return n.defaultValue
}

// Parse returns the matching value or an error listing the accepted keys.
// An empty input yields the default without error.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	if clean(raw) == "" {
		return n.defaultValue, nil
	}
	if value, ok := n.validValues[clean(raw)]; ok {
		return value, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", n.name, raw, strings.Join(n.validKeys, ", "))
}

// Known reports whether raw maps onto a registered key.
func (n *Normalizer[T]) Known(raw string) bool {
	_, ok := n.validValues[clean(raw)]
	return ok
}

// Warning returns a human readable note when raw had to be rewritten to be
// understood, or "" when it was already canonical or unknown.
func (n *Normalizer[T]) Warning(field, raw string) string {
	c := clean(raw)
	if c == raw || !n.Known(raw) {
		return ""
	}
	return fmt.Sprintf("normalized %s from '%s' to '%s'", field, raw, c)
}

// ValidKeys returns all accepted keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
