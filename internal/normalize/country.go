// Package normalize canonicalizes values that are semantically equal but
// lexically different. Every function here is pure and idempotent.
package normalize

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

var defaultCountryAliases = map[string]string{
	"US":             "UNITED STATES OF AMERICA",
	"USA":            "UNITED STATES OF AMERICA",
	"ESTADOS UNIDOS": "UNITED STATES OF AMERICA",
	"JP":             "JAPAN",
	"JAPON":          "JAPAN",
	"JAPÓN":          "JAPAN",
}

// DefaultCountryAliases returns a copy of the built-in alias table.
func DefaultCountryAliases() map[string]string {
	out := make(map[string]string, len(defaultCountryAliases))
	for k, v := range defaultCountryAliases {
		out[k] = v
	}
	return out
}

// Countries maps country spellings onto one canonical uppercase name.
type Countries struct {
	aliases map[string]string
}

var defaultCountries = mustCountries(nil)

// ErrAliasCycle reports an alias table whose chains loop back on themselves.
var ErrAliasCycle = errors.New("country alias cycle")

// NewCountries builds a table from the defaults plus extra; extra wins on conflicts.
// An extra keyed by a built-in canonical name renames that country, so every
// built-in alias follows it. Alias chains (A -> B, B -> C) are collapsed so
// Normalize stays idempotent; a chain that loops fails with ErrAliasCycle.
func NewCountries(extra map[string]string) (*Countries, error) {
	raw := DefaultCountryAliases()
	canonical := make(map[string]bool, len(raw))
	for _, v := range raw {
		canonical[v] = true
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		from := strings.ToUpper(strings.TrimSpace(k))
		to := strings.ToUpper(strings.TrimSpace(extra[k]))
		if from == "" || to == "" {
			continue
		}
		if canonical[from] {
			for alias, v := range raw {
				if v == from {
					raw[alias] = to
				}
			}
		}
		raw[from] = to
	}

	resolved := make(map[string]string, len(raw))
	for k := range raw {
		target, err := resolve(raw, k)
		if err != nil {
			return nil, err
		}
		if target != k {
			resolved[k] = target
		}
	}
	return &Countries{aliases: resolved}, nil
}

func resolve(raw map[string]string, k string) (string, error) {
	seen := map[string]bool{k: true}
	chain := []string{k}
	target := raw[k]
	for {
		next, ok := raw[target]
		if !ok || next == target {
			return target, nil
		}
		if seen[target] {
			return "", fmt.Errorf("%w: %s -> %s", ErrAliasCycle, strings.Join(chain, " -> "), target)
		}
		seen[target] = true
		chain = append(chain, target)
		target = next
	}
}

func mustCountries(extra map[string]string) *Countries {
	c, err := NewCountries(extra)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCountries returns the built-in table.
func DefaultCountries() *Countries { return defaultCountries }

// Normalize uppercases raw and maps it through the alias table.
// Values without an alias pass through uppercased.
func (c *Countries) Normalize(raw string) string {
	up := strings.ToUpper(raw)
	if v, ok := c.aliases[up]; ok {
		return v
	}
	return up
}

// Len returns the number of aliases.
func (c *Countries) Len() int { return len(c.aliases) }

// Country normalizes with the built-in table.
func Country(raw string) string { return defaultCountries.Normalize(raw) }

// LoadCountryAliases reads a YAML mapping of alias -> canonical name.
func LoadCountryAliases(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	out := map[string]string{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	return out, nil
}
