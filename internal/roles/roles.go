// Package roles computes the set of role identifiers a directory user is
// granted. The evaluation is a pure function over the user's directory
// entry, their resolved group memberships and the mapping policy; it
// performs no I/O of its own.
package roles

import (
	"regexp"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/dirauthd/dirauthd/internal/ldap"
)

// Config is the role mapping policy. Role identifiers referenced here must
// exist in the registry; unknown identifiers are skipped with a warning.
type Config struct {
	// Default lists roles granted to every authenticated user.
	Default []string `mapstructure:"default"`

	// UserMapping grants a role to the exact user DNs listed.
	UserMapping map[string][]string `mapstructure:"userMapping"`

	// GroupMapping grants a role when the user is a member of any of the
	// listed group DNs. Entries that are not DNs are matched verbatim
	// against the resolved memberships, which covers policies keyed by a
	// remote role identifier instead of a group DN.
	GroupMapping map[string][]string `mapstructure:"groupMapping"`

	// PropertyMapping grants a role when a directory attribute of the user
	// entry matches a condition. A condition matches a value either by
	// string equality or, if it compiles, as a regular expression.
	PropertyMapping map[string]map[string][]string `mapstructure:"propertyMapping"`
}

// Registry answers whether a role identifier is known to the surrounding
// application. Implementations live outside this package.
type Registry interface {
	HasRole(identifier string) (bool, error)
}

// Evaluate computes the role set for a user. All rule categories apply
// independently; a user accumulates roles from every matching rule. The
// result is deduplicated and its order is stable across calls with equal
// input. Callers are expected to replace the account's previous role set
// with the returned one rather than merging into it.
func Evaluate(cfg Config, entry *ldap.Entry, groups []string, registry Registry) ([]string, error) {
	acc := newAccumulator(registry)

	for _, role := range cfg.Default {
		if err := acc.add(role); err != nil {
			return nil, err
		}
	}

	if entry != nil {
		for _, role := range sortedKeys(cfg.PropertyMapping) {
			if matchesProperties(entry, cfg.PropertyMapping[role]) {
				if err := acc.add(role); err != nil {
					return nil, err
				}
			}
		}

		for _, role := range sortedKeys(cfg.UserMapping) {
			if contains(cfg.UserMapping[role], entry.DN) {
				if err := acc.add(role); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, role := range sortedKeys(cfg.GroupMapping) {
		if intersects(cfg.GroupMapping[role], groups) {
			if err := acc.add(role); err != nil {
				return nil, err
			}
		}
	}

	return acc.roles, nil
}

// matchesProperties reports whether any attribute condition matches any
// value of the corresponding entry attribute. The first match wins.
func matchesProperties(entry *ldap.Entry, conditions map[string][]string) bool {
	for _, attribute := range sortedKeys(conditions) {
		values := entry.Values(attribute)
		if len(values) == 0 {
			continue
		}

		for _, condition := range conditions[attribute] {
			for _, value := range values {
				if matchesCondition(condition, value) {
					return true
				}
			}
		}
	}

	return false
}

// matchesCondition tests a single condition against a single value: exact
// equality first, then as a regular expression if the condition compiles.
func matchesCondition(condition, value string) bool {
	if condition == value {
		return true
	}

	re, err := regexp.Compile(condition)
	if err != nil {
		return false
	}

	return re.MatchString(value)
}

// accumulator collects roles in first-seen order, dropping duplicates and
// identifiers the registry does not know.
type accumulator struct {
	registry Registry
	seen     map[string]bool
	roles    []string
}

func newAccumulator(registry Registry) *accumulator {
	return &accumulator{
		registry: registry,
		seen:     make(map[string]bool),
		roles:    []string{},
	}
}

func (a *accumulator) add(identifier string) error {
	if a.seen[identifier] {
		return nil
	}

	a.seen[identifier] = true

	known, err := a.registry.HasRole(identifier)
	if err != nil {
		return err
	}

	if !known {
		log.Warn().Str("role", identifier).Msg("role mapping references unknown role, skipping")
		return nil
	}

	a.roles = append(a.roles, identifier)

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func contains(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}

	return false
}

func intersects(a, b []string) bool {
	for _, candidate := range a {
		if contains(b, candidate) {
			return true
		}
	}

	return false
}
