// Package rules defines the routing rule table: an ordered list of predicates
// over change requests, each mapping to an agent outcome. Tables are built
// once, validated, and never mutated.
package rules

import (
	"fmt"
	"sort"

	"github.com/railwise/switchyard/pkg/request"
)

// Predicate evaluates a change request. A nil predicate always matches and
// marks the table's catch-all rule.
type Predicate func(request.ChangeRequest) bool

// Outcome names the agent a rule routes to, with the rationale recorded in
// the decision tree the rule was taken from.
type Outcome struct {
	Agent  string `yaml:"agent" json:"agent"`
	Reason string `yaml:"reason" json:"reason"`
}

// Rule binds a priority and predicate to an outcome. Lower priorities
// evaluate first; priorities must be unique within a table.
type Rule struct {
	Name     string
	Priority int
	When     Predicate
	Outcome  Outcome
}

// CatchAll reports whether the rule matches unconditionally.
func (r Rule) CatchAll() bool {
	return r.When == nil
}

// Matches evaluates the rule's predicate.
func (r Rule) Matches(req request.ChangeRequest) bool {
	return r.When == nil || r.When(req)
}

// Table is an ordered, validated set of routing rules.
type Table struct {
	rules []Rule
}

// NewTable validates and sorts a rule list into a table. Validation fails if
// the list is empty, two rules share a priority, no catch-all is present, or
// the catch-all does not sort last.
func NewTable(list []Rule) (*Table, error) {
	if len(list) == 0 {
		return nil, &ConfigError{Reason: "rule table is empty"}
	}

	sorted := make([]Rule, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	seen := make(map[int]string, len(sorted))
	catchAlls := 0
	for _, r := range sorted {
		if prev, ok := seen[r.Priority]; ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("rules %q and %q share priority %d", prev, r.Name, r.Priority)}
		}
		seen[r.Priority] = r.Name
		if r.CatchAll() {
			catchAlls++
		}
		if r.Outcome.Agent == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("rule %q has no outcome agent", r.Name)}
		}
	}

	switch {
	case catchAlls == 0:
		return nil, &ConfigError{Reason: "no catch-all rule"}
	case catchAlls > 1:
		return nil, &ConfigError{Reason: "more than one catch-all rule"}
	case !sorted[len(sorted)-1].CatchAll():
		return nil, &ConfigError{Reason: fmt.Sprintf("catch-all must have the highest priority value, found %q after it", sorted[len(sorted)-1].Name)}
	}

	return &Table{rules: sorted}, nil
}

// Rules returns the rules in evaluation order. The slice is a copy; the
// table itself is immutable.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

// ConfigError reports an invalid rule table definition. It is fatal: a router
// must not be built from a table that failed validation.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid rule table: %s", e.Reason)
}
