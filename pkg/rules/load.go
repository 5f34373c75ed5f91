package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/railwise/switchyard/pkg/request"
)

// fileTable is the on-disk shape of a rule table.
type fileTable struct {
	Rules    []ruleSpec `yaml:"rules"`
	CatchAll *catchAll  `yaml:"catch_all"`
}

// ruleSpec is a declarative predicate: the request must have the given kind
// (empty means any), every signal in requires set, every signal in absent
// unset, and a line estimate within [min_lines, max_lines] when those bounds
// are non-zero.
type ruleSpec struct {
	Name     string   `yaml:"name"`
	Priority int      `yaml:"priority"`
	Kind     string   `yaml:"kind,omitempty"`
	Requires []string `yaml:"requires,omitempty"`
	Absent   []string `yaml:"absent,omitempty"`
	MinLines int      `yaml:"min_lines,omitempty"`
	MaxLines int      `yaml:"max_lines,omitempty"`
	Agent    string   `yaml:"agent"`
	Reason   string   `yaml:"reason,omitempty"`
}

type catchAll struct {
	Priority int    `yaml:"priority,omitempty"`
	Agent    string `yaml:"agent"`
	Reason   string `yaml:"reason,omitempty"`
}

// Load reads a rule table from a YAML file and compiles it into a validated
// Table.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ft fileTable
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}

	return compile(ft)
}

func compile(ft fileTable) (*Table, error) {
	if ft.CatchAll == nil {
		return nil, &ConfigError{Reason: "no catch-all rule"}
	}

	list := make([]Rule, 0, len(ft.Rules)+1)
	maxPriority := 0
	for _, spec := range ft.Rules {
		pred, err := compilePredicate(spec)
		if err != nil {
			return nil, err
		}
		list = append(list, Rule{
			Name:     spec.Name,
			Priority: spec.Priority,
			When:     pred,
			Outcome:  Outcome{Agent: spec.Agent, Reason: spec.Reason},
		})
		if spec.Priority > maxPriority {
			maxPriority = spec.Priority
		}
	}

	caPriority := ft.CatchAll.Priority
	if caPriority == 0 {
		caPriority = maxPriority + 10
	}
	list = append(list, Rule{
		Name:     "catch-all",
		Priority: caPriority,
		Outcome:  Outcome{Agent: ft.CatchAll.Agent, Reason: ft.CatchAll.Reason},
	})

	return NewTable(list)
}

func compilePredicate(spec ruleSpec) (Predicate, error) {
	var kind request.Kind
	if spec.Kind != "" {
		parsed, err := request.ParseKind(spec.Kind)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("rule %q: unknown kind %q", spec.Name, spec.Kind)}
		}
		kind = parsed
	}

	required, err := signalGetters(spec.Name, spec.Requires)
	if err != nil {
		return nil, err
	}
	absent, err := signalGetters(spec.Name, spec.Absent)
	if err != nil {
		return nil, err
	}

	minLines, maxLines := spec.MinLines, spec.MaxLines
	return func(r request.ChangeRequest) bool {
		if kind != "" && r.Kind != kind {
			return false
		}
		for _, get := range required {
			if !get(r.Signals) {
				return false
			}
		}
		for _, get := range absent {
			if get(r.Signals) {
				return false
			}
		}
		if minLines > 0 && r.Signals.LineCountEstimate < minLines {
			return false
		}
		if maxLines > 0 && (r.Signals.LineCountEstimate == 0 || r.Signals.LineCountEstimate > maxLines) {
			return false
		}
		return true
	}, nil
}

func signalGetters(rule string, names []string) ([]func(request.Signals) bool, error) {
	getters := make([]func(request.Signals) bool, 0, len(names))
	for _, name := range names {
		get, ok := signalByName[name]
		if !ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("rule %q: unknown signal %q (valid: %s)",
				rule, name, strings.Join(SignalNames(), ", "))}
		}
		getters = append(getters, get)
	}
	return getters, nil
}

var signalByName = map[string]func(request.Signals) bool{
	"spans_multiple_models":       func(s request.Signals) bool { return s.SpansMultipleModels },
	"calls_external_api":          func(s request.Signals) bool { return s.CallsExternalAPI },
	"joins_three_plus_tables":     func(s request.Signals) bool { return s.JoinsThreePlusTables },
	"reused_in_three_plus_places": func(s request.Signals) bool { return s.ReusedInThreePlusPlaces },
}

// SignalNames returns the signal names accepted in rule files, for CLI help
// and validation messages.
func SignalNames() []string {
	return []string{
		"calls_external_api",
		"joins_three_plus_tables",
		"reused_in_three_plus_places",
		"spans_multiple_models",
	}
}
