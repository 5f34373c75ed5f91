package router

import (
	"fmt"

	"github.com/railwise/switchyard/pkg/request"
	"github.com/railwise/switchyard/pkg/rules"
)

// Classify evaluates rules in ascending priority order and returns a decision
// for the first rule that matches. It is a pure function: same request, same
// rules, same decision.
//
// With a validated table the catch-all guarantees a match; UnmatchedError is
// reachable only when called with a raw rule list that lacks one.
func Classify(req request.ChangeRequest, list []rules.Rule) (*Decision, error) {
	trace := make([]Step, 0, len(list))

	for _, rule := range list {
		matched := rule.Matches(req)
		trace = append(trace, Step{Rule: rule.Name, Priority: rule.Priority, Matched: matched})
		if matched {
			return &Decision{
				Agent:    rule.Outcome.Agent,
				Reason:   rule.Outcome.Reason,
				Rule:     rule.Name,
				Priority: rule.Priority,
				Trace:    trace,
			}, nil
		}
	}

	return nil, &UnmatchedError{Kind: req.Kind}
}

// UnmatchedError reports that no rule matched a request. A validated table
// cannot produce it; its presence means the rule list bypassed validation.
type UnmatchedError struct {
	Kind request.Kind
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("no rule matched request of kind %q; rule list has no catch-all", e.Kind)
}
