// Package router classifies change requests against an ordered rule table
// and reports which agent profile should handle them. A Router holds one
// validated, immutable table; routing is a pure read over it and is safe for
// concurrent use without locks.
package router

import (
	"fmt"
	"log"
	"strings"

	"github.com/railwise/switchyard/pkg/profile"
	"github.com/railwise/switchyard/pkg/request"
	"github.com/railwise/switchyard/pkg/rules"
)

// Router is the public entry point for classification.
type Router struct {
	table    *rules.Table
	profiles *profile.Registry
	debug    bool
}

// Option configures a Router.
type Option func(*Router)

// WithProfiles attaches a profile registry so decisions carry the matched
// profile's policy tier.
func WithProfiles(reg *profile.Registry) Option {
	return func(r *Router) {
		r.profiles = reg
	}
}

// WithDebug enables evaluation logging.
func WithDebug(debug bool) Option {
	return func(r *Router) {
		r.debug = debug
	}
}

// New creates a router over a validated table. A nil table selects the
// builtin default.
func New(table *rules.Table, opts ...Option) *Router {
	if table == nil {
		table = rules.DefaultTable()
	}
	r := &Router{table: table}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route classifies a request and returns the decision.
func (r *Router) Route(req request.ChangeRequest) (*Decision, error) {
	decision, err := Classify(req, r.table.Rules())
	if err != nil {
		return nil, err
	}

	if r.profiles != nil {
		if p, perr := r.profiles.Get(decision.Agent); perr == nil {
			decision.Tier = string(p.Tier)
		}
	}

	if r.debug {
		log.Printf("[router] kind=%s rule=%s agent=%s (consulted %d rules)",
			req.Kind, decision.Rule, decision.Agent, len(decision.Trace))
	}
	return decision, nil
}

// Explain classifies a request and renders a human-readable trace of every
// rule consulted and why the matched rule won.
func (r *Router) Explain(req request.ChangeRequest) (string, error) {
	decision, err := r.Route(req)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "request: kind=%s", req.Kind)
	if desc := signalSummary(req.Signals); desc != "" {
		fmt.Fprintf(&sb, " signals=[%s]", desc)
	}
	sb.WriteString("\n")

	for _, step := range decision.Trace {
		marker := " "
		if step.Matched {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s [%4d] %s\n", marker, step.Priority, step.Rule)
	}

	fmt.Fprintf(&sb, "-> %s: %s\n", decision.Agent, decision.Reason)
	if decision.Tier != "" {
		fmt.Fprintf(&sb, "   policy tier: %s\n", decision.Tier)
	}
	return sb.String(), nil
}

// Table returns the router's rule table.
func (r *Router) Table() *rules.Table {
	return r.table
}

func signalSummary(s request.Signals) string {
	var parts []string
	if s.SpansMultipleModels {
		parts = append(parts, "spans_multiple_models")
	}
	if s.CallsExternalAPI {
		parts = append(parts, "calls_external_api")
	}
	if s.JoinsThreePlusTables {
		parts = append(parts, "joins_three_plus_tables")
	}
	if s.ReusedInThreePlusPlaces {
		parts = append(parts, "reused_in_three_plus_places")
	}
	if s.LineCountEstimate > 0 {
		parts = append(parts, fmt.Sprintf("lines~%d", s.LineCountEstimate))
	}
	return strings.Join(parts, ", ")
}
