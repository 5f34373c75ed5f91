// Package dispatch sends routed change requests to LLM providers. It looks up
// the matched agent's profile, enforces the profile's policy tier, builds the
// prompt from the profile preamble and the change description, and calls the
// configured adapter.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/railwise/switchyard/pkg/adapter"
	"github.com/railwise/switchyard/pkg/config"
	"github.com/railwise/switchyard/pkg/profile"
	"github.com/railwise/switchyard/pkg/request"
	"github.com/railwise/switchyard/pkg/router"
)

// ErrApprovalRequired is returned when a profile's policy tier is ask_first
// and the caller has not approved the dispatch.
var ErrApprovalRequired = errors.New("dispatch requires explicit approval")

// PolicyError reports a dispatch blocked by the profile's policy tier.
type PolicyError struct {
	Agent string
	Tier  profile.Tier
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("profile %q has policy tier %q and cannot be dispatched", e.Agent, e.Tier)
}

// Dispatcher sends routed requests to providers.
type Dispatcher struct {
	adapters      map[string]adapter.Adapter
	profiles      *profile.Registry
	targets       map[string]config.Target
	defaultTarget config.Target
	approved      bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithApproval marks ask_first dispatches as approved by the caller.
func WithApproval(approved bool) Option {
	return func(d *Dispatcher) {
		d.approved = approved
	}
}

// WithTargets overrides the agent-to-provider target table.
func WithTargets(targets map[string]config.Target, fallback config.Target) Option {
	return func(d *Dispatcher) {
		d.targets = targets
		d.defaultTarget = fallback
	}
}

// New creates a dispatcher over the given adapters and profile registry.
func New(adapters map[string]adapter.Adapter, profiles *profile.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		adapters:      adapters,
		profiles:      profiles,
		targets:       config.DefaultTargets(),
		defaultTarget: config.Target{Adapter: "anthropic", Model: "claude-sonnet-4-20250514"},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch sends a routed request to the provider configured for its agent.
// One retry is attempted for transient provider errors.
func (d *Dispatcher) Dispatch(ctx context.Context, decision *router.Decision, req request.ChangeRequest) (*adapter.Response, error) {
	prof, err := d.profiles.Get(decision.Agent)
	if err != nil {
		return nil, err
	}

	switch prof.Tier {
	case profile.TierNever:
		return nil, &PolicyError{Agent: prof.Name, Tier: prof.Tier}
	case profile.TierAskFirst:
		if !d.approved {
			return nil, fmt.Errorf("profile %q: %w", prof.Name, ErrApprovalRequired)
		}
	}

	target, ok := d.targets[decision.Agent]
	if !ok {
		target = d.defaultTarget
	}

	a, ok := d.adapters[target.Adapter]
	if !ok {
		return nil, fmt.Errorf("no adapter %q available for agent %q", target.Adapter, decision.Agent)
	}

	prompt := buildPrompt(prof, decision, req)

	resp, err := a.Generate(ctx, decision.Agent, target.Model, prompt)
	if err != nil && adapter.IsTransient(err) {
		resp, err = a.Generate(ctx, decision.Agent, target.Model, prompt)
	}
	if err != nil {
		return nil, fmt.Errorf("dispatch to %s/%s failed: %w", target.Adapter, target.Model, err)
	}
	return resp, nil
}

func buildPrompt(prof profile.Profile, decision *router.Decision, req request.ChangeRequest) string {
	return fmt.Sprintf("%s\n\nThis task was routed to you because: %s\n\n%s",
		prof.Prompt, decision.Reason, req.Describe())
}
