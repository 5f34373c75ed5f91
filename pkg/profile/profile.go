// Package profile holds the registry of agent profiles the router can route
// to. A profile names an agent, describes what it is for, carries the prompt
// preamble used when work is dispatched to it, and declares its policy tier.
package profile

import (
	"fmt"
	"sort"
)

// Agent identifiers emitted by the routing rules.
const (
	AgentModel      = "model_agent"
	AgentController = "controller_agent"
	AgentService    = "service_agent"
	AgentQuery      = "query_agent"
	AgentPresenter  = "presenter_agent"
	AgentConcern    = "concern_agent"
	AgentForm       = "form_agent"
	AgentJob        = "job_agent"
	AgentMailer     = "mailer_agent"
	AgentChannel    = "channel_agent"
	AgentPolicy     = "policy_agent"
	AgentComponent  = "component_agent"

	// AgentInline means the change is too small to hand to any agent;
	// write it inline where it is needed.
	AgentInline = "inline"

	// AgentUnmatched means no rule claimed the request; a human decides.
	AgentUnmatched = "unmatched"
)

// Tier is the human-in-the-loop policy attached to a profile. It is advisory
// for routing and enforced only at dispatch time.
type Tier string

const (
	// TierAlways dispatches without confirmation.
	TierAlways Tier = "always"
	// TierAskFirst requires explicit approval before dispatch.
	TierAskFirst Tier = "ask_first"
	// TierNever is never dispatched automatically.
	TierNever Tier = "never"
)

// ParseTier converts a string to a Tier. The empty string maps to TierAlways.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case "":
		return TierAlways, nil
	case TierAlways, TierAskFirst, TierNever:
		return Tier(s), nil
	default:
		return "", fmt.Errorf("unknown policy tier %q", s)
	}
}

// Profile describes a single agent.
type Profile struct {
	Name        string
	Description string
	Tier        Tier
	// Prompt is the preamble prepended to the change description when the
	// profile is dispatched to an LLM.
	Prompt string
}

// Registry holds profiles by name.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry creates a registry preloaded with the builtin profiles, one for
// every agent the default rule table can emit.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range builtinProfiles() {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a profile.
func (r *Registry) Register(p Profile) {
	r.profiles[p.Name] = p
}

// Get returns a profile by name.
func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile not found: %s", name)
	}
	return p, nil
}

// Has reports whether a profile is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.profiles[name]
	return ok
}

// Names returns all registered profile names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinProfiles() []Profile {
	return []Profile{
		{
			Name:        AgentModel,
			Description: "ActiveRecord models: validations, associations, scopes, single-model logic",
			Tier:        TierAlways,
			Prompt:      "You write idiomatic ActiveRecord models. Keep validations and associations declarative, use scopes for reusable query fragments, and keep callbacks to a minimum.",
		},
		{
			Name:        AgentController,
			Description: "Thin controllers: HTTP concerns only, strong parameters, RESTful actions",
			Tier:        TierAlways,
			Prompt:      "You write thin Rails controllers. Restrict controllers to the seven RESTful actions, use strong parameters, and push everything that is not HTTP handling down into the domain.",
		},
		{
			Name:        AgentService,
			Description: "Service objects for multi-model or external-API business logic",
			Tier:        TierAlways,
			Prompt:      "You write Rails service objects: one public call method, explicit result objects, transactional when they touch multiple models, no hidden side effects.",
		},
		{
			Name:        AgentQuery,
			Description: "Query objects for complex relational queries",
			Tier:        TierAlways,
			Prompt:      "You write Rails query objects. Encapsulate complex joins and aggregations behind a single resolve method returning an ActiveRecord::Relation.",
		},
		{
			Name:        AgentPresenter,
			Description: "Presenters and decorators for display and formatting logic",
			Tier:        TierAlways,
			Prompt:      "You write Rails presenters. Move formatting and display decisions out of views and models into plain objects that wrap a record.",
		},
		{
			Name:        AgentConcern,
			Description: "Concerns for behavior shared across multiple models",
			Tier:        TierAskFirst,
			Prompt:      "You extract shared model behavior into ActiveSupport::Concern modules. Only extract behavior that is genuinely shared; name the concern after the capability, not the models.",
		},
		{
			Name:        AgentForm,
			Description: "Form objects for multi-model forms",
			Tier:        TierAlways,
			Prompt:      "You write Rails form objects using ActiveModel::Model, validating and persisting several records behind one form-shaped interface.",
		},
		{
			Name:        AgentJob,
			Description: "ActiveJob classes for asynchronous work",
			Tier:        TierAlways,
			Prompt:      "You write ActiveJob classes: idempotent perform methods, explicit queue names, retry/discard policies declared up front.",
		},
		{
			Name:        AgentMailer,
			Description: "ActionMailer classes for transactional email",
			Tier:        TierAlways,
			Prompt:      "You write ActionMailer classes with matching text and HTML templates, delivered asynchronously by default.",
		},
		{
			Name:        AgentChannel,
			Description: "ActionCable channels for realtime communication",
			Tier:        TierAskFirst,
			Prompt:      "You write ActionCable channels and the Turbo Streams broadcasts that feed them. Authorize subscriptions explicitly.",
		},
		{
			Name:        AgentPolicy,
			Description: "Policy objects for authorization rules",
			Tier:        TierAskFirst,
			Prompt:      "You write Pundit-style policy objects. Deny by default; one predicate per action; scopes for index-level filtering.",
		},
		{
			Name:        AgentComponent,
			Description: "ViewComponent classes for reusable UI",
			Tier:        TierAlways,
			Prompt:      "You write ViewComponent classes with previews and unit tests, keeping templates free of logic.",
		},
		{
			Name:        AgentInline,
			Description: "No extraction: the change is small enough to write inline",
			Tier:        TierNever,
			Prompt:      "",
		},
		{
			Name:        AgentUnmatched,
			Description: "No rule claimed this request; a human should decide",
			Tier:        TierNever,
			Prompt:      "",
		},
	}
}
