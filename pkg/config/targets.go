package config

// Target specifies the provider and model a routed agent dispatches to.
type Target struct {
	Adapter string `yaml:"adapter"`
	Model   string `yaml:"model"`
}

// DefaultTargets maps each builtin agent to a provider and model. Agents that
// are never dispatched (inline, unmatched) have no target.
func DefaultTargets() map[string]Target {
	return map[string]Target{
		"model_agent":      {Adapter: "anthropic", Model: "claude-sonnet-4-20250514"},
		"controller_agent": {Adapter: "anthropic", Model: "claude-sonnet-4-20250514"},
		"service_agent":    {Adapter: "anthropic", Model: "claude-sonnet-4-20250514"},
		"query_agent":      {Adapter: "openai", Model: "gpt-5.2-codex"},
		"presenter_agent":  {Adapter: "openai", Model: "gpt-5.2-instant"},
		"concern_agent":    {Adapter: "anthropic", Model: "claude-sonnet-4-20250514"},
		"form_agent":       {Adapter: "anthropic", Model: "claude-sonnet-4-20250514"},
		"job_agent":        {Adapter: "deepseek", Model: "deepseek-coder"},
		"mailer_agent":     {Adapter: "google", Model: "gemini-2.0-pro"},
		"channel_agent":    {Adapter: "anthropic", Model: "claude-sonnet-4-20250514"},
		"policy_agent":     {Adapter: "anthropic", Model: "claude-opus-4-20250514"},
		"component_agent":  {Adapter: "openai", Model: "gpt-5.2-codex"},
	}
}

func defaultTarget() Target {
	return Target{Adapter: "anthropic", Model: "claude-sonnet-4-20250514"}
}
