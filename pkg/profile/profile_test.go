package profile

import (
	"testing"
)

func TestRegistryHasProfileForEveryAgent(t *testing.T) {
	reg := NewRegistry()

	agents := []string{
		AgentModel, AgentController, AgentService, AgentQuery,
		AgentPresenter, AgentConcern, AgentForm, AgentJob,
		AgentMailer, AgentChannel, AgentPolicy, AgentComponent,
		AgentInline, AgentUnmatched,
	}
	for _, agent := range agents {
		p, err := reg.Get(agent)
		if err != nil {
			t.Errorf("missing builtin profile %q: %v", agent, err)
			continue
		}
		if p.Description == "" {
			t.Errorf("profile %q has no description", agent)
		}
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get("graphql_agent"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Profile{Name: AgentService, Description: "custom", Tier: TierAskFirst})

	p, err := reg.Get(AgentService)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Description != "custom" || p.Tier != TierAskFirst {
		t.Errorf("registered profile not returned: %+v", p)
	}
}

func TestNonDispatchableTiers(t *testing.T) {
	reg := NewRegistry()
	for _, agent := range []string{AgentInline, AgentUnmatched} {
		p, err := reg.Get(agent)
		if err != nil {
			t.Fatalf("Get(%s): %v", agent, err)
		}
		if p.Tier != TierNever {
			t.Errorf("profile %q tier = %q, want never", agent, p.Tier)
		}
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		input   string
		want    Tier
		wantErr bool
	}{
		{input: "", want: TierAlways},
		{input: "always", want: TierAlways},
		{input: "ask_first", want: TierAskFirst},
		{input: "never", want: TierNever},
		{input: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTier(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTier(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTier(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTier(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	reg := NewRegistry()
	names := reg.Names()
	if len(names) == 0 {
		t.Fatal("no profiles registered")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
