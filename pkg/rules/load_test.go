package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/railwise/switchyard/pkg/request"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
	return path
}

func TestLoadCompilesDeclarativeRules(t *testing.T) {
	path := writeRules(t, `
rules:
  - name: external-api
    priority: 10
    kind: business_logic
    requires: [calls_external_api]
    agent: service_agent
    reason: external call
  - name: small-inline
    priority: 20
    kind: business_logic
    absent: [reused_in_three_plus_places]
    max_lines: 10
    agent: inline
    reason: too small to extract
catch_all:
  agent: unmatched
  reason: ask a human
`)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rules (2 + catch-all), got %d", table.Len())
	}

	tests := []struct {
		name      string
		req       request.ChangeRequest
		wantAgent string
	}{
		{
			name: "external api wins",
			req: request.ChangeRequest{
				Kind:    request.KindBusinessLogic,
				Signals: request.Signals{CallsExternalAPI: true, LineCountEstimate: 5},
			},
			wantAgent: "service_agent",
		},
		{
			name: "small logic stays inline",
			req: request.ChangeRequest{
				Kind:    request.KindBusinessLogic,
				Signals: request.Signals{LineCountEstimate: 5},
			},
			wantAgent: "inline",
		},
		{
			name: "reused logic skips inline rule",
			req: request.ChangeRequest{
				Kind:    request.KindBusinessLogic,
				Signals: request.Signals{ReusedInThreePlusPlaces: true, LineCountEstimate: 5},
			},
			wantAgent: "unmatched",
		},
		{
			name:      "other kinds fall through",
			req:       request.ChangeRequest{Kind: request.KindHTTPHandling},
			wantAgent: "unmatched",
		},
		{
			name: "no line estimate fails max_lines bound",
			req: request.ChangeRequest{
				Kind: request.KindBusinessLogic,
			},
			wantAgent: "unmatched",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			for _, rule := range table.Rules() {
				if rule.Matches(tt.req) {
					got = rule.Outcome.Agent
					break
				}
			}
			if got != tt.wantAgent {
				t.Errorf("first match = %q, want %q", got, tt.wantAgent)
			}
		})
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	path := writeRules(t, `
rules:
  - name: bad
    priority: 10
    kind: graphql_resolver
    agent: service_agent
catch_all:
  agent: unmatched
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
}

func TestLoadRejectsUnknownSignal(t *testing.T) {
	path := writeRules(t, `
rules:
  - name: bad
    priority: 10
    kind: business_logic
    requires: [uses_graphql]
    agent: service_agent
catch_all:
  agent: unmatched
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown signal")
	}
}

func TestLoadRequiresCatchAll(t *testing.T) {
	path := writeRules(t, `
rules:
  - name: a
    priority: 10
    kind: business_logic
    agent: service_agent
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing catch_all")
	}
}

func TestLoadRejectsDuplicatePriorities(t *testing.T) {
	path := writeRules(t, `
rules:
  - name: a
    priority: 10
    kind: business_logic
    agent: service_agent
  - name: b
    priority: 10
    kind: complex_query
    agent: query_agent
catch_all:
  agent: unmatched
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for duplicate priorities")
	}
}

func TestLoadCatchAllPriorityDefaultsPastRules(t *testing.T) {
	path := writeRules(t, `
rules:
  - name: a
    priority: 500
    kind: business_logic
    agent: service_agent
catch_all:
  agent: unmatched
`)
	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	list := table.Rules()
	last := list[len(list)-1]
	if !last.CatchAll() || last.Priority <= 500 {
		t.Fatalf("catch-all should sort after all rules, got priority %d", last.Priority)
	}
}
