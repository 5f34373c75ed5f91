package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/railwise/switchyard/pkg/request"
)

func TestDefaultTableValidates(t *testing.T) {
	table := DefaultTable()
	if table.Len() == 0 {
		t.Fatal("default table is empty")
	}

	list := table.Rules()
	last := list[len(list)-1]
	if !last.CatchAll() {
		t.Errorf("last rule %q is not the catch-all", last.Name)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Priority >= list[i].Priority {
			t.Errorf("rules out of order: %q (%d) before %q (%d)",
				list[i-1].Name, list[i-1].Priority, list[i].Name, list[i].Priority)
		}
	}
}

func TestNewTableRejectsDuplicatePriorities(t *testing.T) {
	always := func(request.ChangeRequest) bool { return true }
	_, err := NewTable([]Rule{
		{Name: "a", Priority: 10, When: always, Outcome: Outcome{Agent: "x"}},
		{Name: "b", Priority: 10, When: always, Outcome: Outcome{Agent: "y"}},
		{Name: "fallback", Priority: 100, Outcome: Outcome{Agent: "unmatched"}},
	})
	if err == nil {
		t.Fatal("expected error for duplicate priorities")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	if !strings.Contains(cerr.Error(), "priority 10") {
		t.Errorf("error should name the colliding priority: %v", cerr)
	}
}

func TestNewTableRequiresCatchAll(t *testing.T) {
	pred := func(request.ChangeRequest) bool { return true }
	_, err := NewTable([]Rule{
		{Name: "a", Priority: 10, When: pred, Outcome: Outcome{Agent: "x"}},
	})
	if err == nil {
		t.Fatal("expected error for missing catch-all")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
}

func TestNewTableRejectsCatchAllNotLast(t *testing.T) {
	pred := func(request.ChangeRequest) bool { return true }
	_, err := NewTable([]Rule{
		{Name: "fallback", Priority: 10, Outcome: Outcome{Agent: "unmatched"}},
		{Name: "a", Priority: 20, When: pred, Outcome: Outcome{Agent: "x"}},
	})
	if err == nil {
		t.Fatal("expected error when catch-all is not the lowest-precedence rule")
	}
}

func TestNewTableRejectsMultipleCatchAlls(t *testing.T) {
	_, err := NewTable([]Rule{
		{Name: "fallback1", Priority: 10, Outcome: Outcome{Agent: "x"}},
		{Name: "fallback2", Priority: 20, Outcome: Outcome{Agent: "y"}},
	})
	if err == nil {
		t.Fatal("expected error for two catch-alls")
	}
}

func TestNewTableRejectsEmpty(t *testing.T) {
	if _, err := NewTable(nil); err == nil {
		t.Fatal("expected error for empty rule list")
	}
}

func TestNewTableRejectsMissingAgent(t *testing.T) {
	_, err := NewTable([]Rule{
		{Name: "fallback", Priority: 10, Outcome: Outcome{Reason: "no agent set"}},
	})
	if err == nil {
		t.Fatal("expected error for rule without outcome agent")
	}
}

func TestTableRulesReturnsCopy(t *testing.T) {
	table := DefaultTable()
	list := table.Rules()
	list[0] = Rule{Name: "mutated", Priority: -1}

	fresh := table.Rules()
	if fresh[0].Name == "mutated" {
		t.Fatal("mutating the returned slice must not affect the table")
	}
}
