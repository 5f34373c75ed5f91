package request

import (
	"errors"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{name: "business logic", input: "business_logic", want: KindBusinessLogic},
		{name: "complex query", input: "complex_query", want: KindComplexQuery},
		{name: "uppercase accepted", input: "HTTP_HANDLING", want: KindHTTPHandling},
		{name: "surrounding whitespace", input: "  validation_only ", want: KindValidationOnly},
		{name: "unknown kind", input: "graphql_resolver", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) expected error, got %q", tt.input, got)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(Kind("webhooks"), Signals{}, "")
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Field != "kind" {
		t.Errorf("expected kind field in error, got %q", verr.Field)
	}
}

func TestNewRejectsNegativeLineEstimate(t *testing.T) {
	_, err := New(KindBusinessLogic, Signals{LineCountEstimate: -3}, "")
	if err == nil {
		t.Fatal("expected error for negative line estimate")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestKindsCoversEnumeration(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 12 {
		t.Fatalf("expected 12 kinds, got %d", len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Fatalf("kinds not sorted: %q before %q", kinds[i-1], kinds[i])
		}
	}
}

func TestDescribe(t *testing.T) {
	req, err := New(KindBusinessLogic, Signals{
		SpansMultipleModels: true,
		CallsExternalAPI:    true,
		LineCountEstimate:   40,
	}, "Charge the customer and create the order")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	desc := req.Describe()
	for _, want := range []string{
		"business_logic",
		"spans multiple models",
		"calls an external API",
		"~40 lines",
		"Charge the customer",
	} {
		if !strings.Contains(desc, want) {
			t.Errorf("Describe() missing %q:\n%s", want, desc)
		}
	}
}
