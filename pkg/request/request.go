// Package request defines the change request value object that the router
// classifies. A ChangeRequest describes one proposed unit of work against a
// Rails codebase: what category of change it is, plus the complexity signals
// that push it toward one extraction pattern or another.
package request

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the category of a proposed code change.
type Kind string

const (
	KindDataFormatting        Kind = "data_formatting"
	KindBusinessLogic         Kind = "business_logic"
	KindComplexQuery          Kind = "complex_query"
	KindSharedModelBehavior   Kind = "shared_model_behavior"
	KindAuthorization         Kind = "authorization"
	KindReusableUI            Kind = "reusable_ui"
	KindAsyncWork             Kind = "async_work"
	KindMultiModelForm        Kind = "multi_model_form"
	KindTransactionalEmail    Kind = "transactional_email"
	KindRealtimeCommunication Kind = "realtime_communication"
	KindValidationOnly        Kind = "validation_only"
	KindHTTPHandling          Kind = "http_handling"
)

var validKinds = map[Kind]struct{}{
	KindDataFormatting:        {},
	KindBusinessLogic:         {},
	KindComplexQuery:          {},
	KindSharedModelBehavior:   {},
	KindAuthorization:         {},
	KindReusableUI:            {},
	KindAsyncWork:             {},
	KindMultiModelForm:        {},
	KindTransactionalEmail:    {},
	KindRealtimeCommunication: {},
	KindValidationOnly:        {},
	KindHTTPHandling:          {},
}

// Kinds returns the closed set of valid kinds in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(validKinds))
	for k := range validKinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseKind converts a string to a Kind, failing for anything outside the
// closed enumeration.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validKinds[k]; !ok {
		return "", &ValidationError{Field: "kind", Value: s, Reason: "not a known change kind"}
	}
	return k, nil
}

// Signals captures the complexity flags that influence routing. The line
// estimate is the author's guess at how large the change will be; zero means
// no estimate was given.
type Signals struct {
	SpansMultipleModels     bool `json:"spans_multiple_models,omitempty"`
	CallsExternalAPI        bool `json:"calls_external_api,omitempty"`
	JoinsThreePlusTables    bool `json:"joins_three_plus_tables,omitempty"`
	ReusedInThreePlusPlaces bool `json:"reused_in_three_plus_places,omitempty"`
	LineCountEstimate       int  `json:"line_count_estimate,omitempty"`
}

// ChangeRequest describes one unit of work to classify. It is a value object:
// constructed once, validated at construction, and never mutated. Pass it by
// value.
type ChangeRequest struct {
	Kind    Kind    `json:"kind"`
	Signals Signals `json:"signals"`
	Summary string  `json:"summary,omitempty"`
}

// New constructs a validated ChangeRequest. Summary is free-form text used
// when the request is dispatched to an agent; it plays no part in routing.
func New(kind Kind, signals Signals, summary string) (ChangeRequest, error) {
	if _, ok := validKinds[kind]; !ok {
		return ChangeRequest{}, &ValidationError{Field: "kind", Value: string(kind), Reason: "not a known change kind"}
	}
	if signals.LineCountEstimate < 0 {
		return ChangeRequest{}, &ValidationError{
			Field:  "line_count_estimate",
			Value:  fmt.Sprintf("%d", signals.LineCountEstimate),
			Reason: "must not be negative",
		}
	}
	return ChangeRequest{Kind: kind, Signals: signals, Summary: summary}, nil
}

// Describe renders the request as text suitable for inclusion in an agent
// prompt.
func (r ChangeRequest) Describe() string {
	var sb strings.Builder
	sb.WriteString("Change kind: ")
	sb.WriteString(string(r.Kind))
	sb.WriteString("\n")

	var flags []string
	if r.Signals.SpansMultipleModels {
		flags = append(flags, "spans multiple models")
	}
	if r.Signals.CallsExternalAPI {
		flags = append(flags, "calls an external API")
	}
	if r.Signals.JoinsThreePlusTables {
		flags = append(flags, "joins three or more tables")
	}
	if r.Signals.ReusedInThreePlusPlaces {
		flags = append(flags, "reused in three or more places")
	}
	if len(flags) > 0 {
		sb.WriteString("Signals: ")
		sb.WriteString(strings.Join(flags, ", "))
		sb.WriteString("\n")
	}
	if r.Signals.LineCountEstimate > 0 {
		sb.WriteString(fmt.Sprintf("Estimated size: ~%d lines\n", r.Signals.LineCountEstimate))
	}
	if r.Summary != "" {
		sb.WriteString("Task:\n")
		sb.WriteString(r.Summary)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ValidationError reports a malformed change request attribute.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid change request: %s %q: %s", e.Field, e.Value, e.Reason)
}
