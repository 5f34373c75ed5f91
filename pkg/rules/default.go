package rules

import (
	"github.com/railwise/switchyard/pkg/profile"
	"github.com/railwise/switchyard/pkg/request"
)

// Thresholds from the Rails refactoring-signals tables.
const (
	// InlineLineLimit is the size below which business logic stays inline.
	InlineLineLimit = 10
	// ServiceLineLimit is the size above which business logic is extracted
	// into a service object even without other signals.
	ServiceLineLimit = 15
)

// DefaultTable returns the canonical rule table encoding the Rails
// architecture decision tree, most specific checks first.
func DefaultTable() *Table {
	table, err := NewTable(defaultRules())
	if err != nil {
		// The builtin table is static; failing validation is a programming
		// error, not a runtime condition.
		panic(err)
	}
	return table
}

func defaultRules() []Rule {
	return []Rule{
		{
			Name:     "inline-trivial-logic",
			Priority: 10,
			When: func(r request.ChangeRequest) bool {
				s := r.Signals
				return r.Kind == request.KindBusinessLogic &&
					s.LineCountEstimate > 0 && s.LineCountEstimate <= InlineLineLimit &&
					!s.ReusedInThreePlusPlaces && !s.SpansMultipleModels && !s.CallsExternalAPI
			},
			Outcome: Outcome{
				Agent:  profile.AgentInline,
				Reason: "business logic under ten lines and used in one place stays inline; extracting it would be over-engineering",
			},
		},
		{
			Name:     "external-api-service",
			Priority: 20,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindBusinessLogic && r.Signals.CallsExternalAPI
			},
			Outcome: Outcome{
				Agent:  profile.AgentService,
				Reason: "business logic calling an external API belongs in a service object so the HTTP dependency is isolated and testable",
			},
		},
		{
			Name:     "multi-model-service",
			Priority: 30,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindBusinessLogic && r.Signals.SpansMultipleModels
			},
			Outcome: Outcome{
				Agent:  profile.AgentService,
				Reason: "business logic spanning multiple models belongs in a service object that owns the transaction",
			},
		},
		{
			Name:     "wide-join-query",
			Priority: 40,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindComplexQuery && r.Signals.JoinsThreePlusTables
			},
			Outcome: Outcome{
				Agent:  profile.AgentQuery,
				Reason: "a query joining three or more tables belongs in a query object, not a model scope",
			},
		},
		{
			Name:     "complex-query",
			Priority: 50,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindComplexQuery
			},
			Outcome: Outcome{
				Agent:  profile.AgentQuery,
				Reason: "complex queries are encapsulated in query objects",
			},
		},
		{
			Name:     "shared-concern",
			Priority: 60,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindSharedModelBehavior
			},
			Outcome: Outcome{
				Agent:  profile.AgentConcern,
				Reason: "behavior shared across three or more models is extracted into a concern",
			},
		},
		{
			Name:     "authorization-policy",
			Priority: 70,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindAuthorization
			},
			Outcome: Outcome{
				Agent:  profile.AgentPolicy,
				Reason: "authorization rules live in policy objects, never in controllers or views",
			},
		},
		{
			Name:     "reusable-component",
			Priority: 80,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindReusableUI
			},
			Outcome: Outcome{
				Agent:  profile.AgentComponent,
				Reason: "reusable UI is built as a ViewComponent with its own tests and preview",
			},
		},
		{
			Name:     "multi-model-form",
			Priority: 90,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindMultiModelForm
			},
			Outcome: Outcome{
				Agent:  profile.AgentForm,
				Reason: "a form persisting several records is backed by a form object, not accepts_nested_attributes_for",
			},
		},
		{
			Name:     "background-job",
			Priority: 100,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindAsyncWork
			},
			Outcome: Outcome{
				Agent:  profile.AgentJob,
				Reason: "asynchronous work is an ActiveJob class",
			},
		},
		{
			Name:     "transactional-mailer",
			Priority: 110,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindTransactionalEmail
			},
			Outcome: Outcome{
				Agent:  profile.AgentMailer,
				Reason: "transactional email is an ActionMailer class delivered asynchronously",
			},
		},
		{
			Name:     "realtime-channel",
			Priority: 120,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindRealtimeCommunication
			},
			Outcome: Outcome{
				Agent:  profile.AgentChannel,
				Reason: "realtime communication goes through an ActionCable channel with Turbo Streams broadcasts",
			},
		},
		{
			Name:     "display-presenter",
			Priority: 130,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindDataFormatting
			},
			Outcome: Outcome{
				Agent:  profile.AgentPresenter,
				Reason: "formatting and display logic belongs in a presenter, not the model or view",
			},
		},
		{
			Name:     "model-validation",
			Priority: 140,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindValidationOnly
			},
			Outcome: Outcome{
				Agent:  profile.AgentModel,
				Reason: "a single validation belongs on the model",
			},
		},
		{
			Name:     "service-extraction",
			Priority: 150,
			When: func(r request.ChangeRequest) bool {
				s := r.Signals
				return r.Kind == request.KindBusinessLogic &&
					(s.LineCountEstimate >= ServiceLineLimit || s.ReusedInThreePlusPlaces)
			},
			Outcome: Outcome{
				Agent:  profile.AgentService,
				Reason: "business logic over fifteen lines or reused in three or more places is extracted into a service object",
			},
		},
		{
			Name:     "model-logic",
			Priority: 160,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindBusinessLogic
			},
			Outcome: Outcome{
				Agent:  profile.AgentModel,
				Reason: "single-model business logic with no extraction signals belongs on the model",
			},
		},
		{
			Name:     "http-controller",
			Priority: 170,
			When: func(r request.ChangeRequest) bool {
				return r.Kind == request.KindHTTPHandling
			},
			Outcome: Outcome{
				Agent:  profile.AgentController,
				Reason: "request and response handling stays in a thin controller",
			},
		},
		{
			Name:     "unmatched",
			Priority: 1000,
			Outcome: Outcome{
				Agent:  profile.AgentUnmatched,
				Reason: "no rule claimed this request; ask a human which pattern applies",
			},
		},
	}
}
