package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/railwise/switchyard/pkg/adapter"
	"github.com/railwise/switchyard/pkg/config"
	"github.com/railwise/switchyard/pkg/dispatch"
	"github.com/railwise/switchyard/pkg/history"
	"github.com/railwise/switchyard/pkg/profile"
	"github.com/railwise/switchyard/pkg/request"
	"github.com/railwise/switchyard/pkg/router"
	"github.com/railwise/switchyard/pkg/rules"
)

var (
	rulesFile string
	agentsDir string
	debugFlag bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "switchyard",
		Short: "Route Rails change requests to the right coding agent",
		Long: `Switchyard classifies a proposed Rails code change against the
	architecture decision tree and reports which agent profile should handle
	it: service object, query object, presenter, concern, and so on.

	Routing is a deterministic first-match walk over an ordered rule table.
	The matched agent can then be dispatched to an LLM provider.`,
	}

	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "path to a YAML rule table (default: builtin table)")
	rootCmd.PersistentFlags().StringVar(&agentsDir, "agents-dir", "", "directory of agent profile Markdown files")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(routeCmd())
	rootCmd.AddCommand(explainCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(agentsCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(dispatchCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// requestFlags holds the per-command change request flags.
type requestFlags struct {
	kind     string
	summary  string
	spans    bool
	external bool
	joins    bool
	reused   bool
	lines    int
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "", "change kind (e.g. business_logic, complex_query)")
	cmd.Flags().StringVar(&f.summary, "summary", "", "free-form description of the change")
	cmd.Flags().BoolVar(&f.spans, "spans-multiple-models", false, "the change touches more than one model")
	cmd.Flags().BoolVar(&f.external, "calls-external-api", false, "the change calls an external API")
	cmd.Flags().BoolVar(&f.joins, "joins-three-plus-tables", false, "the query joins three or more tables")
	cmd.Flags().BoolVar(&f.reused, "reused-three-plus", false, "the logic is reused in three or more places")
	cmd.Flags().IntVar(&f.lines, "lines", 0, "estimated size of the change in lines")
	_ = cmd.MarkFlagRequired("kind")
}

func (f *requestFlags) build() (request.ChangeRequest, error) {
	kind, err := request.ParseKind(f.kind)
	if err != nil {
		return request.ChangeRequest{}, err
	}
	return request.New(kind, request.Signals{
		SpansMultipleModels:     f.spans,
		CallsExternalAPI:        f.external,
		JoinsThreePlusTables:    f.joins,
		ReusedInThreePlusPlaces: f.reused,
		LineCountEstimate:       f.lines,
	}, f.summary)
}

func routeCmd() *cobra.Command {
	var reqFlags requestFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Classify a change request and print the assigned agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := reqFlags.build()
			if err != nil {
				return err
			}

			r, err := buildRouter()
			if err != nil {
				return err
			}

			decision, err := r.Route(req)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(decision)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", decision.Agent)
			fmt.Fprintf(cmd.OutOrStdout(), "rule: %s (priority %d)\n", decision.Rule, decision.Priority)
			fmt.Fprintf(cmd.OutOrStdout(), "why:  %s\n", decision.Reason)
			if decision.Tier != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "tier: %s\n", decision.Tier)
			}
			return nil
		},
	}

	reqFlags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the full decision as JSON")
	return cmd
}

func explainCmd() *cobra.Command {
	var reqFlags requestFlags

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show every rule consulted while classifying a change request",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := reqFlags.build()
			if err != nil {
				return err
			}

			r, err := buildRouter()
			if err != nil {
				return err
			}

			trace, err := r.Explain(req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), trace)
			return nil
		},
	}

	reqFlags.register(cmd)
	return cmd
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the active rule table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRIORITY\tRULE\tAGENT")
			for _, rule := range table.Rules() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", rule.Priority, rule.Name, rule.Outcome.Agent)
			}
			return w.Flush()
		},
	}
}

func agentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the registered agent profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadProfiles()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "AGENT\tTIER\tDESCRIPTION")
			for _, name := range reg.Names() {
				p, err := reg.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Tier, p.Description)
			}
			return w.Flush()
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [rules.yaml]",
		Short: "Validate a rule table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := rules.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rules\n", table.Len())
			return nil
		},
	}
}

func dispatchCmd() *cobra.Command {
	var reqFlags requestFlags
	var approve bool
	var useMock bool

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Route a change request and send it to the assigned agent's provider",
		Long: `Routes the change request, then sends the matched agent profile's
	prompt together with the change description to the provider configured
	for that agent.

	Profiles with policy tier ask_first require --yes; tier never profiles
	(inline, unmatched) are never dispatched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := reqFlags.build()
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			reg, err := loadProfiles()
			if err != nil {
				return err
			}

			table, err := loadTableWithConfig(cfg)
			if err != nil {
				return err
			}

			r := router.New(table, router.WithProfiles(reg), router.WithDebug(debugFlag))
			decision, err := r.Route(req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "routed to %s (rule %s)\n", decision.Agent, decision.Rule)

			adapters, err := createAdapters(cfg, useMock)
			if err != nil {
				return err
			}

			targets, fallback := cfg.Targets, cfg.DefaultTarget
			if useMock {
				targets = map[string]config.Target{}
				fallback = config.Target{Adapter: "mock", Model: "mock-1"}
			}
			d := dispatch.New(adapters, reg,
				dispatch.WithApproval(approve),
				dispatch.WithTargets(targets, fallback),
			)

			resp, err := d.Dispatch(context.Background(), decision, req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Artifact.Content)

			store, err := history.NewStore("")
			if err != nil {
				return err
			}
			_, err = store.Append(history.Record{
				Kind:         string(req.Kind),
				Summary:      req.Summary,
				Decision:     decision,
				ArtifactHash: resp.Artifact.Hash,
				Adapter:      resp.Artifact.Adapter,
				Model:        resp.Artifact.Model,
			})
			return err
		},
	}

	reqFlags.register(cmd)
	cmd.Flags().BoolVar(&approve, "yes", false, "approve ask_first dispatches")
	cmd.Flags().BoolVar(&useMock, "mock", false, "dispatch to the mock adapter regardless of targets")
	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past routing decisions and dispatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewStore("")
			if err != nil {
				return err
			}
			records, err := store.List()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tKIND\tAGENT\tRULE\tADAPTER")
			for _, rec := range records {
				agent, rule := "", ""
				if rec.Decision != nil {
					agent, rule = rec.Decision.Agent, rec.Decision.Rule
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					rec.CreatedAt.Format("2006-01-02 15:04"), rec.Kind, agent, rule, rec.Adapter)
			}
			return w.Flush()
		},
	}
}

func loadTable() (*rules.Table, error) {
	if rulesFile != "" {
		return rules.Load(rulesFile)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return loadTableWithConfig(cfg)
}

func loadTableWithConfig(cfg *config.Config) (*rules.Table, error) {
	switch {
	case rulesFile != "":
		return rules.Load(rulesFile)
	case cfg.RulesPath != "":
		return rules.Load(cfg.RulesPath)
	default:
		return rules.DefaultTable(), nil
	}
}

func loadProfiles() (*profile.Registry, error) {
	reg := profile.NewRegistry()

	dir := agentsDir
	if dir == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		dir = cfg.AgentsDir
	}
	if dir != "" {
		if err := reg.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func buildRouter() (*router.Router, error) {
	table, err := loadTable()
	if err != nil {
		return nil, err
	}
	reg, err := loadProfiles()
	if err != nil {
		return nil, err
	}
	return router.New(table, router.WithProfiles(reg), router.WithDebug(debugFlag)), nil
}

func createAdapters(cfg *config.Config, mockOnly bool) (map[string]adapter.Adapter, error) {
	adapters := make(map[string]adapter.Adapter)
	adapters["mock"] = adapter.NewMockAdapter()
	if mockOnly {
		return adapters, nil
	}

	if cfg.AnthropicAPIKey != "" {
		a, err := adapter.NewAnthropicAdapter(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, err
		}
		adapters[a.Name()] = a
	}
	if cfg.OpenAIAPIKey != "" {
		a, err := adapter.NewOpenAIAdapter(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		adapters[a.Name()] = a
	}
	if cfg.GoogleAPIKey != "" {
		a, err := adapter.NewGoogleAdapter(cfg.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		adapters[a.Name()] = a
	}
	if cfg.DeepSeekAPIKey != "" {
		a, err := adapter.NewDeepSeekAdapter(cfg.DeepSeekAPIKey)
		if err != nil {
			return nil, err
		}
		adapters[a.Name()] = a
	}

	if len(adapters) == 1 {
		return nil, fmt.Errorf("no provider API keys configured; set ANTHROPIC_API_KEY, OPENAI_API_KEY, GOOGLE_API_KEY or DEEPSEEK_API_KEY, or pass --mock")
	}
	return adapters, nil
}
