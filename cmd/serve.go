package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/planora/planora/api"
	"github.com/planora/planora/internal/app"
	"github.com/planora/planora/internal/config"
)

var serveAgents []string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the agent HTTP servers",
	Long: `Starts one HTTP server per agent on its configured port. By default all
agents are served; --agent restricts serving to a subset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().StringSliceVar(&serveAgents, "agent", nil,
		"agents to serve (weather, activities, planner, concierge); default all")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			a.Logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	a.Logger.Info("starting agents", "version", AppVersion, "model", cfg.FullModelName())

	serveAll := len(serveAgents) == 0
	selected := func(name string) bool {
		return serveAll || slices.Contains(serveAgents, name)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	served := 0

	for _, desc := range a.Agents {
		if !selected(desc.Name) {
			continue
		}
		port, err := agentPort(cfg, desc.Name)
		if err != nil {
			return err
		}
		srv := api.NewAgentServer(a.Gateway(desc.Kind), desc, a.Logger.With("agent", desc.Name))
		group.Go(func() error {
			return srv.Run(groupCtx, fmt.Sprintf(":%d", port))
		})
		served++
	}

	if selected("concierge") {
		srv := api.NewConciergeServer(a.Concierge, cfg.ConciergeModelName(),
			a.Logger.With("agent", "concierge"))
		group.Go(func() error {
			return srv.Run(groupCtx, fmt.Sprintf(":%d", cfg.Concierge.Port))
		})
		served++
	}

	if served == 0 {
		return fmt.Errorf("no agents matched %v", serveAgents)
	}

	return group.Wait()
}

func agentPort(cfg *config.Config, name string) (int, error) {
	switch name {
	case "weather":
		return cfg.Weather.Port, nil
	case "activities":
		return cfg.Activities.Port, nil
	case "planner":
		return cfg.Planner.Port, nil
	default:
		return 0, fmt.Errorf("unknown agent %q", name)
	}
}
