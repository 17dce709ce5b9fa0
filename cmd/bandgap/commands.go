package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alejandrodnm/bandgap/internal/domain"
	"github.com/spf13/cobra"
)

func predictCmd(a *app) *cobra.Command {
	var example int

	cmd := &cobra.Command{
		Use:   "predict [formula]",
		Short: "Predict the band gap of a chemical formula",
		Example: "  bandgap predict CsPbI3\n" +
			"  bandgap predict --example 2",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formula, err := pickFormula(args, example)
			if err != nil {
				return err
			}

			if _, err := a.orch.Submit(cmd.Context(), formula); err != nil {
				return err
			}

			d := a.orch.Snapshot()
			a.console.ShowTrend(d.Trend)
			a.console.ShowCounts(d.Counts)
			return nil
		},
	}
	cmd.Flags().IntVar(&example, "example", 0,
		fmt.Sprintf("use example formula N (1-%d): %s", len(domain.ExampleFormulas), strings.Join(domain.ExampleFormulas, ", ")))
	return cmd
}

// pickFormula resuelve la fórmula desde el argumento o desde --example.
// Sin ninguno de los dos se envía la cadena vacía y el orquestador la rechaza.
func pickFormula(args []string, example int) (string, error) {
	if example != 0 {
		if len(args) > 0 {
			return "", errors.New("use either a formula or --example, not both")
		}
		if example < 1 || example > len(domain.ExampleFormulas) {
			return "", fmt.Errorf("--example must be between 1 and %d", len(domain.ExampleFormulas))
		}
		return domain.ExampleFormulas[example-1], nil
	}
	if len(args) == 0 {
		return "", nil
	}
	return args[0], nil
}

func historyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the most recent predictions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.console.ShowHistory(a.orch.History())
		},
	}
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show band gap trends and category distribution",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.console.ShowDashboard(a.orch.Snapshot())
		},
	}
}

func clearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the prediction history",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.orch.ClearHistory(cmd.Context())
		},
	}
}

func modelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show information about the prediction model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := a.orch.ModelInfo(cmd.Context())
			if !ok {
				return errors.New("model info unavailable")
			}
			a.console.ShowModelInfo(info)
			return nil
		},
	}
}

func healthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the prediction service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health: %w", err)
			}
			a.console.ShowHealth(h)
			if !h.Healthy() {
				return errors.New("service is not healthy")
			}
			return nil
		},
	}
}

func datasetCmd(a *app) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Show a page of the training dataset with its statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 || offset < 0 {
				return errors.New("--limit must be positive and --offset not negative")
			}
			d, err := a.client.Dataset(cmd.Context(), limit, offset)
			if err != nil {
				return fmt.Errorf("dataset: %w", err)
			}
			a.console.ShowDataset(d)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "rows per page")
	cmd.Flags().IntVar(&offset, "offset", 0, "first row")
	return cmd
}
