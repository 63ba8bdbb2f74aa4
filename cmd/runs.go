package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/liquidation-cli/internal/model"
	"github.com/sells-group/liquidation-cli/internal/store"
)

var (
	runsStatus string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded analysis runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(runsStatus),
			Limit:  runsLimit,
		})
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}
		for _, r := range runs {
			line := fmt.Sprintf("%s  %-8s  %s  %s", r.ID, r.Status, r.CreatedAt.Format("2006-01-02 15:04"), r.Source)
			if r.Summary != nil && r.Status == model.RunStatusComplete {
				line += fmt.Sprintf("  (%d orders, $%.2f lost)", r.Summary.Orders, r.Summary.TotalValueLost)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run with its findings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Run %s\n  source: %s\n  status: %s\n  created: %s\n",
			run.ID, run.Source, run.Status, run.CreatedAt.Format("2006-01-02 15:04:05"))
		if s := run.Summary; s != nil {
			if s.Error != "" {
				fmt.Printf("  error: %s\n", s.Error)
			} else {
				fmt.Printf("  orders: %d (%d liquidated, %d sellable)\n", s.Orders, s.Liquidated, s.Sellable)
				fmt.Printf("  check columns: %d, pattern groups: %d\n", s.CheckColumns, s.PatternGroups)
				fmt.Printf("  value lost: $%.2f, potential recovery: $%.2f\n", s.TotalValueLost, s.PotentialRecovery)
			}
		}

		findings, err := st.ListFindings(ctx, run.ID)
		if err != nil {
			return err
		}
		if len(findings) > 0 {
			fmt.Printf("  findings (%d):\n", len(findings))
			for _, f := range findings {
				fmt.Printf("    %s\n", f)
			}
		}
		return nil
	},
}

func init() {
	runsListCmd.Flags().StringVar(&runsStatus, "status", "", "filter by status (running|complete|failed)")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
