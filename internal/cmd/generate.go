package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arnavshah/rotation-api-go/pkg/export"
	"github.com/arnavshah/rotation-api-go/pkg/models"
	"github.com/arnavshah/rotation-api-go/pkg/rules"
	"github.com/arnavshah/rotation-api-go/pkg/scheduler"
)

func (c *cli) newGenerateCmd() *cobra.Command {
	var (
		start  int
		count  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "generate <plan>",
		Short: "Print the roster for a range of absolute weeks",
		Long: `Validate the plan, stopping at the first failed check, then print the
roster for weeks start .. start+count-1.

Examples:
  rota generate ward.toml --count 4
  rota generate ward.toml --start 25 --count 5 --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], start, count, format)
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "First absolute week")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of weeks")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, csv or json")
	return cmd
}

func (c *cli) runGenerate(cmd *cobra.Command, path string, start, count int, format string) error {
	switch format {
	case "text", "csv", "json":
	default:
		return fmt.Errorf("unknown format %q (want text, csv or json)", format)
	}

	f, err := c.loadPlan(path)
	if err != nil {
		return err
	}
	plan, err := f.Plan()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := rules.Verify(plan, rules.DefaultCheckers(c.checkOptions(cmd, f))...); err != nil {
		return err
	}

	decided, err := scheduler.NewScheduler(plan.Registry, plan.Cycle).Generate(start, count)
	if err != nil {
		return err
	}
	weeks := make([]models.RosterWeek, 0, len(decided))
	for _, w := range decided {
		rw, err := plan.Registry.ResolveWeek(w)
		if err != nil {
			return err
		}
		weeks = append(weeks, rw)
	}
	c.log.Info("generated roster",
		zap.String("path", path),
		zap.Int("week_start", start),
		zap.Int("week_count", count))

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return export.WriteCSV(out, weeks)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(models.RosterResponse{
			WeekStart:     start,
			WeekCount:     count,
			CycleLength:   len(plan.Cycle),
			Weeks:         weeks,
			FairnessScore: scheduler.FairnessScore(plan.Registry, decided),
		})
	}
	if err := export.WriteText(out, weeks); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "fairness %.1f\n", scheduler.FairnessScore(plan.Registry, decided))
	return err
}
