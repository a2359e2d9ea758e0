package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arnavshah/rotation-api-go/pkg/rules"
)

func (c *cli) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan>",
		Short: "Run every check on a plan and list all failures",
		Long: `Run the range and coverage checks, plus the duplicate and balance checks
when requested by flags or by the plan's own checks table.

Examples:
  rota validate ward.toml
  rota validate ward.yaml --strict --duplicates
  rota validate ward.toml --morning 1 --afternoon 1`,
		Args: cobra.ExactArgs(1),
		RunE: c.runValidate,
	}
}

func (c *cli) runValidate(cmd *cobra.Command, args []string) error {
	f, err := c.loadPlan(args[0])
	if err != nil {
		return err
	}
	plan, err := f.Plan()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	checkers := rules.DefaultCheckers(c.checkOptions(cmd, f))
	out := cmd.OutOrStdout()
	if _, err := rules.VerifyAll(plan, checkers...); err != nil {
		var report *rules.Report
		if !errors.As(err, &report) {
			return err
		}
		for _, fail := range report.Failures {
			fmt.Fprintf(out, "FAIL %-15s %v\n", fail.Checker, fail.Err)
		}
		c.log.Info("plan failed validation", zap.String("path", args[0]), zap.Int("failures", len(report.Failures)))
		return errChecksFailed
	}

	staff := 0
	for _, n := range plan.Registry.GroupSizes() {
		staff += n
	}
	for _, chk := range checkers {
		fmt.Fprintf(out, "ok   %s\n", chk.Name())
	}
	fmt.Fprintf(out, "%d group(s), %d staff, cycle of %d week(s)\n", len(plan.Registry.Groups), staff, len(plan.Cycle))
	return nil
}
