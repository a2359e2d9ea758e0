// Package cmd provides CLI commands for the rota tool.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arnavshah/rotation-api-go/pkg/logging"
	"github.com/arnavshah/rotation-api-go/pkg/planfile"
	"github.com/arnavshah/rotation-api-go/pkg/rules"
)

// Version is printed by --version
const Version = "3.0.0"

// errChecksFailed reports failures that have already been printed
var errChecksFailed = errors.New("plan failed validation")

// cli holds the flag values and logger shared by every subcommand
type cli struct {
	logLevel   string
	strict     bool
	duplicates bool
	morning    int
	afternoon  int

	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{log: zap.NewNop()}
	root := &cobra.Command{
		Use:     "rota",
		Short:   "Validate rotation plans and generate rosters",
		Version: Version,
		Long: `rota reads a rotation plan: staff groups plus a cycle of week templates
whose slots name a group and a local id. Week w uses template w mod C and
rotates every slot by w div C.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(c.logLevel)
			if err != nil {
				return err
			}
			c.log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.log.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.BoolVar(&c.strict, "strict", false, "Reject local ids at or above the group size")
	flags.BoolVar(&c.duplicates, "duplicates", false, "Reject members reached twice by one week template")
	flags.IntVar(&c.morning, "morning", 0, "Required morning slots per member over the cycle")
	flags.IntVar(&c.afternoon, "afternoon", 0, "Required afternoon slots per member over the cycle")

	root.AddCommand(c.newValidateCmd(), c.newGenerateCmd())
	return root
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// checkOptions starts from the plan's own checks table and applies any
// flag the user set explicitly
func (c *cli) checkOptions(cmd *cobra.Command, f *planfile.File) rules.Options {
	var opts rules.Options
	if f.Checks != nil {
		opts = *f.Checks
	}
	flags := cmd.Flags()
	if flags.Changed("strict") {
		opts.Strict = c.strict
	}
	if flags.Changed("duplicates") {
		opts.Duplicates = c.duplicates
	}
	if flags.Changed("morning") || flags.Changed("afternoon") {
		opts.Balance = &rules.BalanceTarget{Morning: c.morning, Afternoon: c.afternoon}
	}
	return opts
}

func (c *cli) loadPlan(path string) (*planfile.File, error) {
	f, err := planfile.Load(path)
	if err != nil {
		return nil, err
	}
	c.log.Debug("loaded plan",
		zap.String("path", path),
		zap.Int("groups", len(f.Groups)),
		zap.Int("weeks", len(f.Weeks)))
	return f, nil
}
