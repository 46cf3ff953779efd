package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type cli struct {
	verbose    bool
	configPath string
	xlsxPath   string
	basePath   string
	baseSheet  string
	parallel   int
	target     string
	params     map[string]string

	logger *zap.Logger
}

func (c *cli) options(cmd *cobra.Command) (Options, error) {
	params := make(map[string]float64, len(c.params))
	for k, v := range c.params {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Options{}, ExitWithError(2, fmt.Errorf("--param %s: %w", k, err))
		}
		params[k] = f
	}
	return Options{
		ConfigPath: c.configPath,
		XLSXPath:   c.xlsxPath,
		BasePath:   c.basePath,
		BaseSheet:  c.baseSheet,
		Parallel:   c.parallel,
		Target:     c.target,
		Params:     params,
		Stdout:     cmd.OutOrStdout(),
		Logger:     c.logger,
	}, nil
}

func (c *cli) run(fn func(Options) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := c.options(cmd)
		if err != nil {
			return err
		}
		return fn(opts)
	}
}

// NewRootCommand builds the damage_table command tree.
func NewRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "damage_table",
		Short:         "Skill damage tables (normal, melt, vaporize) for a character build",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to "+ConfigFileName+" (default: search from the working directory upwards)")

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate the configured formula against the first enemy",
		Args:  cobra.NoArgs,
		RunE:  c.run(runCalc),
	}
	calcCmd.Flags().StringVar(&c.xlsxPath, "xlsx", "", "also export the table to this xlsx path")

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate the configured formula against every enemy and export xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd)
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), opts)
		},
	}
	batchCmd.Flags().StringVar(&c.xlsxPath, "xlsx", "", "export path (default: output/damage_table/<date>_damage_table_<name>.xlsx)")
	batchCmd.Flags().IntVar(&c.parallel, "parallel", 0, "max concurrent evaluations (default: config parallel)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered skill formulas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runList(cmd.OutOrStdout())
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the configured build against a previous xlsx export",
		Args:  cobra.NoArgs,
		RunE:  c.run(runCompare),
	}
	compareCmd.Flags().StringVar(&c.basePath, "base", "", "previous export to compare against")
	compareCmd.Flags().StringVar(&c.baseSheet, "sheet", "", "sheet of the previous export (default: first sheet)")

	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Weighted damage score of a target rotation against the first enemy",
		Args:  cobra.NoArgs,
		RunE:  c.run(runScore),
	}
	scoreCmd.Flags().StringVar(&c.target, "target", "", "target name (default: config target.name)")
	scoreCmd.Flags().StringToStringVar(&c.params, "param", nil, "target param override, e.g. --param overclocking_rate=0.5")

	root.AddCommand(calcCmd, batchCmd, listCmd, compareCmd, scoreCmd)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	code, show := exitCode(err)
	if show {
		fmt.Fprintln(os.Stderr, err)
	}
	return code
}
