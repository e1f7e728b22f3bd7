package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/config"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bdtax",
		Short: "Bangladesh income tax calculator CLI",
		Long: `Calculate Bangladesh personal income tax for FY2024-25 and FY2025-26
side by side: tax-free thresholds, slab breakdown, minimum tax, investment
rebate and the final payable amount.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("rules", "", "Path to a rules file overriding the built-in fiscal year rules")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging of every calculation step")
	root.PersistentFlags().String("state", "", "Path to the saved state file (default: user config dir)")

	root.AddCommand(
		calculateCmd(),
		compareCmd(),
		breakevenCmd(),
		slabsCmd(),
		validateCmd(),
		exportCmd(),
		importCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bdtax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// cliLogger returns the logrus logger installed by --debug, or nil
func cliLogger(cmd *cobra.Command, module string) calculation.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return calculation.NewLogrusLogger(module, logrus.DebugLevel, cmd.ErrOrStderr())
	}
	return nil
}

// newEngine builds a calculation engine over the built-in rules, or over
// --rules when given.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	engine := calculation.NewCalculationEngine()
	if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
		rules, err := config.NewInputParser().LoadRulesFile(rulesFile)
		if err != nil {
			return nil, err
		}
		engine, err = calculation.NewCalculationEngineWithRules(rules)
		if err != nil {
			return nil, fmt.Errorf("invalid rules in %s: %w", rulesFile, err)
		}
	}
	if logger := cliLogger(cmd, "calculation"); logger != nil {
		engine.SetLogger(logger)
		engine.Debug = true
	}
	return engine, nil
}

// openStore opens the --state file, or the default per-user location
func openStore(cmd *cobra.Command) (*store.FileKV, error) {
	path, _ := cmd.Flags().GetString("state")
	if path == "" {
		var err error
		if path, err = store.DefaultStatePath(); err != nil {
			return nil, err
		}
	}
	return store.NewFileKV(path), nil
}

// loadInput reads args[0] when given, otherwise the saved state. A corrupt
// saved state is reported on stderr and replaced by defaults.
func loadInput(cmd *cobra.Command, args []string) (*domain.TaxInput, string, error) {
	if len(args) > 0 {
		input, err := config.NewInputParser().LoadFromFile(args[0])
		return input, args[0], err
	}
	kv, err := openStore(cmd)
	if err != nil {
		return nil, "", err
	}
	input, warn := store.LoadState(kv)
	if warn != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", warn)
	}
	return input, kv.Path(), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
