package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/config"
	"github.com/rgehrsitz/bdtax/internal/store"
	"github.com/rgehrsitz/bdtax/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bdtax-tui",
		Short: "Interactive FY2024-25 vs FY2025-26 tax comparison",
		Long: `Edit salary, investments and taxpayer profile and watch the tax for
FY2024-25 and FY2025-26 update side by side. Edits are saved automatically.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, closeLog, err := newOptions(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			if m, ok := final.(tui.Model); ok {
				if err := m.Close(); err != nil {
					return fmt.Errorf("error saving state: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("state", "", "Path to the saved state file (default: user config dir)")
	cmd.Flags().String("rules", "", "Path to a rules file overriding the built-in rules")
	cmd.Flags().Bool("no-save", false, "Keep edits in memory only")
	cmd.Flags().String("log", "", "Write debug logs to this file")
	return cmd
}

// newOptions builds the model options from the flags. The returned func
// closes the log file, if one was opened.
func newOptions(cmd *cobra.Command) (tui.Options, func(), error) {
	noop := func() {}

	engine, err := newEngine(cmd)
	if err != nil {
		return tui.Options{}, noop, err
	}

	kv, err := openStore(cmd)
	if err != nil {
		return tui.Options{}, noop, err
	}

	opts := tui.Options{Engine: engine, Store: kv, Logger: calculation.NopLogger{}}
	logPath, _ := cmd.Flags().GetString("log")
	if logPath == "" {
		return opts, noop, nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return tui.Options{}, noop, fmt.Errorf("failed to open log file: %w", err)
	}
	opts.Logger = newLogger(f)
	engine.SetLogger(opts.Logger)
	engine.Debug = true
	return opts, func() { f.Close() }, nil
}

func newLogger(w io.Writer) calculation.Logger {
	return calculation.NewLogrusLogger("tui", logrus.DebugLevel, w)
}

// newEngine builds a calculation engine over the built-in rules, or over
// --rules when given.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile == "" {
		return calculation.NewCalculationEngine(), nil
	}
	rules, err := config.NewInputParser().LoadRulesFile(rulesFile)
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewCalculationEngineWithRules(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid rules in %s: %w", rulesFile, err)
	}
	return engine, nil
}

// openStore opens the --state file, the default per-user location, or an
// in-memory store with --no-save.
func openStore(cmd *cobra.Command) (store.KV, error) {
	if noSave, _ := cmd.Flags().GetBool("no-save"); noSave {
		return store.NewMemoryKV(), nil
	}
	path, _ := cmd.Flags().GetString("state")
	if path == "" {
		var err error
		if path, err = store.DefaultStatePath(); err != nil {
			return nil, err
		}
	}
	return store.NewFileKV(path), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
