package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/bdtax/internal/config"
	"github.com/rgehrsitz/bdtax/internal/store"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the saved state as JSON (to stdout without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _, err := loadInput(cmd, nil)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return store.Export(cmd.OutOrStdout(), input)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			if err := store.Export(f, input); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "State exported to %s\n", args[0])
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the saved state with an exported (or YAML input) file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return fmt.Errorf("import failed, saved state left unchanged: %w", err)
			}
			kv, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := store.SaveState(kv, input); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into %s\n", args[0], kv.Path())
			return nil
		},
	}
}
