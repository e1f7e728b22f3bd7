package main

import (
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/config"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file and the --rules file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			parser := config.NewInputParser()

			rulesFile, _ := cmd.Flags().GetString("rules")
			if len(args) == 0 && rulesFile == "" {
				return fmt.Errorf("nothing to validate: give an input file or --rules")
			}
			if rulesFile != "" {
				if _, err := parser.LoadRulesFile(rulesFile); err != nil {
					return err
				}
				fmt.Fprintf(out, "Rules file %s is valid\n", rulesFile)
			}
			if len(args) > 0 {
				if _, err := parser.LoadFromFile(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Input file %s is valid\n", args[0])
			}
			return nil
		},
	}
}
