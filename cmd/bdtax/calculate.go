package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/output"
	"github.com/spf13/cobra"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate tax for both fiscal years",
		Long: `Calculate tax for FY2024-25 and FY2025-26 from a YAML or JSON input
file. Without a file the saved state is used.

Examples:
  bdtax calculate taxpayer.yaml
  bdtax calculate taxpayer.yaml --format csv
  bdtax calculate taxpayer.yaml --fy 2025-26 --format json
  bdtax calculate taxpayer.yaml --output-dir reports/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _, err := loadInput(cmd, args)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			if fyFlag, _ := cmd.Flags().GetString("fy"); fyFlag != "" {
				fy, err := domain.ParseFiscalYear(fyFlag)
				if err != nil {
					return err
				}
				result, err := engine.Calculate(input, fy)
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			cmp, err := engine.CalculateAll(input)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
				f := output.GetFormatterByName(format)
				if f == nil {
					return fmt.Errorf("unsupported format: %s", format)
				}
				filename, err := output.WriteFormatted(f, cmp, dir)
				if err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}
			return output.GenerateReport(cmd.OutOrStdout(), cmp, format)
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	cmd.Flags().String("fy", "", "Calculate a single fiscal year and print the full result as JSON")
	cmd.Flags().String("output-dir", "", "Write the report to a timestamped file in this directory")
	return cmd
}
