package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bdtax/internal/compare"
	"github.com/rgehrsitz/bdtax/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare fiscal years and what-if alternatives",
		Long: `Compare FY2024-25 against FY2025-26 and evaluate what-if alternatives
built from templates or ad-hoc transforms.

Examples:
  bdtax compare taxpayer.yaml
  bdtax compare taxpayer.yaml --template raise_10pct --template invest_1lakh
  bdtax compare taxpayer.yaml --transform "set_investment:name=DPS,amount=120000"
  bdtax compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				registry := transform.CreateBuiltInTemplates()
				fmt.Fprintln(out, "Templates:")
				for _, name := range registry.List() {
					t, _ := registry.Get(name)
					fmt.Fprintf(out, "  %-18s %s\n", t.Name, t.Description)
				}
				fmt.Fprintln(out, "\nTransforms (--transform name:key=value,...):")
				for _, name := range transform.NewTransformRegistry().List() {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			}

			input, inputPath, err := loadInput(cmd, args)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			templates, _ := cmd.Flags().GetStringSlice("template")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			set, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), input, compare.CompareOptions{
				Templates:  templates,
				Transforms: transforms,
				InputPath:  inputPath,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			format, _ := cmd.Flags().GetString("format")
			format = strings.ToLower(format)
			switch format {
			case "csv":
				text, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, text)
			case "json", "json-summary":
				text, err := (&compare.JSONFormatter{Pretty: true, Summary: strings.HasSuffix(format, "summary")}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, text)
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(set))
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json, json-summary, compact)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, json-summary, compact)")
	cmd.Flags().StringSliceP("template", "t", nil, "Built-in what-if template (repeatable or comma-separated)")
	cmd.Flags().StringArray("transform", nil, "Ad-hoc transform, name:key=value,... (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List the built-in templates and transforms")
	return cmd
}
