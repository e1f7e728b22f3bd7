package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/output"
	"github.com/spf13/cobra"
)

func slabsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slabs",
		Short: "Print the tax slabs of a fiscal year",
		Long: `Print the slabs for a fiscal year. The threshold is --threshold when
given, otherwise the one for --category and --age. With --income the tax
owed in every slab is shown as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			fyFlag, _ := cmd.Flags().GetString("fy")
			fy, err := domain.ParseFiscalYear(fyFlag)
			if err != nil {
				return err
			}
			rules, err := engine.RulesFor(fy)
			if err != nil {
				return err
			}

			profile := domain.DefaultProfile()
			if c, _ := cmd.Flags().GetString("category"); c != "" {
				cat, ok := domain.LookupCategory(c)
				if !ok {
					return fmt.Errorf("unknown category %q", c)
				}
				profile.Category = cat
			}
			if cmd.Flags().Changed("age") {
				age, _ := cmd.Flags().GetInt("age")
				profile.Age = &age
			}

			threshold := calculation.ResolveThreshold(profile, rules)
			if raw, _ := cmd.Flags().GetString("threshold"); raw != "" {
				threshold = calculation.ParseAmount(raw)
			}
			slabs := calculation.GenerateSlabs(threshold, rules.Schedule)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s slabs (%s, threshold %s)\n", fy.Label(),
				calculation.EffectiveCategory(profile, rules).Label(), output.FormatTaka(threshold))
			fmt.Fprintln(out, strings.Repeat("-", 72))

			rawIncome, _ := cmd.Flags().GetString("income")
			if rawIncome == "" {
				for _, s := range slabs {
					fmt.Fprintf(out, "%-40s %6s\n", s.Label, output.FormatPercentage(s.RatePercent))
				}
				return nil
			}

			income := calculation.ParseAmount(rawIncome)
			breakdown := calculation.CalculateBreakdown(income, slabs)
			for _, b := range breakdown {
				fmt.Fprintf(out, "%-40s %6s %14s %12s\n", b.Bracket.Label, output.FormatPercentage(b.Bracket.RatePercent),
					output.FormatTaka(b.TaxableAmount), output.FormatTaka(b.TaxOwed))
			}
			fmt.Fprintln(out, strings.Repeat("-", 72))
			fmt.Fprintf(out, "%-40s %6s %14s %12s\n", "Total", "", output.FormatTaka(income), output.FormatTaka(calculation.TotalTax(breakdown)))
			return nil
		},
	}
	cmd.Flags().String("fy", string(domain.FY2025_26), "Fiscal year")
	cmd.Flags().String("threshold", "", "Tax-free threshold (overrides --category)")
	cmd.Flags().String("category", "", "Taxpayer category")
	cmd.Flags().Int("age", 0, "Taxpayer age")
	cmd.Flags().String("income", "", "Taxable income to split across the slabs")
	return cmd
}
