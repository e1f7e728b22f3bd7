package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bdtax/internal/breakeven"
	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func breakevenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the investment or salary at which a tax goal is met",
		Long: `Search for the amount at which a tax goal is met.

Targets and goals:
  investment  maximize_rebate  smallest amount on one line that earns the full rebate
  investment  target_payable   smallest amount on one line that brings payable to --target-payable
  salary      tax_free         highest monthly basic with no calculated tax
  salary      target_payable   highest monthly basic keeping payable at or below --target-payable

Examples:
  bdtax breakeven taxpayer.yaml
  bdtax breakeven taxpayer.yaml --line DPS --goal target_payable --target-payable 5000
  bdtax breakeven --target salary --fy 2024-25
  bdtax breakeven taxpayer.yaml --all`,
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
			solver := breakeven.NewDefaultSolver(engine)

			constraints := breakeven.DefaultConstraints()
			if line, _ := cmd.Flags().GetString("line"); line != "" {
				constraints.InvestmentLine = line
			}
			fyFlag, _ := cmd.Flags().GetString("fy")
			if constraints.FiscalYear, err = domain.ParseFiscalYear(fyFlag); err != nil {
				return err
			}
			for flag, dst := range map[string]**decimal.Decimal{
				"min":            &constraints.MinAmount,
				"max":            &constraints.MaxAmount,
				"target-payable": &constraints.TargetPayable,
			} {
				if raw, _ := cmd.Flags().GetString(flag); raw != "" {
					amount := calculation.ParseAmount(raw)
					*dst = &amount
				}
			}

			format, _ := cmd.Flags().GetString("format")
			format = strings.ToLower(format)
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
			out := cmd.OutOrStdout()

			if all, _ := cmd.Flags().GetBool("all"); all {
				multi, err := solver.OptimizeAllTargets(cmd.Context(), input, constraints)
				if err != nil {
					return fmt.Errorf("break-even search failed: %w", err)
				}
				if format == "json" {
					text, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMulti(multi)
					if err != nil {
						return fmt.Errorf("failed to format JSON: %w", err)
					}
					fmt.Fprintln(out, text)
					return nil
				}
				fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMulti(multi))
				return nil
			}

			targetFlag, _ := cmd.Flags().GetString("target")
			target := breakeven.OptimizationTarget(strings.ToLower(targetFlag))
			goalFlag, _ := cmd.Flags().GetString("goal")
			goal := breakeven.OptimizationGoal(strings.ToLower(goalFlag))
			if goal == "" {
				goal = breakeven.GoalMaximizeRebate
				if target == breakeven.TargetSalary {
					goal = breakeven.GoalTaxFree
				}
			}

			result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				BaseInput:   input,
				Target:      target,
				Goal:        goal,
				Constraints: constraints,
			})
			if err != nil {
				return fmt.Errorf("break-even search failed: %w", err)
			}
			if format == "json" {
				text, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, text)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}
	cmd.Flags().String("target", string(breakeven.TargetInvestment), "What to vary (investment, salary)")
	cmd.Flags().String("goal", "", "Goal (maximize_rebate, target_payable, tax_free); defaults per target")
	cmd.Flags().String("fy", string(domain.FY2025_26), "Fiscal year")
	cmd.Flags().String("line", "", "Investment line to vary, matched by name prefix (default: Savings certificates)")
	cmd.Flags().String("min", "", "Lower bound for the amount")
	cmd.Flags().String("max", "", "Upper bound for the amount")
	cmd.Flags().String("target-payable", "", "Payable amount for the target_payable goal")
	cmd.Flags().Bool("all", false, "Run every target for every fiscal year")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
