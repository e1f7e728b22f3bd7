package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/bdtax/internal/compare"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/output"
	"github.com/shopspring/decimal"
)

const formLabelWidth = 26

// View renders the form beside the live comparison
func (m Model) View() string {
	title := TitleStyle.Render("bdtax  FY2024-25 vs FY2025-26")

	form := PanelStyle.Render(m.renderForm())
	results := PanelStyle.Render(m.renderResults())

	var body string
	if m.width > 0 && lipgloss.Width(form)+lipgloss.Width(results) > m.width {
		body = lipgloss.JoinVertical(lipgloss.Left, form, results)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, results)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.renderStatus(), m.help.View(m.keys))
}

func (m Model) renderForm() string {
	var sb strings.Builder
	for i := range m.fields {
		f := &m.fields[i]
		if f.section != "" {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(SectionStyle.Render(f.section) + "\n")
		}

		label := LabelStyle.Width(formLabelWidth).Render(f.label)
		if i == m.focus {
			label = FocusedLabelStyle.Width(formLabelWidth).Render("> " + f.label)
		}

		var value string
		if f.kind == choiceField {
			value = ValueStyle.Render(f.labels[f.selected])
			if i == m.focus {
				value = "< " + value + " >"
			}
		} else {
			value = f.input.View()
		}
		sb.WriteString(label + value + "\n")
	}
	return sb.String()
}

func (m Model) renderResults() string {
	if m.err != nil {
		return WarningStyle.Render("Calculation failed: " + m.err.Error())
	}
	if m.result == nil {
		return ""
	}
	prev, curr := m.result.Previous, m.result.Current

	var sb strings.Builder
	sb.WriteString(SectionStyle.Render("Summary") + "\n")
	sb.WriteString(fmt.Sprintf("%s  (%s)\n", curr.EffectiveCategory.Label(), LabelStyle.Render("effective category")))
	sb.WriteString(fmt.Sprintf("%-24s %s %s %s\n", "",
		TableHeaderStyle.Render(fmt.Sprintf("%14s", prev.FiscalYear.Label())),
		TableHeaderStyle.Render(fmt.Sprintf("%14s", curr.FiscalYear.Label())),
		TableHeaderStyle.Render(fmt.Sprintf("%14s", "Change"))))
	for _, row := range compare.BuildMetrics(m.result) {
		sb.WriteString(fmt.Sprintf("%-24s %14s %14s %s\n",
			row.Metric,
			output.FormatTaka(row.Previous),
			output.FormatTaka(row.Current),
			changeCell(row.Change)))
	}

	sb.WriteString("\n" + SectionStyle.Render("Slabs") + "\n")
	for _, row := range compare.BuildBracketRows(m.result) {
		sb.WriteString(fmt.Sprintf("%-34s  %-34s\n", slabCell(row.Previous), slabCell(row.Current)))
	}

	sb.WriteString("\n" + output.Summarize(m.result).Sentence(m.result) + "\n")
	for _, r := range []*domain.YearResult{prev, curr} {
		if r.Final.IsMinimumTaxApplied {
			sb.WriteString(LabelStyle.Render(fmt.Sprintf("Minimum tax applies in %s.", r.FiscalYear.Label())) + "\n")
		}
	}
	return sb.String()
}

// changeCell pads before styling so ANSI codes do not upset the column width
func changeCell(d decimal.Decimal) string {
	text := fmt.Sprintf("%14s", output.FormatSignedTaka(d))
	switch {
	case d.IsPositive():
		return IncreaseStyle.Render(text)
	case d.IsNegative():
		return DecreaseStyle.Render(text)
	}
	return text
}

func slabCell(b *domain.BracketResult) string {
	if b == nil {
		return ""
	}
	label := b.Bracket.Label
	if len(label) > 20 {
		label = label[:20]
	}
	return fmt.Sprintf("%-20s %4s %9s", label, output.FormatPercentage(b.Bracket.RatePercent), output.FormatTaka(b.TaxOwed))
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return StatusStyle.Render(fmt.Sprintf("Editing %s", m.fields[m.focus].label))
	}
	if m.warn {
		return WarningStyle.Render(m.status)
	}
	return StatusStyle.Render(m.status)
}
