package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"indicadores/internal/exporter"
	"indicadores/internal/indicators"
	"indicadores/pkg/contracts/domain"
)

var (
	colorPrimary = lipgloss.Color("#0A4D8C")
	colorAccent  = lipgloss.Color("#1E88E5")
	colorMuted   = lipgloss.Color("#455A64")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 2).
			MarginRight(1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func kpiCard(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func selectionLabel(dash *domain.Dashboard) string {
	if len(dash.Selection) == 0 {
		return "Desenvolvedores: todos"
	}
	return "Desenvolvedores: " + strings.Join(dash.Selection, ", ")
}

func developerTable(series domain.DeveloperSeries, format func(domain.NullFloat) string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Desenvolvedor", series.Chart.Title).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range series.Rows {
		t.Row(r.Developer, format(r.Value))
	}
	return t.Render()
}

func detailTable(rows []domain.DetailRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(exporter.DetailHeaders...).
		Rows(exporter.DetailRecords(rows)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// renderSummary lays out the dashboard for a terminal.
func renderSummary(dash *domain.Dashboard) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		kpiCard("Média de dias de desenvolvimento", dash.Formatted.MeanDays),
		kpiCard("Economia média (%)", dash.Formatted.MeanSavingsPercent),
		kpiCard("Horas economizadas (total)", dash.Formatted.TotalHoursSaved),
		kpiCard("Quantidade de automações", dash.Formatted.AutomationCount),
	)

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		developerTable(dash.MeanDaysByDeveloper, indicators.FormatHours),
		"  ",
		developerTable(dash.MeanSavingsByDeveloper, indicators.FormatPercent),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(dash.Title),
		labelStyle.Render(selectionLabel(dash)),
		cards,
		"",
		charts,
		"",
		valueStyle.Render("Dados detalhados"),
		detailTable(dash.Detail),
	)
}
