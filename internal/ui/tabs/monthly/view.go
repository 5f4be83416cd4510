package monthly

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roendal/guildwatch/internal/models"
	"github.com/roendal/guildwatch/internal/ui/components"
	"github.com/roendal/guildwatch/internal/ui/styles"
)

// View renders the monthly tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(styles.HelpStyle.Render("Loading guild data..."))
	}

	guilds := m.guilds()
	if len(guilds) == 0 {
		return m.renderEmpty()
	}
	m.clampSelection()
	guild := guilds[m.selectedGuild]

	e := m.engine()
	if e == nil {
		return m.renderEmpty()
	}
	gains, err := e.MonthlyGains(guild.Name)
	if err != nil {
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(styles.ErrorTextStyle.Render("Error: " + err.Error()))
	}

	var sections []string
	sections = append(sections, m.renderHeader(guild, len(guilds)))
	sections = append(sections, m.renderChart(gains))
	sections = append(sections, m.renderMonthList(gains))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Monthly Gains"),
		"",
		styles.HelpStyle.Render("No guild data loaded."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader(guild models.Guild, count int) string {
	title := styles.TitleStyle.Render("Monthly Gains")

	mode := "bar"
	if m.mode == chartLine {
		mode = "line"
	}
	modeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)
	modeIndicator := modeStyle.Render(fmt.Sprintf("[m] %s chart", mode))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", modeIndicator)

	name := styles.GuildStyle(guild.Color, guild.BackgroundColor).Render(guild.Name)
	subtitle := styles.HelpStyle.Render(
		fmt.Sprintf("←/→ select guild (%d/%d)  ", m.selectedGuild+1, count)) + name

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

// renderChart plots the defined monthly gains. Undefined months carry
// the previous defined value forward on the line chart so the series
// stays contiguous; the month list below marks them explicitly.
func (m *Model) renderChart(gains []models.MonthlyGain) string {
	var values []float64
	var labels []string
	lastDefined := 0.0
	anyDefined := false
	for _, g := range gains {
		if g.Defined {
			lastDefined = g.InterpolatedGain
			anyDefined = true
		}
		values = append(values, lastDefined)
		labels = append(labels, fmt.Sprintf("%.3s %02d", g.Month, g.Year%100))
	}
	if !anyDefined {
		return styles.CardStyle.Render(
			styles.HelpStyle.Render("No month has enough readings to estimate a gain."))
	}

	chartWidth := m.width - 12
	if chartWidth < 20 {
		chartWidth = 20
	}

	var chart string
	if m.mode == chartBar {
		chart = components.RenderBarChart(values, labels, chartWidth)
	} else {
		chartHeight := m.height / 3
		if chartHeight < 5 {
			chartHeight = 5
		}
		chart = components.RenderLineChart(values, chartWidth, chartHeight, "interpolated gain per month")
	}

	title := styles.CardTitleStyle.Render("◈ Gain per Month")
	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", chart))
}

func (m *Model) renderMonthList(gains []models.MonthlyGain) string {
	var lines []string
	for _, g := range gains {
		lines = append(lines, renderGainLine(g))
	}
	title := styles.CardTitleStyle.Render("◈ Month Detail")
	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", strings.Join(lines, "\n")))
}

func renderGainLine(g models.MonthlyGain) string {
	label := fmt.Sprintf("%-14s", fmt.Sprintf("%s %d", g.Month, g.Year))
	if !g.Defined {
		return label + styles.StaleStyle.Render("not enough readings")
	}
	gain := styles.GetTrendStyle(g.InterpolatedGain).Render(fmt.Sprintf("%+10.0f", g.InterpolatedGain))
	span := styles.HelpStyle.Render(fmt.Sprintf(
		"  %+.1f/day over %s … %s", g.RatePerDay, g.EarliestValidDate, g.LatestValidDate))
	return label + gain + span
}
