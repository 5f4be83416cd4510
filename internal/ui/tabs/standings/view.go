package standings

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/roendal/guildwatch/internal/models"
	"github.com/roendal/guildwatch/internal/stats"
	"github.com/roendal/guildwatch/internal/ui/components"
	"github.com/roendal/guildwatch/internal/ui/styles"
)

// View renders the standings tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	if m.showChart {
		if chart := m.renderChart(); chart != "" {
			sections = append(sections, chart)
		}
	}
	sections = append(sections, m.renderStandings())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Guild Standings")
	subtitle := styles.HelpStyle.Render("Guilds ranked by their latest valid contribution")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderChart plots every shown guild's daily contribution as one line,
// with the legend matching the series palette.
func (m *Model) renderChart() string {
	e := m.engine()
	if e == nil {
		return ""
	}
	rows, err := e.TableRows()
	if err != nil || len(rows) < 2 {
		return ""
	}

	summaries := m.visibleSummaries()
	var series [][]float64
	var legend []components.LegendItem
	for _, s := range summaries {
		if !s.HasLatest {
			continue
		}
		series = append(series, contributionSeries(rows, s.Guild.Name))
		legend = append(legend, components.LegendItem{
			Label: s.Guild.Name,
			Color: components.LegendColor(len(legend)),
		})
	}
	if len(series) == 0 {
		return ""
	}

	cardWidth := max(m.width-6, 40)
	chartWidth := max(cardWidth-14, 20)
	chartHeight := max(m.height/3, 6)

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	title := fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Contribution Over Time"))
	chart := components.RenderMultiLineChart(series, chartWidth, chartHeight,
		fmt.Sprintf("%s … %s", rows[0].Date, rows[len(rows)-1].Date))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", chart, "", components.RenderLegend(legend)),
	)
}

// contributionSeries flattens one guild's daily readings into a
// contiguous series, carrying the last valid contribution across
// missing days and backfilling days before the first valid reading.
func contributionSeries(rows []models.TableRow, guild string) []float64 {
	out := make([]float64, 0, len(rows))
	last := 0.0
	started := false
	for _, row := range rows {
		for _, cell := range row.Cells {
			if cell.GuildName != guild {
				continue
			}
			if v, ok := cell.Contribution.Float(); ok {
				last = v
				if !started {
					for i := range out {
						out[i] = v
					}
					started = true
				}
			}
			out = append(out, last)
		}
	}
	return out
}

func (m *Model) renderStandings() string {
	summaries := m.visibleSummaries()

	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Standings")))

	if len(summaries) == 0 {
		rows = append(rows, "")
		emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
		rows = append(rows, fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render("No guild data loaded")))
		rows = append(rows, "")
		rows = append(rows, styles.InfoTextStyle.Render("  ╰─▶ Point GUILD_DATA_PATH at a guild data feed"))

		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	leader := 0.0
	if summaries[0].HasLatest {
		leader = summaries[0].LatestContribution
	}

	rows = append(rows, "")
	for i, s := range summaries {
		rows = append(rows, m.renderGuildRow(s, i, leader, cardWidth-4)...)
		if i < len(summaries)-1 {
			rows = append(rows, "")
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderGuildRow(s models.GuildSummary, index int, leader float64, width int) []string {
	var lines []string

	lines = append(lines, m.renderGuildHeader(s, index))

	if !s.HasLatest {
		lines = append(lines, "    "+styles.HelpStyle.Render("No valid contribution recorded"))
		return lines
	}

	contentWidth := max(width-4, 20)
	lines = append(lines, "    "+components.ContributionBar(s.LatestContribution, leader, "", contentWidth-6))
	lines = append(lines, "    "+m.renderTrendLine(s))

	if index == m.selectedIndex {
		lines = append(lines, m.renderDetail(s)...)
	}

	return lines
}

func (m *Model) renderGuildHeader(s models.GuildSummary, index int) string {
	selectionPrefix := "  "
	if index == m.selectedIndex {
		selectionPrefix = styles.FocusedStyle.Render("▸ ")
	}

	rank := styles.GetRankStyle(index + 1).Render(fmt.Sprintf("#%d", index+1))

	name := styles.GuildStyle(s.Guild.Color, s.Guild.BackgroundColor).Bold(true).Render(s.Guild.Name)
	if index == 0 && s.HasLatest {
		name = styles.LeaderStyle.Render(s.Guild.Name)
	}

	asOf := ""
	if s.HasLatest {
		asOf = styles.HelpStyle.Render(" as of " + s.LatestValidDate.String())
	}

	return fmt.Sprintf("%s%s %s%s", selectionPrefix, rank, name, asOf)
}

func (m *Model) renderTrendLine(s models.GuildSummary) string {
	avg, ok := s.AveragePerDay.Float()
	if !ok {
		return styles.StaleStyle.Render("trend unavailable (reference too old or too close)")
	}

	trend := styles.GetTrendStyle(avg).Render(fmt.Sprintf("%s %.1f/day", arrowFor(avg), avg))
	span := s.EarlierDate.DaysUntil(s.LatestValidDate)
	ref := styles.HelpStyle.Render(fmt.Sprintf(" over %d days since %s", span, s.EarlierDate.String()))

	members := ""
	if v, ok := s.LatestMemberCount.Float(); ok {
		members = styles.HelpStyle.Render(fmt.Sprintf("  ·  %.0f members", v))
	}

	return trend + ref + members
}

func arrowFor(v float64) string {
	switch {
	case v > 0:
		return "▲"
	case v < 0:
		return "▼"
	default:
		return "="
	}
}

// renderDetail expands the selected guild with its extremes and the
// projected overtake of the guild one place ahead.
func (m *Model) renderDetail(s models.GuildSummary) []string {
	var lines []string

	e := m.engine()
	if e == nil {
		return lines
	}

	if low, ok := e.Locator().LowestContribution(s.Guild.Name); ok {
		high, _ := e.Locator().HighestContribution(s.Guild.Name)
		spark := ""
		if rows, err := e.TableRows(); err == nil && len(rows) > 1 {
			spark = "  " + components.RenderSparkline(contributionSeries(rows, s.Guild.Name), 24)
		}
		lines = append(lines, "    "+styles.HelpStyle.Render(
			fmt.Sprintf("range %.0f … %.0f", low, high))+spark)
	}

	if line := m.renderOvertake(s, e); line != "" {
		lines = append(lines, "    "+line)
	}

	return lines
}

func (m *Model) renderOvertake(s models.GuildSummary, e *stats.Engine) string {
	summaries := m.visibleSummaries()
	if m.selectedIndex == 0 || m.selectedIndex >= len(summaries) {
		return ""
	}
	ahead := summaries[m.selectedIndex-1]

	p, err := e.OvertakeProjection(s, ahead)
	if err != nil {
		return ""
	}

	gap := fmt.Sprintf("%.0f behind %s", p.Gap, p.AheadName)
	if !p.HasEstimate {
		return styles.HelpStyle.Render(gap + ", no rate estimate")
	}
	if !p.WillOvertake {
		return styles.HelpStyle.Render(gap + ", not closing")
	}
	return styles.SuccessTextStyle.Render(fmt.Sprintf(
		"%s, overtake in %s (%s)", gap, p.TimeToOvertake.String(), p.OvertakeDate.String()))
}
