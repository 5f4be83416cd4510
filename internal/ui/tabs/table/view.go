package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roendal/guildwatch/internal/models"
	"github.com/roendal/guildwatch/internal/ui/styles"
)

const (
	dateColWidth  = 13
	guildColWidth = 24
)

// View renders the table tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(styles.HelpStyle.Render("Loading guild data..."))
	}
	if m.errorMsg != "" {
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(styles.ErrorTextStyle.Render("Error: " + m.errorMsg))
	}

	if m.rows == nil {
		m.rebuild()
	}
	if len(m.rows) == 0 {
		return m.renderEmpty()
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderTable())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Daily Table"),
		"",
		styles.HelpStyle.Render("No day entries recorded yet."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Daily Table")

	order := "newest first"
	if !m.newestFirst {
		order = "oldest first"
	}
	orderStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)
	orderIndicator := orderStyle.Render(fmt.Sprintf("[o] %s", order))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", orderIndicator)

	subtitle := styles.HelpStyle.Render(
		fmt.Sprintf("%d days, contribution with per-day rate and member movement", len(m.rows)))

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderTable() string {
	ix := m.state.Index()
	guilds := ix.Guilds()

	var lines []string
	lines = append(lines, m.renderColumnHeader(guilds))

	for _, row := range m.orderedRows() {
		lines = append(lines, m.renderRow(row))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderColumnHeader(guilds []models.Guild) string {
	var cols []string
	cols = append(cols, styles.TableHeaderStyle.Width(dateColWidth).Render("Date"))
	for _, g := range guilds {
		name := g.Name
		if len(name) > guildColWidth-2 {
			name = name[:guildColWidth-3] + "…"
		}
		cols = append(cols, styles.TableHeaderStyle.Width(guildColWidth).Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cols...)
}

func (m *Model) renderRow(row models.TableRow) string {
	var cols []string
	cols = append(cols, styles.TableCellStyle.Width(dateColWidth).Render(row.Date.String()))
	for _, cell := range row.Cells {
		cols = append(cols, styles.TableCellStyle.Width(guildColWidth).Render(m.renderCell(cell)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *Model) renderCell(cell models.TableCell) string {
	v, ok := cell.Contribution.Float()
	if !ok {
		return styles.HelpStyle.Render("-")
	}

	out := fmt.Sprintf("%.0f", v)

	if rate, ok := cell.ContributionRate.Float(); ok {
		out += " " + styles.GetTrendStyle(rate).Render(fmt.Sprintf("(%+.1f/d)", rate))
	}

	if delta, ok := cell.MemberDelta.Float(); ok && cell.MemberTrend != models.TrendNone {
		arrow := cell.MemberTrend.Arrow()
		style := styles.TrendFlatStyle
		switch cell.MemberTrend {
		case models.TrendUp:
			style = styles.TrendUpStyle
		case models.TrendDown:
			style = styles.TrendDownStyle
		}
		out += " " + style.Render(fmt.Sprintf("%s%+.0f", arrow, delta))
	}

	return out
}
