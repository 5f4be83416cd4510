package rock

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roendal/guildwatch/internal/models"
	rocksvc "github.com/roendal/guildwatch/internal/services/rock"
	"github.com/roendal/guildwatch/internal/ui/styles"
)

const (
	rankColWidth         = 6
	nameColWidth         = 28
	contributionColWidth = 14
	deltaColWidth        = 8
)

// View renders the rock tab.
func (m *Model) View() string {
	rockIx := m.state.RockIndex()
	months := m.months()
	if rockIx == nil || len(months) == 0 {
		return m.renderEmpty()
	}

	month := months[m.currentIndex(months)]
	entries := rockIx.Entries(month)

	var sections []string
	sections = append(sections, m.renderHeader(month, months))
	sections = append(sections, m.renderLeaderboard(month, entries))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Honorable Rock"),
		"",
		styles.HelpStyle.Render("No leaderboard snapshots loaded."),
		styles.HelpStyle.Render("╰─▶ Point ROCK_DATA_PATH at a leaderboard feed"),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader(month models.MonthKey, months []models.MonthKey) string {
	title := styles.TitleStyle.Render("Honorable Rock")

	idx := m.currentIndex(months)
	position := fmt.Sprintf("%s (%d/%d)", month, idx+1, len(months))
	monthStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", monthStyle.Render(position))
	subtitle := styles.HelpStyle.Render("←/→ browse months, Δ is places climbed since the previous snapshot")

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderLeaderboard(month models.MonthKey, entries []models.RockEntry) string {
	var lines []string
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Bottom,
		styles.TableHeaderStyle.Width(rankColWidth).Render("Rank"),
		styles.TableHeaderStyle.Width(nameColWidth).Render("Guild"),
		styles.TableHeaderStyle.Width(contributionColWidth).Render("Contribution"),
		styles.TableHeaderStyle.Width(deltaColWidth).Render("Δ"),
	))

	rockIx := m.state.RockIndex()
	for _, e := range entries {
		lines = append(lines, m.renderEntry(month, e, rockIx))
	}

	title := styles.CardTitleStyle.Render("◈ Top Guilds")
	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", strings.Join(lines, "\n")))
}

func (m *Model) renderEntry(month models.MonthKey, e models.RockEntry, rockIx *rocksvc.Index) string {
	rank := styles.GetRankStyle(e.Rank).Render(fmt.Sprintf("#%d", e.Rank))

	name := e.Name
	if len(name) > nameColWidth-2 {
		name = name[:nameColWidth-3] + "…"
	}

	contribution := fmt.Sprintf("%.0f", e.Contribution)

	delta := styles.HelpStyle.Render("-")
	if d, ok := rockIx.RankDelta(month, e.Name); ok {
		switch {
		case d > 0:
			delta = styles.TrendUpStyle.Render(fmt.Sprintf("▲%d", d))
		case d < 0:
			delta = styles.TrendDownStyle.Render(fmt.Sprintf("▼%d", -d))
		default:
			delta = styles.TrendFlatStyle.Render("→0")
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TableCellStyle.Width(rankColWidth).Render(rank),
		styles.TableCellStyle.Width(nameColWidth).Render(name),
		styles.TableCellStyle.Width(contributionColWidth).Render(contribution),
		styles.TableCellStyle.Width(deltaColWidth).Render(delta),
	)
}
