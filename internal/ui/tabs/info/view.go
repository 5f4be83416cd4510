package info

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/roendal/guildwatch/internal/ui/styles"
	"github.com/roendal/guildwatch/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string
	sections = append(sections, styles.TitleStyle.Render("Info"))
	sections = append(sections, "")
	sections = append(sections, m.renderAboutCard())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderDatasetCard())
	sections = append(sections, m.renderArchiveCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderAboutCard() string {
	lines := []string{
		infoLine("Version", version.Info()),
		infoLine("Runtime", fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)),
	}
	return renderCard("◈ About", lines)
}

func (m *Model) renderConfigCard() string {
	if m.cfg == nil {
		return renderCard("◈ Configuration", []string{
			styles.HelpStyle.Render("No configuration loaded."),
		})
	}

	notify := "off"
	if m.cfg.NotifyLeadChange {
		notify = "on"
	}
	lines := []string{
		infoLine("Guild data", m.cfg.GuildDataPath),
		infoLine("Rock data", valueOr(m.cfg.RockDataPath, "disabled")),
		infoLine("Archive", m.cfg.DatabasePath),
		infoLine("Trend window", fmt.Sprintf("%d weeks", m.cfg.TrendWindowWeeks)),
		infoLine("Refresh", m.cfg.RefreshInterval.String()),
		infoLine("Lead alerts", notify),
	}
	return renderCard("◈ Configuration", lines)
}

func (m *Model) renderDatasetCard() string {
	ix := m.state.Index()
	if ix == nil {
		return renderCard("◈ Dataset", []string{
			styles.HelpStyle.Render("No guild data loaded."),
		})
	}

	lines := []string{
		infoLine("Guilds", fmt.Sprintf("%d", ix.NumGuilds())),
		infoLine("Recorded days", fmt.Sprintf("%d", ix.NumDates())),
	}
	if updated := m.state.GetLastUpdated(); !updated.IsZero() {
		lines = append(lines, infoLine("Last loaded", updated.Format(time.RFC822)))
	}
	return renderCard("◈ Dataset", lines)
}

func (m *Model) renderArchiveCard() string {
	if !m.hasArchive {
		return renderCard("◈ Archive", []string{
			styles.HelpStyle.Render("Archive figures unavailable."),
		})
	}

	lines := []string{
		infoLine("Snapshots", fmt.Sprintf("%d", m.archive.SnapshotCount)),
	}
	if m.archive.HasLastLoad {
		lines = append(lines, infoLine("Last load",
			fmt.Sprintf("%s (%d days, %d guilds)",
				m.archive.LastLoad.LoadedAt.Format(time.RFC822),
				m.archive.LastLoad.DateCount,
				m.archive.LastLoad.GuildCount)))
	}
	if len(m.archive.LeaderChanges) > 0 {
		lines = append(lines, "", styles.SubTitleStyle.Render("Recent lead changes"))
		for _, rec := range m.archive.LeaderChanges {
			detail := styles.HelpStyle.Render(fmt.Sprintf("(%.0f as of %s)", rec.Contribution, rec.AsOf))
			lines = append(lines, fmt.Sprintf("  %s  %s %s",
				rec.ChangedAt.Format("02 Jan 15:04"),
				styles.LeaderStyle.Render(rec.Guild),
				detail))
		}
	}
	return renderCard("◈ Archive", lines)
}

func renderCard(title string, lines []string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render(title),
		"",
		strings.Join(lines, "\n"))
	return styles.CardStyle.Render(body)
}

func infoLine(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.HelpKeyStyle.Render(fmt.Sprintf("%-14s", label)),
		styles.HelpDescStyle.Render(value))
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
