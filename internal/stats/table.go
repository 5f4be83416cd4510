package stats

import (
	"github.com/roendal/guildwatch/internal/models"
)

// TableRows produces one row per calendar day from the earliest to the
// latest recorded date, oldest first. Days with no entries still get a
// row; their cells simply carry no readings.
func (e *Engine) TableRows() ([]models.TableRow, error) {
	earliest, err := e.loc.EarliestDate()
	if err != nil {
		return nil, err
	}
	latest, err := e.loc.LatestDate()
	if err != nil {
		return nil, err
	}

	guilds := e.ix.Guilds()
	lastContribution := make(map[string]models.Date, len(guilds))
	lastMember := make(map[string]models.Date, len(guilds))

	rows := make([]models.TableRow, 0, earliest.DaysUntil(latest)+1)
	for d := earliest; !d.After(latest); d = d.AddDays(1) {
		row := models.TableRow{Date: d, Cells: make([]models.TableCell, 0, len(guilds))}
		for _, g := range guilds {
			cell := models.TableCell{GuildName: g.Name}
			if entry, ok := e.ix.Entry(d, g.Name); ok {
				cell.Contribution = entry.Contribution
				cell.MemberCount = entry.MemberCount
			}

			if cell.Contribution.Valid {
				if prev, ok := lastContribution[g.Name]; ok {
					prevEntry, _ := e.ix.Entry(prev, g.Name)
					span := prev.DaysUntil(d)
					cell.ContributionRate = models.N(
						(cell.Contribution.Value - prevEntry.Contribution.Value) / float64(span))
				}
				lastContribution[g.Name] = d
			}

			if cell.MemberCount.Valid {
				if prev, ok := lastMember[g.Name]; ok {
					prevEntry, _ := e.ix.Entry(prev, g.Name)
					delta := cell.MemberCount.Value - prevEntry.MemberCount.Value
					cell.MemberDelta = models.N(delta)
					switch {
					case delta > 0:
						cell.MemberTrend = models.TrendUp
					case delta < 0:
						cell.MemberTrend = models.TrendDown
					default:
						cell.MemberTrend = models.TrendFlat
					}
				}
				lastMember[g.Name] = d
			}

			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
