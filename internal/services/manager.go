// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/roendal/guildwatch/internal/config"
	"github.com/roendal/guildwatch/internal/dataset"
	"github.com/roendal/guildwatch/internal/db"
	"github.com/roendal/guildwatch/internal/logger"
	"github.com/roendal/guildwatch/internal/models"
	"github.com/roendal/guildwatch/internal/services/guilddata"
	"github.com/roendal/guildwatch/internal/services/rock"
	"github.com/roendal/guildwatch/internal/stats"
)

type (
	// DatasetLoadedEvent is emitted when the guild dataset is loaded or
	// reloaded, carrying the freshly derived summaries.
	DatasetLoadedEvent struct {
		Index     *dataset.Index
		Summaries []models.GuildSummary
	}

	// RockLoadedEvent is emitted when the Honorable Rock snapshots are
	// loaded or reloaded.
	RockLoadedEvent struct {
		Index *rock.Index
	}

	// LeaderChangedEvent is emitted when a different guild takes the
	// top spot.
	LeaderChangedEvent struct {
		Guild        string
		Previous     string
		Contribution float64
		AsOf         models.Date
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DatasetLoadedEvent) isServiceEvent() {}
func (RockLoadedEvent) isServiceEvent()    {}
func (LeaderChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()         {}

// ArchiveStats summarizes the sqlite archive for the info tab.
type ArchiveStats struct {
	SnapshotCount int
	LastLoad      db.LoadEvent
	HasLastLoad   bool
	LeaderChanges []db.LeaderRecord
}

// Manager orchestrates services, the archive and event routing.
type Manager struct {
	mu          sync.RWMutex
	guilddata   *guilddata.Service
	rock        *rock.Service
	database    *db.DB
	trendWeeks  int
	notifyLead  bool
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	closed      bool
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		trendWeeks: cfg.TrendWindowWeeks,
		notifyLead: cfg.NotifyLeadChange,
		eventChan:  make(chan ServiceEvent, 100),
		stopChan:   make(chan struct{}),
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.guilddata, err = guilddata.New(cfg.GuildDataPath)
	if err != nil {
		_ = m.database.Close()
		return nil, err
	}

	m.rock, err = rock.New(cfg.RockDataPath)
	if err != nil {
		_ = m.guilddata.Close()
		_ = m.database.Close()
		return nil, err
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.guilddata.Events():
			m.handleGuildDataEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleGuildDataEvent archives the new snapshot, recomputes summaries
// and broadcasts the result.
func (m *Manager) handleGuildDataEvent(event guilddata.Event) {
	switch event.Type {
	case guilddata.EventLoaded, guilddata.EventReloaded:
		if event.Index == nil {
			return
		}
		summaries, err := m.Engine().GuildSummaries()
		if err != nil {
			m.broadcast(ErrorEvent{Service: "guilddata", Error: err})
			return
		}

		m.archiveSnapshot(event.Index)
		m.checkLeadChange(summaries)

		m.broadcast(DatasetLoadedEvent{
			Index:     event.Index,
			Summaries: summaries,
		})

	case guilddata.EventError:
		m.broadcast(ErrorEvent{
			Service: "guilddata",
			Error:   event.Error,
		})
	}
}

// archiveSnapshot writes every observation of the loaded index to the
// archive and records the load event.
func (m *Manager) archiveSnapshot(ix *dataset.Index) {
	ctx := context.Background()
	for _, date := range ix.Dates() {
		for _, g := range ix.Guilds() {
			entry, ok := ix.Entry(date, g.Name)
			if !ok {
				continue
			}
			if err := m.database.UpsertSnapshot(ctx, date, g.Name, entry.Contribution, entry.MemberCount); err != nil {
				logger.Warn("snapshot archive failed", "guild", g.Name, "date", date.ISO(), "error", err)
				return
			}
		}
	}
	if err := m.database.RecordLoadEvent(ctx, m.guilddata.Path(), ix.NumDates(), ix.NumGuilds()); err != nil {
		logger.Warn("load event record failed", "error", err)
	}
}

// checkLeadChange compares the current top guild against the persisted
// leader log and notifies when the lead changes hands.
func (m *Manager) checkLeadChange(summaries []models.GuildSummary) {
	var top *models.GuildSummary
	for i := range summaries {
		if summaries[i].HasLatest {
			top = &summaries[i]
			break
		}
	}
	if top == nil {
		return
	}

	ctx := context.Background()
	previous, found, err := m.database.CurrentLeader(ctx)
	if err != nil {
		logger.Warn("leader lookup failed", "error", err)
		return
	}
	if found && previous.Guild == top.Guild.Name {
		return
	}

	if err := m.database.RecordLeaderChange(ctx, top.Guild.Name, top.LatestContribution, top.LatestValidDate); err != nil {
		logger.Warn("leader record failed", "error", err)
		return
	}

	if found {
		m.broadcast(LeaderChangedEvent{
			Guild:        top.Guild.Name,
			Previous:     previous.Guild,
			Contribution: top.LatestContribution,
			AsOf:         top.LatestValidDate,
		})
		if m.notifyLead {
			title := fmt.Sprintf("New leading guild: %s", top.Guild.Name)
			body := fmt.Sprintf("%s overtook %s with %.0f contribution", top.Guild.Name, previous.Guild, top.LatestContribution)
			_ = beeep.Notify(title, body, "")
		}
	}
}

// broadcast sends an event to all subscribers. The lock is held across
// the sends so Close cannot close a subscriber channel mid-broadcast.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return
	}

	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Index returns the current dataset index.
func (m *Manager) Index() *dataset.Index {
	return m.guilddata.Index()
}

// RockIndex returns the current Honorable Rock index.
func (m *Manager) RockIndex() *rock.Index {
	return m.rock.Index()
}

// Engine builds a stats engine over the current index with the
// configured trend window.
func (m *Manager) Engine() *stats.Engine {
	return stats.NewWithTrendWindow(m.guilddata.Index(), m.trendWeeks)
}

// Refresh reloads both feeds on demand.
func (m *Manager) Refresh() {
	if err := m.guilddata.Reload(); err != nil {
		logger.Warn("guild data refresh failed", "error", err)
	}
	if m.rock.Path() != "" {
		if err := m.rock.Reload(); err != nil {
			logger.Warn("rock data refresh failed", "error", err)
		} else {
			m.broadcast(RockLoadedEvent{Index: m.rock.Index()})
		}
	}
}

// GetArchiveStats returns archive figures for the info tab.
func (m *Manager) GetArchiveStats() (ArchiveStats, error) {
	ctx := context.Background()

	count, err := m.database.SnapshotCount(ctx)
	if err != nil {
		return ArchiveStats{}, err
	}
	lastLoad, hasLoad, err := m.database.LastLoadEvent(ctx)
	if err != nil {
		return ArchiveStats{}, err
	}
	leaders, err := m.database.LeaderHistory(ctx, 5)
	if err != nil {
		return ArchiveStats{}, err
	}

	return ArchiveStats{
		SnapshotCount: count,
		LastLoad:      lastLoad,
		HasLastLoad:   hasLoad,
		LeaderChanges: leaders,
	}, nil
}

// GuildData returns the guild data service.
func (m *Manager) GuildData() *guilddata.Service {
	return m.guilddata
}

// Rock returns the rock service.
func (m *Manager) Rock() *rock.Service {
	return m.rock
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// TrendWindowWeeks returns the configured trend window.
func (m *Manager) TrendWindowWeeks() int {
	return m.trendWeeks
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	m.closed = true
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.guilddata.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// InitialState returns the initial dataset state for TUI initialization.
func (m *Manager) InitialState() (*dataset.Index, []models.GuildSummary, error) {
	summaries, err := m.Engine().GuildSummaries()
	if err != nil {
		return nil, nil, err
	}
	return m.Index(), summaries, nil
}
