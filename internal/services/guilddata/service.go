// Package guilddata loads the guild data feed and watches it for changes.
package guilddata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roendal/guildwatch/internal/dataset"
	"github.com/roendal/guildwatch/internal/logger"
	"github.com/roendal/guildwatch/internal/models"
)

// EventType defines the type of guild data event.
type EventType int

const (
	EventLoaded EventType = iota
	EventReloaded
	EventError
)

// Event represents a guild data service event.
type Event struct {
	Type  EventType
	Error error
	Index *dataset.Index
}

// Service loads the guild JSON feed, keeps the built index, and reloads
// when the file changes on disk.
type Service struct {
	mu            sync.RWMutex
	filePath      string
	index         *dataset.Index
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates the service, performs the initial load and starts the
// file watcher.
func New(filePath string) (*Service, error) {
	if filePath == "" {
		return nil, fmt.Errorf("guild data path is empty")
	}

	s := &Service{
		filePath:  filePath,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load guild data: %w", err)
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventLoaded, Index: s.Index()})

	return s, nil
}

// Events returns the event channel for subscribing to data changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Index returns the most recently built index.
func (s *Service) Index() *dataset.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Path returns the feed's file path.
func (s *Service) Path() string {
	return s.filePath
}

// Reload re-reads the feed on demand.
func (s *Service) Reload() error {
	if err := s.load(); err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return err
	}
	s.sendEvent(Event{Type: EventReloaded, Index: s.Index()})
	return nil
}

// load reads and validates the feed, replacing the index only on
// success. A malformed feed never clobbers the last good index.
func (s *Service) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var raw models.GuildData
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse guild data: %w", err)
	}

	ix, err := dataset.Build(&raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.index = ix
	s.mu.Unlock()
	return nil
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch atomic replace via rename)
	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			// Only care about the feed file
			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				// Debounce rapid changes
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, func() {
					s.handleFileChange()
				})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the feed after an external change.
func (s *Service) handleFileChange() {
	if err := s.load(); err != nil {
		logger.Warn("guild data reload failed", "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}
	logger.Info("guild data reloaded", "path", s.filePath)
	s.sendEvent(Event{Type: EventReloaded, Index: s.Index()})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	close(s.stopChan)

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
