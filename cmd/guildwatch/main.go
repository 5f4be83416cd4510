// Package main is the entry point for the guildwatch TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roendal/guildwatch/internal/app"
	"github.com/roendal/guildwatch/internal/config"
	"github.com/roendal/guildwatch/internal/services"
	"github.com/roendal/guildwatch/internal/ui/tabs/info"
	"github.com/roendal/guildwatch/internal/ui/tabs/monthly"
	"github.com/roendal/guildwatch/internal/ui/tabs/rock"
	"github.com/roendal/guildwatch/internal/ui/tabs/standings"
	"github.com/roendal/guildwatch/internal/ui/tabs/table"
	"github.com/roendal/guildwatch/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Starts the file watchers and the archive alongside the feeds.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Each tab reads the shared application state; the ones that derive
	// figures also get the manager for its configured stats engine.
	state := model.GetState()
	tabs := []app.Tab{
		standings.New(state, svcManager), // Tab 1: Standings - ranked guilds with trends
		table.New(state, svcManager),     // Tab 2: Table - day-by-day readings
		monthly.New(state, svcManager),   // Tab 3: Monthly - interpolated gains per month
		rock.New(state),                  // Tab 4: Rock - Honorable Rock leaderboard
		info.New(state, svcManager, cfg), // Tab 5: Info - configuration and archive
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`guildwatch - Guild contribution standings TUI

Usage:
  guildwatch [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-5             Switch between tabs (Standings, Table, Monthly, Rock, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  h/l, Left/Right Browse guilds or months
  R               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  GUILD_DATA_PATH     Guild data JSON feed path
  ROCK_DATA_PATH      Honorable Rock JSON feed path (empty disables it)
  DATABASE_PATH       SQLite standings archive path
  TREND_WINDOW_WEEKS  Trend reference window in weeks (default: 6)
  REFRESH_INTERVAL    UI tick interval (default: 30s)
  NOTIFY_LEAD_CHANGE  Desktop notification on lead changes (default: true)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/guildwatch/.env
  - ~/.guildwatch/.env

For more information, visit: https://github.com/roendal/guildwatch`)
}
