package app

import (
	"time"

	"github.com/roendal/guildwatch/internal/dataset"
	"github.com/roendal/guildwatch/internal/models"
	"github.com/roendal/guildwatch/internal/services"
	"github.com/roendal/guildwatch/internal/services/rock"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// DatasetLoadedMsg carries a freshly built index with derived summaries.
type DatasetLoadedMsg struct {
	Index     *dataset.Index
	Summaries []models.GuildSummary
}

// RockLoadedMsg carries the Honorable Rock index.
type RockLoadedMsg struct {
	Index *rock.Index
}

// LeaderChangedMsg announces a change of the leading guild.
type LeaderChangedMsg struct {
	Guild    string
	Previous string
}

// RefreshMsg requests a reload of the data feeds.
type RefreshMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
