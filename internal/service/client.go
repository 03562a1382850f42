package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/events"
)

// ClientInfo describes the caller for the login/activity log.
type ClientInfo struct {
	UserAgent string
	IP        string
}

// Device reduces a User-Agent to the browser family shown on the dashboard.
func (c ClientInfo) Device() string {
	ua := strings.ToLower(c.UserAgent)
	switch {
	case ua == "":
		return "Unknown"
	case strings.Contains(ua, "edg/"):
		return "Edge"
	case strings.Contains(ua, "firefox/"):
		return "Firefox"
	case strings.Contains(ua, "chrome/"), strings.Contains(ua, "crios/"):
		return "Chrome"
	case strings.Contains(ua, "safari/"):
		return "Safari"
	}
	return "Other"
}

// publish sends an event and logs, rather than returns, handler failures:
// notifications never undo a completed state change.
func publish(ctx context.Context, d events.Dispatcher, logger *zap.Logger, event events.Event) {
	if d == nil {
		return
	}
	if err := d.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
