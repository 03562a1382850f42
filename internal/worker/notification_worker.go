package worker

import (
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/service"
)

// StartNotificationWorker registers notification handlers and, when a broker
// is configured, forwards every event to it.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, forwarder *events.AMQPForwarder) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if forwarder != nil && dispatcher != nil {
		forwarder.Subscribe(dispatcher, events.AllEventTypes()...)
	}
}
