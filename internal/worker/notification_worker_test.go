package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/eventhub/internal/config"
	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/service"
)

func TestStartNotificationWorker_SubscribesNotifications(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{})

	StartNotificationWorker(dispatcher, notifications, nil)

	err := dispatcher.Publish(context.Background(), events.New(events.EventRegistrationCreated,
		events.Actor{Role: domain.RoleUser, Email: "ann@x.com"}, nil))
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("RegistrationCreated").Len())
}

func TestStartNotificationWorker_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() { StartNotificationWorker(nil, nil, nil) })
}
