package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/config"
	"github.com/spec-kit/eventhub/internal/events"
)

// NotificationService handles emitting notifications for domain events.
// Delivery is stubbed: messages are logged, never sent.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRegistrationCreated, n.handleRegistrationCreated)
	n.dispatcher.Subscribe(events.EventRegistrationStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventOTPRequested, n.handleOTPRequested)
	n.dispatcher.Subscribe(events.EventUserLoggedIn, n.handleUserLoggedIn)
	n.dispatcher.Subscribe(events.EventFeedbackSubmitted, n.handleFeedbackSubmitted)
}

func (n *NotificationService) handleRegistrationCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("RegistrationCreated", zap.String("email", event.Actor.Email), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event, event.Actor.Email)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("RegistrationStatusChanged", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOTPRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OTPRequestedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("OTPRequested", zap.String("email", payload.Email))
	// Demo mode: the code is only ever logged.
	n.logger.Debug("demo one-time code", zap.String("email", payload.Email), zap.String("code", payload.Code))
	n.sendEmailNotificationStub(ctx, event, payload.Email)
	return nil
}

func (n *NotificationService) handleUserLoggedIn(_ context.Context, event events.Event) error {
	n.logger.Info("UserLoggedIn", zap.String("email", event.Actor.Email), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleFeedbackSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("FeedbackSubmitted", zap.String("email", event.Actor.Email), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event, to string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || to == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
