package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/auth"
	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/repository"
)

// RegistrationService coordinates attendee sign-up.
type RegistrationService struct {
	registrations repository.RegistrationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewRegistrationService builds the service.
func NewRegistrationService(registrations repository.RegistrationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{registrations: registrations, dispatcher: dispatcher, logger: logger}
}

// Register stores the registration and remembers the email on the caller's
// session so the login form can be pre-filled.
func (s *RegistrationService) Register(ctx context.Context, guard *auth.SessionGuard, input domain.RegistrationInput) (*domain.Registration, error) {
	reg, err := s.registrations.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	if guard != nil {
		if err := guard.RememberEmail(ctx, reg.Email); err != nil {
			s.logger.Warn("could not remember registration email", zap.Error(err))
		}
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventRegistrationCreated,
		events.Actor{Role: domain.RoleUser, Email: reg.Email},
		events.RegistrationCreatedPayload{
			RegistrationID: reg.ID,
			Name:           reg.Name,
			Email:          reg.Email,
			TicketType:     reg.TicketType,
		}))
	return reg, nil
}
