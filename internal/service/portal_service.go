package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/auth"
	"github.com/spec-kit/eventhub/internal/config"
	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/repository"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// PortalProfile is the attendee card at the top of the portal.
type PortalProfile struct {
	Registered bool
	Name       string
	Email      string
	TicketType domain.TicketType
	CreatedAt  *time.Time
	LastLogin  *time.Time
}

// PortalOverview is everything the portal page renders.
type PortalOverview struct {
	Event    domain.EventDetails
	Profile  PortalProfile
	Feedback domain.FeedbackStats
	Tiles    []domain.Tile
}

// PortalService serves the gated attendee portal.
type PortalService struct {
	registrations repository.RegistrationRepository
	feedback      repository.FeedbackRepository
	logins        repository.LoginLogRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	event         config.EventConfig
}

// PortalDependencies bundles repositories for the portal service.
type PortalDependencies struct {
	RegistrationRepo repository.RegistrationRepository
	FeedbackRepo     repository.FeedbackRepository
	LoginLogRepo     repository.LoginLogRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
	Event            config.EventConfig
}

// NewPortalService constructs the service.
func NewPortalService(deps PortalDependencies) *PortalService {
	return &PortalService{
		registrations: deps.RegistrationRepo,
		feedback:      deps.FeedbackRepo,
		logins:        deps.LoginLogRepo,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		event:         deps.Event,
	}
}

// EventDetails describes the advertised event.
func (s *PortalService) EventDetails() domain.EventDetails {
	return domain.EventDetails{
		Name:  s.event.Name,
		Date:  s.event.Date,
		Venue: s.event.Venue,
		Time:  s.event.Time,
	}
}

// Tiles lists the portal content in display order.
func (s *PortalService) Tiles() []domain.Tile {
	return []domain.Tile{
		{Type: domain.TileVideo, Title: "Event Videos - " + s.event.Name, URL: s.event.VideoURL},
		{Type: domain.TilePDF, Title: "Event Resources & Materials", URL: s.event.PDFURL},
		{Type: domain.TileFeedback, Title: "Event Feedback Form", URL: s.event.FeedbackURL},
	}
}

// Overview assembles the portal for the logged-in user.
func (s *PortalService) Overview(ctx context.Context, guard *auth.SessionGuard) (*PortalOverview, error) {
	email := guard.CurrentUserEmail()

	profile := PortalProfile{Email: email, TicketType: domain.TicketGeneral}
	reg, err := s.registrations.FindByEmail(ctx, email)
	switch {
	case err == nil:
		profile = PortalProfile{
			Registered: true,
			Name:       reg.Name,
			Email:      reg.Email,
			TicketType: reg.TicketType,
			CreatedAt:  &reg.CreatedAt,
			LastLogin:  reg.LastLogin,
		}
	case !apperrors.HasCode(err, apperrors.CodeNotFound):
		return nil, err
	}

	stats, err := s.feedback.StatsForEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return &PortalOverview{
		Event:    s.EventDetails(),
		Profile:  profile,
		Feedback: stats,
		Tiles:    s.Tiles(),
	}, nil
}

// OpenTile returns the tile to embed and records the activity.
func (s *PortalService) OpenTile(ctx context.Context, guard *auth.SessionGuard, tileType domain.TileType, client ClientInfo) (*domain.Tile, error) {
	var tile *domain.Tile
	for _, t := range s.Tiles() {
		if t.Type == tileType {
			t := t
			tile = &t
			break
		}
	}
	if tile == nil {
		return nil, apperrors.NewNotFound("tile", map[string]any{"type": tileType})
	}

	email := guard.CurrentUserEmail()
	if _, err := s.logins.Append(ctx, domain.LoginLog{
		Email:    email,
		Device:   client.Device(),
		IP:       client.IP,
		Activity: tileType.Activity(),
	}); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventTileOpened,
		events.Actor{Role: domain.RoleUser, Email: email},
		events.TileOpenedPayload{Tile: tileType}))
	return tile, nil
}

// SubmitFeedback stores feedback, filling name and email from the session
// when the form left them blank.
func (s *PortalService) SubmitFeedback(ctx context.Context, guard *auth.SessionGuard, input domain.FeedbackInput) (*domain.Feedback, error) {
	if input.Email == "" {
		input.Email = guard.CurrentUserEmail()
	}
	if input.Name == "" {
		if reg, err := s.registrations.FindByEmail(ctx, input.Email); err == nil {
			input.Name = reg.Name
		}
	}

	fb, err := s.feedback.Submit(ctx, input)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventFeedbackSubmitted,
		events.Actor{Role: domain.RoleUser, Email: fb.Email},
		events.FeedbackSubmittedPayload{
			Rating:         fb.Rating,
			Category:       fb.Category,
			Recommendation: fb.Recommendation,
		}))
	return fb, nil
}

// FeedbackStats summarizes the current user's feedback.
func (s *PortalService) FeedbackStats(ctx context.Context, guard *auth.SessionGuard) (domain.FeedbackStats, error) {
	return s.feedback.StatsForEmail(ctx, guard.CurrentUserEmail())
}
