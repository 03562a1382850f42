package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/auth"
	"github.com/spec-kit/eventhub/internal/config"
	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/persistence"
	"github.com/spec-kit/eventhub/internal/repository"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

type fixture struct {
	store    persistence.Store
	regs     repository.RegistrationRepository
	feedback repository.FeedbackRepository
	logins   repository.LoginLogRepository
	verifier auth.CredentialVerifier
	events   *recorder

	auth         *AuthService
	registration *RegistrationService
	portal       *PortalService
	admin        *AdminService
}

// recorder collects every published event.
type recorder struct {
	mu   sync.Mutex
	seen []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.seen))
	for _, e := range r.seen {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) last() events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[len(r.seen)-1]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOver(t, persistence.NewMemoryStore())
}

func newFixtureOver(t *testing.T, store persistence.Store) *fixture {
	t.Helper()
	logger := zap.NewNop()
	regs := repository.NewRegistrationRepository(store)
	feedback := repository.NewFeedbackRepository(store)
	logins := repository.NewLoginLogRepository(store)

	verifier, err := auth.NewDemoVerifier(config.AuthConfig{
		BcryptCost:    4,
		AdminEmail:    "admin@eventhub.com",
		AdminPassword: "admin123",
		DemoOTP:       "123456",
	}, regs)
	require.NoError(t, err)

	rec := &recorder{}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range events.AllEventTypes() {
		dispatcher.Subscribe(et, rec.handle)
	}

	return &fixture{
		store:    store,
		regs:     regs,
		feedback: feedback,
		logins:   logins,
		verifier: verifier,
		events:   rec,
		auth: NewAuthService(AuthDependencies{
			RegistrationRepo: regs,
			LoginLogRepo:     logins,
			Dispatcher:       dispatcher,
			Logger:           logger,
			DemoOTP:          "123456",
		}),
		registration: NewRegistrationService(regs, dispatcher, logger),
		portal: NewPortalService(PortalDependencies{
			RegistrationRepo: regs,
			FeedbackRepo:     feedback,
			LoginLogRepo:     logins,
			Dispatcher:       dispatcher,
			Logger:           logger,
			Event: config.EventConfig{
				Name:        "Tech Conference 2026",
				Date:        "December 15-16, 2026",
				VideoURL:    "https://video.example/embed",
				PDFURL:      "/sample.pdf",
				FeedbackURL: "/feedback-form.html",
			},
		}),
		admin: NewAdminService(AdminDependencies{
			RegistrationRepo: regs,
			FeedbackRepo:     feedback,
			LoginLogRepo:     logins,
			Dispatcher:       dispatcher,
			Logger:           logger,
			Now:              func() time.Time { return time.Date(2026, 12, 15, 12, 0, 0, 0, time.UTC) },
		}),
	}
}

// keyFailStore fails writes of one key, matched by suffix.
type keyFailStore struct {
	persistence.Store
	key string
}

func (s *keyFailStore) Set(ctx context.Context, key, value string) error {
	if s.key != "" && strings.HasSuffix(key, s.key) {
		return fmt.Errorf("%w: set %q", apperrors.ErrStorageUnavailable, key)
	}
	return s.Store.Set(ctx, key, value)
}

// guard returns an initialized session guard for the named client.
func (f *fixture) guard(t *testing.T, clientID string) *auth.SessionGuard {
	t.Helper()
	g := auth.NewSessionGuard(auth.ClientStore(f.store, clientID), f.verifier)
	require.NoError(t, g.Initialize(context.Background()))
	return g
}

func (f *fixture) register(t *testing.T, name, email string) *domain.Registration {
	t.Helper()
	reg, err := f.regs.Register(context.Background(), domain.RegistrationInput{
		Name:       name,
		Email:      email,
		Phone:      "9876543210",
		Gender:     domain.GenderFemale,
		TicketType: domain.TicketVIP,
	})
	require.NoError(t, err)
	return reg
}
