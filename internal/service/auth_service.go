package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/auth"
	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/repository"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

const otpLength = 6

// AuthService coordinates the user email+OTP flow and the admin login.
type AuthService struct {
	registrations repository.RegistrationRepository
	logins        repository.LoginLogRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	demoOTP       string
	now           func() time.Time
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	RegistrationRepo repository.RegistrationRepository
	LoginLogRepo     repository.LoginLogRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
	DemoOTP          string
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		registrations: deps.RegistrationRepo,
		logins:        deps.LoginLogRepo,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		demoOTP:       deps.DemoOTP,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// RequestUserOTP checks that email belongs to a registration and "sends" the
// one-time code. Nothing is written to the session.
func (s *AuthService) RequestUserOTP(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewFieldErrors(map[string]string{"email": "Please enter your email address"})
	}
	if !domain.ValidEmail(email) {
		return apperrors.NewFieldErrors(map[string]string{"email": "Please enter a valid email address"})
	}
	if _, err := s.registrations.FindByEmail(ctx, email); err != nil {
		return err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventOTPRequested,
		events.Actor{Role: domain.RoleUser, Email: email},
		events.OTPRequestedPayload{Email: email, Code: s.demoOTP}))
	return nil
}

// LoginUser completes the OTP step, stamps the registration's last login and
// appends a portal entry to the login log. A storage failure at any step
// undoes the writes already made.
func (s *AuthService) LoginUser(ctx context.Context, guard *auth.SessionGuard, email, code string, client ClientInfo) (*domain.Registration, error) {
	if len(code) != otpLength {
		return nil, apperrors.NewFieldErrors(map[string]string{"otp": "Please enter a valid 6-digit OTP"})
	}
	if err := guard.CheckUser(ctx, email, code); err != nil {
		return nil, err
	}
	reg, err := s.registrations.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	prevSession := guard.Session()
	prevLogin := reg.LastLogin

	now := s.now()
	if err := s.registrations.TouchLastLogin(ctx, email, now); err != nil {
		return nil, err
	}
	if err := guard.LoginUser(ctx, email, code); err != nil {
		s.restoreLastLogin(ctx, email, prevLogin)
		return nil, err
	}
	if _, err := s.logins.Append(ctx, domain.LoginLog{
		Email:     email,
		LoginTime: now,
		Device:    client.Device(),
		IP:        client.IP,
		Activity:  domain.ActivityPortal,
	}); err != nil {
		if rerr := guard.RestoreUser(ctx, prevSession); rerr != nil {
			s.logger.Error("could not undo session after failed login", zap.String("email", email), zap.Error(rerr))
		}
		s.restoreLastLogin(ctx, email, prevLogin)
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserLoggedIn,
		events.Actor{Role: domain.RoleUser, Email: email},
		events.LoginPayload{Device: client.Device(), IP: client.IP}))

	reg.LastLogin = &now
	return reg, nil
}

func (s *AuthService) restoreLastLogin(ctx context.Context, email string, prev *time.Time) {
	if err := s.registrations.SetLastLogin(ctx, email, prev); err != nil {
		s.logger.Error("could not undo last login after failed login", zap.String("email", email), zap.Error(err))
	}
}

// LogoutUser ends the user session.
func (s *AuthService) LogoutUser(ctx context.Context, guard *auth.SessionGuard) error {
	email := guard.CurrentUserEmail()
	if err := guard.LogoutUser(ctx); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserLoggedOut,
		events.Actor{Role: domain.RoleUser, Email: email}, nil))
	return nil
}

// LoginAdmin authenticates the dashboard operator.
func (s *AuthService) LoginAdmin(ctx context.Context, guard *auth.SessionGuard, email, password string) error {
	if email == "" || password == "" {
		return apperrors.NewValidationError("Please enter both email and password", nil)
	}
	if err := guard.LoginAdmin(ctx, email, password); err != nil {
		if apperrors.HasCode(err, apperrors.CodeInvalidCredentials) {
			s.logger.Info("admin login rejected")
		}
		return err
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventAdminLoggedIn,
		events.Actor{Role: domain.RoleAdmin, Email: email}, nil))
	return nil
}

// LogoutAdmin ends the admin session.
func (s *AuthService) LogoutAdmin(ctx context.Context, guard *auth.SessionGuard) error {
	return guard.LogoutAdmin(ctx)
}
