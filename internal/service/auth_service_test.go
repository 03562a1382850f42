package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/eventhub/internal/auth"
	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/persistence"
	"github.com/spec-kit/eventhub/internal/repository"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

func TestAuthService_RequestUserOTP(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Ann", "ann@x.com")

	err := f.auth.RequestUserOTP(ctx, "  ")
	assert.Equal(t, "Please enter your email address", apperrors.FieldErrors(err)["email"])

	err = f.auth.RequestUserOTP(ctx, "ann")
	assert.Equal(t, "Please enter a valid email address", apperrors.FieldErrors(err)["email"])

	err = f.auth.RequestUserOTP(ctx, "bob@x.com")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	require.NoError(t, f.auth.RequestUserOTP(ctx, "ann@x.com"))
	last := f.events.last()
	assert.Equal(t, events.EventOTPRequested, last.Type)
	assert.Equal(t, "123456", last.Payload.(events.OTPRequestedPayload).Code)
}

func TestAuthService_LoginUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Ann", "ann@x.com")
	guard := f.guard(t, "c1")
	client := ClientInfo{UserAgent: "Mozilla/5.0 Firefox/128.0", IP: "10.0.0.1"}

	_, err := f.auth.LoginUser(ctx, guard, "ann@x.com", "123", client)
	assert.Equal(t, "Please enter a valid 6-digit OTP", apperrors.FieldErrors(err)["otp"])
	assert.False(t, guard.IsUserAuthorized())

	_, err = f.auth.LoginUser(ctx, guard, "ann@x.com", "000000", client)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidCredentials))
	assert.False(t, guard.IsUserAuthorized())

	reg, err := f.auth.LoginUser(ctx, guard, "ann@x.com", "123456", client)
	require.NoError(t, err)
	assert.True(t, guard.IsUserAuthorized())
	assert.Equal(t, "ann@x.com", guard.CurrentUserEmail())
	require.NotNil(t, reg.LastLogin)

	logs, err := f.logins.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Firefox", logs[0].Device)
	assert.Equal(t, "10.0.0.1", logs[0].IP)
	assert.Equal(t, domain.ActivityPortal, logs[0].Activity)
	assert.Equal(t, events.EventUserLoggedIn, f.events.last().Type)

	// A second client stays logged out.
	assert.False(t, f.guard(t, "c2").IsUserAuthorized())

	require.NoError(t, f.auth.LogoutUser(ctx, guard))
	assert.False(t, guard.IsUserAuthorized())
	assert.False(t, f.guard(t, "c1").IsUserAuthorized())
}

func TestAuthService_LoginUserBlocked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	reg := f.register(t, "Ann", "ann@x.com")
	_, err := f.regs.ToggleStatus(ctx, reg.ID)
	require.NoError(t, err)

	guard := f.guard(t, "c1")
	_, err = f.auth.LoginUser(ctx, guard, "ann@x.com", "123456", ClientInfo{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.False(t, guard.IsUserAuthorized())
}

func TestAuthService_AdminIndependentOfUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Ann", "ann@x.com")
	guard := f.guard(t, "c1")

	err := f.auth.LoginAdmin(ctx, guard, "", "admin123")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	err = f.auth.LoginAdmin(ctx, guard, "admin@eventhub.com", "wrong")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidCredentials))

	require.NoError(t, f.auth.LoginAdmin(ctx, guard, "admin@eventhub.com", "admin123"))
	assert.True(t, guard.IsAdminAuthorized())
	assert.False(t, guard.IsUserAuthorized())

	_, err = f.auth.LoginUser(ctx, guard, "ann@x.com", "123456", ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, f.auth.LogoutAdmin(ctx, guard))
	assert.False(t, guard.IsAdminAuthorized())
	assert.True(t, guard.IsUserAuthorized())
}

func TestAuthService_LoginUserUndoneWhenLogWriteFails(t *testing.T) {
	ctx := context.Background()
	store := &keyFailStore{Store: persistence.NewMemoryStore()}
	f := newFixtureOver(t, store)
	f.register(t, "Ann", "ann@x.com")
	guard := f.guard(t, "c1")
	require.NoError(t, guard.RememberEmail(ctx, "ann@x.com"))

	store.key = repository.KeyLoginLogs
	_, err := f.auth.LoginUser(ctx, guard, "ann@x.com", "123456", ClientInfo{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageUnavailable))

	assert.False(t, guard.IsUserAuthorized())
	reloaded := f.guard(t, "c1")
	assert.False(t, reloaded.IsUserAuthorized())
	assert.Equal(t, "ann@x.com", reloaded.CurrentUserEmail())

	reg, err := f.regs.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Nil(t, reg.LastLogin)
	logs, err := f.logins.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.NotContains(t, f.events.types(), events.EventUserLoggedIn)
}

func TestAuthService_LoginUserUndoneWhenSessionWriteFails(t *testing.T) {
	ctx := context.Background()
	store := &keyFailStore{Store: persistence.NewMemoryStore()}
	f := newFixtureOver(t, store)
	f.register(t, "Ann", "ann@x.com")
	guard := f.guard(t, "c1")

	store.key = auth.KeyUserLoggedIn
	_, err := f.auth.LoginUser(ctx, guard, "ann@x.com", "123456", ClientInfo{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageUnavailable))

	assert.False(t, f.guard(t, "c1").IsUserAuthorized())
	reg, err := f.regs.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Nil(t, reg.LastLogin)
}
