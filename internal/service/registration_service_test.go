package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/events"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	guard := f.guard(t, "c1")

	reg, err := f.registration.Register(ctx, guard, domain.RegistrationInput{
		Name:       "Ann",
		Email:      "ann@x.com",
		Phone:      "9876543210",
		Gender:     domain.GenderFemale,
		TicketType: domain.TicketStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), reg.ID)
	assert.Equal(t, domain.StatusRegistered, reg.Status)

	// The email is remembered for the login form but nobody is logged in.
	reloaded := f.guard(t, "c1")
	assert.Equal(t, "ann@x.com", reloaded.CurrentUserEmail())
	assert.False(t, reloaded.IsUserAuthorized())

	assert.Equal(t, []events.EventType{events.EventRegistrationCreated}, f.events.types())
}

func TestRegistrationService_InvalidInputPublishesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.registration.Register(context.Background(), f.guard(t, "c1"), domain.RegistrationInput{
		Name: "Ann", Email: "ann@x.com", Phone: "12345",
		Gender: domain.GenderFemale, TicketType: domain.TicketVIP,
	})
	assert.Equal(t, "Phone number must be 10 digits", apperrors.FieldErrors(err)["phone"])
	assert.Empty(t, f.events.types())
}
