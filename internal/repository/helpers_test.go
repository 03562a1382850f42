package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/eventhub/internal/domain"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// readOnlyStore serves reads and fails every write.
type readOnlyStore struct {
	values map[string]string
}

func (s *readOnlyStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *readOnlyStore) Set(_ context.Context, key, _ string) error {
	return fmt.Errorf("%w: set %q: %v", apperrors.ErrStorageUnavailable, key, errors.New("quota exceeded"))
}

func (s *readOnlyStore) Remove(_ context.Context, key string) error {
	return fmt.Errorf("%w: remove %q", apperrors.ErrStorageUnavailable, key)
}

func (s *readOnlyStore) Ping(context.Context) error { return nil }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func steppingClock(start time.Time, step time.Duration) func() time.Time {
	cur := start.Add(-step)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func annInput() domain.RegistrationInput {
	return domain.RegistrationInput{
		Name:       "Ann",
		Email:      "ann@x.com",
		Phone:      "9876543210",
		Gender:     domain.GenderFemale,
		TicketType: domain.TicketVIP,
	}
}
