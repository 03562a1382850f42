package persistence

import (
	"context"

	"go.uber.org/zap"
)

// silentStore drops write failures after logging them, for best-effort
// deployments where a full or disabled store must not fail requests.
type silentStore struct {
	Store
	logger *zap.Logger
}

// Silent wraps s so Set and Remove never return an error.
func Silent(s Store, logger *zap.Logger) Store {
	return &silentStore{Store: s, logger: logger}
}

func (s *silentStore) Set(ctx context.Context, key, value string) error {
	if err := s.Store.Set(ctx, key, value); err != nil {
		s.logger.Warn("store write dropped", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *silentStore) Remove(ctx context.Context, key string) error {
	if err := s.Store.Remove(ctx, key); err != nil {
		s.logger.Warn("store remove dropped", zap.String("key", key), zap.Error(err))
	}
	return nil
}
