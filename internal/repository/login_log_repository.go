package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/persistence"
)

// LoginLogRepository records portal logins and content activity.
type LoginLogRepository interface {
	Append(ctx context.Context, entry domain.LoginLog) (*domain.LoginLog, error)
	List(ctx context.Context) ([]domain.LoginLog, error)
}

type loginLogRepository struct {
	mu    sync.Mutex
	store persistence.Store
	opts  options
}

// NewLoginLogRepository returns a store-backed implementation.
func NewLoginLogRepository(store persistence.Store, opts ...Option) LoginLogRepository {
	return &loginLogRepository{store: store, opts: buildOptions(opts)}
}

func (r *loginLogRepository) Append(ctx context.Context, entry domain.LoginLog) (*domain.LoginLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.LoginTime.IsZero() {
		entry.LoginTime = r.opts.now()
	}
	if err := persistence.SetJSON(ctx, r.store, KeyLoginLogs, append(list, entry)); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *loginLogRepository) List(ctx context.Context) ([]domain.LoginLog, error) {
	return persistence.GetJSON(ctx, r.store, KeyLoginLogs, []domain.LoginLog{})
}
