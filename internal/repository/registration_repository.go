package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/persistence"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// RegistrationRepository owns the ordered registration list.
type RegistrationRepository interface {
	Register(ctx context.Context, input domain.RegistrationInput) (*domain.Registration, error)
	FindByEmail(ctx context.Context, email string) (*domain.Registration, error)
	FindByID(ctx context.Context, id int64) (*domain.Registration, error)
	SetStatus(ctx context.Context, id int64, status domain.RegistrationStatus) error
	ToggleStatus(ctx context.Context, id int64) (*domain.Registration, error)
	TouchLastLogin(ctx context.Context, email string, at time.Time) error
	SetLastLogin(ctx context.Context, email string, at *time.Time) error
	List(ctx context.Context) ([]domain.Registration, error)
}

type registrationRepository struct {
	// mu serializes read-modify-write cycles on the stored list.
	mu    sync.Mutex
	store persistence.Store
	opts  options
}

// NewRegistrationRepository returns a store-backed implementation.
func NewRegistrationRepository(store persistence.Store, opts ...Option) RegistrationRepository {
	return &registrationRepository{store: store, opts: buildOptions(opts)}
}

func (r *registrationRepository) load(ctx context.Context) ([]domain.Registration, error) {
	return persistence.GetJSON(ctx, r.store, KeyRegistrations, []domain.Registration{})
}

func (r *registrationRepository) save(ctx context.Context, list []domain.Registration) error {
	return persistence.SetJSON(ctx, r.store, KeyRegistrations, list)
}

func (r *registrationRepository) Register(ctx context.Context, input domain.RegistrationInput) (*domain.Registration, error) {
	if errs := input.Validate(); len(errs) > 0 {
		return nil, apperrors.NewFieldErrors(errs)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, reg := range list {
		if reg.ID > maxID {
			maxID = reg.ID
		}
	}

	reg := domain.Registration{
		ID:         maxID + 1,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Gender:     input.Gender,
		TicketType: input.TicketType,
		Status:     domain.StatusRegistered,
		CreatedAt:  r.opts.now(),
	}
	if err := r.save(ctx, append(list, reg)); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if r.opts.match(list[i].Email, email) {
			return &list[i], nil
		}
	}
	return nil, apperrors.NewNotFoundMessage("This email is not registered. Please register first.")
}

func (r *registrationRepository) FindByID(ctx context.Context, id int64) (*domain.Registration, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, apperrors.NewNotFound("registration", map[string]any{"id": id})
}

func (r *registrationRepository) SetStatus(ctx context.Context, id int64, status domain.RegistrationStatus) error {
	if !status.Valid() {
		return apperrors.NewFieldErrors(map[string]string{"status": "Unknown registration status"})
	}
	_, err := r.update(ctx, id, func(reg *domain.Registration) { reg.Status = status })
	return err
}

func (r *registrationRepository) ToggleStatus(ctx context.Context, id int64) (*domain.Registration, error) {
	updated, err := r.update(ctx, id, func(reg *domain.Registration) { reg.Status = reg.Status.Toggled() })
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewNotFound("registration", map[string]any{"id": id})
	}
	return updated, nil
}

func (r *registrationRepository) TouchLastLogin(ctx context.Context, email string, at time.Time) error {
	return r.SetLastLogin(ctx, email, &at)
}

// SetLastLogin overwrites the last login of the first matching record; nil
// clears it. Unknown emails are a no-op.
func (r *registrationRepository) SetLastLogin(ctx context.Context, email string, at *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if r.opts.match(list[i].Email, email) {
			list[i].LastLogin = at
			return r.save(ctx, list)
		}
	}
	return nil
}

func (r *registrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	return r.load(ctx)
}

// update applies fn to the record with id and persists the list. A missing
// id leaves storage untouched and returns a nil record.
func (r *registrationRepository) update(ctx context.Context, id int64, fn func(*domain.Registration)) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		fn(&list[i])
		if err := r.save(ctx, list); err != nil {
			return nil, err
		}
		updated := list[i]
		return &updated, nil
	}
	return nil, nil
}
