package repository

import (
	"context"
	"math"
	"sync"

	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/persistence"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// FeedbackRepository owns the append-only feedback list.
type FeedbackRepository interface {
	Submit(ctx context.Context, input domain.FeedbackInput) (*domain.Feedback, error)
	StatsForEmail(ctx context.Context, email string) (domain.FeedbackStats, error)
	List(ctx context.Context) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	mu    sync.Mutex
	store persistence.Store
	opts  options
}

// NewFeedbackRepository returns a store-backed implementation.
func NewFeedbackRepository(store persistence.Store, opts ...Option) FeedbackRepository {
	return &feedbackRepository{store: store, opts: buildOptions(opts)}
}

func (r *feedbackRepository) Submit(ctx context.Context, input domain.FeedbackInput) (*domain.Feedback, error) {
	if errs := input.Validate(); len(errs) > 0 {
		return nil, apperrors.NewFieldErrors(errs)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	fb := domain.Feedback{
		Name:           input.Name,
		Email:          input.Email,
		Rating:         input.Rating,
		Category:       input.Category,
		Message:        input.Message,
		Recommendation: input.Recommendation,
		Timestamp:      r.opts.now(),
	}
	if err := persistence.SetJSON(ctx, r.store, KeyFeedbacks, append(list, fb)); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) StatsForEmail(ctx context.Context, email string) (domain.FeedbackStats, error) {
	list, err := r.List(ctx)
	if err != nil {
		return domain.FeedbackStats{}, err
	}

	var (
		stats domain.FeedbackStats
		sum   int
	)
	for i := range list {
		if !r.opts.match(list[i].Email, email) {
			continue
		}
		stats.Count++
		sum += list[i].Rating
		ts := list[i].Timestamp
		stats.LastSubmittedAt = &ts
	}
	if stats.Count > 0 {
		stats.AverageRating = RoundRating(float64(sum) / float64(stats.Count))
	}
	return stats, nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	return persistence.GetJSON(ctx, r.store, KeyFeedbacks, []domain.Feedback{})
}

// RoundRating rounds an average to one decimal.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
