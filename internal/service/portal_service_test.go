package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/eventhub/internal/domain"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

func loggedIn(t *testing.T, f *fixture, email string) {
	t.Helper()
	_, err := f.auth.LoginUser(context.Background(), f.guard(t, "c1"), email, "123456", ClientInfo{})
	require.NoError(t, err)
}

func TestPortalService_Overview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Ann", "ann@x.com")
	loggedIn(t, f, "ann@x.com")

	overview, err := f.portal.Overview(ctx, f.guard(t, "c1"))
	require.NoError(t, err)
	assert.True(t, overview.Profile.Registered)
	assert.Equal(t, "Ann", overview.Profile.Name)
	assert.Equal(t, domain.TicketVIP, overview.Profile.TicketType)
	assert.NotNil(t, overview.Profile.LastLogin)
	assert.Equal(t, 0, overview.Feedback.Count)
	assert.Nil(t, overview.Feedback.LastSubmittedAt)
	assert.Equal(t, "Tech Conference 2026", overview.Event.Name)
	require.Len(t, overview.Tiles, 3)
	assert.Equal(t, domain.TileVideo, overview.Tiles[0].Type)
}

func TestPortalService_OverviewFallbackProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Ann", "ann@x.com")
	guard := f.guard(t, "c1")
	_, err := f.auth.LoginUser(ctx, guard, "ann@x.com", "123456", ClientInfo{})
	require.NoError(t, err)

	// Another client wipes the shared list.
	require.NoError(t, f.store.Remove(ctx, "registrations"))

	overview, err := f.portal.Overview(ctx, guard)
	require.NoError(t, err)
	assert.False(t, overview.Profile.Registered)
	assert.Equal(t, "ann@x.com", overview.Profile.Email)
	assert.Equal(t, domain.TicketGeneral, overview.Profile.TicketType)
}

func TestPortalService_OpenTile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Ann", "ann@x.com")
	loggedIn(t, f, "ann@x.com")
	guard := f.guard(t, "c1")

	tile, err := f.portal.OpenTile(ctx, guard, domain.TilePDF, ClientInfo{UserAgent: "Chrome/120.0 Safari/537.36"})
	require.NoError(t, err)
	assert.Equal(t, "/sample.pdf", tile.URL)

	_, err = f.portal.OpenTile(ctx, guard, domain.TileType("slides"), ClientInfo{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	logs, err := f.logins.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActivityPDF, logs[1].Activity)
	assert.Equal(t, "Chrome", logs[1].Device)
}

func TestPortalService_SubmitFeedbackFillsFromSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Ann", "ann@x.com")
	loggedIn(t, f, "ann@x.com")
	guard := f.guard(t, "c1")

	for _, rating := range []int{4, 5} {
		_, err := f.portal.SubmitFeedback(ctx, guard, domain.FeedbackInput{
			Rating:         rating,
			Category:       domain.CategorySpeakers,
			Message:        "Great talks",
			Recommendation: domain.RecommendDefinitely,
		})
		require.NoError(t, err)
	}

	stats, err := f.portal.FeedbackStats(ctx, guard)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 4.5, stats.AverageRating)
	assert.NotNil(t, stats.LastSubmittedAt)

	all, err := f.feedback.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", all[0].Name)
}

func TestPortalService_SubmitFeedbackValidation(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ann", "ann@x.com")
	loggedIn(t, f, "ann@x.com")

	_, err := f.portal.SubmitFeedback(context.Background(), f.guard(t, "c1"), domain.FeedbackInput{
		Rating:         6,
		Category:       domain.CategoryVenue,
		Message:        "ok",
		Recommendation: domain.RecommendMaybe,
	})
	assert.Contains(t, apperrors.FieldErrors(err), "rating")
}
