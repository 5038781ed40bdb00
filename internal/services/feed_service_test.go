package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jadeniji/ideaboard-backend/internal/models"
)

func fixedSource(ideas []models.Idea) func(context.Context, string) ([]models.Idea, error) {
	return func(context.Context, string) ([]models.Idea, error) {
		return models.CloneIdeas(ideas), nil
	}
}

func failingSource(context.Context, string) ([]models.Idea, error) {
	return nil, errors.New("upstream down")
}

func newTestFeed(t *testing.T, mine, admin, popular func(context.Context, string) ([]models.Idea, error)) (*FeedService, *IdeaService, func()) {
	t.Helper()
	ideas, _, pool := newTestIdeaService(t)
	feed := NewFeedService(ideas, mine, admin, popular, discardLogger())
	feed.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return feed, ideas, pool.Stop
}

func recent(id int, title string, age time.Duration, tags ...string) models.Idea {
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return models.Idea{
		ID: id, Title: title, Content: "c",
		SortDate: base.Add(-age), Timestamp: "recently",
		Tags: tags, Status: models.StatusPending,
	}
}

func TestAggregateOffsetBandsAreDisjoint(t *testing.T) {
	feed, ideas, stop := newTestFeed(t,
		fixedSource([]models.Idea{recent(1, "mine", time.Hour)}),
		fixedSource([]models.Idea{recent(1, "admin", time.Hour)}),
		fixedSource([]models.Idea{recent(1, "popular", time.Hour)}),
	)
	defer stop()

	_, err := ideas.Submit("board", "c", nil, nil, "u1")
	require.NoError(t, err)

	items := feed.Aggregate(context.Background(), "u1", "")
	require.Len(t, items, 4)

	got := map[int]string{}
	for _, it := range items {
		got[it.ID] = it.Source
	}
	assert.Equal(t, SourceBoard, got[1])
	assert.Equal(t, SourceMine, got[1001])
	assert.Equal(t, SourceAdmin, got[2001])
	assert.Equal(t, SourcePopular, got[3001])
}

func TestAggregateIsIdempotent(t *testing.T) {
	feed, ideas, stop := newTestFeed(t,
		fixedSource([]models.Idea{recent(1, "mine", time.Hour)}),
		fixedSource(nil),
		fixedSource(nil),
	)
	defer stop()

	_, err := ideas.Submit("board", "c", nil, nil, "u1")
	require.NoError(t, err)

	first := feed.Aggregate(context.Background(), "u1", "")
	second := feed.Aggregate(context.Background(), "u1", "")
	assert.Equal(t, first, second)
}

func TestAggregateFailedSourceContributesNothing(t *testing.T) {
	feed, ideas, stop := newTestFeed(t,
		failingSource,
		fixedSource([]models.Idea{recent(1, "admin", time.Hour)}),
		fixedSource(nil),
	)
	defer stop()

	_, err := ideas.Submit("board", "c", nil, nil, "u1")
	require.NoError(t, err)

	items := feed.Aggregate(context.Background(), "u1", "")
	require.Len(t, items, 2)
	for _, it := range items {
		assert.NotEqual(t, SourceMine, it.Source)
	}
}

func TestAggregateRecencyWindow(t *testing.T) {
	old := recent(1, "too old", 60*24*time.Hour)
	fresh := recent(2, "fresh", 24*time.Hour)
	// no sort date and a display string the window grammar cannot read:
	// included by default
	odd := models.Idea{ID: 3, Title: "odd", Content: "c", Timestamp: "2 months ago", Status: models.StatusPending}

	feed, _, stop := newTestFeed(t,
		fixedSource([]models.Idea{old, fresh, odd}),
		fixedSource(nil),
		fixedSource(nil),
	)
	defer stop()

	items := feed.Aggregate(context.Background(), "u1", "")
	titles := map[string]bool{}
	for _, it := range items {
		titles[it.Title] = true
	}
	assert.False(t, titles["too old"])
	assert.True(t, titles["fresh"])
	assert.True(t, titles["odd"])
}

func TestAggregateCategoryFilter(t *testing.T) {
	feed, ideas, stop := newTestFeed(t, fixedSource(nil), fixedSource(nil), fixedSource(nil))
	defer stop()

	_, err := ideas.Submit("tagged", "c", []string{"Staff Training", "HR"}, nil, "u1")
	require.NoError(t, err)
	_, err = ideas.Submit("other", "c", []string{"Cafeteria"}, nil, "u1")
	require.NoError(t, err)

	items := feed.Aggregate(context.Background(), "u1", "training")
	require.Len(t, items, 1)
	assert.Equal(t, "tagged", items[0].Title)
}

func TestAggregateRetagsByProvenance(t *testing.T) {
	approved := recent(1, "approved admin pick", time.Hour, "Compliance")
	approved.Status = models.StatusApproved

	feed, _, stop := newTestFeed(t,
		fixedSource([]models.Idea{recent(2, "my idea", time.Hour, "Mobile")}),
		fixedSource([]models.Idea{approved}),
		fixedSource([]models.Idea{recent(3, "crowd favourite", time.Hour)}),
	)
	defer stop()

	tagsOf := map[string][]string{}
	for _, it := range feed.Aggregate(context.Background(), "u1", "") {
		tagsOf[it.Title] = it.Tags
	}
	assert.Equal(t, []string{"My Idea", "pending"}, tagsOf["my idea"])
	assert.Equal(t, []string{"Admin", "approved"}, tagsOf["approved admin pick"])
	assert.Equal(t, []string{"Popular", "Trending"}, tagsOf["crowd favourite"])

	// status tags make non-board items reachable by status category
	byStatus := feed.Aggregate(context.Background(), "u1", "approved")
	require.Len(t, byStatus, 1)
	assert.Equal(t, "approved admin pick", byStatus[0].Title)
}

func TestAggregateDedupKeepsFirstSeen(t *testing.T) {
	dup := recent(7, "first copy", time.Hour)
	dup2 := recent(7, "second copy", time.Hour)

	feed, _, stop := newTestFeed(t,
		fixedSource([]models.Idea{dup, dup2}),
		fixedSource(nil),
		fixedSource(nil),
	)
	defer stop()

	items := feed.Aggregate(context.Background(), "u1", "")
	require.Len(t, items, 1)
	assert.Equal(t, "first copy", items[0].Title)
}

func TestAggregateSortsNewestFirst(t *testing.T) {
	feed, _, stop := newTestFeed(t,
		fixedSource([]models.Idea{
			recent(1, "older", 10*time.Hour),
			recent(2, "newest", time.Hour),
			recent(3, "middle", 5*time.Hour),
		}),
		fixedSource(nil),
		fixedSource(nil),
	)
	defer stop()

	items := feed.Aggregate(context.Background(), "u1", "")
	require.Len(t, items, 3)
	assert.Equal(t, "newest", items[0].Title)
	assert.Equal(t, "middle", items[1].Title)
	assert.Equal(t, "older", items[2].Title)
}
