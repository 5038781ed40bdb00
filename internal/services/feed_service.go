package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jadeniji/ideaboard-backend/internal/metrics"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/reltime"
)

// FeedWindowDays is the feed's recency cutoff.
const FeedWindowDays = 42

// ID offset bands keep records from different sources in disjoint ID
// ranges, so a feed item's ID also encodes where it came from.
const (
	SourceBoard   = "board"
	SourceMine    = "mine"
	SourceAdmin   = "admin"
	SourcePopular = "popular"

	offsetMine    = 1000
	offsetAdmin   = 2000
	offsetPopular = 3000
)

// FeedSource supplies one stream of ideas to the aggregated feed. Retag,
// when set, replaces an item's tags with the source's provenance tags so
// category filtering works uniformly across sources.
type FeedSource struct {
	Name   string
	Offset int
	Fetch  func(ctx context.Context, viewer string) ([]models.Idea, error)
	Retag  func(models.Idea) []string
}

func tagWithStatus(provenance string) func(models.Idea) []string {
	return func(i models.Idea) []string {
		return []string{provenance, string(i.Status)}
	}
}

// FeedItem is an idea plus the provenance of the source that supplied it.
type FeedItem struct {
	models.Idea
	Source string `json:"source"`
}

// FeedService merges the idea board with the auxiliary streams (own
// submissions, admin picks, popular) into one deduplicated feed.
type FeedService struct {
	sources []FeedSource
	log     *slog.Logger
	now     func() time.Time
}

func NewFeedService(ideas *IdeaService, mine, admin, popular func(ctx context.Context, viewer string) ([]models.Idea, error), log *slog.Logger) *FeedService {
	board := func(_ context.Context, viewer string) ([]models.Idea, error) {
		return ideas.List(viewer)
	}
	return &FeedService{
		sources: []FeedSource{
			{Name: SourceBoard, Offset: 0, Fetch: board},
			{Name: SourceMine, Offset: offsetMine, Fetch: mine, Retag: tagWithStatus("My Idea")},
			{Name: SourceAdmin, Offset: offsetAdmin, Fetch: admin, Retag: tagWithStatus("Admin")},
			{Name: SourcePopular, Offset: offsetPopular, Fetch: popular, Retag: func(models.Idea) []string {
				return []string{"Popular", "Trending"}
			}},
		},
		log: log,
		now: time.Now,
	}
}

// Aggregate fetches all sources concurrently and merges them. A failing
// source contributes an empty list instead of failing the whole feed.
// Duplicate IDs keep the first occurrence in source order; non-board
// items are retagged with their source's provenance tags; items older
// than the recency window are dropped; category filters on tags.
func (f *FeedService) Aggregate(ctx context.Context, viewer, category string) []FeedItem {
	results := make([][]models.Idea, len(f.sources))

	var wg sync.WaitGroup
	for i, src := range f.sources {
		wg.Add(1)
		go func(i int, src FeedSource) {
			defer wg.Done()
			ideas, err := src.Fetch(ctx, viewer)
			if err != nil {
				f.log.Warn("feed source failed", "source", src.Name, "err", err)
				metrics.FeedSourceFailures.WithLabelValues(src.Name).Inc()
				results[i] = nil
				return
			}
			results[i] = ideas
		}(i, src)
	}
	wg.Wait()

	now := f.now()
	seen := make(map[int]struct{})
	var out []FeedItem
	for i, src := range f.sources {
		for _, idea := range results[i] {
			item := idea.Clone()
			item.ID += src.Offset
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			if src.Retag != nil {
				item.Tags = src.Retag(item)
			}

			if !reltime.WithinDays(item.Timestamp, item.SortDate, now, FeedWindowDays) {
				continue
			}
			if category != "" && !item.HasTag(category) {
				continue
			}
			out = append(out, FeedItem{Idea: item, Source: src.Name})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].SortDate.Equal(out[b].SortDate) {
			return out[a].SortDate.After(out[b].SortDate)
		}
		return out[a].ID < out[b].ID
	})
	return out
}
