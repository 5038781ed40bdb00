// Package services holds the application logic between the HTTP layer
// and the repositories.
package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jadeniji/ideaboard-backend/internal/metrics"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/reltime"
	"github.com/jadeniji/ideaboard-backend/internal/repository"
	"github.com/jadeniji/ideaboard-backend/internal/worker"
)

var (
	ErrNotFound      = repository.ErrNotFound
	ErrInvalidVote   = errors.New("invalid vote direction")
	ErrBadTransition = errors.New("illegal status transition")
)

// IdeaService owns all mutations of the idea collection. Readers can
// subscribe for snapshots; every mutation republishes the full list so
// a late subscriber immediately sees the latest state.
type IdeaService struct {
	repo       repository.Ideas
	activities repository.Activities
	pool       *worker.Pool
	log        *slog.Logger
	now        func() time.Time

	mu      sync.Mutex
	subs    map[int]chan []models.Idea
	nextSub int
}

func NewIdeaService(repo repository.Ideas, activities repository.Activities, pool *worker.Pool, log *slog.Logger) *IdeaService {
	return &IdeaService{
		repo:       repo,
		activities: activities,
		pool:       pool,
		log:        log,
		now:        time.Now,
		subs:       make(map[int]chan []models.Idea),
	}
}

// Subscribe registers a snapshot channel. The current snapshot is
// delivered immediately; afterwards each mutation replaces any undrained
// value, so a slow consumer only ever sees the latest list. The returned
// func cancels the subscription.
func (s *IdeaService) Subscribe() (<-chan []models.Idea, func()) {
	ch := make(chan []models.Idea, 1)
	snap, err := s.repo.List("")

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	if err == nil {
		ch <- models.CloneIdeas(snap)
	}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Publish pushes the current snapshot to every subscriber. Mutations
// call it internally; external mutators (moderation) call it directly.
func (s *IdeaService) Publish() {
	snap, err := s.repo.List("")
	if err != nil {
		s.log.Error("snapshot for publish failed", "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch: // drop the stale snapshot
		default:
		}
		ch <- models.CloneIdeas(snap)
	}
}

func (s *IdeaService) List(viewer string) ([]models.Idea, error) {
	return s.repo.List(viewer)
}

func (s *IdeaService) Get(id int, viewer string) (models.Idea, error) {
	idea, found, err := s.repo.FindByID(id, viewer)
	if err != nil {
		return models.Idea{}, err
	}
	if !found {
		return models.Idea{}, ErrNotFound
	}
	return idea, nil
}

// Submit stores a new idea. The stored record always starts pending with
// zeroed counters regardless of what the caller sent.
func (s *IdeaService) Submit(title, content string, tags []string, attachments []models.Attachment, authorRef string) (models.Idea, error) {
	idea := models.Idea{
		Title:       title,
		Content:     content,
		Tags:        tags,
		Attachments: attachments,
		AuthorRef:   authorRef,
		Status:      models.StatusPending,
	}
	if err := idea.Validate(); err != nil {
		return models.Idea{}, err
	}

	stored, err := s.repo.Add(idea)
	if err != nil {
		return models.Idea{}, err
	}

	metrics.IdeasTotal.Inc()
	s.recordActivity(models.ActivityNewIdea, fmt.Sprintf("New idea submitted: %s", stored.Title))
	s.Publish()

	s.log.Info("idea submitted", "id", stored.ID, "title", stored.Title)
	return stored, nil
}

func (s *IdeaService) Update(idea models.Idea) error {
	if err := idea.Validate(); err != nil {
		return err
	}
	found, err := s.repo.Update(idea)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	s.Publish()
	return nil
}

// Vote applies one tri-state vote step for viewer: voting the current
// direction again clears it, voting fresh sets it, voting the opposite
// direction switches it. The returned idea reflects the viewer's vote.
func (s *IdeaService) Vote(id int, viewer string, dir models.VoteDirection) (models.Idea, error) {
	if !dir.Valid() {
		return models.Idea{}, ErrInvalidVote
	}

	idea, found, err := s.repo.Vote(id, viewer, dir)
	if err != nil {
		return models.Idea{}, err
	}
	if !found {
		return models.Idea{}, ErrNotFound
	}

	metrics.VotesTotal.WithLabelValues(string(dir)).Inc()
	s.recordActivity(models.ActivityVote, fmt.Sprintf("Vote on idea: %s", idea.Title))
	s.Publish()
	return idea, nil
}

func (s *IdeaService) Remove(id int) error {
	found, err := s.repo.Remove(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	s.Publish()
	return nil
}

// AddComment prepends a comment so the newest one shows first.
func (s *IdeaService) AddComment(id int, text, displayName, authorRef string) (models.Idea, error) {
	c := models.Comment{
		Text:        text,
		DisplayName: displayName,
		AuthorRef:   authorRef,
		Timestamp:   reltime.JustNow,
		SortDate:    s.now(),
	}

	idea, found, err := s.repo.AddComment(id, c)
	if err != nil {
		return models.Idea{}, err
	}
	if !found {
		return models.Idea{}, ErrNotFound
	}

	metrics.CommentsTotal.Inc()
	s.recordActivity(models.ActivityComment, fmt.Sprintf("New comment on: %s", idea.Title))
	s.Publish()
	return idea, nil
}

// Transition moves an idea through the moderation state machine.
func (s *IdeaService) Transition(id int, next models.IdeaStatus) (models.Idea, error) {
	idea, found, err := s.repo.FindByID(id, "")
	if err != nil {
		return models.Idea{}, err
	}
	if !found {
		return models.Idea{}, ErrNotFound
	}
	if !idea.Status.CanTransition(next) {
		return models.Idea{}, fmt.Errorf("%w: %s -> %s", ErrBadTransition, idea.Status, next)
	}

	idea.Status = next
	if _, err := s.repo.Update(idea); err != nil {
		return models.Idea{}, err
	}
	s.Publish()
	return idea, nil
}

func (s *IdeaService) recordActivity(typ models.ActivityType, text string) {
	createdAt := s.now()
	ok := s.pool.Submit(func() {
		if err := s.activities.Append(models.Activity{
			Type:      typ,
			Text:      text,
			Time:      reltime.JustNow,
			CreatedAt: createdAt,
		}); err != nil {
			s.log.Error("activity append failed", "err", err)
		}
	})
	if !ok {
		s.log.Warn("activity dropped, worker pool stopped", "type", typ)
	}
}
