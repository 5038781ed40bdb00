// Package memory is the default storage backend: everything lives in one
// process's memory, matching the original mock-data system.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/reltime"
	"github.com/jadeniji/ideaboard-backend/internal/repository"
)

type Repositories struct {
	Ideas      *IdeaRepo
	Users      *UserRepo
	Activities *ActivityRepo
}

func NewRepositories() Repositories {
	return Repositories{
		Ideas:      NewIdeaRepo(),
		Users:      NewUserRepo(),
		Activities: NewActivityRepo(),
	}
}

// IdeaRepo holds the authoritative idea list, newest first. Votes are
// tracked per (idea, viewer) so each viewer sees their own tri-state while
// the up/down buckets are shared.
type IdeaRepo struct {
	mu     sync.RWMutex
	ideas  []models.Idea
	votes  map[int]map[string]models.VoteDirection
	nextID int
}

func NewIdeaRepo() *IdeaRepo {
	return &IdeaRepo{votes: make(map[int]map[string]models.VoteDirection), nextID: 1}
}

// Seed loads fixture records without re-stamping timestamps. Ids already
// present in the fixtures are kept; the allocator continues past them.
func (r *IdeaRepo) Seed(ideas []models.Idea) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, idea := range ideas {
		if idea.ID >= r.nextID {
			r.nextID = idea.ID + 1
		}
		r.ideas = append(r.ideas, idea.Clone())
	}
}

func (r *IdeaRepo) List(viewer string) ([]models.Idea, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := models.CloneIdeas(r.ideas)
	for n := range out {
		out[n].UserVote = r.voteOf(out[n].ID, viewer)
	}
	return out, nil
}

func (r *IdeaRepo) FindByID(id int, viewer string) (models.Idea, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for n := range r.ideas {
		if r.ideas[n].ID == id {
			idea := r.ideas[n].Clone()
			idea.UserVote = r.voteOf(id, viewer)
			return idea, true, nil
		}
	}
	return models.Idea{}, false, nil
}

// Add stamps the freshness fields, defaults the counters, and prepends so
// the newest idea is at index 0.
func (r *IdeaRepo) Add(idea models.Idea) (models.Idea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idea.ID == 0 {
		idea.ID = r.nextID
	}
	if idea.ID >= r.nextID {
		r.nextID = idea.ID + 1
	}
	idea.Timestamp = reltime.JustNow
	idea.SortDate = time.Now()
	idea.Upvotes = 0
	idea.Downvotes = 0
	idea.UserVote = models.VoteNone
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
	if idea.Status == "" {
		idea.Status = models.StatusPending
	}
	r.ideas = append([]models.Idea{idea.Clone()}, r.ideas...)
	return idea, nil
}

func (r *IdeaRepo) Update(idea models.Idea) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n := range r.ideas {
		if r.ideas[n].ID == idea.ID {
			r.ideas[n] = idea.Clone()
			return true, nil
		}
	}
	return false, nil
}

// Vote applies the tri-state toggle: same direction cancels, none adopts,
// opposite switches both buckets in one step. The up+down delta per call is
// always exactly one.
func (r *IdeaRepo) Vote(id int, viewer string, dir models.VoteDirection) (models.Idea, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n := range r.ideas {
		if r.ideas[n].ID != id {
			continue
		}
		idea := &r.ideas[n]
		current := r.voteOf(id, viewer)
		switch {
		case current == dir:
			r.bump(idea, dir, -1)
			r.setVote(id, viewer, models.VoteNone)
		case current == models.VoteNone:
			r.bump(idea, dir, +1)
			r.setVote(id, viewer, dir)
		default:
			r.bump(idea, dir.Opposite(), -1)
			r.bump(idea, dir, +1)
			r.setVote(id, viewer, dir)
		}
		out := idea.Clone()
		out.UserVote = r.voteOf(id, viewer)
		return out, true, nil
	}
	return models.Idea{}, false, nil
}

func (r *IdeaRepo) Remove(id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n := range r.ideas {
		if r.ideas[n].ID == id {
			r.ideas = append(r.ideas[:n], r.ideas[n+1:]...)
			delete(r.votes, id)
			return true, nil
		}
	}
	return false, nil
}

// AddComment prepends so the freshest comment is first.
func (r *IdeaRepo) AddComment(id int, c models.Comment) (models.Idea, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n := range r.ideas {
		if r.ideas[n].ID == id {
			r.ideas[n].Comments = append([]models.Comment{c}, r.ideas[n].Comments...)
			return r.ideas[n].Clone(), true, nil
		}
	}
	return models.Idea{}, false, nil
}

func (r *IdeaRepo) voteOf(id int, viewer string) models.VoteDirection {
	if viewer == "" {
		return models.VoteNone
	}
	if m, ok := r.votes[id]; ok {
		if d, ok := m[viewer]; ok {
			return d
		}
	}
	return models.VoteNone
}

func (r *IdeaRepo) setVote(id int, viewer string, d models.VoteDirection) {
	if viewer == "" {
		return
	}
	m, ok := r.votes[id]
	if !ok {
		m = make(map[string]models.VoteDirection)
		r.votes[id] = m
	}
	if d == models.VoteNone {
		delete(m, viewer)
		return
	}
	m[viewer] = d
}

func (r *IdeaRepo) bump(idea *models.Idea, dir models.VoteDirection, delta int) {
	if dir == models.VoteUp {
		idea.Upvotes += delta
	} else {
		idea.Downvotes += delta
	}
}

type UserRepo struct {
	mu    sync.RWMutex
	users []models.User
}

func NewUserRepo() *UserRepo { return &UserRepo{} }

func (r *UserRepo) Create(u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	r.users = append(r.users, u)
	return u, nil
}

func (r *UserRepo) GetByID(id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *UserRepo) GetByEmployeeID(employeeID string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *UserRepo) List() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.User(nil), r.users...), nil
}

type ActivityRepo struct {
	mu      sync.RWMutex
	entries []models.Activity
}

func NewActivityRepo() *ActivityRepo { return &ActivityRepo{} }

func (r *ActivityRepo) Append(a models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.Time == "" {
		a.Time = reltime.JustNow
	}
	r.entries = append([]models.Activity{a}, r.entries...)
	return nil
}

func (r *ActivityRepo) Recent(limit int) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]models.Activity(nil), r.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
