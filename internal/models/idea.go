package models

import (
	"errors"
	"strings"
	"time"
)

// VoteDirection is the tri-state per-viewer vote on an idea.
type VoteDirection string

const (
	VoteNone VoteDirection = "none"
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Opposite returns the other non-none direction.
func (d VoteDirection) Opposite() VoteDirection {
	switch d {
	case VoteUp:
		return VoteDown
	case VoteDown:
		return VoteUp
	}
	return VoteNone
}

func (d VoteDirection) Valid() bool { return d == VoteUp || d == VoteDown }

type IdeaStatus string

const (
	StatusPending     IdeaStatus = "pending"
	StatusApproved    IdeaStatus = "approved"
	StatusRejected    IdeaStatus = "rejected"
	StatusImplemented IdeaStatus = "implemented"
)

// CanTransition reports whether the moderation state machine allows
// moving from s to next. Implemented and rejected are terminal.
func (s IdeaStatus) CanTransition(next IdeaStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusImplemented
	}
	return false
}

type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Comment is normalized to a single {DisplayName, AuthorRef} pair; the
// upstream data used author/authorName/authorHash interchangeably.
type Comment struct {
	Text        string    `json:"text"`
	DisplayName string    `json:"display_name"`
	AuthorRef   string    `json:"author_ref"`
	Timestamp   string    `json:"timestamp"`
	SortDate    time.Time `json:"-"`
}

// Idea is a submitted improvement proposal. Timestamp is a display string
// ("2 hr ago", "Just now") and is not guaranteed parseable; SortDate is the
// actual instant and is the source of truth for ordering and filtering.
type Idea struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Timestamp   string        `json:"timestamp"`
	SortDate    time.Time     `json:"sort_date"`
	Upvotes     int           `json:"upvotes"`
	Downvotes   int           `json:"downvotes"`
	UserVote    VoteDirection `json:"user_vote"`
	Tags        []string      `json:"tags"`
	AuthorRef   string        `json:"author_ref"`
	Status      IdeaStatus    `json:"status"`
	Attachments []Attachment  `json:"attachments,omitempty"`
	Comments    []Comment     `json:"comments,omitempty"`
}

func (i *Idea) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return errors.New("title required")
	}
	if strings.TrimSpace(i.Content) == "" {
		return errors.New("content required")
	}
	if i.Upvotes < 0 || i.Downvotes < 0 {
		return errors.New("vote counts must be >= 0")
	}
	if i.Status == "" {
		i.Status = StatusPending
	}
	return nil
}

// TotalVotes is the engagement volume used by the admin dashboard ranking.
func (i *Idea) TotalVotes() int { return i.Upvotes + i.Downvotes }

// HasTag does a case-insensitive substring match, the way the feed's
// category pills filter.
func (i *Idea) HasTag(category string) bool {
	for _, t := range i.Tags {
		if strings.Contains(strings.ToLower(t), strings.ToLower(category)) {
			return true
		}
	}
	return false
}

// Clone deep-copies the idea so published snapshots stay immutable.
func (i Idea) Clone() Idea {
	out := i
	if i.Tags != nil {
		out.Tags = append([]string(nil), i.Tags...)
	}
	if i.Attachments != nil {
		out.Attachments = append([]Attachment(nil), i.Attachments...)
	}
	if i.Comments != nil {
		out.Comments = append([]Comment(nil), i.Comments...)
	}
	return out
}

// CloneIdeas deep-copies a snapshot.
func CloneIdeas(in []Idea) []Idea {
	out := make([]Idea, len(in))
	for n, idea := range in {
		out[n] = idea.Clone()
	}
	return out
}
