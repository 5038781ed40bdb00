package repository

import (
	"errors"

	"github.com/jadeniji/ideaboard-backend/internal/models"
)

// ErrNotFound is returned by lookups; mutations on unknown ids are silent
// no-ops and report found=false instead.
var ErrNotFound = errors.New("not found")

// Ideas owns the canonical idea collection. Viewer is the opaque user id
// whose tri-state vote is reflected in returned records; it may be empty
// for an anonymous read. List returns newest-first (Add prepends).
type Ideas interface {
	List(viewer string) ([]models.Idea, error)
	FindByID(id int, viewer string) (models.Idea, bool, error)
	Add(idea models.Idea) (models.Idea, error)
	Update(idea models.Idea) (bool, error)
	Vote(id int, viewer string, dir models.VoteDirection) (models.Idea, bool, error)
	Remove(id int) (bool, error)
	AddComment(id int, c models.Comment) (models.Idea, bool, error)
}

type Users interface {
	Create(u models.User) (models.User, error)
	GetByID(id string) (models.User, error)
	GetByEmployeeID(employeeID string) (models.User, error)
	List() ([]models.User, error)
}

type Activities interface {
	Append(a models.Activity) error
	Recent(limit int) ([]models.Activity, error)
}
