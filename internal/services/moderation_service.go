package services

import (
	"fmt"

	"github.com/jadeniji/ideaboard-backend/internal/metrics"
	"github.com/jadeniji/ideaboard-backend/internal/models"
)

// ModerationService drives the admin review flow. Every transition goes
// through IdeaService so the state machine is enforced in one place and
// subscribers see the change.
type ModerationService struct {
	ideas *IdeaService
}

func NewModerationService(ideas *IdeaService) *ModerationService {
	return &ModerationService{ideas: ideas}
}

func (m *ModerationService) Approve(id int) (models.Idea, error) {
	return m.transition(id, models.StatusApproved, "Idea approved")
}

func (m *ModerationService) Reject(id int) (models.Idea, error) {
	return m.transition(id, models.StatusRejected, "Idea rejected")
}

func (m *ModerationService) Implement(id int) (models.Idea, error) {
	return m.transition(id, models.StatusImplemented, "Idea marked implemented")
}

func (m *ModerationService) transition(id int, next models.IdeaStatus, label string) (models.Idea, error) {
	idea, err := m.ideas.Transition(id, next)
	if err != nil {
		return models.Idea{}, err
	}

	metrics.ModerationTotal.WithLabelValues(string(next)).Inc()
	m.ideas.recordActivity(models.ActivityModeration, fmt.Sprintf("%s: %s", label, idea.Title))
	return idea, nil
}
