package models

import "time"

type ActivityType string

const (
	ActivityNewIdea    ActivityType = "new-idea"
	ActivityVote       ActivityType = "vote"
	ActivityComment    ActivityType = "comment"
	ActivityModeration ActivityType = "moderation"
)

// Activity is one entry in the admin dashboard's recent-activity log.
// Time is the display string ("Just now" when appended); CreatedAt orders.
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Text      string       `json:"text"`
	Time      string       `json:"time"`
	CreatedAt time.Time    `json:"created_at"`
}
