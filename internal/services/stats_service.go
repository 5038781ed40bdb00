package services

import (
	"math"
	"sort"
	"time"

	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/reltime"
	"github.com/jadeniji/ideaboard-backend/internal/repository"
)

// UserStats is the personal metrics card. Submission counters cover the
// viewer's own ideas; CommentsMade and the engagement rate cover the
// viewer's activity across the whole board.
type UserStats struct {
	Submitted           int  `json:"submitted"`
	SubmittedThisMonth  int  `json:"submitted_this_month"`
	MonthlyGoalProgress int  `json:"monthly_goal_progress"`
	Implemented         int  `json:"implemented"`
	UpvotesReceived     int  `json:"upvotes_received"`
	CommentsMade        int  `json:"comments_made"`
	EngagementRate      int  `json:"engagement_rate"`
	CommunityPoints     int  `json:"community_points"`
	InTopBracket        bool `json:"in_top_bracket"`
}

// AdminStats is the moderation dashboard summary.
type AdminStats struct {
	TotalIdeas     int               `json:"total_ideas"`
	TotalVotes     int               `json:"total_votes"`
	TotalComments  int               `json:"total_comments"`
	Pending        int               `json:"pending"`
	Approved       int               `json:"approved"`
	Implemented    int               `json:"implemented"`
	Rejected       int               `json:"rejected"`
	TopIdeas       []models.Idea     `json:"top_ideas"`
	RecentActivity []models.Activity `json:"recent_activity"`
}

const (
	pointsPerIdea        = 10
	pointsPerImplemented = 50
	pointsPerComment     = 2
	pointsPerUpvote      = 5

	monthlyGoal = 5

	dashboardTopIdeas   = 5
	dashboardActivities = 10
)

type StatsService struct {
	ideas      repository.Ideas
	activities repository.Activities
	now        func() time.Time
}

func NewStatsService(ideas repository.Ideas, activities repository.Activities) *StatsService {
	return &StatsService{ideas: ideas, activities: activities, now: time.Now}
}

// ForUser computes the metrics card for one contributor.
func (s *StatsService) ForUser(viewer string) (UserStats, error) {
	all, err := s.ideas.List(viewer)
	if err != nil {
		return UserStats{}, err
	}
	now := s.now()

	var st UserStats
	var liked int
	for _, idea := range all {
		if idea.UserVote == models.VoteUp {
			liked++
		}
		for _, c := range idea.Comments {
			if c.AuthorRef == viewer {
				st.CommentsMade++
			}
		}
		if idea.AuthorRef != viewer {
			continue
		}
		st.Submitted++
		st.UpvotesReceived += idea.Upvotes
		if idea.Status == models.StatusImplemented {
			st.Implemented++
		}
		if reltime.InCurrentMonth(idea.Timestamp, idea.SortDate, now) {
			st.SubmittedThisMonth++
		}
	}

	st.MonthlyGoalProgress = goalProgress(st.SubmittedThisMonth)
	st.EngagementRate = engagementRate(liked, st.CommentsMade, len(all))
	st.CommunityPoints = pointsPerIdea*st.Submitted +
		pointsPerImplemented*st.Implemented +
		pointsPerComment*st.CommentsMade +
		pointsPerUpvote*st.UpvotesReceived
	st.InTopBracket = inTopBracket(all, viewer)
	return st, nil
}

// engagementRate scores the viewer's own activity across the whole board:
// each idea they upvoted counts once, each comment they wrote counts
// double, scaled against three actions per idea and capped at 100.
func engagementRate(liked, commented, total int) int {
	if total == 0 {
		return 0
	}
	rate := int(math.Round(100 * float64(liked+2*commented) / float64(3*total)))
	if rate > 100 {
		rate = 100
	}
	return rate
}

// goalProgress maps this month's submissions onto the fixed monthly goal,
// capped at 100%.
func goalProgress(monthly int) int {
	p := int(math.Round(100 * float64(monthly) / monthlyGoal))
	if p > 100 {
		p = 100
	}
	return p
}

// inTopBracket reports whether any of viewer's ideas ranks in the top
// 10% by upvotes. The bracket always holds at least one idea.
func inTopBracket(all []models.Idea, viewer string) bool {
	if len(all) == 0 {
		return false
	}
	ranked := models.CloneIdeas(all)
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Upvotes > ranked[b].Upvotes
	})

	n := len(ranked) / 10
	if n < 1 {
		n = 1
	}
	for _, idea := range ranked[:n] {
		if idea.AuthorRef == viewer {
			return true
		}
	}
	return false
}

// Dashboard builds the admin summary: status totals, the five ideas
// with the most combined up and down votes, and the recent activity log.
func (s *StatsService) Dashboard() (AdminStats, error) {
	all, err := s.ideas.List("")
	if err != nil {
		return AdminStats{}, err
	}

	st := AdminStats{TotalIdeas: len(all)}
	for _, idea := range all {
		st.TotalVotes += idea.TotalVotes()
		st.TotalComments += len(idea.Comments)
		switch idea.Status {
		case models.StatusPending:
			st.Pending++
		case models.StatusApproved:
			st.Approved++
		case models.StatusImplemented:
			st.Implemented++
		case models.StatusRejected:
			st.Rejected++
		}
	}

	ranked := models.CloneIdeas(all)
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].TotalVotes() > ranked[b].TotalVotes()
	})
	if len(ranked) > dashboardTopIdeas {
		ranked = ranked[:dashboardTopIdeas]
	}
	st.TopIdeas = ranked

	acts, err := s.activities.Recent(dashboardActivities)
	if err != nil {
		return AdminStats{}, err
	}
	st.RecentActivity = acts
	return st, nil
}

// RecentActivity exposes the raw activity log for the admin view.
func (s *StatsService) RecentActivity(limit int) ([]models.Activity, error) {
	return s.activities.Recent(limit)
}
