package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/repository/memory"
)

var statsNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestStats(t *testing.T, ideas []models.Idea) (*StatsService, memory.Repositories) {
	t.Helper()
	repos := memory.NewRepositories()
	repos.Ideas.Seed(ideas)
	svc := NewStatsService(repos.Ideas, repos.Activities)
	svc.now = func() time.Time { return statsNow }
	return svc, repos
}

func idea(id int, author string, up, down, comments int, status models.IdeaStatus, age time.Duration) models.Idea {
	c := make([]models.Comment, comments)
	for i := range c {
		c[i] = models.Comment{Text: "x", DisplayName: "y", AuthorRef: "someone-else"}
	}
	return models.Idea{
		ID: id, Title: "t", Content: "c",
		Upvotes: up, Downvotes: down, Comments: c,
		AuthorRef: author, Status: status,
		SortDate: statsNow.Add(-age), Timestamp: "recently",
	}
}

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 0, engagementRate(0, 0, 0))
	// liked and commented once on the single idea: (1 + 2*1) / (3*1) = 100%
	assert.Equal(t, 100, engagementRate(1, 1, 1))
	// 2 ideas on the board, viewer upvoted one, wrote nothing: 1/6 ~ 17
	assert.Equal(t, 17, engagementRate(1, 0, 2))
	// multiple comments per idea can overshoot; the cap holds
	assert.Equal(t, 100, engagementRate(5, 5, 1))
}

func TestForUserSubmissionsAndActivity(t *testing.T) {
	svc, repos := newTestStats(t, []models.Idea{
		idea(1, "me", 10, 1, 2, models.StatusImplemented, time.Hour),
		idea(2, "me", 0, 0, 0, models.StatusPending, 2*time.Hour),
		idea(3, "other", 50, 0, 9, models.StatusApproved, time.Hour),
	})

	// the viewer's activity counts across the whole board, not just
	// their own ideas
	_, found, err := repos.Ideas.Vote(3, "me", models.VoteUp)
	require.NoError(t, err)
	require.True(t, found)
	_, found, err = repos.Ideas.AddComment(3, models.Comment{Text: "x", AuthorRef: "me"})
	require.NoError(t, err)
	require.True(t, found)

	st, err := svc.ForUser("me")
	require.NoError(t, err)

	assert.Equal(t, 2, st.Submitted)
	assert.Equal(t, 1, st.Implemented)
	assert.Equal(t, 10, st.UpvotesReceived)
	assert.Equal(t, 1, st.CommentsMade)
	// liked=1, commented=1 over 3 board ideas: (1+2)/9 ~ 33
	assert.Equal(t, 33, st.EngagementRate)
	// 10*2 + 50*1 + 2*1 + 5*10 = 122
	assert.Equal(t, 122, st.CommunityPoints)
}

func TestForUserEngagementWithoutSubmissions(t *testing.T) {
	svc, repos := newTestStats(t, []models.Idea{
		idea(1, "a", 3, 0, 0, models.StatusPending, time.Hour),
		idea(2, "b", 1, 0, 0, models.StatusPending, time.Hour),
	})

	for _, id := range []int{1, 2} {
		_, found, err := repos.Ideas.Vote(id, "lurker", models.VoteUp)
		require.NoError(t, err)
		require.True(t, found)
		_, found, err = repos.Ideas.AddComment(id, models.Comment{Text: "x", AuthorRef: "lurker"})
		require.NoError(t, err)
		require.True(t, found)
	}

	st, err := svc.ForUser("lurker")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Submitted)
	assert.Equal(t, 2, st.CommentsMade)
	assert.Equal(t, 100, st.EngagementRate)
}

func TestForUserMonthlyCount(t *testing.T) {
	svc, _ := newTestStats(t, []models.Idea{
		idea(1, "me", 0, 0, 0, models.StatusPending, time.Hour),            // this month
		idea(2, "me", 0, 0, 0, models.StatusPending, 20*24*time.Hour),      // May 26: last month
		{ID: 3, Title: "t", Content: "c", AuthorRef: "me", Timestamp: "Just now", Status: models.StatusPending}, // always counts
		{ID: 4, Title: "t", Content: "c", AuthorRef: "me", Timestamp: "who knows", Status: models.StatusPending}, // unparseable: excluded
	})

	st, err := svc.ForUser("me")
	require.NoError(t, err)
	assert.Equal(t, 4, st.Submitted)
	assert.Equal(t, 2, st.SubmittedThisMonth)
	// 2 of the 5-idea monthly goal
	assert.Equal(t, 40, st.MonthlyGoalProgress)
}

func TestMonthlyGoalProgress(t *testing.T) {
	assert.Equal(t, 0, goalProgress(0))
	assert.Equal(t, 20, goalProgress(1))
	assert.Equal(t, 100, goalProgress(5))
	// overshooting the goal stays at 100
	assert.Equal(t, 100, goalProgress(9))
}

func TestTopBracketAlwaysHoldsOne(t *testing.T) {
	// 3 ideas: bracket size max(1, 0) = 1, only the top idea counts
	svc, _ := newTestStats(t, []models.Idea{
		idea(1, "winner", 90, 0, 0, models.StatusPending, time.Hour),
		idea(2, "me", 50, 0, 0, models.StatusPending, time.Hour),
		idea(3, "me", 10, 0, 0, models.StatusPending, time.Hour),
	})

	st, err := svc.ForUser("winner")
	require.NoError(t, err)
	assert.True(t, st.InTopBracket)

	st, err = svc.ForUser("me")
	require.NoError(t, err)
	assert.False(t, st.InTopBracket)
}

func TestDashboard(t *testing.T) {
	ideas := []models.Idea{
		idea(1, "a", 10, 5, 1, models.StatusPending, time.Hour),     // 15 total votes
		idea(2, "b", 50, 1, 0, models.StatusApproved, time.Hour),    // 51
		idea(3, "c", 5, 0, 2, models.StatusImplemented, time.Hour),  // 5
		idea(4, "d", 1, 1, 0, models.StatusRejected, time.Hour),     // 2
		idea(5, "e", 30, 0, 0, models.StatusPending, time.Hour),     // 30
		idea(6, "f", 20, 20, 0, models.StatusPending, time.Hour),    // 40
	}
	svc, repos := newTestStats(t, ideas)
	require.NoError(t, repos.Activities.Append(models.Activity{Type: models.ActivityVote, Text: "x"}))

	st, err := svc.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, 6, st.TotalIdeas)
	assert.Equal(t, 143, st.TotalVotes)
	assert.Equal(t, 3, st.TotalComments)
	assert.Equal(t, 3, st.Pending)
	assert.Equal(t, 1, st.Approved)
	assert.Equal(t, 1, st.Implemented)
	assert.Equal(t, 1, st.Rejected)

	// top five by combined votes, highest first; idea 4 (2 votes) missed the cut
	require.Len(t, st.TopIdeas, 5)
	assert.Equal(t, 2, st.TopIdeas[0].ID)
	assert.Equal(t, 6, st.TopIdeas[1].ID)
	assert.Equal(t, 5, st.TopIdeas[2].ID)
	assert.Equal(t, 1, st.TopIdeas[3].ID)
	assert.Equal(t, 3, st.TopIdeas[4].ID)

	require.Len(t, st.RecentActivity, 1)
}
