package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jadeniji/ideaboard-backend/internal/models"
)

func mkComments(n int) []models.Comment {
	out := make([]models.Comment, n)
	for i := range out {
		out[i] = models.Comment{Text: "c", DisplayName: "Anonymous User 1000"}
	}
	return out
}

func TestPagerTotalPages(t *testing.T) {
	p := NewPager(2)
	assert.Equal(t, 1, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(1))
	assert.Equal(t, 1, p.TotalPages(2))
	assert.Equal(t, 2, p.TotalPages(3))
	assert.Equal(t, 4, p.TotalPages(7))
}

func TestPagerWalkForwardAndBack(t *testing.T) {
	comments := mkComments(7)
	p := NewPager(0) // falls back to default size 2

	require.Len(t, p.Visible(comments), 2)
	assert.Equal(t, 0, p.Page())

	p.Next(len(comments))
	p.Next(len(comments))
	p.Next(len(comments))
	assert.Equal(t, 3, p.Page())
	assert.Len(t, p.Visible(comments), 1) // last page holds the remainder

	// walking past the end stays on the last page
	p.Next(len(comments))
	assert.Equal(t, 3, p.Page())

	p.Prev()
	p.Prev()
	p.Prev()
	p.Prev()
	p.Prev()
	assert.Equal(t, 0, p.Page())
}

func TestPagerClampsWhenListShrinks(t *testing.T) {
	p := NewPager(2)
	p.Next(7)
	p.Next(7)
	p.Next(7)
	require.Equal(t, 3, p.Page())

	// list shrank to 3 comments -> 2 pages, pager lands on the last one
	got := p.Visible(mkComments(3))
	assert.Equal(t, 1, p.Page())
	assert.Len(t, got, 1)
}

func TestPagerResetAfterNewComment(t *testing.T) {
	p := NewPager(2)
	p.Next(5)
	require.Equal(t, 1, p.Page())

	p.Reset()
	assert.Equal(t, 0, p.Page())
}

func TestPageOf(t *testing.T) {
	comments := mkComments(5)

	visible, page, total := PageOf(comments, 1, 2)
	assert.Len(t, visible, 2)
	assert.Equal(t, 1, page)
	assert.Equal(t, 3, total)

	// out-of-range page clamps instead of erroring
	visible, page, _ = PageOf(comments, 99, 2)
	assert.Len(t, visible, 1)
	assert.Equal(t, 2, page)

	visible, page, total = PageOf(nil, 0, 2)
	assert.Empty(t, visible)
	assert.Equal(t, 0, page)
	assert.Equal(t, 1, total)
}
