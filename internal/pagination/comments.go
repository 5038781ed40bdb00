// Package pagination implements fixed-size windowing over comment lists.
package pagination

import "github.com/jadeniji/ideaboard-backend/internal/models"

const DefaultPageSize = 2

// Pager exposes one page of a comment list at a time. Page indexes are
// zero-based and always clamped into the valid range, so callers can
// blindly call Next/Prev.
type Pager struct {
	size int
	page int
}

func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size}
}

func (p *Pager) Page() int { return p.page }

func (p *Pager) Size() int { return p.size }

// TotalPages reports how many pages n comments occupy. An empty list
// still has one (empty) page.
func (p *Pager) TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + p.size - 1) / p.size
}

// Visible returns the slice of comments on the current page, clamping
// the page index if the list shrank underneath it.
func (p *Pager) Visible(comments []models.Comment) []models.Comment {
	p.clamp(len(comments))
	start := p.page * p.size
	if start >= len(comments) {
		return nil
	}
	end := start + p.size
	if end > len(comments) {
		end = len(comments)
	}
	return comments[start:end]
}

// Next advances one page, clamped to the last page of an n-comment list.
func (p *Pager) Next(n int) {
	p.page++
	p.clamp(n)
}

// Prev backs up one page, clamped to the first page.
func (p *Pager) Prev() {
	p.page--
	if p.page < 0 {
		p.page = 0
	}
}

// Reset jumps back to the first page. Adding a comment resets the view
// so the newest comment is visible.
func (p *Pager) Reset() { p.page = 0 }

func (p *Pager) clamp(n int) {
	last := p.TotalPages(n) - 1
	if p.page > last {
		p.page = last
	}
	if p.page < 0 {
		p.page = 0
	}
}

// PageOf slices one page out of comments without carrying pager state,
// for handlers that take the page index as a query parameter.
func PageOf(comments []models.Comment, page, size int) (visible []models.Comment, clampedPage, totalPages int) {
	p := NewPager(size)
	p.page = page
	visible = p.Visible(comments)
	return visible, p.Page(), p.TotalPages(len(comments))
}
