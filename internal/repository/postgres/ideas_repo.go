package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/reltime"
)

type ideasRepo struct{ pool *pgxpool.Pool }

const ideaCols = `id, title, content, timestamp_label, sort_date, upvotes, downvotes, tags, author_ref, status, attachments`

func (r *ideasRepo) List(viewer string) ([]models.Idea, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+ideaCols+` FROM ideas ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for n := range out {
		if err := r.hydrate(&out[n], viewer); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *ideasRepo) FindByID(id int, viewer string) (models.Idea, bool, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+ideaCols+` FROM ideas WHERE id=$1`, id)
	idea, err := scanIdea(row)
	if err == pgx.ErrNoRows {
		return models.Idea{}, false, nil
	}
	if err != nil {
		return models.Idea{}, false, err
	}
	if err := r.hydrate(&idea, viewer); err != nil {
		return models.Idea{}, false, err
	}
	return idea, true, nil
}

func (r *ideasRepo) Add(idea models.Idea) (models.Idea, error) {
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
	att, err := json.Marshal(idea.Attachments)
	if err != nil {
		return models.Idea{}, err
	}
	// position decreases so that newest rows sort first (prepend semantics).
	err = r.pool.QueryRow(context.Background(), `
INSERT INTO ideas (id, title, content, timestamp_label, sort_date, upvotes, downvotes, tags, author_ref, status, attachments, position)
VALUES (
  COALESCE(NULLIF($1, 0), (SELECT COALESCE(MAX(id),0)+1 FROM ideas)),
  $2,$3,$4,$5,0,0,$6,$7,$8,$9,
  (SELECT COALESCE(MIN(position),0)-1 FROM ideas)
)
RETURNING id`,
		idea.ID, idea.Title, idea.Content, idea.Timestamp, idea.SortDate,
		idea.Tags, idea.AuthorRef, idea.Status, att,
	).Scan(&idea.ID)
	if err != nil {
		return models.Idea{}, err
	}
	return idea, nil
}

func (r *ideasRepo) Update(idea models.Idea) (bool, error) {
	att, err := json.Marshal(idea.Attachments)
	if err != nil {
		return false, err
	}
	tag, err := r.pool.Exec(context.Background(), `
UPDATE ideas SET title=$2, content=$3, timestamp_label=$4, sort_date=$5,
       upvotes=$6, downvotes=$7, tags=$8, author_ref=$9, status=$10, attachments=$11
 WHERE id=$1`,
		idea.ID, idea.Title, idea.Content, idea.Timestamp, idea.SortDate,
		idea.Upvotes, idea.Downvotes, idea.Tags, idea.AuthorRef, idea.Status, att)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ideasRepo) Vote(id int, viewer string, dir models.VoteDirection) (models.Idea, bool, error) {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Idea{}, false, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM ideas WHERE id=$1)`, id).Scan(&exists); err != nil {
		return models.Idea{}, false, err
	}
	if !exists {
		return models.Idea{}, false, nil
	}

	current := models.VoteNone
	var cur string
	err = tx.QueryRow(ctx, `SELECT direction FROM idea_votes WHERE idea_id=$1 AND voter=$2`, id, viewer).Scan(&cur)
	if err == nil {
		current = models.VoteDirection(cur)
	} else if err != pgx.ErrNoRows {
		return models.Idea{}, false, err
	}

	switch {
	case current == dir:
		if err := bumpVote(ctx, tx, id, dir, -1); err != nil {
			return models.Idea{}, false, err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM idea_votes WHERE idea_id=$1 AND voter=$2`, id, viewer); err != nil {
			return models.Idea{}, false, err
		}
	case current == models.VoteNone:
		if err := bumpVote(ctx, tx, id, dir, +1); err != nil {
			return models.Idea{}, false, err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO idea_votes(idea_id, voter, direction) VALUES($1,$2,$3)`, id, viewer, dir); err != nil {
			return models.Idea{}, false, err
		}
	default:
		if err := bumpVote(ctx, tx, id, dir.Opposite(), -1); err != nil {
			return models.Idea{}, false, err
		}
		if err := bumpVote(ctx, tx, id, dir, +1); err != nil {
			return models.Idea{}, false, err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE idea_votes SET direction=$3 WHERE idea_id=$1 AND voter=$2`, id, viewer, dir); err != nil {
			return models.Idea{}, false, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Idea{}, false, err
	}
	return r.FindByID(id, viewer)
}

func bumpVote(ctx context.Context, tx pgx.Tx, id int, dir models.VoteDirection, delta int) error {
	col := "downvotes"
	if dir == models.VoteUp {
		col = "upvotes"
	}
	_, err := tx.Exec(ctx, `UPDATE ideas SET `+col+` = `+col+` + $2 WHERE id=$1`, id, delta)
	return err
}

func (r *ideasRepo) Remove(id int) (bool, error) {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM ideas WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ideasRepo) AddComment(id int, c models.Comment) (models.Idea, bool, error) {
	tag, err := r.pool.Exec(context.Background(), `
INSERT INTO comments(idea_id, text, display_name, author_ref, timestamp_label, sort_date)
SELECT $1,$2,$3,$4,$5,$6 WHERE EXISTS(SELECT 1 FROM ideas WHERE id=$1)`,
		id, c.Text, c.DisplayName, c.AuthorRef, c.Timestamp, c.SortDate)
	if err != nil {
		return models.Idea{}, false, err
	}
	if tag.RowsAffected() == 0 {
		return models.Idea{}, false, nil
	}
	return r.FindByID(id, "")
}

// hydrate attaches comments (newest first) and the viewer's vote.
func (r *ideasRepo) hydrate(idea *models.Idea, viewer string) error {
	rows, err := r.pool.Query(context.Background(), `
SELECT text, display_name, author_ref, timestamp_label, sort_date
  FROM comments WHERE idea_id=$1 ORDER BY sort_date DESC, id DESC`, idea.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.Text, &c.DisplayName, &c.AuthorRef, &c.Timestamp, &c.SortDate); err != nil {
			return err
		}
		idea.Comments = append(idea.Comments, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	idea.UserVote = models.VoteNone
	if viewer != "" {
		var dir string
		err = r.pool.QueryRow(context.Background(),
			`SELECT direction FROM idea_votes WHERE idea_id=$1 AND voter=$2`, idea.ID, viewer).Scan(&dir)
		if err == nil {
			idea.UserVote = models.VoteDirection(dir)
		} else if err != pgx.ErrNoRows {
			return err
		}
	}
	return nil
}

func scanIdea(row pgx.Row) (models.Idea, error) {
	var idea models.Idea
	var att []byte
	err := row.Scan(&idea.ID, &idea.Title, &idea.Content, &idea.Timestamp, &idea.SortDate,
		&idea.Upvotes, &idea.Downvotes, &idea.Tags, &idea.AuthorRef, &idea.Status, &att)
	if err != nil {
		return models.Idea{}, err
	}
	if len(att) > 0 {
		if err := json.Unmarshal(att, &idea.Attachments); err != nil {
			return models.Idea{}, err
		}
	}
	return idea, nil
}
