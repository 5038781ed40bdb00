package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/reltime"
)

type activitiesRepo struct{ pool *pgxpool.Pool }

func (r *activitiesRepo) Append(a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Time == "" {
		a.Time = reltime.JustNow
	}
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO activities(id, type, text, time_label) VALUES($1,$2,$3,$4)`,
		a.ID, a.Type, a.Text, a.Time)
	return err
}

func (r *activitiesRepo) Recent(limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, type, text, time_label, created_at FROM activities ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Text, &a.Time, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
