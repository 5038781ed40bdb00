package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, employee_id, name, email, password_hash, role, department, join_date, created_at`

func (r *usersRepo) Create(u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO users(id, employee_id, name, email, password_hash, role, department, join_date)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.EmployeeID, u.Name, u.Email, u.PasswordHash, u.Role, u.Department, u.JoinDate,
	)
	if err != nil {
		return models.User{}, err
	}
	return r.GetByID(u.ID)
}

func (r *usersRepo) GetByID(id string) (models.User, error) {
	return r.get(`SELECT `+userCols+` FROM users WHERE id=$1`, id)
}

func (r *usersRepo) GetByEmployeeID(employeeID string) (models.User, error) {
	return r.get(`SELECT `+userCols+` FROM users WHERE employee_id=$1`, employeeID)
}

func (r *usersRepo) get(query, arg string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(context.Background(), query, arg).
		Scan(&u.ID, &u.EmployeeID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Department, &u.JoinDate, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return models.User{}, repository.ErrNotFound
	}
	return u, err
}

func (r *usersRepo) List() ([]models.User, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+userCols+` FROM users ORDER BY created_at DESC LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.EmployeeID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Department, &u.JoinDate, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
