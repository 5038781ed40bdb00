package postgres

import (
	repo "github.com/jadeniji/ideaboard-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Ideas      repo.Ideas
	Users      repo.Users
	Activities repo.Activities
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Ideas:      &ideasRepo{pool},
		Users:      &usersRepo{pool},
		Activities: &activitiesRepo{pool},
	}
}
