package userrepo

import (
	"context"
	"database/sql"

	"github.com/Aniyone/case-4-bookstore/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.Account) error
	ByUsername(ctx context.Context, username string) (*model.Account, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.Account) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO accounts(username, password_hash, is_admin)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		u.Username, u.PasswordHash, u.IsAdmin,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByUsername(ctx context.Context, username string) (*model.Account, error) {
	u := &model.Account{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, username, password_hash, is_admin, created_at
        FROM accounts
        WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
