package rentalrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Aniyone/case-4-bookstore/model"
)

// Row is a rental joined with its book title (and owner username for the
// administrator listing).
type Row struct {
	RentalID  int64     `json:"rental_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	BookID    int64     `json:"book_id"`
	BookTitle string    `json:"book_title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type Repo interface {
	Insert(ctx context.Context, r *model.Rental) error
	BookAvailability(ctx context.Context, bookID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Row, error)
	ListAll(ctx context.Context) ([]Row, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, m *model.Rental) error {
	const q = `
		INSERT INTO rentals (user_id, book_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		m.UserID, m.BookID, m.StartDate, m.EndDate,
	).Scan(&m.ID)
}

// BookAvailability returns sql.ErrNoRows when the book does not exist.
func (r *repo) BookAvailability(ctx context.Context, bookID int64) (bool, error) {
	const q = `
		SELECT available
		FROM books
		WHERE id = $1`
	var avail bool
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&avail)
	return avail, err
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]Row, error) {
	const q = `
		SELECT
		r.id         AS rental_id,
		r.user_id    AS user_id,
		r.book_id    AS book_id,
		b.title      AS book_title,
		r.start_date AS start_date,
		r.end_date   AS end_date
		FROM rentals r
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = $1
		ORDER BY r.end_date DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(
			&h.RentalID, &h.UserID, &h.BookID, &h.BookTitle,
			&h.StartDate, &h.EndDate,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListAll returns every rental system-wide, latest-expiring first.
func (r *repo) ListAll(ctx context.Context) ([]Row, error) {
	const q = `
		SELECT
		r.id         AS rental_id,
		r.user_id    AS user_id,
		a.username   AS username,
		r.book_id    AS book_id,
		b.title      AS book_title,
		r.start_date AS start_date,
		r.end_date   AS end_date
		FROM rentals r
		JOIN accounts a ON a.id = r.user_id
		JOIN books b ON b.id = r.book_id
		ORDER BY r.end_date DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(
			&h.RentalID, &h.UserID, &h.Username, &h.BookID, &h.BookTitle,
			&h.StartDate, &h.EndDate,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
