package bookrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Aniyone/case-4-bookstore/model"
)

// Filter narrows the catalog listing; zero-valued fields are ignored.
type Filter struct {
	Category string
	Author   string
	Year     *int
}

// Facets holds the distinct values present across the whole catalog,
// used for building filter controls. Years are sorted descending.
type Facets struct {
	Categories []string `json:"categories"`
	Authors    []string `json:"authors"`
	Years      []int    `json:"years"`
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	Update(ctx context.Context, id int64, b *model.Book) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, f Filter) ([]model.Book, error)
	Facets(ctx context.Context) (*Facets, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
INSERT INTO books (title, author, category, year, price, available)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.Category, b.Year, b.Price, b.Available,
	).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Update(ctx context.Context, id int64, b *model.Book) (int64, error) {
	const q = `
UPDATE books
SET title=$2, author=$3, category=$4, year=$5, price=$6, available=$7
WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q,
		id, b.Title, b.Author, b.Category, b.Year, b.Price, b.Available,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
SELECT id, title, author, category, year, price, available
FROM books
WHERE id=$1`
	var b model.Book
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Category, &b.Year, &b.Price, &b.Available,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// buildListQuery assembles the filtered catalog query. Each present
// filter narrows by exact match.
func buildListQuery(f Filter) (string, []any) {
	q := `SELECT id, title, author, category, year, price, available FROM books`
	var conds []string
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		conds = append(conds, fmt.Sprintf("author = $%d", len(args)))
	}
	if f.Year != nil {
		args = append(args, *f.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"
	return q, args
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.Book, error) {
	q, args := buildListQuery(f)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Year, &b.Price, &b.Available); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Facets(ctx context.Context) (*Facets, error) {
	f := &Facets{}
	var err error

	if f.Categories, err = r.distinctStrings(ctx, `SELECT DISTINCT category FROM books ORDER BY category`); err != nil {
		return nil, err
	}
	if f.Authors, err = r.distinctStrings(ctx, `SELECT DISTINCT author FROM books ORDER BY author`); err != nil {
		return nil, err
	}
	if f.Years, err = r.distinctInts(ctx, `SELECT DISTINCT year FROM books ORDER BY year DESC`); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *repo) distinctStrings(ctx context.Context, q string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) distinctInts(ctx context.Context, q string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
