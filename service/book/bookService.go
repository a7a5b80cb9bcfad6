package booksvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Aniyone/case-4-bookstore/model"
	bookrepo "github.com/Aniyone/case-4-bookstore/repository/book"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Filter = bookrepo.Filter

// CatalogPage is a filtered listing plus the facet values for the whole
// catalog, so filter controls always show every option.
type CatalogPage struct {
	Books      []model.Book `json:"books"`
	Categories []string     `json:"categories"`
	Authors    []string     `json:"authors"`
	Years      []int        `json:"years"`
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	Update(ctx context.Context, id int64, b *model.Book) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, f Filter) ([]model.Book, error)
	Facets(ctx context.Context) (*bookrepo.Facets, error)
}

type Service interface {
	List(ctx context.Context, f Filter) (*CatalogPage, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) (int64, error)
	Update(ctx context.Context, id int64, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func validateFields(b *model.Book) error {
	if b.Title == "" || b.Author == "" || b.Category == "" || b.Year < 0 || b.Price < 0 {
		return makeErr(ErrBadInput)
	}
	return nil
}

func (s *service) List(ctx context.Context, f Filter) (*CatalogPage, error) {
	books, err := s.r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	facets, err := s.r.Facets(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogPage{
		Books:      books,
		Categories: facets.Categories,
		Authors:    facets.Authors,
		Years:      facets.Years,
	}, nil
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, b *model.Book) (int64, error) {
	if err := validateFields(b); err != nil {
		return 0, err
	}
	return s.r.Create(ctx, b)
}

func (s *service) Update(ctx context.Context, id int64, b *model.Book) error {
	if err := validateFields(b); err != nil {
		return err
	}
	n, err := s.r.Update(ctx, id, b)
	if err != nil {
		return err
	}
	if n == 0 {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	n, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return makeErr(ErrNotFound)
	}
	return nil
}
