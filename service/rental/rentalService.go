package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Aniyone/case-4-bookstore/model"
	rentalrepo "github.com/Aniyone/case-4-bookstore/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrUnavailable  ErrCode = "BOOK_UNAVAILABLE"
	ErrBadDuration  ErrCode = "BAD_DURATION"
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

// DurationsDays is the fixed set of rental durations offered to users.
var DurationsDays = []int{14, 30, 90}

func validDuration(days int) bool {
	for _, d := range DurationsDays {
		if d == days {
			return true
		}
	}
	return false
}

// Row = repository shape
type Row = rentalrepo.Row

// Reminders partitions a user's rentals by expiry at read time; the
// classification is never persisted.
type Reminders struct {
	Active  []Row `json:"active"`
	Expired []Row `json:"expired"`
}

type Repo interface {
	Insert(ctx context.Context, r *model.Rental) error
	BookAvailability(ctx context.Context, bookID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Row, error)
	ListAll(ctx context.Context) ([]Row, error)
}

type Service interface {
	// Create rents a book for one of the fixed durations and returns the
	// stored rental. The book's availability flag is not touched: it is an
	// administrator-controlled field, and overlapping rentals of the same
	// book are allowed.
	Create(ctx context.Context, userID, bookID int64, durationDays int) (*model.Rental, error)

	// MyReminders lists the caller's rentals split into active and expired.
	MyReminders(ctx context.Context, userID int64) (*Reminders, error)

	// HasExpired reports whether the user holds any expired rental.
	HasExpired(ctx context.Context, userID int64) (bool, error)

	// All lists every rental system-wide, latest-expiring first.
	All(ctx context.Context) ([]Row, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service { return &service{r: r, now: time.Now} }

// NewWithClock injects the clock; tests use it to advance time.
func NewWithClock(r Repo, now func() time.Time) Service {
	return &service{r: r, now: now}
}

func (s *service) Create(ctx context.Context, userID, bookID int64, durationDays int) (*model.Rental, error) {
	if !validDuration(durationDays) {
		return nil, makeErr(ErrBadDuration)
	}

	available, err := s.r.BookAvailability(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotFound)
		}
		return nil, err
	}
	if !available {
		return nil, makeErr(ErrUnavailable)
	}

	start := s.now().UTC()
	rental := &model.Rental{
		UserID:    userID,
		BookID:    bookID,
		StartDate: start,
		EndDate:   start.Add(time.Duration(durationDays) * 24 * time.Hour),
	}
	if err := s.r.Insert(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *service) MyReminders(ctx context.Context, userID int64) (*Reminders, error) {
	rows, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	out := &Reminders{}
	for _, row := range rows {
		// a rental ending exactly now is still active
		if now.After(row.EndDate) {
			out.Expired = append(out.Expired, row)
		} else {
			out.Active = append(out.Active, row)
		}
	}
	return out, nil
}

func (s *service) HasExpired(ctx context.Context, userID int64) (bool, error) {
	rem, err := s.MyReminders(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(rem.Expired) > 0, nil
}

func (s *service) All(ctx context.Context) ([]Row, error) {
	return s.r.ListAll(ctx)
}
