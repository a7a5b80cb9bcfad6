package model

import "time"

type Rental struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ExpiredAt reports whether the rental has run out as of now.
// A rental ending exactly at now is still active.
func (r Rental) ExpiredAt(now time.Time) bool {
	return now.After(r.EndDate)
}
