package rentalsvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Aniyone/case-4-bookstore/model"
	rentalrepo "github.com/Aniyone/case-4-bookstore/repository/rental"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	insertFn       func(ctx context.Context, r *model.Rental) error
	availabilityFn func(ctx context.Context, bookID int64) (bool, error)
	listByUserFn   func(ctx context.Context, userID int64) ([]rentalrepo.Row, error)
	listAllFn      func(ctx context.Context) ([]rentalrepo.Row, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Insert(ctx context.Context, r *model.Rental) error {
	if m.insertFn == nil {
		r.ID = 1
		return nil
	}
	return m.insertFn(ctx, r)
}

func (m *mockRepo) BookAvailability(ctx context.Context, bookID int64) (bool, error) {
	if m.availabilityFn == nil {
		return true, nil
	}
	return m.availabilityFn(ctx, bookID)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID int64) ([]rentalrepo.Row, error) {
	return m.listByUserFn(ctx, userID)
}

func (m *mockRepo) ListAll(ctx context.Context) ([]rentalrepo.Row, error) {
	return m.listAllFn(ctx)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// --- tests ---

func TestCreate_DurationSet(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, days := range []int{14, 30, 90} {
		var stored *model.Rental
		m := &mockRepo{
			insertFn: func(ctx context.Context, r *model.Rental) error {
				r.ID = 5
				stored = r
				return nil
			},
		}
		svc := NewWithClock(m, fixedClock(start))

		out, err := svc.Create(ctx, 1, 2, days)
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.Equal(t, int64(5), out.ID)
		require.Equal(t, start, out.StartDate)
		// end is exactly start + duration
		require.Equal(t, start.Add(time.Duration(days)*24*time.Hour), out.EndDate)
	}
}

func TestCreate_BadDuration(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	for _, days := range []int{0, 7, 15, 365, -14} {
		_, err := svc.Create(ctx, 1, 2, days)
		require.Error(t, err)
		require.Equal(t, ErrBadDuration, Code(err))
	}
}

func TestCreate_BookNotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		availabilityFn: func(ctx context.Context, bookID int64) (bool, error) {
			return false, sql.ErrNoRows
		},
	}
	svc := New(m)

	_, err := svc.Create(ctx, 1, 99, 30)
	require.Error(t, err)
	require.Equal(t, ErrBookNotFound, Code(err))
}

func TestCreate_Unavailable(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		availabilityFn: func(ctx context.Context, bookID int64) (bool, error) {
			return false, nil
		},
	}
	svc := New(m)

	_, err := svc.Create(ctx, 1, 2, 30)
	require.Error(t, err)
	require.Equal(t, ErrUnavailable, Code(err))
}

func TestMyReminders_Partition(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	rows := []rentalrepo.Row{
		{RentalID: 1, BookTitle: "ends tomorrow", EndDate: now.Add(24 * time.Hour)},
		{RentalID: 2, BookTitle: "ended yesterday", EndDate: now.Add(-24 * time.Hour)},
		{RentalID: 3, BookTitle: "ends exactly now", EndDate: now},
	}
	m := &mockRepo{
		listByUserFn: func(ctx context.Context, userID int64) ([]rentalrepo.Row, error) {
			return rows, nil
		},
	}
	svc := NewWithClock(m, fixedClock(now))

	rem, err := svc.MyReminders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rem.Active, 2)
	require.Len(t, rem.Expired, 1)
	require.Equal(t, int64(2), rem.Expired[0].RentalID)
	// boundary: a rental ending exactly now is still active
	require.Equal(t, int64(3), rem.Active[1].RentalID)
}

func TestReminders_TimeAdvanceReclassifies(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	var stored *model.Rental
	m := &mockRepo{
		insertFn: func(ctx context.Context, r *model.Rental) error {
			r.ID = 1
			stored = r
			return nil
		},
		listByUserFn: func(ctx context.Context, userID int64) ([]rentalrepo.Row, error) {
			return []rentalrepo.Row{{
				RentalID:  stored.ID,
				UserID:    stored.UserID,
				BookID:    stored.BookID,
				StartDate: stored.StartDate,
				EndDate:   stored.EndDate,
			}}, nil
		},
	}

	// rent at T for 30 days: active
	svc := NewWithClock(m, fixedClock(start))
	_, err := svc.Create(ctx, 1, 2, 30)
	require.NoError(t, err)

	rem, err := svc.MyReminders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rem.Active, 1)
	require.Empty(t, rem.Expired)

	hasExpired, err := svc.HasExpired(ctx, 1)
	require.NoError(t, err)
	require.False(t, hasExpired)

	// same rows read at T+31d: expired
	later := NewWithClock(m, fixedClock(start.Add(31*24*time.Hour)))
	rem, err = later.MyReminders(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, rem.Active)
	require.Len(t, rem.Expired, 1)

	hasExpired, err = later.HasExpired(ctx, 1)
	require.NoError(t, err)
	require.True(t, hasExpired)
}

func TestAll_Passthrough(t *testing.T) {
	ctx := context.Background()
	rows := []rentalrepo.Row{
		{RentalID: 2, Username: "bob", EndDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{RentalID: 1, Username: "alice", EndDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	m := &mockRepo{
		listAllFn: func(ctx context.Context) ([]rentalrepo.Row, error) { return rows, nil },
	}
	svc := New(m)

	out, err := svc.All(ctx)
	require.NoError(t, err)
	// repository order (end date descending) is preserved
	require.Equal(t, rows, out)
}
