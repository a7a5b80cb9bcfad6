package echoServer_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aniyone/case-4-bookstore/app/echoServer"
	authctrl "github.com/Aniyone/case-4-bookstore/app/echoServer/controller/auth"
	bookctrl "github.com/Aniyone/case-4-bookstore/app/echoServer/controller/book"
	rentalctrl "github.com/Aniyone/case-4-bookstore/app/echoServer/controller/rental"
	"github.com/Aniyone/case-4-bookstore/app/echoServer/validation"
	"github.com/Aniyone/case-4-bookstore/model"
	booksvc "github.com/Aniyone/case-4-bookstore/service/book"
	rentalsvc "github.com/Aniyone/case-4-bookstore/service/rental"
	jwtutil "github.com/Aniyone/case-4-bookstore/util/jwt"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type bookSvcMock struct {
	createCalled bool
}

var _ booksvc.Service = (*bookSvcMock)(nil)

func (m *bookSvcMock) List(ctx context.Context, f booksvc.Filter) (*booksvc.CatalogPage, error) {
	return &booksvc.CatalogPage{}, nil
}
func (m *bookSvcMock) Detail(ctx context.Context, id int64) (*model.Book, error) {
	return &model.Book{ID: id, Available: true}, nil
}
func (m *bookSvcMock) Create(ctx context.Context, b *model.Book) (int64, error) {
	m.createCalled = true
	return 1, nil
}
func (m *bookSvcMock) Update(ctx context.Context, id int64, b *model.Book) error { return nil }
func (m *bookSvcMock) Delete(ctx context.Context, id int64) error                { return nil }

type rentalSvcMock struct{}

var _ rentalsvc.Service = (*rentalSvcMock)(nil)

func (m *rentalSvcMock) Create(ctx context.Context, userID, bookID int64, durationDays int) (*model.Rental, error) {
	return &model.Rental{ID: 1, UserID: userID, BookID: bookID}, nil
}
func (m *rentalSvcMock) MyReminders(ctx context.Context, userID int64) (*rentalsvc.Reminders, error) {
	return &rentalsvc.Reminders{}, nil
}
func (m *rentalSvcMock) HasExpired(ctx context.Context, userID int64) (bool, error) {
	return false, nil
}
func (m *rentalSvcMock) All(ctx context.Context) ([]rentalsvc.Row, error) { return nil, nil }

func newTestServer(bs booksvc.Service, rs rentalsvc.Service) *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	echoServer.Register(e, echoServer.C{
		Auth:      &authctrl.Controller{Log: log},
		Book:      &bookctrl.Controller{Svc: bs, Rentals: rs, Log: log},
		Rental:    &rentalctrl.Controller{Svc: rs, Books: bs, Log: log},
		JWTSecret: testSecret,
	})
	return e
}

func sessionCookie(t *testing.T, userID int64, role string) *http.Cookie {
	t.Helper()
	tok, err := jwtutil.Issue(testSecret, userID, role, 1)
	require.NoError(t, err)
	return &http.Cookie{Name: "session", Value: tok}
}

// --- tests ---

func TestUnauthenticated_RedirectsToLogin(t *testing.T) {
	e := newTestServer(&bookSvcMock{}, &rentalSvcMock{})

	for _, path := range []string{"/dashboard", "/reminders", "/book/1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code, "path %s", path)
		require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation), "path %s", path)
	}
}

func TestNonAdmin_AddBook_RedirectedHome(t *testing.T) {
	bs := &bookSvcMock{}
	e := newTestServer(bs, &rentalSvcMock{})

	req := httptest.NewRequest(http.MethodPost, "/admin/add",
		strings.NewReader(`{"title":"Dune","author":"Herbert","category":"SF","year":1965,"price":9.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(sessionCookie(t, 2, "user"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// silent redirect home, and nothing was created
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	require.False(t, bs.createCalled)
}

func TestNonAdmin_AdminViews_RedirectedHome(t *testing.T) {
	e := newTestServer(&bookSvcMock{}, &rentalSvcMock{})

	for _, path := range []string{"/admin", "/admin/rentals", "/admin/delete/1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(sessionCookie(t, 2, "user"))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code, "path %s", path)
		require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation), "path %s", path)
	}
}

func TestAdmin_AddBook_Created(t *testing.T) {
	bs := &bookSvcMock{}
	e := newTestServer(bs, &rentalSvcMock{})

	req := httptest.NewRequest(http.MethodPost, "/admin/add",
		strings.NewReader(`{"title":"Dune","author":"Herbert","category":"SF","year":1965,"price":9.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(sessionCookie(t, 1, "admin"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, bs.createCalled)
}

func TestAuthenticated_DashboardOK(t *testing.T) {
	e := newTestServer(&bookSvcMock{}, &rentalSvcMock{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(sessionCookie(t, 2, "user"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerHeader_AcceptedToo(t *testing.T) {
	e := newTestServer(&bookSvcMock{}, &rentalSvcMock{})

	tok, err := jwtutil.Issue(testSecret, 2, "user", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reminders", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
