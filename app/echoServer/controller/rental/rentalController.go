package rental

import (
	"log/slog"
	"net/http"
	"strconv"

	booksvc "github.com/Aniyone/case-4-bookstore/service/book"
	rentalsvc "github.com/Aniyone/case-4-bookstore/service/rental"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc   rentalsvc.Service
	Books booksvc.Service
	Log   *slog.Logger
}

// GET /book/:id
//
// Book detail. An unavailable book gets a read-only view with no rental
// action offered.
func (h *Controller) BookDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Books.Detail(c.Request().Context(), id)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book detail error", "err", err, "id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	resp := echo.Map{"book": b, "rentable": b.Available}
	if b.Available {
		resp["durations_days"] = rentalsvc.DurationsDays
	} else {
		resp["notice"] = "this book is currently unavailable for rental"
	}
	return c.JSON(http.StatusOK, resp)
}

// POST /book/:id
func (h *Controller) Create(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"duration_days": "one of 14, 30, 90"},
		})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, id, req.DurationDays)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case rentalsvc.ErrUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book unavailable"})
		case rentalsvc.ErrBadDuration:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "duration must be 14, 30 or 90 days"})
		default:
			h.Log.Error("rental create", "err", err, "user_id", uid, "book_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "book rented",
		"rental":  out,
	})
}

// GET /reminders
func (h *Controller) Reminders(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rem, err := h.Svc.MyReminders(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("reminders", "err", err, "user_id", uid)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"active":  rem.Active,
		"expired": rem.Expired,
	})
}

// GET /admin/rentals  (admin)
func (h *Controller) All(c echo.Context) error {
	rows, err := h.Svc.All(c.Request().Context())
	if err != nil {
		h.Log.Error("all rentals", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
