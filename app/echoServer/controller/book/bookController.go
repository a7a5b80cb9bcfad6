package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Aniyone/case-4-bookstore/model"
	bookrepo "github.com/Aniyone/case-4-bookstore/repository/book"
	booksvc "github.com/Aniyone/case-4-bookstore/service/book"
	rentalsvc "github.com/Aniyone/case-4-bookstore/service/rental"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc     booksvc.Service
	Rentals rentalsvc.Service
	Log     *slog.Logger
}

func toModel(req BookFieldsReq) *model.Book {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &model.Book{
		Title:     req.Title,
		Author:    req.Author,
		Category:  req.Category,
		Year:      req.Year,
		Price:     req.Price,
		Available: available,
	}
}

// GET /dashboard?category=&author=&year=
//
// Catalog browse with filters plus the expired-rentals notice. This is the
// only place the notice is computed.
func (h *Controller) Dashboard(c echo.Context) error {
	f := bookrepo.Filter{
		Category: c.QueryParam("category"),
		Author:   c.QueryParam("author"),
	}
	if ys := c.QueryParam("year"); ys != "" {
		y, err := strconv.Atoi(ys)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid year"})
		}
		f.Year = &y
	}

	page, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("dashboard list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	resp := echo.Map{
		"books":      page.Books,
		"categories": page.Categories,
		"authors":    page.Authors,
		"years":      page.Years,
		"selected": echo.Map{
			"category": f.Category,
			"author":   f.Author,
			"year":     c.QueryParam("year"),
		},
	}

	uid, _ := c.Get("user_id").(int64)
	expired, err := h.Rentals.HasExpired(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("expired check error", "err", err, "user_id", uid)
	} else if expired {
		resp["notice"] = "you have overdue books"
	}

	return c.JSON(http.StatusOK, resp)
}

// GET /admin  (admin)
func (h *Controller) AdminList(c echo.Context) error {
	page, err := h.Svc.List(c.Request().Context(), bookrepo.Filter{})
	if err != nil {
		h.Log.Error("admin list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"books": page.Books})
}

// POST /admin/add  (admin)
func (h *Controller) Create(c echo.Context) error {
	var req BookFieldsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"title": "required", "author": "required", "category": "required", "year": "gte 0", "price": "gte 0"},
		})
	}
	id, err := h.Svc.Create(c.Request().Context(), toModel(req))
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		}
		h.Log.Error("book create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// POST /admin/edit/:id  (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req BookFieldsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	if err := h.Svc.Update(c.Request().Context(), id, toModel(req)); err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case booksvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("book update error", "err", err, "id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book updated"})
}

// GET /admin/delete/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book delete error", "err", err, "id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book deleted"})
}
