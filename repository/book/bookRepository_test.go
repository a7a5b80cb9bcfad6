package bookrepo

import (
	"testing"
)

func TestBuildListQuery_NoFilter(t *testing.T) {
	q, args := buildListQuery(Filter{})
	want := "SELECT id, title, author, category, year, price, available FROM books ORDER BY id"
	if q != want {
		t.Fatalf("query = %q; want %q", q, want)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v; want none", args)
	}
}

func TestBuildListQuery_SingleFilters(t *testing.T) {
	q, args := buildListQuery(Filter{Category: "SF"})
	if q != "SELECT id, title, author, category, year, price, available FROM books WHERE category = $1 ORDER BY id" {
		t.Fatalf("category query = %q", q)
	}
	if len(args) != 1 || args[0] != "SF" {
		t.Fatalf("category args = %v", args)
	}

	q, args = buildListQuery(Filter{Author: "Herbert"})
	if q != "SELECT id, title, author, category, year, price, available FROM books WHERE author = $1 ORDER BY id" {
		t.Fatalf("author query = %q", q)
	}
	if len(args) != 1 || args[0] != "Herbert" {
		t.Fatalf("author args = %v", args)
	}

	year := 1965
	q, args = buildListQuery(Filter{Year: &year})
	if q != "SELECT id, title, author, category, year, price, available FROM books WHERE year = $1 ORDER BY id" {
		t.Fatalf("year query = %q", q)
	}
	if len(args) != 1 || args[0] != 1965 {
		t.Fatalf("year args = %v", args)
	}
}

func TestBuildListQuery_Combined(t *testing.T) {
	year := 1965
	q, args := buildListQuery(Filter{Category: "SF", Author: "Herbert", Year: &year})
	want := "SELECT id, title, author, category, year, price, available FROM books" +
		" WHERE category = $1 AND author = $2 AND year = $3 ORDER BY id"
	if q != want {
		t.Fatalf("query = %q; want %q", q, want)
	}
	if len(args) != 3 || args[0] != "SF" || args[1] != "Herbert" || args[2] != 1965 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildListQuery_YearZeroFiltersExplicitly(t *testing.T) {
	// year 0 is a legal publication year; only a nil pointer means "no filter"
	year := 0
	_, args := buildListQuery(Filter{Year: &year})
	if len(args) != 1 || args[0] != 0 {
		t.Fatalf("args = %v; want [0]", args)
	}
}
