package api

import (
	"net/http"
	"strconv"
)

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// PageFromRequest reads the 1-indexed "page" query parameter.
// Missing, malformed and non-positive values select the first page.
func PageFromRequest(r *http.Request) int {
	page := 1
	if pStr := r.URL.Query().Get("page"); pStr != "" {
		if p, err := strconv.Atoi(pStr); err == nil && p >= 1 {
			page = p
		}
	}
	return page
}

// Paginate returns the window [(page-1)*QuestionsPerPage, page*QuestionsPerPage)
// of items. Pages past the end yield an empty, non-nil slice.
func Paginate[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	if page-1 > len(items)/QuestionsPerPage {
		return []T{}
	}

	start := (page - 1) * QuestionsPerPage
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}

	return append(make([]T, 0, end-start), items[start:end]...)
}
