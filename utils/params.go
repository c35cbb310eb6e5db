package utils

import (
	"net/http"
	"strconv"
)

type QueryOptions struct {
	Page   int64
	Limit  int64
	Search string
	Sort   string
	Order  string
}

func ParseQueryOptions(r *http.Request, defaultLimit int64) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 10
	}

	return QueryOptions{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	}
}
