package search

import "context"

// Client is the minimal surface of a search backend: a query goes out, an
// ordered list of results comes back.
type Client interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Result is a single item returned by a search.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
