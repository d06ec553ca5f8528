package google

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/bornholm/linksleuth/pkg/search"
	"github.com/pkg/errors"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// MaxResults is the largest page size the Custom Search JSON API accepts.
const MaxResults = 10

// Client implements the search.Client interface using the Google Custom
// Search JSON API.
type Client struct {
	apiKey string
	cx     string
	opts   Options
}

type Options struct {
	Endpoint string
	Num      int64
	Start    int64
}

type OptionFunc func(opts *Options)

// WithEndpoint overrides the API base URL, for example to route requests
// through a proxy.
func WithEndpoint(endpoint string) OptionFunc {
	return func(opts *Options) {
		opts.Endpoint = endpoint
	}
}

// WithNum sets how many results a single query asks for. The API accepts
// values between 1 and MaxResults; anything outside that range falls back
// to MaxResults.
func WithNum(num int64) OptionFunc {
	return func(opts *Options) {
		opts.Num = num
	}
}

// WithStart sets the one-based index of the first result to return, to
// page through a result set.
func WithStart(start int64) OptionFunc {
	return func(opts *Options) {
		opts.Start = start
	}
}

// Search implements the search.Client interface.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	clientOpts := []option.ClientOption{option.WithAPIKey(c.apiKey)}
	if c.opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(c.opts.Endpoint))
	}

	service, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "executing search", slog.String("query", query))

	call := service.Cse.List().Context(ctx)
	call.Q(query)
	call.Cx(c.cx)
	call.Num(c.opts.Num)
	if c.opts.Start > 0 {
		call.Start(c.opts.Start)
	}

	response, err := call.Do()
	if err != nil {
		return nil, errors.WithStack(classify(err))
	}

	var results []search.Result
	for _, item := range response.Items {
		results = append(results, search.Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}

	return results, nil
}

// classify maps errors returned by the API client onto the search package
// error kinds. Responses with a non-2xx status become a RequestError
// carrying the status code, undecodable response bodies become a
// ParseError, everything else a RequestError without a status.
func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &search.RequestError{StatusCode: apiErr.Code, Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &search.ParseError{Err: err}
	}

	return &search.RequestError{Err: err}
}

// NewClient creates a new Google Custom Search API client.
func NewClient(apiKey string, cx string, funcs ...OptionFunc) *Client {
	opts := Options{
		Num: MaxResults,
	}
	for _, fn := range funcs {
		fn(&opts)
	}

	if opts.Num < 1 || opts.Num > MaxResults {
		opts.Num = MaxResults
	}

	return &Client{
		apiKey: apiKey,
		cx:     cx,
		opts:   opts,
	}
}

// Ensure Client implements search.Client
var _ search.Client = &Client{}
