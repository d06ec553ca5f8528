package search

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
)

type stubClient struct {
	calls   int
	errs    []error
	results []Result
}

func (s *stubClient) Search(ctx context.Context, query string) ([]Result, error) {
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}

	return s.results, nil
}

var _ Client = &stubClient{}

func TestRetryRecoversFromRateLimit(t *testing.T) {
	stub := &stubClient{
		errs: []error{
			&RequestError{StatusCode: http.StatusTooManyRequests, Err: errors.New("throttled")},
			&RequestError{StatusCode: http.StatusTooManyRequests, Err: errors.New("throttled")},
		},
		results: []Result{{Title: "Cats 101", Link: "http://example.com/cats", Snippet: "About cats"}},
	}

	client := WithRetry(stub, 3, time.Millisecond)

	results, err := client.Search(context.Background(), "cats")
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if stub.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", stub.calls)
	}
	if len(results) != 1 || results[0].Title != "Cats 101" {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	throttled := &RequestError{StatusCode: http.StatusTooManyRequests, Err: errors.New("throttled")}
	stub := &stubClient{
		errs: []error{throttled, throttled, throttled, throttled},
	}

	client := WithRetry(stub, 2, time.Millisecond)

	_, err := client.Search(context.Background(), "cats")
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}

	if stub.calls != 3 {
		t.Errorf("expected 3 attempts (1 + 2 retries), got %d", stub.calls)
	}
	if !IsRateLimited(err) {
		t.Errorf("expected the rate limit error to surface, got %v", err)
	}
}

func TestRetryDoesNotRetryOtherErrors(t *testing.T) {
	stub := &stubClient{
		errs: []error{&RequestError{StatusCode: http.StatusForbidden, Err: errors.New("quota exceeded")}},
	}

	client := WithRetry(stub, 5, time.Millisecond)

	_, err := client.Search(context.Background(), "cats")
	if err == nil {
		t.Fatal("expected the request error to surface")
	}

	if stub.calls != 1 {
		t.Errorf("expected a single attempt, got %d", stub.calls)
	}

	var requestErr *RequestError
	if !errors.As(err, &requestErr) || requestErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected a RequestError with status 403, got %v", err)
	}
}

func TestRetryPassesResultsThrough(t *testing.T) {
	stub := &stubClient{
		results: []Result{
			{Title: "first", Link: "http://example.com/1", Snippet: "one"},
			{Title: "second", Link: "http://example.com/2", Snippet: "two"},
		},
	}

	client := WithRetry(stub, 3, time.Millisecond)

	results, err := client.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if stub.calls != 1 {
		t.Errorf("expected a single attempt, got %d", stub.calls)
	}
	if len(results) != 2 || results[0].Title != "first" || results[1].Title != "second" {
		t.Errorf("expected results in order, got %v", results)
	}
}
