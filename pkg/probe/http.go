package probe

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

type HTTPProber struct {
	client *http.Client
}

// Check implements probe.Prober. It issues a HEAD request and falls back
// to GET when the server does not implement HEAD.
func (p *HTTPProber) Check(ctx context.Context, url string) (bool, error) {
	status, err := p.do(ctx, http.MethodHead, url)
	if err != nil {
		return false, errors.WithStack(err)
	}

	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, err = p.do(ctx, http.MethodGet, url)
		if err != nil {
			return false, errors.WithStack(err)
		}
	}

	ok := status >= http.StatusOK && status < http.StatusBadRequest

	return ok, nil
}

func (p *HTTPProber) do(ctx context.Context, method string, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	defer res.Body.Close()

	return res.StatusCode, nil
}

func NewHTTPProber(client *http.Client) *HTTPProber {
	return &HTTPProber{
		client: client,
	}
}

var _ Prober = &HTTPProber{}
