package probe

import (
	"context"
	"net/http"
)

var defaultProber Prober = NewHTTPProber(http.DefaultClient)

func SetDefault(prober Prober) {
	defaultProber = prober
}

func DefaultProber() Prober {
	return defaultProber
}

func Check(ctx context.Context, url string) (bool, error) {
	return defaultProber.Check(ctx, url)
}
