package probe

import (
	"context"
)

type Prober interface {
	Check(ctx context.Context, url string) (bool, error)
}
