package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// shared runs fn at most once per key across concurrent callers.
//
// fn runs under a context detached from the caller's cancellation, so one
// caller giving up does not fail the others; the remote client's own timeout
// still bounds it. Each caller waits on its own ctx.
func shared[T any](
	ctx context.Context,
	group *singleflight.Group,
	key string,
	fn func(context.Context) (T, error),
) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailure, key, err)
	}

	detached := context.WithoutCancel(ctx)
	ch := group.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Shared, res.Err
		}
		return res.Val.(T), res.Shared, nil
	case <-ctx.Done():
		return zero, false, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailure, key, ctx.Err())
	}
}
