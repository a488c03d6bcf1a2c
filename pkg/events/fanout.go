package events

import (
	"context"
	"errors"
)

// FanOut publishes every event to all of its publishers, nil entries are skipped.
// All publishers are attempted; their errors are joined.
type FanOut []Publisher

func (f FanOut) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
