package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

// Chain tries each lookup in order and returns the first URL found.
type Chain struct {
	lookups []ports.PreviewLookup
	logger  *slog.Logger
}

// NewChain creates a chain over lookups.
func NewChain(logger *slog.Logger, lookups ...ports.PreviewLookup) *Chain {
	return &Chain{lookups: lookups, logger: logger}
}

// Lookup implements ports.PreviewLookup. Errors of the individual lookups
// are joined when none of them succeeds.
func (c *Chain) Lookup(ctx context.Context, title, artist string) (string, error) {
	var errs []error
	for _, l := range c.lookups {
		u, err := l.Lookup(ctx, title, artist)
		if err == nil && u != "" {
			return u, nil
		}
		if err != nil {
			c.logger.Debug("preview lookup miss",
				slog.String("title", title),
				slog.String("lookup", fmt.Sprintf("%T", l)),
				slog.String("error", err.Error()))
			errs = append(errs, err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("%w: no preview found for %q", domain.ErrLookupFailed, title)
	}
	return "", errors.Join(errs...)
}

var _ ports.PreviewLookup = (*Chain)(nil)
