package github

import (
	"context"

	"github.com/okian/folio/internal/domain/model"
)

// Fetch exposes the classified-error path to the external test package.
func (c *Client) Fetch(ctx context.Context, username string, count int) ([]model.RepositorySummary, error) {
	return c.fetch(ctx, username, clampCount(count))
}
