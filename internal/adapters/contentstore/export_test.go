package contentstore

import (
	"context"

	"github.com/tidwall/gjson"
)

var ImageURL = imageURL

// Query exposes the classified-error path to the external test package.
func (c *Client) Query(ctx context.Context, groq string) ([]gjson.Result, error) {
	return c.query(ctx, groq)
}

// BaseURL reports the resolved API host.
func (c *Client) BaseURL() string { return c.baseURL }
