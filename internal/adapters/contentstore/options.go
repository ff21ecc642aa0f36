package contentstore

import (
	"net/http"
	"strings"

	"github.com/okian/folio/pkg/logger"
)

// Option configures a Client.
type Option func(*Client)

// WithProjectID sets the project whose API host is queried.
func WithProjectID(id string) Option {
	return func(c *Client) {
		c.projectID = strings.TrimSpace(id)
	}
}

// WithDataset sets the dataset name.
func WithDataset(dataset string) Option {
	return func(c *Client) {
		if dataset = strings.TrimSpace(dataset); dataset != "" {
			c.dataset = dataset
		}
	}
}

// WithAPIVersion sets the dated API version, with or without a leading "v".
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version = strings.TrimPrefix(strings.TrimSpace(version), "v"); version != "" {
			c.apiVersion = version
		}
	}
}

// WithToken sets a read token. Public datasets need none.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithCDN selects the cached API host.
func WithCDN(enabled bool) Option {
	return func(c *Client) {
		c.useCDN = enabled
	}
}

// WithBaseURL overrides the host derived from the project id.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithHTTPClient sets the base HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.base = hc
		}
	}
}

// WithLogger sets the logger used for query failures.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}
