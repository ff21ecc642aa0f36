// Package manifest renders the web-app manifest from its template.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Placeholder is replaced with the author name everywhere in the template.
const Placeholder = "__AUTHOR_NAME__"

// DefaultAuthor is used when no author name is configured.
const DefaultAuthor = "Default Name"

// ErrInvalidManifest reports a rendered manifest that is not valid JSON.
var ErrInvalidManifest = errors.New("invalid manifest")

// Render substitutes author into every placeholder. The author is JSON-escaped
// so names with quotes keep the manifest valid.
func Render(template []byte, author string) ([]byte, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		author = DefaultAuthor
	}
	quoted, err := json.Marshal(author)
	if err != nil {
		return nil, fmt.Errorf("encode author: %w", err)
	}
	escaped := quoted[1 : len(quoted)-1]

	out := bytes.ReplaceAll(template, []byte(Placeholder), escaped)
	if !json.Valid(out) {
		return nil, ErrInvalidManifest
	}
	return out, nil
}
