package interfaces

import "context"

// Source fetches raw site artifacts (the JSON index, blogs.json, Markdown
// bodies) by slash-separated path relative to the site root.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}
