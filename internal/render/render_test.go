package render

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-folio/internal/blog"
)

// mapSource serves fixed documents by path.
type mapSource map[string]string

func (m mapSource) Fetch(_ context.Context, name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, blog.FetchFailure(fs.ErrNotExist, "fetch "+name)
	}
	return []byte(data), nil
}

// countingSource records every path fetched through it.
type countingSource struct {
	mapSource
	paths []string
}

func (c *countingSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	c.paths = append(c.paths, name)
	return c.mapSource.Fetch(ctx, name)
}
