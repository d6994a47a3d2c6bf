package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// WriteRequest describes one artifact write.
type WriteRequest struct {
	Path        string
	Content     []byte
	ContentType string
}

// ArtifactWriter persists build outputs. Implementations must replace the
// target wholesale so readers never observe a partial file.
type ArtifactWriter interface {
	WriteFile(ctx context.Context, req WriteRequest) error
}

// NewFileWriter returns a writer that creates missing parent directories and
// swaps files in atomically with renameio.
func NewFileWriter() ArtifactWriter {
	return fileWriter{}
}

type fileWriter struct{}

func (fileWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("indexer: write requires path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(req.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("indexer: ensure dir %s: %w", dir, err)
	}

	if err := renameio.WriteFile(req.Path, req.Content, 0o644, renameio.WithTempDir(dir), renameio.IgnoreUmask()); err != nil {
		return fmt.Errorf("indexer: replace %s: %w", req.Path, err)
	}
	return nil
}

// EncodeIndex serialises records as a two-space indented JSON array without
// HTML escaping and without a trailing newline.
func EncodeIndex(records any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

type noopWriter struct{}

func (noopWriter) WriteFile(context.Context, WriteRequest) error { return nil }
