package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"
)

const defaultExtension = ".md"

// LoaderConfig configures Markdown discovery.
type LoaderConfig struct {
	// Extension selects files by suffix. Defaults to ".md".
	Extension string
}

// Loader discovers and reads Markdown documents from a single directory of
// an fs.FS. Sub-directories are never entered.
type Loader struct {
	fs  fs.FS
	ext string
}

// NewLoader returns a loader reading from filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = defaultExtension
	}
	return &Loader{fs: filesystem, ext: ext}
}

// Extension reports the suffix used for discovery and slug derivation.
func (l *Loader) Extension() string {
	return l.ext
}

// Document is a Markdown file split into frontmatter and body.
type Document struct {
	// Path is slash separated and relative to the loader filesystem.
	Path string
	// Name is the base file name.
	Name string
	// Matter holds the parsed frontmatter and the body.
	Matter Matter
	// HasFrontMatter is false when the file had no leading block.
	HasFrontMatter bool
	LastModified   time.Time
	// Checksum is the SHA-256 of the raw file.
	Checksum []byte
}

// Discover lists files in dir whose names end with the configured
// extension, in lexical order. Directories are skipped even when their name
// matches.
func (l *Loader) Discover(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir = cleanDir(dir)
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("markdown loader list %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), l.ext) {
			continue
		}
		paths = append(paths, path.Join(dir, entry.Name()))
	}
	return paths, nil
}

// LoadFile reads and splits one document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	var modified time.Time
	if info, statErr := fs.Stat(l.fs, name); statErr == nil {
		modified = info.ModTime()
	}

	matter, ok := Split(string(data))
	sum := sha256.Sum256(data)
	return &Document{
		Path:           name,
		Name:           path.Base(name),
		Matter:         matter,
		HasFrontMatter: ok,
		LastModified:   modified,
		Checksum:       sum[:],
	}, nil
}

// Slug strips the extension from the document file name. No other
// normalisation is applied.
func (l *Loader) Slug(doc *Document) string {
	return strings.TrimSuffix(doc.Name, l.ext)
}

func cleanDir(dir string) string {
	dir = strings.TrimSpace(strings.ReplaceAll(dir, "\\", "/"))
	if dir == "" {
		return "."
	}
	return path.Clean(dir)
}
