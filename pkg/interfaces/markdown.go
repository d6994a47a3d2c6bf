package interfaces

// MarkdownParser converts a Markdown body (frontmatter already removed) into
// HTML. Parser instances are reusable and safe for concurrent use.
type MarkdownParser interface {
	// Parse renders Markdown using the parser defaults.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions renders Markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions toggles Markdown rendering behaviour. Names stay plain so the
// struct can be filled from TOML config or CLI flags.
type ParseOptions struct {
	// Extensions lists goldmark extensions by name ("gfm", "linkify", ...).
	// An empty list enables GFM, linkify and task lists.
	Extensions []string
	// HardWraps renders single newlines inside paragraphs as <br>.
	HardWraps bool
	// SafeMode drops raw HTML from the output.
	SafeMode bool
	// Highlight enables chroma syntax highlighting for fenced code.
	Highlight bool
	// HighlightStyle names the chroma style; empty uses "github".
	HighlightStyle string
	// CopyButtons wraps every code block in a container with a copy button.
	CopyButtons bool
}
