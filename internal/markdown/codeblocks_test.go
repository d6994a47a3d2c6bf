package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

const wrapperPrefix = `<div class="code-block-wrapper"><button class="copy-code-btn" aria-label="Copy code to clipboard" data-reset-ms="2000">📋 Copy</button>`

func TestCopyButtonsWrapHighlightedBlock(t *testing.T) {
	parser := NewGoldmarkParser(DocumentParseOptions())

	html, err := parser.Parse([]byte("```go\npackage main\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := string(html)
	if CountCodeBlocks(html) != 1 {
		t.Fatalf("expected one wrapped block, got %q", got)
	}
	if !strings.HasPrefix(got, wrapperPrefix+"<pre") || !strings.Contains(got, "style=") {
		t.Fatalf("expected wrapper around highlighted pre, got %q", got)
	}
	if !strings.HasSuffix(strings.TrimSpace(got), "</code></pre></div>") &&
		!strings.HasSuffix(strings.TrimSpace(got), "</code></pre>\n</div>") {
		t.Fatalf("expected wrapper closed after the block, got %q", got)
	}
}

func TestCopyButtonsWrapPlainFallback(t *testing.T) {
	parser := NewGoldmarkParser(DocumentParseOptions())

	html, err := parser.Parse([]byte("```nosuchlang\n<b>x</b>\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := wrapperPrefix + `<pre><code class="language-nosuchlang">&lt;b&gt;x&lt;/b&gt;` + "\n</code></pre>\n</div>\n"
	if string(html) != want {
		t.Fatalf("unexpected markup\nwant %q\n got %q", want, html)
	}
}

func TestCopyButtonsWrapIndentedBlock(t *testing.T) {
	parser := NewGoldmarkParser(DocumentParseOptions())

	html, err := parser.Parse([]byte("text\n\n    a := 1 < 2\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := wrapperPrefix + "<pre><code>a := 1 &lt; 2\n</code></pre>\n</div>\n"
	if !strings.Contains(string(html), want) || CountCodeBlocks(html) != 1 {
		t.Fatalf("expected wrapped indented block, got %q", html)
	}
}

func TestCopyButtonsWithoutHighlighting(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{CopyButtons: true})

	html, err := parser.Parse([]byte("```go\nx\n```\n\n    y\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := string(html)
	if CountCodeBlocks(html) != 2 {
		t.Fatalf("expected two wrapped blocks, got %q", got)
	}
	if !strings.Contains(got, wrapperPrefix+`<pre><code class="language-go">x`) {
		t.Fatalf("expected wrapped fenced block, got %q", got)
	}
}

func TestCopyButtonsSkipRawPreWithoutCode(t *testing.T) {
	parser := NewGoldmarkParser(DocumentParseOptions())

	html, err := parser.Parse([]byte("<p>x</p>\n<pre>ascii art, no code element</pre>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := string(html)
	if CountCodeBlocks(html) != 0 || strings.Contains(got, "copy-code-btn") {
		t.Fatalf("raw <pre> must not get a copy button, got %q", got)
	}
	if !strings.Contains(got, "<pre>ascii art, no code element</pre>") {
		t.Fatalf("expected raw block untouched, got %q", got)
	}
}

func TestCopyButtonsDisabled(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{Highlight: true})

	html, err := parser.Parse([]byte("```nosuchlang\nx\n```\n\n    y\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if CountCodeBlocks(html) != 0 || strings.Contains(string(html), "code-block-wrapper") {
		t.Fatalf("expected no wrappers, got %q", html)
	}
}
