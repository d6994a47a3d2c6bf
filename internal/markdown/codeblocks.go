package markdown

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// CopyResetDelayMillis is how long the copy button shows its result before
// reverting to its idle label.
const CopyResetDelayMillis = 2000

const (
	CopyLabelIdle    = "📋 Copy"
	CopyLabelCopied  = "✅ Copied!"
	CopyLabelFailed  = "❌ Failed"
	CopyButtonClass  = "copy-code-btn"
	CodeWrapperClass = "code-block-wrapper"
	copyButtonAria   = "Copy code to clipboard"
)

const codeBlockRendererPriority = 500

var (
	codeWrapperOpen  = `<div class="` + CodeWrapperClass + `">`
	copyButtonMarkup = `<button class="` + CopyButtonClass + `" aria-label="` + copyButtonAria +
		`" data-reset-ms="` + strconv.Itoa(CopyResetDelayMillis) + `">` + CopyLabelIdle + `</button>`
)

// CountCodeBlocks reports how many copy-button wrappers html carries.
func CountCodeBlocks(html []byte) int {
	return bytes.Count(html, []byte(codeWrapperOpen+copyButtonMarkup))
}

func openCodeBlock(w util.BufWriter) {
	_, _ = w.WriteString(codeWrapperOpen)
	_, _ = w.WriteString(copyButtonMarkup)
}

func closeCodeBlock(w util.BufWriter) {
	_, _ = w.WriteString("</div>\n")
}

func openPlainCode(w util.BufWriter, language []byte) {
	_, _ = w.WriteString("<pre><code")
	if len(language) > 0 {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML(language))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
}

// wrapHighlightedBlock is the highlighting wrapper. Chroma writes its own
// <pre><code> for highlighted blocks; the plain fallback expects the wrapper
// to open and close them.
func wrapHighlightedBlock(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	if entering {
		openCodeBlock(w)
		if !ctx.Highlighted() {
			language, _ := ctx.Language()
			openPlainCode(w, language)
		}
		return
	}
	if !ctx.Highlighted() {
		_, _ = w.WriteString("</code></pre>\n")
	}
	closeCodeBlock(w)
}

// codeBlockRenderer wraps indented code blocks, and fenced ones when
// highlighting is off.
type codeBlockRenderer struct {
	fenced bool
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	if r.fenced {
		reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	}
}

func (r *codeBlockRenderer) renderCodeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		closeCodeBlock(w)
		return ast.WalkContinue, nil
	}

	var language []byte
	if fenced, ok := n.(*ast.FencedCodeBlock); ok {
		language = fenced.Language(source)
	}
	openCodeBlock(w)
	openPlainCode(w, language)
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	return ast.WalkContinue, nil
}

type copyButtons struct {
	fenced bool
}

func (e copyButtons) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&codeBlockRenderer{fenced: e.fenced}, codeBlockRendererPriority),
	))
}
