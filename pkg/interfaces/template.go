package interfaces

import (
	"io"
)

// TemplateRenderer executes a named page template. When out writers are
// supplied the result is also streamed to them.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
