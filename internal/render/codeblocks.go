package render

import (
	"strconv"

	"github.com/goliatone/go-folio/internal/markdown"
)

// copyScript handles clicks on the copy buttons the markdown renderer places
// in front of code blocks. Clipboard failures only change the button label.
var copyScript = `document.addEventListener('click', async (event) => {
  const button = event.target.closest('.` + markdown.CopyButtonClass + `');
  if (!button) { return; }
  const pre = button.parentElement.querySelector('pre');
  const code = pre ? (pre.querySelector('code') || pre) : null;
  const reset = Number(button.dataset.resetMs) || ` + strconv.Itoa(markdown.CopyResetDelayMillis) + `;
  try {
    await navigator.clipboard.writeText(code ? code.textContent : '');
    button.textContent = '` + markdown.CopyLabelCopied + `';
  } catch (err) {
    button.textContent = '` + markdown.CopyLabelFailed + `';
  }
  setTimeout(() => { button.textContent = '` + markdown.CopyLabelIdle + `'; }, reset);
});`
