package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// HTML writes markup to w, remembering the first write error.
type HTML struct {
	w   io.Writer
	err error
}

// NewHTML wraps w.
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes s unescaped.
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s with HTML escaping.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Int writes n in decimal.
func (h *HTML) Int(n int) {
	h.Raw(strconv.Itoa(n))
}

// Component renders c in place.
func (h *HTML) Component(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error seen.
func (h *HTML) Err() error {
	return h.err
}
