// Package common provides the page shell and HTML helpers shared by UI features.
package common

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// HTML accumulates writes to w and keeps the first error.
type HTML struct {
	w   io.Writer
	err error
}

// NewHTML wraps w.
func NewHTML(w io.Writer) *HTML { return &HTML{w: w} }

// Raw writes markup verbatim.
func (h *HTML) Raw(s string) *HTML {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
	return h
}

// Text writes s escaped for element content or a quoted attribute.
func (h *HTML) Text(s string) *HTML {
	return h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (h *HTML) Attr(name, value string) *HTML {
	return h.Raw(" " + name + `="`).Text(value).Raw(`"`)
}

// JSONAttr writes ` name='json'` for datastar attributes.
func (h *HTML) JSONAttr(name string, v any) *HTML {
	b, err := json.Marshal(v)
	if err != nil {
		if h.err == nil {
			h.err = err
		}
		return h
	}
	return h.Raw(" " + name + "='").Text(string(b)).Raw("'")
}

// Component renders c in place.
func (h *HTML) Component(ctx context.Context, c templ.Component) *HTML {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
	return h
}

// Err returns the first write or render error.
func (h *HTML) Err() error { return h.err }
