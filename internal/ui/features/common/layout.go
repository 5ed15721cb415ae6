package common

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/hrdash/internal/ui/resources"
)

// AppName is shown in the header and page titles.
const AppName = "HR Dashboard"

// Layout wraps body in the full HTML document. The body element opens the
// live-update stream at updatesPath when it is non-empty.
func Layout(title, updatesPath string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		h.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`).
			Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`).
			Raw("<title>").Text(title + " - " + AppName).Raw("</title>").
			Raw(`<link rel="stylesheet"`).Attr("href", resources.StaticPath(resources.Stylesheet)).Raw(">").
			Raw(`<script type="module"`).Attr("src", resources.DatastarScript).Raw("></script>").
			Raw("</head><body")
		if updatesPath != "" {
			h.Attr("data-init", "@get('"+updatesPath+"')")
		}
		h.Raw(`><header class="app-header"><h1>`).Text(AppName).Raw("</h1>").
			Raw(`<span class="status">`).Text(title).Raw("</span></header>").
			Raw("<main>").Component(ctx, body).Raw("</main></body></html>")
		return h.Err()
	})
}

// ErrorBox renders msg as an inline error panel with the given element id.
func ErrorBox(id, msg string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := NewHTML(w)
		h.Raw("<div").Attr("id", id).Raw(` class="error" role="alert">`).Text(msg).Raw("</div>")
		return h.Err()
	})
}
