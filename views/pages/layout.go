package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"oiesnake/views/components"
)

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<title>`)
		h.Text(title)
		h.Raw(`</title>`)
		h.Raw(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bulma@0.9.4/css/bulma.min.css">`)
		h.Raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.Raw(`</head><body><section class="section"><div class="container">`)
		h.Component(ctx, body)
		h.Raw(`</div></section></body></html>`)
		return h.Err()
	})
}
