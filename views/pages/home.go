package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"oiesnake/internal/viewmodel"
	"oiesnake/views/components"
)

const nameSlots = 4

// HomePage renders the create-game form. Previously submitted names are kept
// when the form comes back with an error.
func HomePage(data viewmodel.HomePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<h1 class="title">`)
		h.Text(data.Title)
		h.Raw(`</h1><p class="subtitle">Roll two dice, follow the geese and be the first to land exactly on 63.</p>`)
		if data.Error != "" {
			h.Raw(`<div class="notification is-danger">`)
			h.Text(data.Error)
			h.Raw(`</div>`)
		}
		h.Raw(`<form method="POST" action="/games" class="box">`)
		slots := nameSlots
		if len(data.Names) > slots {
			slots = len(data.Names)
		}
		for i := 0; i < slots; i++ {
			value := ""
			if i < len(data.Names) {
				value = data.Names[i]
			}
			h.Raw(`<div class="field"><label class="label">Player `)
			h.Int(i + 1)
			h.Raw(`</label><div class="control"><input class="input" name="name" maxlength="20" value="`)
			h.Text(value)
			h.Raw(`"></div></div>`)
		}
		h.Raw(`<div class="field"><div class="control"><button type="submit" class="button is-primary">Create game</button></div></div>`)
		h.Raw(`</form>`)
		return h.Err()
	})
	return layout(data.Title, body)
}
