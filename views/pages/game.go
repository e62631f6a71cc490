package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"oiesnake/internal/viewmodel"
	"oiesnake/views/components"
)

// GamePage renders the board, players and log panels and subscribes them to
// the game's event stream.
func GamePage(data viewmodel.GamePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<h1 class="title">`)
		h.Text(data.Title)
		h.Raw(`</h1><p class="help">Share: `)
		h.Text(data.InviteURL)
		h.Raw(`</p>`)
		h.Raw(`<div class="columns" data-game-id="`)
		h.Text(data.GameID)
		h.Raw(`" id="goose-game"><div class="column is-two-thirds"><div id="board">`)
		h.Component(ctx, components.BoardFragment(data.Board))
		h.Raw(`</div></div><div class="column"><div id="players">`)
		h.Component(ctx, components.PlayersFragment(data.Players))
		h.Raw(`</div><div id="log">`)
		h.Component(ctx, components.LogFragment(data.Log))
		h.Raw(`</div></div></div>`)
		h.Raw(`<script src="/static/goose.js"></script>`)
		return h.Err()
	})
	return layout(data.Title, body)
}
