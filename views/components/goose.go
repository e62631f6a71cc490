package components

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"oiesnake/internal/viewmodel"
)

// BoardFragment renders the 64 squares with the tokens standing on them.
func BoardFragment(data viewmodel.BoardFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		h.Raw(`<div class="goose-board">`)
		for _, cell := range data.Cells {
			class := "square"
			if cell.Effect != "" {
				class += " square-" + cell.Effect
			}
			h.Raw(`<div class="` + class + `" data-square="`)
			h.Int(cell.Square)
			h.Raw(`"><span class="square-number">`)
			h.Int(cell.Square)
			h.Raw(`</span>`)
			if cell.Effect != "" {
				h.Raw(`<span class="square-effect">`)
				h.Text(effectLabel(cell))
				h.Raw(`</span>`)
			}
			for _, name := range cell.Tokens {
				h.Raw(`<span class="token" title="`)
				h.Text(name)
				h.Raw(`">`)
				h.Text(initial(name))
				h.Raw(`</span>`)
			}
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}

// PlayersFragment renders the turn order, player states and the roll control.
func PlayersFragment(data viewmodel.PlayersFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		h.Raw(`<div class="box"><h3 class="subtitle">Players</h3><ol>`)
		for _, p := range data.Players {
			if p.Current {
				h.Raw(`<li class="is-current"><strong>`)
				h.Text(p.Name)
				h.Raw(`</strong>`)
			} else {
				h.Raw(`<li>`)
				h.Text(p.Name)
			}
			h.Raw(` on square `)
			h.Int(p.Position)
			if p.SkipTurns > 0 {
				h.Raw(` (skips `)
				h.Int(p.SkipTurns)
				h.Raw(`)`)
			}
			if p.InPrison {
				h.Raw(` (in prison)`)
			}
			h.Raw(`</li>`)
		}
		h.Raw(`</ol>`)
		if data.WinnerName != "" {
			h.Raw(`<p class="title is-5">`)
			h.Text(data.WinnerName)
			h.Raw(` wins!</p>`)
			h.Raw(`<button type="button" class="button is-link" onclick="gooseAction('restart')">Play again</button>`)
		} else {
			h.Raw(`<button type="button" class="button is-primary" onclick="gooseAction('roll')">Roll for `)
			h.Text(data.CurrentName)
			h.Raw(`</button>`)
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}

// LogFragment renders the last turn and the running log, newest first.
func LogFragment(data viewmodel.LogFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		h.Raw(`<div class="box"><h3 class="subtitle">Log</h3>`)
		if len(data.LastEvents) > 0 {
			h.Raw(`<div class="notification is-info is-light">`)
			for _, line := range data.LastEvents {
				h.Raw(`<p>`)
				h.Text(line)
				h.Raw(`</p>`)
			}
			h.Raw(`</div>`)
		}
		h.Raw(`<ul class="goose-log">`)
		for i := len(data.Lines) - 1; i >= 0; i-- {
			h.Raw(`<li>`)
			h.Text(data.Lines[i])
			h.Raw(`</li>`)
		}
		h.Raw(`</ul></div>`)
		return h.Err()
	})
}

func effectLabel(cell viewmodel.BoardCell) string {
	switch cell.Effect {
	case "goose", "hotel", "prison", "final":
		return cell.Effect
	default:
		return cell.Effect + " to " + strconv.Itoa(cell.Target)
	}
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
