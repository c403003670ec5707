package tui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Kale Café Admin

Interactive panel for the café's menu service. Everything here is also
available as scriptable subcommands (` + "`kale-admin --help`" + `).

## Navigation

| Key | Action |
|-----|--------|
| enter | open the selected section / next form field |
| esc | back (or cancel a form) |
| r | reload the current list |
| / | filter the current list |
| q, ctrl+c | quit (from the home screen) |

## Editing

| Key | Action |
|-----|--------|
| a | add (category, item, user, image) |
| e | edit the selected entry |
| d | delete the selected entry (asks first) |
| J / K | move the selected category down / up |

Category moves are written straight to the service: every category whose
position changed gets its own order update, then the list is re-read so the
screen always shows what the service actually stored.

## Session

| Key | Action |
|-----|--------|
| L | log out (from the home screen) |

The session is kept under ` + "`~/.kale-admin`" + ` and restored on start. Any
request the service rejects as unauthorized ends the session and returns to
the sign-in screen.
`

func renderHelp(width int) string {
	w := width - 4
	if w < 20 {
		w = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
