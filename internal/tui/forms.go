package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formModel is a small vertical form: labeled text inputs with focus cycling.
// It reports submit/cancel to the caller; field semantics live in the caller.
type formModel struct {
	title   string
	fields  []formField
	focus   int
	errText string
}

type formField struct {
	label string
	input textinput.Model
}

type fieldSpec struct {
	label       string
	value       string
	placeholder string
	secret      bool
}

func newForm(title string, specs ...fieldSpec) formModel {
	f := formModel{title: title}
	for i, s := range specs {
		in := textinput.New()
		in.Placeholder = s.placeholder
		in.SetValue(s.value)
		in.CharLimit = 256
		in.Width = 38
		if s.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		if i == 0 {
			in.Focus()
		}
		f.fields = append(f.fields, formField{label: s.label, input: in})
	}
	return f
}

func (f *formModel) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// rawValue skips trimming; passwords may legitimately contain spaces.
func (f *formModel) rawValue(i int) string {
	return f.fields[i].input.Value()
}

func (f *formModel) setFocus(i int) tea.Cmd {
	var cmd tea.Cmd
	for j := range f.fields {
		if j == i {
			cmd = f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	f.focus = i
	return cmd
}

// Update advances the form. submitted is true when the operator pressed enter
// on the last field (or ctrl+s anywhere); canceled when they pressed esc.
func (f *formModel) Update(msg tea.KeyMsg) (submitted, canceled bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return false, true, nil
	case "ctrl+s":
		return true, false, nil
	case "tab", "down":
		return false, false, f.setFocus((f.focus + 1) % len(f.fields))
	case "shift+tab", "up":
		return false, false, f.setFocus((f.focus + len(f.fields) - 1) % len(f.fields))
	case "enter":
		if f.focus == len(f.fields)-1 {
			return true, false, nil
		}
		return false, false, f.setFocus(f.focus + 1)
	}
	var c tea.Cmd
	f.fields[f.focus].input, c = f.fields[f.focus].input.Update(msg)
	return false, false, c
}

func (f *formModel) View() string {
	var b strings.Builder
	b.WriteString(styleHeader().Render(f.title))
	b.WriteString("\n\n")
	for i, fld := range f.fields {
		label := fld.label
		if i == f.focus {
			label = lipgloss.NewStyle().Foreground(colorAccent).Render(label)
		} else {
			label = styleMuted().Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(fld.input.View())
		b.WriteString("\n")
	}
	if f.errText != "" {
		b.WriteString("\n")
		b.WriteString(styleError().Render(f.errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("enter next/submit · tab/shift+tab move · esc cancel"))
	return b.String()
}
