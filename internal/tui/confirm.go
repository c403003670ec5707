package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// confirmAction names what a confirmed "y" should do. Carrying an enum plus
// the target id keeps the modal plain data; dispatch happens in Update.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteCategory
	confirmDeleteItem
	confirmDeleteUser
	confirmDeleteImage
	confirmLogout
)

type confirmState struct {
	prompt string
	action confirmAction
	id     string
}

func renderConfirmModal(prompt string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 3)

	body := styleHeader().Render(prompt) + "\n\n" +
		styleMuted().Render("y confirm · n / esc cancel")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(body))
}
