package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"blockboard/internal/canvas"
)

var (
	statusStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#9d174d")).Foreground(lipgloss.Color("#ffffff"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fecaca")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#bbf7d0"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ec4899"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m Model) View() string {
	if m.help {
		return m.helpView()
	}

	active := make(map[string]bool)
	for _, id := range m.drags.Active() {
		active[id] = true
	}
	size := m.canvasSize()
	pos := m.pointerPos
	lines := canvas.Render(m.store.Snapshot(), m.store.Size(), size.X, size.Y, canvas.Options{
		Active:  active,
		Pointer: &pos,
		Styles:  &m.styles,
	})

	return strings.Join(lines, "\n") + "\n" + m.statusLine(size.X)
}

func (m Model) modeString() string {
	if len(m.drags.Active()) > 0 {
		return "DRAG"
	}
	if m.keyPointerDown {
		return "PRESSED"
	}
	return "NORMAL"
}

func (m Model) statusLine(width int) string {
	left := fmt.Sprintf(" %s | blocks: %d | %d,%d | ? help ",
		m.modeString(), m.store.Snapshot().Len(), m.pointerPos.X, m.pointerPos.Y)

	var msg string
	switch {
	case m.errorMessage != "":
		msg = errorStyle.Inherit(statusStyle).Render(m.errorMessage + " ")
	case m.successMessage != "":
		msg = successStyle.Inherit(statusStyle).Render(m.successMessage + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(msg)
	if gap < 0 {
		gap = 0
	}
	return statusStyle.Render(left+strings.Repeat(" ", gap)) + msg
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("blockboard"))
	b.WriteString("\n\n")
	rows := [][2]string{
		{"mouse drag", "Move a block"},
		{"click [+]", "Add a child block"},
		{"h/j/k/l, arrows", "Move the keyboard pointer (Shift: 2x)"},
		{"space", "Press / release the keyboard pointer"},
		{"a", "Add a child to the block under the pointer"},
		{"p", "Export PNG"},
		{"t", "Export text"},
		{"y", "Copy the canvas to the clipboard"},
		{"?", "Toggle this help"},
		{"q, ctrl+c", "Quit"},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-18s %s\n", r[0], r[1])
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press ? or esc to close"))
	return b.String()
}
