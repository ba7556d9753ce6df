package ui

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"

	"blockboard/internal/canvas"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	if d, ok := pointerSteps[key]; ok {
		m.movePointer(d)
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		m.drags.CancelAll()
		return m, tea.Quit
	case "?":
		m.help = true
	case " ":
		m.clearMessages()
		m.togglePointer()
	case "esc":
		if m.keyPointerDown {
			m.togglePointer()
		}
	case "a":
		m.clearMessages()
		hit := canvas.HitTest(m.store.Snapshot(), m.store.Size(), m.pointerPos)
		if hit.Target == canvas.TargetNone {
			m.errorMessage = "No block under pointer"
			return m, nil
		}
		m.addChild(hit.Block.ID)
	case "p":
		m.exportPNG()
	case "t":
		m.exportText()
	case "y":
		m.copyToClipboard()
	}
	return m, nil
}

var pointerSteps = map[string]image.Point{
	"h": {-1, 0}, "left": {-1, 0}, "H": {-2, 0}, "shift+left": {-2, 0},
	"l": {1, 0}, "right": {1, 0}, "L": {2, 0}, "shift+right": {2, 0},
	"k": {0, -1}, "up": {0, -1}, "K": {0, -2}, "shift+up": {0, -2},
	"j": {0, 1}, "down": {0, 1}, "J": {0, 2}, "shift+down": {0, 2},
}

// movePointer moves the keyboard pointer by d. While it is held down the
// move is dispatched like a mouse drag.
func (m *Model) movePointer(d image.Point) {
	m.pointerPos = m.pointerPos.Add(d)
	m.ensurePointerInBounds()
	if m.keyPointerDown {
		m.pointerMove(m.pointerPos)
	}
}

// togglePointer presses or releases the keyboard pointer. A press that lands
// on an add-child control is consumed by it and leaves the pointer up.
func (m *Model) togglePointer() {
	if m.keyPointerDown {
		m.keyPointerDown = false
		m.pointerUp(m.pointerPos)
		return
	}
	hit := canvas.HitTest(m.store.Snapshot(), m.store.Size(), m.pointerPos)
	m.pointerDown(m.pointerPos)
	m.keyPointerDown = hit.Target != canvas.TargetControl
}
