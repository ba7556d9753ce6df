package ui

import (
	"errors"
	"image"

	tea "github.com/charmbracelet/bubbletea"

	"blockboard/internal/canvas"
	"blockboard/internal/graph"
	"blockboard/internal/pointer"
)

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if tea.MouseEvent(msg).IsWheel() {
		return m
	}
	p := image.Pt(msg.X, msg.Y)
	m.pointerPos = p
	m.ensurePointerInBounds()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.clearMessages()
			// the mouse takes over from a held keyboard pointer
			m.keyPointerDown = false
			m.pointerDown(p)
		}
	case tea.MouseActionMotion:
		m.pointerMove(p)
	case tea.MouseActionRelease:
		// X10 reports every release as MouseButtonNone
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			m.pointerUp(p)
		}
	}
	return m
}

// pointerDown routes a press to whatever is under p. Every press starts a new
// gesture, so any gesture still running is cancelled first. A press on the
// add-child control is consumed there and never reaches the block body, so it
// cannot start a drag.
func (m *Model) pointerDown(p image.Point) {
	if active := m.drags.Active(); len(active) > 0 {
		m.logger.Debug("stale drag cancelled", "blocks", active)
		m.drags.CancelAll()
	}
	hit := canvas.HitTest(m.store.Snapshot(), m.store.Size(), p)
	switch hit.Target {
	case canvas.TargetControl:
		m.addChild(hit.Block.ID)
		return
	case canvas.TargetBody:
		m.drags.Get(hit.Block.ID).Begin(p, hit.Bounds)
	}
	m.bus.Dispatch(pointer.Event{Kind: pointer.Down, Pos: p})
}

func (m *Model) pointerMove(p image.Point) {
	before := m.store.Snapshot().Version()
	m.bus.Dispatch(pointer.Event{Kind: pointer.Move, Pos: p})

	snap := m.store.Snapshot()
	if snap.Version() != before {
		m.logger.Debug("block moved",
			"block", snap.Index(snap.Changed())+1,
			"to", m.pointerPos,
			"connectors", len(snap.Affected(snap.Changed())))
	}
}

func (m *Model) pointerUp(p image.Point) {
	m.bus.Dispatch(pointer.Event{Kind: pointer.Up, Pos: p})
}

func (m *Model) addChild(parentID string) {
	child, err := m.store.AddChild(parentID)
	if err != nil {
		// unreachable from the canvas; keep going
		if errors.Is(err, graph.ErrUnknownParent) {
			m.logger.Debug("add child ignored", "err", err)
		} else {
			m.logger.Warn("add child failed", "err", err)
		}
		return
	}
	snap := m.store.Snapshot()
	m.logger.Debug("block added",
		"index", snap.Index(child.ID)+1,
		"parent", snap.Index(parentID)+1,
		"at", child.Position)
}
