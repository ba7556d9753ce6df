// Package drag turns pointer gestures into block position updates.
//
// Each block gets its own Controller, a two state machine (Idle, Dragging).
// A gesture starts on pointer-down over the block body. From then on the
// controller listens on the viewport-wide pointer bus, so moves and the final
// release are seen even when the pointer has left the block. The listener is
// removed on every way out of the gesture.
package drag

import (
	"image"
	"io"

	"github.com/charmbracelet/log"

	"blockboard/internal/pointer"
)

// State of a drag controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Positioner receives the position updates of a gesture.
type Positioner interface {
	UpdatePosition(id string, p image.Point) error
}

// Controller drives the gesture of a single block. Its offset is scratch state
// for the current gesture only; the positioner stays the owner of positions.
type Controller struct {
	id     string
	target Positioner
	bus    *pointer.Bus
	logger *log.Logger

	state  State
	offset image.Point
	handle pointer.Handle
}

// NewController creates an idle controller for block id.
func NewController(id string, target Positioner, bus *pointer.Bus, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{id: id, target: target, bus: bus, logger: logger}
}

// ID returns the block this controller moves.
func (c *Controller) ID() string { return c.id }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Offset returns the grab offset of the current gesture.
func (c *Controller) Offset() image.Point { return c.offset }

// Begin starts a gesture with the pointer at at, grabbing the block where it
// is currently drawn. A gesture still running, such as one whose release was
// lost, is ended first so the offset always comes from this press.
func (c *Controller) Begin(at image.Point, rendered image.Rectangle) {
	if c.state == Dragging {
		c.logger.Debug("drag restarted", "block", c.id, "stale_offset", c.offset)
		c.end()
	}
	c.offset = at.Sub(rendered.Min)
	c.state = Dragging
	c.handle = c.bus.Listen(c.onPointer)
	c.logger.Debug("drag start", "block", c.id, "pointer", at, "offset", c.offset)
}

// Cancel ends the gesture without a pointer-up. The block stays where the
// last move put it.
func (c *Controller) Cancel() {
	if c.state != Dragging {
		return
	}
	c.logger.Debug("drag cancelled", "block", c.id)
	c.end()
}

func (c *Controller) onPointer(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Move:
		p := ev.Pos.Sub(c.offset)
		if err := c.target.UpdatePosition(c.id, p); err != nil {
			c.logger.Debug("drag update ignored", "block", c.id, "err", err)
		}
	case pointer.Up:
		c.logger.Debug("drag end", "block", c.id, "pointer", ev.Pos)
		c.end()
	}
}

func (c *Controller) end() {
	c.handle.Remove()
	c.handle = pointer.Handle{}
	c.state = Idle
}
