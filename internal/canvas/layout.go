// Package canvas draws the block graph into a terminal cell grid and answers
// which part of which block sits under a given cell.
package canvas

import (
	"image"

	"blockboard/internal/graph"
)

const controlText = "[+]"

// ControlBounds returns the add-child control of a block drawn at bounds.
// It sits centered on the middle row.
func ControlBounds(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	origin := bounds.Min.Add(image.Pt((w-len(controlText))/2, h/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(len(controlText), 1))}
}

// Target is the part of a block that was hit.
type Target int

const (
	TargetNone Target = iota
	TargetBody
	TargetControl
)

func (t Target) String() string {
	switch t {
	case TargetBody:
		return "body"
	case TargetControl:
		return "control"
	default:
		return "none"
	}
}

// Hit is the result of HitTest.
type Hit struct {
	Target Target
	Index  int
	Block  graph.Block
	Bounds image.Rectangle
}

// HitTest finds the topmost block under p. Blocks created later are drawn on
// top, so they win. Connectors are never hit.
func HitTest(snap graph.Snapshot, size, p image.Point) Hit {
	for i := snap.Len() - 1; i >= 0; i-- {
		b := snap.At(i)
		bounds := b.Bounds(size)
		if !p.In(bounds) {
			continue
		}
		target := TargetBody
		if p.In(ControlBounds(bounds)) {
			target = TargetControl
		}
		return Hit{Target: target, Index: i, Block: b, Bounds: bounds}
	}
	return Hit{Target: TargetNone, Index: -1}
}
