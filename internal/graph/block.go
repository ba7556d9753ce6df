// Package graph holds the block graph: the ordered, append-only set of blocks,
// their parent links and their positions.
//
// The Store is the single owner of block state. Every mutation swaps in a new
// Snapshot; snapshots handed out earlier are never modified, so a renderer can
// compare them to see exactly what changed.
package graph

import (
	"errors"
	"image"
)

var (
	// ErrUnknownParent is returned by AddChild when the parent id is not in the graph.
	ErrUnknownParent = errors.New("unknown parent reference")
	// ErrUnknownBlock is returned by UpdatePosition when the id is not in the graph.
	ErrUnknownBlock = errors.New("unknown block reference")
)

// Block is a node on the canvas. Position is the top-left corner in cells.
type Block struct {
	ID       string
	ParentID string
	Position image.Point
}

// HasParent reports whether b is a non-root block.
func (b Block) HasParent() bool {
	return b.ParentID != ""
}

// Bounds returns the block's bounding box for the given block size.
func (b Block) Bounds(size image.Point) image.Rectangle {
	return image.Rectangle{Min: b.Position, Max: b.Position.Add(size)}
}
