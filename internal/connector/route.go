// Package connector computes the elbow paths drawn between a child block and
// its parent. Everything here is a pure function of block positions.
package connector

import (
	"image"

	"blockboard/internal/graph"
)

// Path is a three point orthogonal polyline: one vertical segment from the
// parent, then one horizontal segment into the child.
type Path struct {
	Exit  image.Point
	Elbow image.Point
	Entry image.Point
}

// Points returns the polyline vertices in drawing order.
func (p Path) Points() []image.Point {
	return []image.Point{p.Exit, p.Elbow, p.Entry}
}

// Route returns the connector from parent to child.
//
// The line leaves the parent at its horizontal center, through the top edge
// when the child is above the parent and through the bottom edge otherwise.
// It enters the child at its vertical center, through the right edge when the
// child is left of the parent and through the left edge otherwise.
func Route(parent, child image.Rectangle) Path {
	exit := image.Pt((parent.Min.X+parent.Max.X)/2, parent.Max.Y)
	if child.Min.Y < parent.Min.Y {
		exit.Y = parent.Min.Y
	}

	entry := image.Pt(child.Min.X, (child.Min.Y+child.Max.Y)/2)
	if child.Min.X < parent.Min.X {
		entry.X = child.Max.X
	}

	return Path{
		Exit:  exit,
		Elbow: image.Pt(exit.X, entry.Y),
		Entry: entry,
	}
}

// Link is the connector of one non-root block.
type Link struct {
	ChildID  string
	ParentID string
	Path     Path
}

// Links routes every block that has a parent, in creation order.
func Links(snap graph.Snapshot, size image.Point) []Link {
	links := make([]Link, 0, snap.Len())
	for i := 0; i < snap.Len(); i++ {
		child := snap.At(i)
		parent, ok := snap.Parent(child)
		if !ok {
			continue
		}
		links = append(links, Link{
			ChildID:  child.ID,
			ParentID: parent.ID,
			Path:     Route(parent.Bounds(size), child.Bounds(size)),
		})
	}
	return links
}
