package canvas

import (
	"image"
	"strconv"
	"strings"

	"blockboard/internal/connector"
	"blockboard/internal/graph"
)

const (
	dashVertical   = '╎'
	dashHorizontal = '╌'
	pointerRune    = '█'
)

// Options tweak a render.
type Options struct {
	// Active blocks are drawn with a heavy border.
	Active map[string]bool
	// Pointer, when set, is drawn on top of everything.
	Pointer *image.Point
	// Styles colours the output. Nil renders plain runes.
	Styles *Styles
}

type grid struct {
	runes [][]rune
	kinds [][]cellKind
}

func newGrid(width, height int) *grid {
	g := &grid{
		runes: make([][]rune, height),
		kinds: make([][]cellKind, height),
	}
	for y := range g.runes {
		g.runes[y] = make([]rune, width)
		g.kinds[y] = make([]cellKind, width)
		for x := range g.runes[y] {
			g.runes[y][x] = ' '
		}
	}
	return g
}

func (g *grid) set(x, y int, r rune, k cellKind) {
	if y < 0 || y >= len(g.runes) || x < 0 || x >= len(g.runes[y]) {
		return
	}
	g.runes[y][x] = r
	g.kinds[y][x] = k
}

// Render draws the graph into a width x height grid, one string per row.
// Connectors go down first so blocks always cover them.
func Render(snap graph.Snapshot, size image.Point, width, height int, opts Options) []string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := newGrid(width, height)

	for _, link := range connector.Links(snap, size) {
		drawConnector(g, link.Path)
	}
	for i := 0; i < snap.Len(); i++ {
		b := snap.At(i)
		drawBlock(g, b.Bounds(size), i+1, opts.Active[b.ID])
	}
	if opts.Pointer != nil {
		g.set(opts.Pointer.X, opts.Pointer.Y, pointerRune, cellPointer)
	}

	if opts.Styles == nil {
		lines := make([]string, height)
		for y, row := range g.runes {
			lines[y] = string(row)
		}
		return lines
	}
	return g.styled(*opts.Styles)
}

func (g *grid) styled(styles Styles) []string {
	lines := make([]string, len(g.runes))
	for y, row := range g.runes {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && g.kinds[y][x] == g.kinds[y][start] {
				continue
			}
			b.WriteString(styles.of(g.kinds[y][start]).Render(string(row[start:x])))
			start = x
		}
		lines[y] = b.String()
	}
	return lines
}

func drawConnector(g *grid, path connector.Path) {
	exit, elbow, entry := path.Exit, path.Elbow, path.Entry

	step := 1
	if elbow.Y < exit.Y {
		step = -1
	}
	for y := exit.Y; y != elbow.Y; y += step {
		g.set(exit.X, y, dashVertical, cellConnector)
	}

	step = 1
	if entry.X < elbow.X {
		step = -1
	}
	for x := elbow.X; x != entry.X+step; x += step {
		g.set(x, elbow.Y, dashHorizontal, cellConnector)
	}

	if exit.Y != elbow.Y && elbow.X != entry.X {
		g.set(elbow.X, elbow.Y, cornerRune(exit, elbow, entry), cellConnector)
	}
}

// cornerRune picks the box drawing corner for a vertical-then-horizontal bend.
func cornerRune(exit, elbow, entry image.Point) rune {
	down := elbow.Y > exit.Y
	right := entry.X > elbow.X
	switch {
	case down && right:
		return '└'
	case down:
		return '┘'
	case right:
		return '┌'
	default:
		return '┐'
	}
}

func drawBlock(g *grid, bounds image.Rectangle, index int, active bool) {
	corner, horizontal, vertical := '+', '-', '|'
	border := cellBorder
	if active {
		corner, horizontal, vertical = '#', '#', '#'
		border = cellActiveBorder
	}

	x0, y0 := bounds.Min.X, bounds.Min.Y
	x1, y1 := bounds.Max.X-1, bounds.Max.Y-1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				g.set(x, y, corner, border)
			case y == y0 || y == y1:
				g.set(x, y, horizontal, border)
			case x == x0 || x == x1:
				g.set(x, y, vertical, border)
			default:
				g.set(x, y, ' ', cellFill)
			}
		}
	}

	label := strconv.Itoa(index)
	if room := bounds.Dx() - 2; len(label) > room && room >= 0 {
		label = label[:room]
	}
	for i, r := range label {
		g.set(x0+1+i, y0+1, r, cellLabel)
	}

	ctl := ControlBounds(bounds)
	for i, r := range controlText {
		g.set(ctl.Min.X+i, ctl.Min.Y, r, cellControl)
	}
}
