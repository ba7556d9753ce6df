package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"blockboard/internal/connector"
	"blockboard/internal/graph"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("nothing to export")

// Pixels per cell in PNG exports.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

var (
	blockFill = color.RGBA{R: 0xec, G: 0x48, B: 0x99, A: 0xff}
	paperFill = color.RGBA{R: 0xfc, G: 0xe7, B: 0xf3, A: 0xff}
)

// ExportText writes a plain render, one row per line, without trailing blanks.
func ExportText(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// Extent returns the cell rectangle covering every block and connector.
func Extent(snap graph.Snapshot, size image.Point) image.Rectangle {
	var r image.Rectangle
	for i := 0; i < snap.Len(); i++ {
		r = r.Union(snap.At(i).Bounds(size))
	}
	for _, link := range connector.Links(snap, size) {
		for _, p := range link.Path.Points() {
			r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
		}
	}
	return r
}

// ExportPNG rasterises the whole graph, not just the visible part, with dashed
// connectors beneath the blocks.
func ExportPNG(w io.Writer, snap graph.Snapshot, size image.Point) error {
	if snap.Len() == 0 {
		return ErrEmpty
	}

	const padding = 2
	bounds := Extent(snap, size).Inset(-padding)
	origin := bounds.Min

	dc := gg.NewContext(int(float64(bounds.Dx())*cellWidth), int(float64(bounds.Dy())*cellHeight))
	dc.SetColor(paperFill)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	px := func(p image.Point) (float64, float64) {
		return float64(p.X-origin.X) * cellWidth, float64(p.Y-origin.Y) * cellHeight
	}

	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.SetDash(4)
	for _, link := range connector.Links(snap, size) {
		for i, p := range link.Path.Points() {
			x, y := px(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}
	dc.SetDash()

	for i := 0; i < snap.Len(); i++ {
		drawBlockPNG(dc, snap.At(i).Bounds(size), i+1, px)
	}

	return dc.EncodePNG(w)
}

func drawBlockPNG(dc *gg.Context, bounds image.Rectangle, index int, px func(image.Point) (float64, float64)) {
	x, y := px(bounds.Min)
	w, h := float64(bounds.Dx())*cellWidth, float64(bounds.Dy())*cellHeight

	dc.SetColor(blockFill)
	dc.DrawRoundedRectangle(x, y, w, h, 4)
	dc.Fill()

	// index badge in the top-left corner
	dc.SetColor(color.White)
	dc.DrawCircle(x+cellWidth*1.5, y+cellHeight*0.75, cellHeight*0.5)
	dc.Fill()
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(strconv.Itoa(index), x+cellWidth*1.5, y+cellHeight*0.75, 0.5, 0.35)

	ctl := ControlBounds(bounds)
	cx, cy := px(ctl.Min)
	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(cx, cy, float64(ctl.Dx())*cellWidth, cellHeight, 3)
	dc.Fill()
	dc.SetColor(color.Black)
	dc.DrawStringAnchored("+", cx+float64(ctl.Dx())*cellWidth/2, cy+cellHeight/2, 0.5, 0.35)
}
