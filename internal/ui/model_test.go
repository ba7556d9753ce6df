package ui

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockboard/internal/config"
	"blockboard/internal/graph"
)

// newTestModel returns a 40x20 model whose root sits at (2,2) with 7x4
// blocks; new children are placed at (20,10).
func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	n := 0
	placed := 0
	store := graph.New(
		graph.WithBlockSize(image.Pt(7, 4)),
		graph.WithIDGenerator(func() string { n++; return fmt.Sprintf("b%d", n) }),
		graph.WithPlacer(graph.PlacerFunc(func(_, _ image.Point) image.Point {
			placed++
			if placed == 1 {
				return image.Pt(2, 2)
			}
			return image.Pt(20, 10)
		})),
	)
	cfg := config.Default()
	cfg.SaveDirectory = t.TempDir()
	opts = append([]Option{WithSize(40, 20), WithClipboard(func(string) error { return nil })}, opts...)
	return New(store, cfg, nil, opts...)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func position(t *testing.T, m Model, id string) image.Point {
	t.Helper()
	p, ok := m.Store().Position(id)
	require.True(t, ok)
	return p
}

func TestMouseDrag(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, press(3, 3))
	assert.Equal(t, []string{"b1"}, m.Dragging())
	assert.Equal(t, 1, m.Listeners())

	// offset is (1,1); every move lands exactly
	for _, p := range []image.Point{{4, 3}, {10, 8}, {15, 12}} {
		m = send(t, m, motion(p.X, p.Y))
		assert.Equal(t, p.Sub(image.Pt(1, 1)), position(t, m, "b1"))
	}

	m = send(t, m, release(15, 12))
	assert.Empty(t, m.Dragging())
	assert.Equal(t, 0, m.Listeners())
	assert.Equal(t, image.Pt(14, 11), position(t, m, "b1"))
}

func TestReleaseOutsideBlockEndsDrag(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, press(3, 3), motion(30, 15), motion(60, 40), release(70, 45))
	assert.Empty(t, m.Dragging())
	assert.Equal(t, 0, m.Listeners())
	assert.Equal(t, image.Pt(59, 39), position(t, m, "b1"))

	m = send(t, m, motion(0, 0))
	assert.Equal(t, image.Pt(59, 39), position(t, m, "b1"))
}

func TestControlClickAddsChildWithoutDrag(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, press(5, 4))
	snap := m.Store().Snapshot()
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, "b1", snap.At(1).ParentID)
	assert.Empty(t, m.Dragging())
	assert.Equal(t, 0, m.Listeners())

	m = send(t, m, motion(30, 18), release(30, 18))
	assert.Equal(t, image.Pt(2, 2), position(t, m, "b1"))
}

func TestPressOnEmptySpace(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, press(35, 1), motion(36, 2), release(36, 2))
	assert.Equal(t, 1, m.Store().Snapshot().Len())
	assert.Equal(t, image.Pt(2, 2), position(t, m, "b1"))
}

func TestRightButtonDoesNothing(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Empty(t, m.Dragging())
}

func TestDragTopmostBlock(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, press(5, 4))
	require.NoError(t, m.Store().UpdatePosition("b2", image.Pt(3, 3)))

	m = send(t, m, press(3, 3))
	assert.Equal(t, []string{"b2"}, m.Dragging())
}

func TestPressDuringLostGestureRegrabs(t *testing.T) {
	m := newTestModel(t)

	// the release of the first press never arrives
	m = send(t, m, press(3, 3), press(6, 5))
	assert.Equal(t, []string{"b1"}, m.Dragging())
	assert.Equal(t, 1, m.Listeners())

	m = send(t, m, motion(10, 10))
	assert.Equal(t, image.Pt(6, 7), position(t, m, "b1"))
}

func TestPressElsewhereDropsLostGesture(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, press(5, 4), release(5, 4))

	m = send(t, m, press(3, 3), press(21, 11), motion(25, 13))
	assert.Equal(t, []string{"b2"}, m.Dragging())
	assert.Equal(t, image.Pt(2, 2), position(t, m, "b1"))
	assert.Equal(t, image.Pt(24, 12), position(t, m, "b2"))
}

func TestMousePressReleasesKeyboardPointer(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, press(5, 4), release(5, 4))

	// keyboard pointer held on the root
	m = send(t, m, key("h"), key("h"), key("k"), key(" "))
	require.Equal(t, []string{"b1"}, m.Dragging())

	m = send(t, m, press(21, 11), motion(25, 13))
	assert.Equal(t, []string{"b2"}, m.Dragging())
	assert.Equal(t, image.Pt(2, 2), position(t, m, "b1"))
	assert.Equal(t, image.Pt(24, 12), position(t, m, "b2"))
	assert.Equal(t, "DRAG", m.modeString())

	m = send(t, m, release(25, 13), key("l"))
	assert.Equal(t, "NORMAL", m.modeString())
	assert.Equal(t, image.Pt(2, 2), position(t, m, "b1"))
	assert.Equal(t, image.Pt(24, 12), position(t, m, "b2"))
}

func TestOtherButtonReleaseKeepsDrag(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, press(3, 3), motion(6, 6))
	m = send(t, m, tea.MouseMsg{X: 6, Y: 6, Action: tea.MouseActionRelease, Button: tea.MouseButtonRight})
	assert.Equal(t, []string{"b1"}, m.Dragging())

	m = send(t, m, motion(8, 8))
	assert.Equal(t, image.Pt(7, 7), position(t, m, "b1"))

	left := tea.MouseMsg{X: 8, Y: 8, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	m = send(t, m, left)
	assert.Empty(t, m.Dragging())
	assert.Equal(t, 0, m.Listeners())
}

func TestBlurCancelsDrag(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, press(3, 3), motion(8, 8), tea.BlurMsg{})
	assert.Empty(t, m.Dragging())
	assert.Equal(t, 0, m.Listeners())
	assert.Equal(t, image.Pt(7, 7), position(t, m, "b1"))

	m = send(t, m, motion(20, 10))
	assert.Equal(t, image.Pt(7, 7), position(t, m, "b1"))
}

func TestKeyboardDrag(t *testing.T) {
	m := newTestModel(t)

	// walk the pointer onto the root label cell at (3,3)
	m = send(t, m, key("l"), key("l"), key("l"), key("j"), key("j"), key("j"))
	m = send(t, m, key(" "))
	assert.Equal(t, []string{"b1"}, m.Dragging())

	m = send(t, m, key("right"), key("L"), key("down"))
	assert.Equal(t, image.Pt(5, 3), position(t, m, "b1"))

	m = send(t, m, key(" "))
	assert.Empty(t, m.Dragging())
	assert.Equal(t, 0, m.Listeners())

	m = send(t, m, key("l"))
	assert.Equal(t, image.Pt(5, 3), position(t, m, "b1"))
}

func TestKeyboardControlPress(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, key("L"), key("L"), key("J"), key("J"), key(" "))
	assert.Equal(t, 2, m.Store().Snapshot().Len())
	assert.Empty(t, m.Dragging())
	assert.Equal(t, "NORMAL", m.modeString())
}

func TestEscReleasesKeyboardPointer(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("L"), key("j"), key("j"), key("j"), key(" "))
	require.Equal(t, []string{"b1"}, m.Dragging())

	m = send(t, m, key("esc"))
	assert.Empty(t, m.Dragging())
}

func TestAddChildKey(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, key("a"))
	assert.Equal(t, 1, m.Store().Snapshot().Len())
	assert.Equal(t, "No block under pointer", m.errorMessage)

	m = send(t, m, key("L"), key("J"), key("a"))
	assert.Equal(t, 2, m.Store().Snapshot().Len())
	assert.Empty(t, m.errorMessage)

	// children of children work the same way
	m = send(t, m, press(22, 11), release(22, 11))
	m = send(t, m, key("a"))
	snap := m.Store().Snapshot()
	require.Equal(t, 3, snap.Len())
}

func TestAddChildUnknownParentIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m.addChild("missing")
	assert.Equal(t, 1, m.Store().Snapshot().Len())
}

func TestWindowSize(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("L"), key("L"), key("L"))

	m = send(t, m, tea.WindowSizeMsg{Width: 4, Height: 3})
	assert.Equal(t, image.Pt(4, 2), m.Store().Viewport())
	assert.Equal(t, image.Pt(3, 0), m.pointerPos)
}

func TestView(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 20)
	assert.Contains(t, view, "[+]")
	assert.Contains(t, lines[19], "NORMAL | blocks: 1")

	m = send(t, m, press(3, 3))
	assert.Contains(t, m.View(), "DRAG")
	assert.Contains(t, m.View(), "#######")
}

func TestHelp(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, key("?"))
	assert.Contains(t, m.View(), "Add a child block")

	m = send(t, m, key("a"))
	assert.Equal(t, 1, m.Store().Snapshot().Len(), "keys are swallowed while help is open")

	m = send(t, m, key("esc"))
	assert.NotContains(t, m.View(), "Add a child block")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCopyToClipboard(t *testing.T) {
	var copied string
	m := newTestModel(t, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))

	m = send(t, m, key("y"))
	assert.Contains(t, copied, "|1    |")
	assert.Contains(t, copied, "| [+] |")
	assert.NotContains(t, copied, "█")
	assert.Equal(t, "Canvas copied to clipboard", m.successMessage)
}

func TestCopyToClipboardError(t *testing.T) {
	m := newTestModel(t, WithClipboard(func(string) error { return errors.New("no clipboard") }))

	m = send(t, m, key("y"))
	assert.Contains(t, m.errorMessage, "no clipboard")
	assert.Contains(t, m.View(), "no clipboard")
}

func TestExports(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, press(5, 4))

	m = send(t, m, key("p"))
	require.Empty(t, m.errorMessage)
	m = send(t, m, key("t"))
	require.Empty(t, m.errorMessage)

	pngs, err := filepath.Glob(filepath.Join(m.config.SaveDirectory, "blockboard-*.png"))
	require.NoError(t, err)
	assert.Len(t, pngs, 1)

	txts, err := filepath.Glob(filepath.Join(m.config.SaveDirectory, "blockboard-*.txt"))
	require.NoError(t, err)
	require.Len(t, txts, 1)
	data, err := os.ReadFile(txts[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "|2    |")
}

func TestExportError(t *testing.T) {
	m := newTestModel(t)
	m.config.SaveDirectory = filepath.Join(m.config.SaveDirectory, "file")
	require.NoError(t, os.WriteFile(m.config.SaveDirectory, nil, 0o644))

	m = send(t, m, key("t"))
	assert.Contains(t, m.errorMessage, "Error exporting text")
	assert.Contains(t, m.errorMessage, "create save directory")
}
