// Package ui is the Bubble Tea front end: it turns terminal mouse, keyboard
// and focus messages into store and drag operations and draws the canvas.
package ui

import (
	"image"
	"io"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"blockboard/internal/canvas"
	"blockboard/internal/config"
	"blockboard/internal/drag"
	"blockboard/internal/graph"
	"blockboard/internal/pointer"
)

// Model is the Bubble Tea model. The store is the only place block state
// lives; everything else here is view or gesture scratch state.
type Model struct {
	width  int
	height int

	store  *graph.Store
	bus    *pointer.Bus
	drags  *drag.Set
	config *config.Config
	logger *log.Logger
	styles canvas.Styles

	help           bool
	pointerPos     image.Point
	keyPointerDown bool
	errorMessage   string
	successMessage string

	copyText func(string) error
}

// Option configures a Model.
type Option func(*Model)

// WithSize sets the terminal size used before the first WindowSizeMsg.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copyText = fn }
}

// New builds the model around an existing store.
func New(store *graph.Store, cfg *config.Config, logger *log.Logger, opts ...Option) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	bus := &pointer.Bus{}
	m := Model{
		store:    store,
		bus:      bus,
		drags:    drag.NewSet(store, bus, logger),
		config:   cfg,
		logger:   logger,
		styles:   canvas.DefaultStyles(),
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.width > 0 && m.height > 0 {
		store.SetViewport(m.canvasSize())
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.store.SetViewport(m.canvasSize())
		m.ensurePointerInBounds()
		return m, nil

	case tea.BlurMsg:
		// losing focus ends any gesture as if the button had been released
		if active := m.drags.Active(); len(active) > 0 {
			m.logger.Debug("focus lost during drag", "blocks", active)
		}
		m.drags.CancelAll()
		m.keyPointerDown = false
		return m, nil

	case tea.FocusMsg:
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// canvasSize is the drawable area: the terminal minus the status line.
func (m *Model) canvasSize() image.Point {
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	w := m.width
	if w < 1 {
		w = 1
	}
	return image.Pt(w, h)
}

func (m *Model) ensurePointerInBounds() {
	size := m.canvasSize()
	if m.pointerPos.X < 0 {
		m.pointerPos.X = 0
	}
	if m.pointerPos.Y < 0 {
		m.pointerPos.Y = 0
	}
	if m.pointerPos.X >= size.X {
		m.pointerPos.X = size.X - 1
	}
	if m.pointerPos.Y >= size.Y {
		m.pointerPos.Y = size.Y - 1
	}
}

func (m *Model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

// Store returns the block store.
func (m Model) Store() *graph.Store { return m.store }

// Dragging returns the ids of blocks in a gesture.
func (m Model) Dragging() []string { return m.drags.Active() }

// Listeners returns the number of live pointer listeners.
func (m Model) Listeners() int { return m.bus.Len() }
