package graph

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/google/uuid"
)

// ErrDuplicateID is returned when the id generator hands out an id already in use.
var ErrDuplicateID = errors.New("duplicate block id")

// IDGenerator returns a fresh identifier, unique for the process lifetime.
type IDGenerator func() string

// Placer picks the initial position of a new block so that a block of the
// given size placed there stays inside the viewport.
type Placer interface {
	Place(viewport, size image.Point) image.Point
}

// PlacerFunc adapts a function to Placer.
type PlacerFunc func(viewport, size image.Point) image.Point

func (f PlacerFunc) Place(viewport, size image.Point) image.Point {
	return f(viewport, size)
}

// RandomPlacer places blocks uniformly at random within the viewport.
type RandomPlacer struct {
	rng *rand.Rand
}

// NewRandomPlacer seeds a placer. A zero seed picks a random one.
func NewRandomPlacer(seed uint64) *RandomPlacer {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomPlacer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *RandomPlacer) Place(viewport, size image.Point) image.Point {
	return image.Pt(p.pick(viewport.X-size.X), p.pick(viewport.Y-size.Y))
}

func (p *RandomPlacer) pick(room int) int {
	if room <= 0 {
		return 0
	}
	return p.rng.IntN(room + 1)
}

// Option configures a Store.
type Option func(*Store)

// WithBlockSize sets the fixed size shared by every block.
func WithBlockSize(size image.Point) Option {
	return func(s *Store) { s.size = size }
}

// WithViewport sets the area new blocks are placed in.
func WithViewport(viewport image.Point) Option {
	return func(s *Store) { s.viewport = viewport }
}

// WithIDGenerator replaces the uuid based generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// WithPlacer replaces the random placer.
func WithPlacer(p Placer) Option {
	return func(s *Store) { s.placer = p }
}

// Store owns the block graph. It is not safe for concurrent use; all calls are
// expected to come from the UI event loop.
type Store struct {
	snap     Snapshot
	size     image.Point
	viewport image.Point
	newID    IDGenerator
	placer   Placer
}

// DefaultBlockSize is the block size in cells when none is configured.
var DefaultBlockSize = image.Pt(12, 5)

// New creates a store holding a single root block.
func New(opts ...Option) *Store {
	s := &Store{
		size:     DefaultBlockSize,
		viewport: image.Pt(80, 24),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.placer == nil {
		s.placer = NewRandomPlacer(0)
	}

	root := Block{ID: s.newID(), Position: s.placer.Place(s.viewport, s.size)}
	s.snap = Snapshot{}.withAppended(root)
	return s
}

// Snapshot returns the current graph.
func (s *Store) Snapshot() Snapshot {
	return s.snap
}

// Size returns the block size.
func (s *Store) Size() image.Point {
	return s.size
}

// Viewport returns the placement area.
func (s *Store) Viewport() image.Point {
	return s.viewport
}

// SetViewport changes the placement area for blocks created from now on.
// Existing blocks are not moved.
func (s *Store) SetViewport(viewport image.Point) {
	s.viewport = viewport
}

// AddChild appends a new block under parentID at a placer-chosen position.
// If parentID is unknown the graph is left as is.
func (s *Store) AddChild(parentID string) (Block, error) {
	if _, ok := s.snap.Get(parentID); !ok {
		return Block{}, fmt.Errorf("add child of %q: %w", parentID, ErrUnknownParent)
	}
	id := s.newID()
	if _, taken := s.snap.Get(id); taken || id == "" {
		return Block{}, fmt.Errorf("add child of %q: %w: %q", parentID, ErrDuplicateID, id)
	}

	b := Block{
		ID:       id,
		ParentID: parentID,
		Position: s.placer.Place(s.viewport, s.size),
	}
	s.snap = s.snap.withAppended(b)
	return b, nil
}

// UpdatePosition moves block id to p. Nothing else changes.
// If id is unknown the graph is left as is.
func (s *Store) UpdatePosition(id string, p image.Point) error {
	i := s.snap.Index(id)
	if i < 0 {
		return fmt.Errorf("update position of %q: %w", id, ErrUnknownBlock)
	}
	b := s.snap.At(i)
	b.Position = p
	s.snap = s.snap.withBlock(i, b)
	return nil
}

// Position returns the current position of id.
func (s *Store) Position(id string) (image.Point, bool) {
	b, ok := s.snap.Get(id)
	return b.Position, ok
}
