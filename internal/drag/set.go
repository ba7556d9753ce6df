package drag

import (
	"sort"

	"github.com/charmbracelet/log"

	"blockboard/internal/pointer"
)

// Set keeps one independent controller per block.
type Set struct {
	target      Positioner
	bus         *pointer.Bus
	logger      *log.Logger
	controllers map[string]*Controller
}

// NewSet creates an empty set. Controllers share bus and target.
func NewSet(target Positioner, bus *pointer.Bus, logger *log.Logger) *Set {
	return &Set{
		target:      target,
		bus:         bus,
		logger:      logger,
		controllers: make(map[string]*Controller),
	}
}

// Get returns the controller for id, creating it on first use.
func (s *Set) Get(id string) *Controller {
	c, ok := s.controllers[id]
	if !ok {
		c = NewController(id, s.target, s.bus, s.logger)
		s.controllers[id] = c
	}
	return c
}

// Active returns the ids of blocks being dragged, sorted.
func (s *Set) Active() []string {
	var ids []string
	for id, c := range s.controllers {
		if c.State() == Dragging {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// CancelAll ends every running gesture.
func (s *Set) CancelAll() {
	for _, id := range s.Active() {
		s.controllers[id].Cancel()
	}
}
