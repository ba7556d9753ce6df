package graph

// Snapshot is an immutable view of the graph at one point in time.
// The zero value is an empty graph.
type Snapshot struct {
	blocks  []Block
	index   map[string]int
	version uint64
	changed string
}

// Len returns the number of blocks.
func (s Snapshot) Len() int {
	return len(s.blocks)
}

// At returns the block at creation order i (0-based).
func (s Snapshot) At(i int) Block {
	return s.blocks[i]
}

// Blocks returns a copy of the blocks in creation order.
func (s Snapshot) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Index returns the creation order of id, or -1.
func (s Snapshot) Index(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Get looks up a block by id.
func (s Snapshot) Get(id string) (Block, bool) {
	i := s.Index(id)
	if i < 0 {
		return Block{}, false
	}
	return s.blocks[i], true
}

// Root returns the parentless block.
func (s Snapshot) Root() (Block, bool) {
	for _, b := range s.blocks {
		if !b.HasParent() {
			return b, true
		}
	}
	return Block{}, false
}

// Parent returns b's parent, or false for the root.
func (s Snapshot) Parent(b Block) (Block, bool) {
	if !b.HasParent() {
		return Block{}, false
	}
	return s.Get(b.ParentID)
}

// Children returns the ids of the direct children of id in creation order.
func (s Snapshot) Children(id string) []string {
	var children []string
	for _, b := range s.blocks {
		if b.ParentID == id {
			children = append(children, b.ID)
		}
	}
	return children
}

// Affected returns the ids of the blocks whose incoming connector depends on
// the position of id: id itself when it has a parent, then its children.
func (s Snapshot) Affected(id string) []string {
	b, ok := s.Get(id)
	if !ok {
		return nil
	}
	var ids []string
	if b.HasParent() {
		ids = append(ids, id)
	}
	return append(ids, s.Children(id)...)
}

// Version increases by one with every mutation of the owning store.
func (s Snapshot) Version() uint64 {
	return s.version
}

// Changed returns the id of the block touched by the mutation that produced
// this snapshot.
func (s Snapshot) Changed() string {
	return s.changed
}

func (s Snapshot) withAppended(b Block) Snapshot {
	blocks := make([]Block, len(s.blocks), len(s.blocks)+1)
	copy(blocks, s.blocks)
	blocks = append(blocks, b)

	index := make(map[string]int, len(blocks))
	for k, v := range s.index {
		index[k] = v
	}
	index[b.ID] = len(blocks) - 1

	return Snapshot{blocks: blocks, index: index, version: s.version + 1, changed: b.ID}
}

func (s Snapshot) withBlock(i int, b Block) Snapshot {
	blocks := make([]Block, len(s.blocks))
	copy(blocks, s.blocks)
	blocks[i] = b
	// ids never change, so the index can be shared
	return Snapshot{blocks: blocks, index: s.index, version: s.version + 1, changed: b.ID}
}
