package evaluator

// Heap backs reference cells. Cells are keyed by dense integer ids so
// aliasing is observable: two Reference objects with equal ids always
// read and write the same slot.
type Heap struct {
	cells []Object
}

func NewHeap() *Heap {
	return &Heap{}
}

func (h *Heap) Alloc(val Object) int {
	h.cells = append(h.cells, val)
	return len(h.cells) - 1
}

func (h *Heap) Get(id int) Object {
	return h.cells[id]
}

func (h *Heap) Set(id int, val Object) {
	h.cells[id] = val
}

// Size reports the number of cells ever allocated. Cells are never
// reclaimed within a run.
func (h *Heap) Size() int {
	return len(h.cells)
}
