package main

// ShapeModel is the canonical, z-ordered list of top-level shapes.
// Index 0 is painted first; the last shape is on top.
type ShapeModel struct {
	shapes map[int]Shape
	order  []int
	nextID int

	// onChange fires after every mutation.
	onChange func()
}

func NewShapeModel() *ShapeModel {
	return &ShapeModel{
		shapes: make(map[int]Shape),
		order:  make([]int, 0),
		nextID: 1,
	}
}

// NextID hands out a fresh id. Ids are never reused, not even after Clear.
func (m *ShapeModel) NextID() int {
	id := m.nextID
	m.nextID++
	return id
}

// PeekID returns the id NextID will hand out without consuming it.
func (m *ShapeModel) PeekID() int {
	return m.nextID
}

func (m *ShapeModel) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}

func (m *ShapeModel) Len() int {
	return len(m.order)
}

func (m *ShapeModel) Get(id int) (Shape, bool) {
	s, ok := m.shapes[id]
	return s, ok
}

func (m *ShapeModel) Has(id int) bool {
	_, ok := m.shapes[id]
	return ok
}

// Shapes returns the shapes in z-order. The slice is a copy; the shapes
// are not.
func (m *ShapeModel) Shapes() []Shape {
	out := make([]Shape, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.shapes[id])
	}
	return out
}

func (m *ShapeModel) IDs() []int {
	return append([]int(nil), m.order...)
}

func (m *ShapeModel) IndexOf(id int) int {
	for i, v := range m.order {
		if v == id {
			return i
		}
	}
	return -1
}

// Add appends s on top of every other shape.
func (m *ShapeModel) Add(s Shape) {
	m.Insert(len(m.order), s)
}

// Insert places s at index, clamped to the valid range. A shape whose id
// is already present replaces the old entry in place.
func (m *ShapeModel) Insert(index int, s Shape) {
	id := s.ID()
	if id >= m.nextID {
		m.nextID = id + 1
	}
	if _, ok := m.shapes[id]; ok {
		m.shapes[id] = s
		m.changed()
		return
	}
	index = clampIndex(index, len(m.order))
	m.shapes[id] = s
	m.order = append(m.order, 0)
	copy(m.order[index+1:], m.order[index:])
	m.order[index] = id
	m.changed()
}

// Remove drops id and reports the index it held, or -1.
func (m *ShapeModel) Remove(id int) int {
	index := m.IndexOf(id)
	if index < 0 {
		return -1
	}
	delete(m.shapes, id)
	m.order = append(m.order[:index], m.order[index+1:]...)
	m.changed()
	return index
}

// Replace swaps the shape stored under s.ID() without touching the order.
func (m *ShapeModel) Replace(s Shape) bool {
	if _, ok := m.shapes[s.ID()]; !ok {
		return false
	}
	m.shapes[s.ID()] = s
	m.changed()
	return true
}

func (m *ShapeModel) Clear() {
	m.shapes = make(map[int]Shape)
	m.order = m.order[:0]
	m.changed()
}

// Mutate applies fn to the shape with the given id. A missing id is not
// an error: the shape may have been removed between request and apply.
func (m *ShapeModel) Mutate(id int, fn func(Shape)) bool {
	s, ok := m.shapes[id]
	if !ok {
		return false
	}
	fn(s)
	m.changed()
	return true
}

// MoveTo splices id to index, clamping out-of-range targets.
func (m *ShapeModel) MoveTo(id, index int) bool {
	from := m.IndexOf(id)
	if from < 0 {
		return false
	}
	index = clampIndex(index, len(m.order)-1)
	if index == from {
		return true
	}
	m.order = append(m.order[:from], m.order[from+1:]...)
	m.order = append(m.order, 0)
	copy(m.order[index+1:], m.order[index:])
	m.order[index] = id
	m.changed()
	return true
}

func clampIndex(index, hi int) int {
	if index < 0 {
		return 0
	}
	if index > hi {
		return hi
	}
	return index
}
