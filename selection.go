package main

// SelectedShapeModel tracks which shapes are selected, by id, in the order
// they were selected. It never owns shape data; every lookup goes through
// the ShapeModel.
type SelectedShapeModel struct {
	shapes *ShapeModel
	ids    []int

	onChange func()
}

func NewSelectedShapeModel(shapes *ShapeModel) *SelectedShapeModel {
	return &SelectedShapeModel{shapes: shapes}
}

func (s *SelectedShapeModel) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *SelectedShapeModel) Len() int {
	return len(s.ids)
}

func (s *SelectedShapeModel) IDs() []int {
	return append([]int(nil), s.ids...)
}

func (s *SelectedShapeModel) Contains(id int) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Shapes resolves the selection in selection order, skipping stale ids.
func (s *SelectedShapeModel) Shapes() []Shape {
	out := make([]Shape, 0, len(s.ids))
	for _, id := range s.ids {
		if shape, ok := s.shapes.Get(id); ok {
			out = append(out, shape)
		}
	}
	return out
}

// Add selects id. Unknown ids and ids already selected are ignored.
func (s *SelectedShapeModel) Add(id int) {
	if !s.shapes.Has(id) || s.Contains(id) {
		return
	}
	s.ids = append(s.ids, id)
	s.changed()
}

// Set replaces the selection, dropping unknown and duplicate ids.
func (s *SelectedShapeModel) Set(ids []int) {
	next := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] || !s.shapes.Has(id) {
			continue
		}
		seen[id] = true
		next = append(next, id)
	}
	if equalIDs(next, s.ids) {
		return
	}
	s.ids = next
	s.changed()
}

func (s *SelectedShapeModel) Clear() {
	if len(s.ids) == 0 {
		return
	}
	s.ids = nil
	s.changed()
}

// Prune drops ids that no longer resolve.
func (s *SelectedShapeModel) Prune() {
	kept := s.ids[:0]
	pruned := false
	for _, id := range s.ids {
		if s.shapes.Has(id) {
			kept = append(kept, id)
		} else {
			pruned = true
		}
	}
	s.ids = kept
	if pruned {
		s.changed()
	}
}

func (s *SelectedShapeModel) MoveSelected(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	for _, id := range s.ids {
		s.shapes.Mutate(id, func(shape Shape) { shape.Move(dx, dy) })
	}
}

// Grips takes the grip of every selected shape for handle h.
func (s *SelectedShapeModel) Grips(h HandlePos) map[int]Grip {
	grips := make(map[int]Grip, len(s.ids))
	for _, shape := range s.Shapes() {
		grips[shape.ID()] = gripFor(shape.Start(), shape.End(), h)
	}
	return grips
}

// ResizeSelected drags the gripped corner of every selected shape by
// (dx, dy). Shapes without a grip are left alone. Groups map the change
// proportionally onto their members.
func (s *SelectedShapeModel) ResizeSelected(dx, dy float64, grips map[int]Grip) {
	if dx == 0 && dy == 0 {
		return
	}
	for _, id := range s.ids {
		g, ok := grips[id]
		if !ok {
			continue
		}
		s.shapes.Mutate(id, func(shape Shape) { shape.Resize(dx, dy, g) })
	}
}

// Bounds is the union of the selected shapes' bounds.
func (s *SelectedShapeModel) Bounds() (Rect, bool) {
	shapes := s.Shapes()
	if len(shapes) == 0 {
		return Rect{}, false
	}
	r := shapes[0].Bounds()
	for _, shape := range shapes[1:] {
		r = r.Union(shape.Bounds())
	}
	return r, true
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
