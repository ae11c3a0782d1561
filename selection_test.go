package main

import (
	"reflect"
	"testing"
)

func TestSelectionOnlyHoldsKnownIDs(t *testing.T) {
	m := NewShapeModel()
	ids := addRects(m, 3)
	sel := NewSelectedShapeModel(m)

	sel.Set([]int{ids[2], 99, ids[0], ids[2]})
	if want := []int{ids[2], ids[0]}; !reflect.DeepEqual(sel.IDs(), want) {
		t.Fatalf("expected %v, got %v", want, sel.IDs())
	}
	sel.Add(100)
	if sel.Contains(100) {
		t.Error("unknown id should not be added")
	}

	m.Remove(ids[2])
	if got := len(sel.Shapes()); got != 1 {
		t.Errorf("stale id should be skipped, got %d shapes", got)
	}
	sel.Prune()
	if want := []int{ids[0]}; !reflect.DeepEqual(sel.IDs(), want) {
		t.Errorf("expected %v after prune, got %v", want, sel.IDs())
	}
}

func TestSelectionSetSameIsQuiet(t *testing.T) {
	m := NewShapeModel()
	ids := addRects(m, 2)
	sel := NewSelectedShapeModel(m)
	changes := 0
	sel.onChange = func() { changes++ }
	sel.Set(ids)
	sel.Set(ids)
	if changes != 1 {
		t.Errorf("expected 1 change, got %d", changes)
	}
}

func TestMoveSelectedOnlyMovesSelection(t *testing.T) {
	m := NewShapeModel()
	ids := addRects(m, 2)
	sel := NewSelectedShapeModel(m)
	sel.Set(ids[:1])
	sel.MoveSelected(5, 7)
	a, _ := m.Get(ids[0])
	b, _ := m.Get(ids[1])
	if a.Bounds().Min != (Point{5, 7}) {
		t.Errorf("selected shape not moved: %+v", a.Bounds())
	}
	if b.Bounds().Min != (Point{0, 0}) {
		t.Errorf("unselected shape moved: %+v", b.Bounds())
	}
}

func TestSelectionBounds(t *testing.T) {
	m := NewShapeModel()
	a, _ := NewShape(ShapeRectangle, ShapeProps{ID: 1, EndX: 10, EndY: 10})
	b, _ := NewShape(ShapeRectangle, ShapeProps{ID: 2, StartX: 20, StartY: 30, EndX: 40, EndY: 50})
	m.Add(a)
	m.Add(b)
	sel := NewSelectedShapeModel(m)
	if _, ok := sel.Bounds(); ok {
		t.Error("empty selection has no bounds")
	}
	sel.Set([]int{1, 2})
	r, ok := sel.Bounds()
	if !ok || r != (Rect{Point{0, 0}, Point{40, 50}}) {
		t.Errorf("unexpected bounds %+v", r)
	}
}
