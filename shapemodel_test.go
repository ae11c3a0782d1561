package main

import (
	"reflect"
	"testing"
)

func addRects(m *ShapeModel, n int) []int {
	var ids []int
	for i := 0; i < n; i++ {
		s, _ := NewShape(ShapeRectangle, ShapeProps{ID: m.NextID(), EndX: 10, EndY: 10})
		m.Add(s)
		ids = append(ids, s.ID())
	}
	return ids
}

func TestShapeModelOrder(t *testing.T) {
	m := NewShapeModel()
	ids := addRects(m, 3)
	if !reflect.DeepEqual(m.IDs(), ids) {
		t.Fatalf("expected %v, got %v", ids, m.IDs())
	}

	s, _ := NewShape(ShapeEllipse, ShapeProps{ID: m.NextID()})
	m.Insert(-5, s)
	if m.IndexOf(s.ID()) != 0 {
		t.Errorf("negative index should clamp to 0, got %d", m.IndexOf(s.ID()))
	}
	if idx := m.Remove(ids[1]); idx != 2 {
		t.Errorf("expected removed index 2, got %d", idx)
	}
	if m.Remove(99) != -1 {
		t.Error("removing a missing id should report -1")
	}
}

func TestShapeModelMoveToClamps(t *testing.T) {
	m := NewShapeModel()
	ids := addRects(m, 3)
	m.MoveTo(ids[0], 10)
	if want := []int{ids[1], ids[2], ids[0]}; !reflect.DeepEqual(m.IDs(), want) {
		t.Errorf("expected %v, got %v", want, m.IDs())
	}
	m.MoveTo(ids[0], -3)
	if !reflect.DeepEqual(m.IDs(), ids) {
		t.Errorf("expected %v, got %v", ids, m.IDs())
	}
}

func TestShapeModelMutateMissingIsSilent(t *testing.T) {
	m := NewShapeModel()
	changes := 0
	m.onChange = func() { changes++ }
	called := false
	if m.Mutate(42, func(Shape) { called = true }) {
		t.Error("expected false for a missing id")
	}
	if called || changes != 0 {
		t.Error("mutating a missing id should do nothing")
	}
}

func TestShapeModelIDsNotReused(t *testing.T) {
	m := NewShapeModel()
	addRects(m, 2)
	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("expected empty model, got %d", m.Len())
	}
	if id := m.NextID(); id != 3 {
		t.Errorf("expected next id 3, got %d", id)
	}
}

func TestShapeModelInsertExistingReplaces(t *testing.T) {
	m := NewShapeModel()
	ids := addRects(m, 2)
	s, _ := m.Get(ids[0])
	c := s.Clone()
	c.Move(5, 5)
	m.Insert(1, c)
	if m.Len() != 2 || m.IndexOf(ids[0]) != 0 {
		t.Errorf("expected in-place replace, got %v", m.IDs())
	}
	got, _ := m.Get(ids[0])
	if got.Bounds().Min.X != 5 {
		t.Error("stored shape not replaced")
	}
}
