package main

import "log"

// State interprets pointer input for one kind of gesture. Exactly one is
// active at a time; the Editor calls Enter when it becomes active and Exit
// when it is replaced, on every path.
type State interface {
	Kind() StateKind
	Enter()
	Exit()
	PointerDown(p Point)
	PointerMove(p Point)
	PointerUp()
	DoubleClick(p Point)
	CurrentShapes() []Shape
}

// idle supplies no-op hooks for states that do not need them.
type idle struct{}

func (idle) Enter()              {}
func (idle) Exit()               {}
func (idle) DoubleClick(p Point) {}

type DrawState struct {
	idle
	e         *Editor
	shapeType ShapeType
	start     Point
	end       Point
	drawing   bool
	preview   Shape
}

func newDrawState(e *Editor, t ShapeType) *DrawState {
	return &DrawState{e: e, shapeType: t}
}

func (s *DrawState) Kind() StateKind { return StateDraw }

func (s *DrawState) ShapeType() ShapeType { return s.shapeType }

func (s *DrawState) PointerDown(p Point) {
	s.start, s.end = p, p
	s.drawing = true
	s.preview = nil
	s.e.selected.Clear()
}

func (s *DrawState) PointerMove(p Point) {
	if !s.drawing || p == s.end {
		return
	}
	s.end = p
	shape, err := s.build(s.e.shapes.PeekID())
	if err != nil {
		log.Printf("draw: %v", err)
		return
	}
	s.preview = shape
	s.e.markDirty()
}

// PointerUp commits the shape through a command. A press without any
// movement leaves nothing behind.
func (s *DrawState) PointerUp() {
	if !s.drawing {
		return
	}
	s.drawing = false
	if s.preview == nil {
		return
	}
	s.preview = nil
	shape, err := s.build(s.e.shapes.NextID())
	if err != nil {
		log.Printf("draw: %v", err)
		return
	}
	s.e.execute(&addShapeCommand{e: s.e, shape: shape, index: -1})
}

func (s *DrawState) build(id int) (Shape, error) {
	shape, err := NewShape(s.shapeType, ShapeProps{
		ID:       id,
		StartX:   s.start.X,
		StartY:   s.start.Y,
		EndX:     s.end.X,
		EndY:     s.end.Y,
		ImageURL: s.e.cfg.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	if c := s.e.cfg.DrawColor; c != "" {
		// Not every shape has a fill; those keep their defaults.
		_ = shape.SetProperty(PropColor, c)
	}
	return shape, nil
}

func (s *DrawState) CurrentShapes() []Shape {
	shapes := s.e.shapes.Shapes()
	if s.drawing && s.preview != nil {
		shapes = append(shapes, s.preview)
	}
	return shapes
}

type SelectState struct {
	idle
	e         *Editor
	start     Point
	end       Point
	selecting bool
}

func newSelectState(e *Editor) *SelectState {
	return &SelectState{e: e}
}

func (s *SelectState) Kind() StateKind { return StateSelect }

// PointerDown grabs the shape under p and hands off to the move state, or
// starts a rubber band on empty canvas.
func (s *SelectState) PointerDown(p Point) {
	if hit, ok := s.e.hitTest(p); ok {
		if !s.e.selected.Contains(hit.ID()) {
			s.e.selected.Set([]int{hit.ID()})
		}
		s.e.setState(newMoveState(s.e, p))
		return
	}
	s.e.selected.Clear()
	s.start, s.end = p, p
	s.selecting = true
}

func (s *SelectState) PointerMove(p Point) {
	if !s.selecting || p == s.end {
		return
	}
	s.end = p
	s.selectBand()
	s.e.markDirty()
}

// selectBand recomputes the selection from scratch for the current band.
func (s *SelectState) selectBand() {
	band := rectOf(s.start, s.end)
	var ids []int
	for _, shape := range s.e.shapes.Shapes() {
		if shape.Bounds().Intersects(band) {
			ids = append(ids, shape.ID())
		}
	}
	s.e.selected.Set(ids)
}

func (s *SelectState) PointerUp() {
	if s.selecting {
		s.selecting = false
		s.e.markDirty()
	}
}

func (s *SelectState) DoubleClick(p Point) {
	hit, ok := s.e.topmostAt(p, func(shape Shape) bool {
		return shape.Type() == ShapeText
	})
	if !ok {
		return
	}
	s.e.selected.Set([]int{hit.ID()})
	s.e.setState(newEditTextState(s.e, hit.ID()))
}

func (s *SelectState) CurrentShapes() []Shape {
	return s.e.shapes.Shapes()
}

// MoveState drags the selection. Like ResizeState it also ends on the
// global release signal, so a drag released off the canvas does not
// carry over into the next press.
type MoveState struct {
	idle
	e       *Editor
	last    Point
	moving  bool
	gesture *gestureCommand
	release func()
}

func newMoveState(e *Editor, anchor Point) *MoveState {
	return &MoveState{
		e:       e,
		last:    anchor,
		moving:  true,
		gesture: newGestureCommand(e, e.selected.IDs()),
	}
}

func (s *MoveState) Kind() StateKind { return StateMove }

func (s *MoveState) Enter() {
	s.release = s.e.OnPointerRelease(s.finish)
}

// PointerDown re-anchors the drag.
func (s *MoveState) PointerDown(p Point) {
	s.last = p
	s.moving = true
}

func (s *MoveState) PointerMove(p Point) {
	if !s.moving {
		return
	}
	dx, dy := p.X-s.last.X, p.Y-s.last.Y
	if dx == 0 && dy == 0 {
		return
	}
	s.last = p
	s.e.selected.MoveSelected(dx, dy)
}

func (s *MoveState) PointerUp() {
	s.finish()
}

func (s *MoveState) finish() {
	s.moving = false
	if s.e.state == State(s) {
		s.e.setState(newSelectState(s.e))
	}
}

// Exit drops the release listener and records the whole drag as one undo
// step.
func (s *MoveState) Exit() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.gesture.commit()
}

func (s *MoveState) CurrentShapes() []Shape {
	return s.e.shapes.Shapes()
}
