package main

// ResizeState drags one corner of every selected shape. It listens to the
// global release signal as well as normal dispatch so the gesture ends
// even when the pointer is released outside the canvas.
type ResizeState struct {
	idle
	e        *Editor
	handle   HandlePos
	grips    map[int]Grip
	last     Point
	resizing bool
	gesture  *gestureCommand
	release  func()
}

func newResizeState(e *Editor, h HandlePos, anchor Point) *ResizeState {
	return &ResizeState{
		e:        e,
		handle:   h,
		grips:    e.selected.Grips(h),
		last:     anchor,
		resizing: true,
		gesture:  newGestureCommand(e, e.selected.IDs()),
	}
}

func (s *ResizeState) Kind() StateKind { return StateResize }

func (s *ResizeState) Handle() HandlePos { return s.handle }

func (s *ResizeState) Enter() {
	s.release = s.e.OnPointerRelease(s.finish)
}

// Exit drops the release listener. It runs on every way out of the state,
// including a mode switch in the middle of a drag.
func (s *ResizeState) Exit() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.gesture.commit()
}

func (s *ResizeState) PointerDown(p Point) {
	s.resizing = false
}

func (s *ResizeState) PointerMove(p Point) {
	if !s.resizing {
		return
	}
	dx, dy := p.X-s.last.X, p.Y-s.last.Y
	if dx == 0 && dy == 0 {
		return
	}
	s.e.selected.ResizeSelected(dx, dy, s.grips)
	s.last = p
}

func (s *ResizeState) PointerUp() {
	s.finish()
}

func (s *ResizeState) finish() {
	s.resizing = false
	if s.e.state == State(s) {
		s.e.setState(newSelectState(s.e))
	}
}

func (s *ResizeState) CurrentShapes() []Shape {
	return s.e.shapes.Shapes()
}
