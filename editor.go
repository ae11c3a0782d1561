package main

import "log"

type EditorConfig struct {
	CanvasWidth    float64
	CanvasHeight   float64
	TemplateWidth  float64
	TemplateHeight float64
	DefaultShape   ShapeType
	DrawColor      string
	ImageURL       string
}

func defaultEditorConfig() EditorConfig {
	return EditorConfig{
		CanvasWidth:    defaultCanvasWidth,
		CanvasHeight:   defaultCanvasHeight,
		TemplateWidth:  defaultTemplateWidth,
		TemplateHeight: defaultTemplateHeight,
		DefaultShape:   defaultShapeType,
		DrawColor:      defaultColor,
	}
}

// Editor owns the shape and selection models and the active interaction
// state. Every input and command goes through it; subscribers hear about
// the results.
type Editor struct {
	observable

	cfg       EditorConfig
	shapes    *ShapeModel
	selected  *SelectedShapeModel
	history   *History
	state     State
	shapeType ShapeType

	// releases is the global pointer-release signal. It is not routed
	// through the active state.
	releases observable

	dirty    bool
	lastMove Point
	hasMove  bool
}

func NewEditor(cfg EditorConfig) *Editor {
	if !validShapeType(cfg.DefaultShape) || cfg.DefaultShape == ShapeGroup {
		cfg.DefaultShape = defaultShapeType
	}
	e := &Editor{
		cfg:       cfg,
		shapes:    NewShapeModel(),
		history:   NewHistory(),
		shapeType: cfg.DefaultShape,
	}
	e.selected = NewSelectedShapeModel(e.shapes)
	e.shapes.onChange = e.markDirty
	e.selected.onChange = e.markDirty
	e.state = newDrawState(e, e.shapeType)
	return e
}

func (e *Editor) ShapeModel() *ShapeModel            { return e.shapes }
func (e *Editor) SelectedModel() *SelectedShapeModel { return e.selected }
func (e *Editor) History() *History                  { return e.history }
func (e *Editor) State() State                       { return e.state }
func (e *Editor) StateKind() StateKind               { return e.state.Kind() }
func (e *Editor) ShapeType() ShapeType               { return e.shapeType }
func (e *Editor) Config() EditorConfig               { return e.cfg }

// OnPointerRelease subscribes fn to the global release signal.
func (e *Editor) OnPointerRelease(fn func()) (cancel func()) {
	return e.releases.Subscribe(func(Event) { fn() })
}

// Shapes is what the surface should paint, including a shape still being
// drawn.
func (e *Editor) Shapes() []Shape {
	return e.state.CurrentShapes()
}

func (e *Editor) SelectedShapes() []Shape {
	return e.selected.Shapes()
}

func (e *Editor) markDirty() {
	e.dirty = true
}

// setState swaps the active state. The outgoing state always gets its
// Exit call, whatever the reason for the switch.
func (e *Editor) setState(s State) {
	prev := e.state
	if prev != nil {
		prev.Exit()
	}
	e.state = s
	log.Printf("state: %s -> %s", kindOf(prev), s.Kind())

	ev := StateChanged{State: s.Kind()}
	if d, ok := s.(*DrawState); ok {
		ev.ShapeType = d.shapeType
	}
	e.notify(ev)
	s.Enter()
	e.markDirty()
}

func kindOf(s State) StateKind {
	if s == nil {
		return ""
	}
	return s.Kind()
}

// flush prunes stale selection entries and publishes one snapshot if
// anything changed since the last flush.
func (e *Editor) flush() {
	e.selected.Prune()
	if !e.dirty {
		return
	}
	e.dirty = false
	e.notify(ShapesUpdated{
		Shapes:   cloneShapes(e.Shapes()),
		Selected: cloneShapes(e.selected.Shapes()),
	})
}

func cloneShapes(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

func (e *Editor) PointerDown(x, y float64) {
	e.pointerDown(Point{X: x, Y: y})
	e.flush()
}

func (e *Editor) PointerMove(x, y float64) {
	e.pointerMove(Point{X: x, Y: y})
	e.flush()
}

func (e *Editor) PointerUp() {
	e.pointerUp()
	e.flush()
}

func (e *Editor) DoubleClick(x, y float64) {
	e.state.DoubleClick(Point{X: x, Y: y})
	e.flush()
}

// ReleasePointer fires the global release signal, for releases that may
// happen outside the canvas.
func (e *Editor) ReleasePointer() {
	e.releases.notify(pointerReleased{})
	e.flush()
}

func (e *Editor) pointerDown(p Point) {
	e.lastMove, e.hasMove = p, true
	e.state.PointerDown(p)
}

// pointerMove drops moves that report the position already handled.
func (e *Editor) pointerMove(p Point) {
	if e.hasMove && p == e.lastMove {
		return
	}
	e.lastMove, e.hasMove = p, true
	e.state.PointerMove(p)
}

func (e *Editor) pointerUp() {
	e.state.PointerUp()
}

func (e *Editor) TypeText(s string) {
	if st, ok := e.state.(*EditTextState); ok {
		st.setText(s)
	}
	e.flush()
}

func (e *Editor) ConfirmText() {
	if st, ok := e.state.(*EditTextState); ok {
		st.confirm()
	}
	e.flush()
}

func (e *Editor) CancelText() {
	if st, ok := e.state.(*EditTextState); ok {
		st.cancel()
	}
	e.flush()
}

// Run builds the command registered under key and executes it.
func (e *Editor) Run(key CommandKey, p Params) error {
	cmd, err := NewCommand(e, key, p)
	if err != nil {
		return err
	}
	e.Execute(cmd)
	return nil
}

func (e *Editor) Execute(cmd Command) {
	e.execute(cmd)
	e.flush()
}

func (e *Editor) execute(cmd Command) {
	cmd.Execute()
	if r, ok := cmd.(reversible); ok && r.reversible() {
		e.history.record(cmd)
	}
}

func (e *Editor) Undo() bool {
	ok := e.history.Undo()
	e.flush()
	return ok
}

func (e *Editor) Redo() bool {
	ok := e.history.Redo()
	e.flush()
	return ok
}

// hitTest checks the current selection first so an already selected
// shape can be grabbed again even when something overlaps it, then every
// shape from the top of the z-order down.
func (e *Editor) hitTest(p Point) (Shape, bool) {
	for _, s := range e.selected.Shapes() {
		if s.Contains(p) {
			return s, true
		}
	}
	return e.topmostAt(p, nil)
}

// topmostAt returns the highest shape containing p that match accepts.
func (e *Editor) topmostAt(p Point, match func(Shape) bool) (Shape, bool) {
	shapes := e.shapes.Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		s := shapes[i]
		if s.Contains(p) && (match == nil || match(s)) {
			return s, true
		}
	}
	return nil, false
}

// HandleAt reports the resize handle of the selection bounds within
// tolerance of p.
func (e *Editor) HandleAt(p Point, tolerance float64) (HandlePos, bool) {
	r, ok := e.selected.Bounds()
	if !ok {
		return "", false
	}
	for _, h := range []HandlePos{HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft} {
		c := r.Corner(h)
		if abs(p.X-c.X) <= tolerance && abs(p.Y-c.Y) <= tolerance {
			return h, true
		}
	}
	return "", false
}

// Band returns the rubber-band rectangle while one is being dragged.
func (e *Editor) Band() (Rect, bool) {
	if s, ok := e.state.(*SelectState); ok && s.selecting {
		return rectOf(s.start, s.end), true
	}
	return Rect{}, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

type pointerReleased struct{}

func (pointerReleased) Kind() EventKind { return "POINTER_RELEASED" }
