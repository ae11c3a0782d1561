package main

import (
	"testing"
)

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) record(e Event) { r.events = append(r.events, e) }

func (r *eventRecorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

func (r *eventRecorder) last(kind EventKind) Event {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind() == kind {
			return r.events[i]
		}
	}
	return nil
}

func newTestEditor(t *testing.T) (*Editor, *eventRecorder) {
	t.Helper()
	e := NewEditor(defaultEditorConfig())
	rec := &eventRecorder{}
	e.Subscribe(rec.record)
	return e, rec
}

func drag(e *Editor, x0, y0, x1, y1 float64) {
	e.PointerDown(x0, y0)
	e.PointerMove(x1, y1)
	e.PointerUp()
}

func TestInitialState(t *testing.T) {
	e, _ := newTestEditor(t)
	if e.StateKind() != StateDraw {
		t.Errorf("expected DrawState, got %s", e.StateKind())
	}
	if e.ShapeType() != ShapeRectangle {
		t.Errorf("expected rectangle, got %s", e.ShapeType())
	}
}

func TestDrawThenSelectAndMove(t *testing.T) {
	e, rec := newTestEditor(t)

	e.PointerDown(10, 10)
	e.PointerMove(110, 60)
	if got := len(e.Shapes()); got != 1 {
		t.Fatalf("expected the shape being drawn in the snapshot, got %d", got)
	}
	if e.ShapeModel().Len() != 0 {
		t.Fatal("shape committed before pointer up")
	}
	e.PointerUp()

	shapes := e.ShapeModel().Shapes()
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	id := shapes[0].ID()
	if got := shapes[0].Bounds(); got != (Rect{Point{10, 10}, Point{110, 60}}) {
		t.Errorf("unexpected bounds %+v", got)
	}
	if e.StateKind() != StateDraw {
		t.Errorf("expected to stay in DrawState, got %s", e.StateKind())
	}

	if err := e.Run(CmdSetState, Params{State: StateSelect}); err != nil {
		t.Fatal(err)
	}
	e.PointerDown(50, 30)
	if e.StateKind() != StateMove {
		t.Fatalf("expected MoveState after grabbing a shape, got %s", e.StateKind())
	}
	if !e.SelectedModel().Contains(id) {
		t.Fatal("grabbed shape not selected")
	}
	e.PointerMove(60, 40)
	e.PointerUp()
	if e.StateKind() != StateSelect {
		t.Errorf("expected SelectState after release, got %s", e.StateKind())
	}
	got, _ := e.ShapeModel().Get(id)
	if got.Bounds().Min != (Point{20, 20}) {
		t.Errorf("expected shape moved to (20,20), got %+v", got.Bounds().Min)
	}

	u, ok := rec.last(EventShapesUpdated).(ShapesUpdated)
	if !ok || len(u.Selected) != 1 || u.Selected[0].ID() != id {
		t.Errorf("last snapshot should carry the selection, got %+v", u)
	}

	if !e.Undo() {
		t.Fatal("expected the move to be undoable")
	}
	got, _ = e.ShapeModel().Get(id)
	if got.Bounds().Min != (Point{10, 10}) {
		t.Errorf("undo should restore (10,10), got %+v", got.Bounds().Min)
	}
	if !e.Redo() {
		t.Fatal("expected redo")
	}
	got, _ = e.ShapeModel().Get(id)
	if got.Bounds().Min != (Point{20, 20}) {
		t.Errorf("redo should restore (20,20), got %+v", got.Bounds().Min)
	}
}

func TestDrawWithoutMovementAddsNothing(t *testing.T) {
	e, _ := newTestEditor(t)
	e.PointerDown(10, 10)
	e.PointerUp()
	if e.ShapeModel().Len() != 0 {
		t.Errorf("expected no shape, got %d", e.ShapeModel().Len())
	}
	if e.History().CanUndo() {
		t.Error("nothing should be recorded")
	}
}

func TestMoveIsIdempotentForRepeatedPositions(t *testing.T) {
	e, rec := newTestEditor(t)
	drag(e, 0, 0, 100, 100)
	e.Run(CmdSetState, Params{State: StateSelect})
	id := e.ShapeModel().IDs()[0]

	e.PointerDown(50, 50)
	before := rec.count(EventShapesUpdated)
	e.PointerMove(60, 50)
	e.PointerMove(60, 50)
	e.PointerMove(60, 50)
	if got := rec.count(EventShapesUpdated) - before; got != 1 {
		t.Errorf("expected one update for repeated positions, got %d", got)
	}
	got, _ := e.ShapeModel().Get(id)
	if got.Bounds().Min.X != 10 {
		t.Errorf("expected a single 10px move, got %+v", got.Bounds())
	}
	e.PointerUp()
}

func TestClickWithoutMoveRecordsNothing(t *testing.T) {
	e, _ := newTestEditor(t)
	drag(e, 0, 0, 100, 100)
	e.Run(CmdSetState, Params{State: StateSelect})
	e.PointerDown(50, 50)
	e.PointerUp()
	if got := len(e.History().undoStack); got != 1 {
		t.Errorf("expected only the draw in history, got %d entries", got)
	}
}

func TestBandSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	drag(e, 0, 0, 50, 50)
	drag(e, 200, 200, 250, 250)
	e.Run(CmdSetState, Params{State: StateSelect})
	ids := e.ShapeModel().IDs()

	e.PointerDown(300, 300)
	e.PointerMove(180, 180)
	if band, ok := e.Band(); !ok || band != (Rect{Point{180, 180}, Point{300, 300}}) {
		t.Errorf("unexpected band %+v", band)
	}
	e.PointerUp()
	if _, ok := e.Band(); ok {
		t.Error("band should end on release")
	}
	sel := e.SelectedModel().IDs()
	if len(sel) != 1 || sel[0] != ids[1] {
		t.Errorf("expected only the second shape selected, got %v", sel)
	}

	e.PointerDown(400, 400)
	if e.SelectedModel().Len() != 0 {
		t.Error("pressing empty canvas should clear the selection")
	}
	e.PointerUp()
}

func TestHitTestPrefersSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	drag(e, 0, 0, 100, 100)
	drag(e, 50, 50, 150, 150)
	ids := e.ShapeModel().IDs()
	e.Run(CmdSetState, Params{State: StateSelect})
	e.Run(CmdUpdateSelected, Params{ShapeIDs: []int{ids[0]}})

	e.PointerDown(75, 75)
	sel := e.SelectedModel().IDs()
	if len(sel) != 1 || sel[0] != ids[0] {
		t.Errorf("expected the selected bottom shape to stay grabbed, got %v", sel)
	}
	e.PointerUp()

	e.Run(CmdUpdateSelected, Params{})
	e.PointerDown(75, 75)
	sel = e.SelectedModel().IDs()
	if len(sel) != 1 || sel[0] != ids[1] {
		t.Errorf("expected the topmost shape, got %v", sel)
	}
	e.PointerUp()
}

func TestEditTextConfirm(t *testing.T) {
	e, rec := newTestEditor(t)
	if err := e.Run(CmdAddTemplateShape, Params{ShapeType: ShapeText}); err != nil {
		t.Fatal(err)
	}
	id := e.SelectedModel().IDs()[0]
	if e.StateKind() != StateSelect {
		t.Fatalf("expected SelectState after template insert, got %s", e.StateKind())
	}

	e.DoubleClick(400, 300)
	if e.StateKind() != StateEditText {
		t.Fatalf("expected EditTextState, got %s", e.StateKind())
	}
	show, ok := rec.last(EventShowTextInput).(ShowTextInput)
	if !ok || show.ShapeID != id || show.Text != defaultTextContent {
		t.Fatalf("unexpected show event %+v", show)
	}
	if show.Position != (Point{250, 250}) {
		t.Errorf("unexpected input position %+v", show.Position)
	}

	e.TypeText("hello")
	stored, _ := e.ShapeModel().Get(id)
	if stored.(*Text).Content() != defaultTextContent {
		t.Error("typing should not touch the model before confirm")
	}
	if preview := e.Shapes()[0].(*Text); preview.Content() != "hello" {
		t.Errorf("snapshot should show pending text, got %q", preview.Content())
	}

	e.ConfirmText()
	if e.StateKind() != StateSelect {
		t.Errorf("expected SelectState after confirm, got %s", e.StateKind())
	}
	if rec.count(EventHideTextInput) != 1 {
		t.Errorf("expected one hide event, got %d", rec.count(EventHideTextInput))
	}
	stored, _ = e.ShapeModel().Get(id)
	if stored.(*Text).Content() != "hello" {
		t.Errorf("expected hello, got %q", stored.(*Text).Content())
	}

	e.Undo()
	stored, _ = e.ShapeModel().Get(id)
	if stored.(*Text).Content() != defaultTextContent {
		t.Errorf("undo should restore the old text, got %q", stored.(*Text).Content())
	}
}

func TestEditTextCancelAndBlur(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Run(CmdAddTemplateShape, Params{ShapeType: ShapeText})
	id := e.SelectedModel().IDs()[0]

	e.DoubleClick(400, 300)
	e.TypeText("discarded")
	e.CancelText()
	stored, _ := e.ShapeModel().Get(id)
	if stored.(*Text).Content() != defaultTextContent {
		t.Errorf("cancel should keep the old text, got %q", stored.(*Text).Content())
	}

	e.DoubleClick(400, 300)
	e.TypeText("kept")
	e.PointerDown(10, 10)
	if e.StateKind() != StateSelect {
		t.Errorf("press outside should leave the editor, got %s", e.StateKind())
	}
	stored, _ = e.ShapeModel().Get(id)
	if stored.(*Text).Content() != "kept" {
		t.Errorf("blur should commit the text, got %q", stored.(*Text).Content())
	}
	e.PointerUp()
}

func TestDoubleClickOnNonTextDoesNothing(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Run(CmdAddTemplateShape, Params{ShapeType: ShapeRectangle})
	e.DoubleClick(400, 300)
	if e.StateKind() != StateSelect {
		t.Errorf("expected SelectState, got %s", e.StateKind())
	}
}

func TestCanvasReset(t *testing.T) {
	e, rec := newTestEditor(t)
	drag(e, 0, 0, 50, 50)
	e.Run(CmdSetState, Params{State: StateDraw, ShapeType: ShapeEllipse})
	drag(e, 100, 100, 150, 150)
	e.Run(CmdSetState, Params{State: StateSelect})
	e.Run(CmdUpdateSelected, Params{ShapeIDs: e.ShapeModel().IDs()})

	if err := e.Run(CmdCanvasReset, Params{}); err != nil {
		t.Fatal(err)
	}
	if e.ShapeModel().Len() != 0 || e.SelectedModel().Len() != 0 {
		t.Errorf("expected empty canvas, got %d shapes and %d selected", e.ShapeModel().Len(), e.SelectedModel().Len())
	}
	if e.StateKind() != StateDraw || e.ShapeType() != ShapeRectangle {
		t.Errorf("expected DrawState with rectangle, got %s %s", e.StateKind(), e.ShapeType())
	}
	if n := rec.count(EventResetInputFields); n != 1 {
		t.Errorf("expected exactly one RESET_INPUT_FIELDS, got %d", n)
	}
	sc, _ := rec.last(EventStateChanged).(StateChanged)
	if sc.State != StateDraw || sc.ShapeType != ShapeRectangle {
		t.Errorf("unexpected state event %+v", sc)
	}
	u, _ := rec.last(EventShapesUpdated).(ShapesUpdated)
	if len(u.Shapes) != 0 || len(u.Selected) != 0 {
		t.Errorf("expected empty snapshot, got %+v", u)
	}

	e.Undo()
	if e.ShapeModel().Len() != 2 {
		t.Errorf("undo should restore the shapes, got %d", e.ShapeModel().Len())
	}
}

func TestResizeThroughHandle(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Run(CmdAddTemplateShape, Params{ShapeType: ShapeRectangle})
	id := e.SelectedModel().IDs()[0]

	h, ok := e.HandleAt(Point{548, 352}, 5)
	if !ok || h != HandleBottomRight {
		t.Fatalf("expected bottom-right handle, got %q %v", h, ok)
	}
	if err := e.Run(CmdStartResize, Params{Handle: h, X: 550, Y: 350}); err != nil {
		t.Fatal(err)
	}
	if e.StateKind() != StateResize {
		t.Fatalf("expected ResizeState, got %s", e.StateKind())
	}
	if n := e.releases.subscriberCount(); n != 1 {
		t.Fatalf("expected release listener, got %d", n)
	}
	e.PointerMove(600, 400)
	got, _ := e.ShapeModel().Get(id)
	if got.Bounds() != (Rect{Point{250, 250}, Point{600, 400}}) {
		t.Errorf("unexpected bounds %+v", got.Bounds())
	}

	// Released outside the canvas: only the global signal arrives.
	e.ReleasePointer()
	if e.StateKind() != StateSelect {
		t.Errorf("expected SelectState after release, got %s", e.StateKind())
	}
	if n := e.releases.subscriberCount(); n != 0 {
		t.Errorf("release listener leaked: %d", n)
	}

	e.Undo()
	got, _ = e.ShapeModel().Get(id)
	if got.Bounds() != (Rect{Point{250, 250}, Point{550, 350}}) {
		t.Errorf("undo should restore the size, got %+v", got.Bounds())
	}
}

func TestResizeDragAcrossOppositeCorner(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Run(CmdAddShape, Params{ShapeType: ShapeRectangle, X: 10, Y: 10, EndX: 20, EndY: 20})
	id := e.ShapeModel().IDs()[0]
	e.Run(CmdUpdateSelected, Params{ShapeIDs: []int{id}})
	if err := e.Run(CmdStartResize, Params{Handle: HandleTopLeft, X: 10, Y: 10}); err != nil {
		t.Fatal(err)
	}

	e.PointerMove(40, 10)
	got, _ := e.ShapeModel().Get(id)
	if want := (Rect{Point{20, 10}, Point{40, 20}}); got.Bounds() != want {
		t.Fatalf("after crossing: expected %+v, got %+v", want, got.Bounds())
	}
	e.PointerMove(50, 10)
	got, _ = e.ShapeModel().Get(id)
	if want := (Rect{Point{20, 10}, Point{50, 20}}); got.Bounds() != want {
		t.Errorf("after second step: expected %+v, got %+v", want, got.Bounds())
	}
	e.PointerUp()

	e.Undo()
	got, _ = e.ShapeModel().Get(id)
	if want := (Rect{Point{10, 10}, Point{20, 20}}); got.Bounds() != want {
		t.Errorf("undo should restore %+v, got %+v", want, got.Bounds())
	}
}

func TestMoveEndsOnGlobalRelease(t *testing.T) {
	e, _ := newTestEditor(t)
	drag(e, 10, 10, 110, 60)
	e.Run(CmdSetState, Params{State: StateSelect})
	e.PointerDown(50, 30)
	if e.StateKind() != StateMove {
		t.Fatalf("expected MoveState, got %s", e.StateKind())
	}
	if n := e.releases.subscriberCount(); n != 1 {
		t.Fatalf("expected release listener, got %d", n)
	}
	e.PointerMove(60, 30)
	e.ReleasePointer()
	if e.StateKind() != StateSelect {
		t.Errorf("expected SelectState after release, got %s", e.StateKind())
	}
	if n := e.releases.subscriberCount(); n != 0 {
		t.Errorf("release listener leaked: %d", n)
	}

	shape := e.ShapeModel().Shapes()[0]
	before := shape.Bounds()
	drag(e, 300, 300, 350, 350)
	if got := e.ShapeModel().Shapes()[0].Bounds(); got != before {
		t.Errorf("drag on empty canvas moved the shape to %+v", got)
	}
}

func TestResizeListenerDroppedOnStateSwitch(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Run(CmdAddTemplateShape, Params{ShapeType: ShapeRectangle})
	e.Run(CmdStartResize, Params{Handle: HandleTopLeft, X: 250, Y: 250})
	e.Run(CmdSetState, Params{State: StateDraw})
	if n := e.releases.subscriberCount(); n != 0 {
		t.Errorf("release listener leaked: %d", n)
	}
	e.ReleasePointer()
	if e.StateKind() != StateDraw {
		t.Errorf("stale listener changed the state to %s", e.StateKind())
	}
}

func TestSubscribeCancel(t *testing.T) {
	e, _ := newTestEditor(t)
	calls := 0
	cancel := e.Subscribe(func(Event) { calls++ })
	e.Run(CmdSetState, Params{State: StateSelect})
	cancel()
	e.Run(CmdSetState, Params{State: StateDraw})
	if calls == 0 {
		t.Fatal("expected events before cancel")
	}
	after := calls
	e.Run(CmdSetState, Params{State: StateSelect})
	if calls != after {
		t.Error("cancelled subscriber still called")
	}
}
