package main

import (
	"errors"
	"reflect"
	"testing"
)

func addTemplates(t *testing.T, e *Editor, n int) []int {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := e.Run(CmdAddShape, Params{
			ShapeType: ShapeRectangle,
			X:         float64(i * 10),
			Y:         float64(i * 10),
			EndX:      float64(i*10 + 50),
			EndY:      float64(i*10 + 50),
		}); err != nil {
			t.Fatal(err)
		}
	}
	return e.ShapeModel().IDs()
}

func TestUnknownCommand(t *testing.T) {
	e, _ := newTestEditor(t)
	if err := e.Run("DELETE_EVERYTHING", Params{}); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	if err := LookupCommand(CmdGroup); err != nil {
		t.Errorf("GROUP should be registered: %v", err)
	}
}

func TestCommandParamValidation(t *testing.T) {
	tests := []struct {
		name string
		key  CommandKey
		p    Params
		want error
	}{
		{"template of unknown type", CmdAddTemplateShape, Params{ShapeType: "hexagon"}, ErrUnknownShapeType},
		{"template group", CmdAddTemplateShape, Params{ShapeType: ShapeGroup}, ErrUnknownShapeType},
		{"add unknown type", CmdAddShape, Params{ShapeType: "star"}, ErrUnknownShapeType},
		{"bad z-order action", CmdZOrderMove, Params{Action: "sideways"}, ErrInvalidParams},
		{"bad state", CmdSetState, Params{State: "FlyState"}, ErrInvalidParams},
		{"draw unknown type", CmdSetState, Params{State: StateDraw, ShapeType: "blob"}, ErrUnknownShapeType},
		{"resize without handle", CmdStartResize, Params{}, ErrInvalidParams},
		{"property without name", CmdSetProperty, Params{ShapeID: 1}, ErrInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t)
			if err := e.Run(tt.key, tt.p); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAddTemplateShape(t *testing.T) {
	e, _ := newTestEditor(t)
	err := e.Run(CmdAddTemplateShape, Params{
		ShapeType:  ShapeEllipse,
		Properties: map[string]any{PropColor: "#FF0000", PropFontSize: 12},
	})
	if err != nil {
		t.Fatal(err)
	}
	shapes := e.ShapeModel().Shapes()
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	if got := shapes[0].Bounds(); got != (Rect{Point{250, 250}, Point{550, 350}}) {
		t.Errorf("expected centered template, got %+v", got)
	}
	if v, _ := shapes[0].Property(PropColor); v != "#ff0000" {
		t.Errorf("expected color applied, got %v", v)
	}
	if !reflect.DeepEqual(e.SelectedModel().IDs(), []int{shapes[0].ID()}) {
		t.Errorf("template should be selected, got %v", e.SelectedModel().IDs())
	}

	e.Undo()
	if e.ShapeModel().Len() != 0 || e.SelectedModel().Len() != 0 {
		t.Error("undo should remove the template and its selection")
	}
	e.Redo()
	if e.ShapeModel().Len() != 1 || e.SelectedModel().Len() != 1 {
		t.Error("redo should add and select the template again")
	}
}

func TestAddTemplateImageSource(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Run(CmdAddTemplateShape, Params{
		ShapeType:  ShapeImage,
		Properties: map[string]any{PropImageURL: "photo.png"},
	})
	s := e.ShapeModel().Shapes()[0]
	if img, ok := s.(*Image); !ok || img.Source() != "photo.png" {
		t.Errorf("expected image from photo.png, got %+v", s)
	}
}

func TestSetProperty(t *testing.T) {
	e, _ := newTestEditor(t)
	ids := addTemplates(t, e, 1)

	if err := e.Run(CmdSetProperty, Params{ShapeID: ids[0], PropertyName: PropWidth, Value: 200}); err != nil {
		t.Fatal(err)
	}
	s, _ := e.ShapeModel().Get(ids[0])
	if s.Bounds().Width() != 200 {
		t.Fatalf("expected width 200, got %v", s.Bounds().Width())
	}

	undoDepth := len(e.History().undoStack)
	e.Run(CmdSetProperty, Params{ShapeID: ids[0], PropertyName: PropColor, Value: "not a color"})
	e.Run(CmdSetProperty, Params{ShapeID: 999, PropertyName: PropColor, Value: "#fff"})
	if got := len(e.History().undoStack); got != undoDepth {
		t.Errorf("failed writes should not be recorded, history grew to %d", got)
	}

	e.Undo()
	s, _ = e.ShapeModel().Get(ids[0])
	if s.Bounds().Width() != 50 {
		t.Errorf("undo should restore width 50, got %v", s.Bounds().Width())
	}
}

func TestZOrderMoves(t *testing.T) {
	tests := []struct {
		name   string
		action ZOrderAction
		target int
		want   []int
	}{
		{"front", ZOrderFront, 0, []int{2, 3, 1}},
		{"back", ZOrderBack, 2, []int{3, 1, 2}},
		{"forward", ZOrderForward, 0, []int{2, 1, 3}},
		{"backward", ZOrderBackward, 2, []int{1, 3, 2}},
		{"forward clamps", ZOrderForward, 2, []int{1, 2, 3}},
		{"backward clamps", ZOrderBackward, 0, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t)
			ids := addTemplates(t, e, 3)
			depth := len(e.History().undoStack)
			if err := e.Run(CmdZOrderMove, Params{Action: tt.action, ShapeID: ids[tt.target]}); err != nil {
				t.Fatal(err)
			}
			if got := e.ShapeModel().IDs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if reflect.DeepEqual(tt.want, ids) {
				if got := len(e.History().undoStack); got != depth {
					t.Errorf("a clamped no-op should not be recorded, history has %d entries", got)
				}
				return
			}
			e.Undo()
			if got := e.ShapeModel().IDs(); !reflect.DeepEqual(got, ids) {
				t.Errorf("undo should restore %v, got %v", ids, got)
			}
		})
	}
}

func TestGroupUngroupRoundTrip(t *testing.T) {
	e, _ := newTestEditor(t)
	ids := addTemplates(t, e, 4)
	before := cloneShapes(e.ShapeModel().Shapes())

	e.Run(CmdUpdateSelected, Params{ShapeIDs: []int{ids[1], ids[2]}})
	if err := e.Run(CmdGroup, Params{}); err != nil {
		t.Fatal(err)
	}
	order := e.ShapeModel().IDs()
	if len(order) != 3 || order[0] != ids[0] || order[2] != ids[3] {
		t.Fatalf("group should take the members' place, got %v", order)
	}
	groupID := order[1]
	g, _ := e.ShapeModel().Get(groupID)
	if g.Type() != ShapeGroup || len(g.(*Group).Members()) != 2 {
		t.Fatalf("expected a group of two, got %+v", g)
	}
	if !reflect.DeepEqual(e.SelectedModel().IDs(), []int{groupID}) {
		t.Errorf("group should be selected, got %v", e.SelectedModel().IDs())
	}

	if err := e.Run(CmdUngroup, Params{ShapeID: groupID}); err != nil {
		t.Fatal(err)
	}
	if got := e.ShapeModel().IDs(); !reflect.DeepEqual(got, ids) {
		t.Fatalf("ungroup should restore order %v, got %v", ids, got)
	}
	for i, s := range e.ShapeModel().Shapes() {
		if s.Bounds() != before[i].Bounds() {
			t.Errorf("shape %d changed geometry: %+v", s.ID(), s.Bounds())
		}
	}
	if !reflect.DeepEqual(e.SelectedModel().IDs(), []int{ids[1], ids[2]}) {
		t.Errorf("members should be selected, got %v", e.SelectedModel().IDs())
	}
}

func TestGroupUndoRestoresScatteredMembers(t *testing.T) {
	e, _ := newTestEditor(t)
	ids := addTemplates(t, e, 4)
	e.Run(CmdUpdateSelected, Params{ShapeIDs: []int{ids[3], ids[0], ids[2]}})
	e.Run(CmdGroup, Params{})

	order := e.ShapeModel().IDs()
	if len(order) != 2 || order[0] != ids[1] {
		t.Fatalf("expected [%d group], got %v", ids[1], order)
	}

	e.Undo()
	if got := e.ShapeModel().IDs(); !reflect.DeepEqual(got, ids) {
		t.Errorf("undo should restore %v, got %v", ids, got)
	}
	e.Redo()
	if got := e.ShapeModel().IDs(); len(got) != 2 || got[1] != order[1] {
		t.Errorf("redo should rebuild the group, got %v", got)
	}
}

func TestGroupNeedsTwoShapes(t *testing.T) {
	e, _ := newTestEditor(t)
	ids := addTemplates(t, e, 2)
	e.Run(CmdUpdateSelected, Params{ShapeIDs: ids[:1]})
	depth := len(e.History().undoStack)
	e.Run(CmdGroup, Params{})
	if e.ShapeModel().Len() != 2 || len(e.History().undoStack) != depth {
		t.Error("grouping a single shape should do nothing")
	}
}

func TestUngroupUndo(t *testing.T) {
	e, _ := newTestEditor(t)
	ids := addTemplates(t, e, 3)
	e.Run(CmdUpdateSelected, Params{ShapeIDs: ids[:2]})
	e.Run(CmdGroup, Params{})
	groupID := e.ShapeModel().IDs()[0]

	e.Run(CmdUngroup, Params{ShapeID: groupID})
	e.Undo()
	got := e.ShapeModel().IDs()
	if !reflect.DeepEqual(got, []int{groupID, ids[2]}) {
		t.Fatalf("undo should bring the group back, got %v", got)
	}
	g, _ := e.ShapeModel().Get(groupID)
	if len(g.(*Group).Members()) != 2 {
		t.Error("restored group lost members")
	}

	e.Run(CmdUngroup, Params{ShapeID: ids[2]})
	if e.ShapeModel().Len() != 2 {
		t.Error("ungrouping a plain shape should do nothing")
	}
}

func TestMovedGroupUndoAfterGesture(t *testing.T) {
	e, _ := newTestEditor(t)
	ids := addTemplates(t, e, 2)
	e.Run(CmdUpdateSelected, Params{ShapeIDs: ids})
	e.Run(CmdGroup, Params{})

	e.Run(CmdStartMove, Params{X: 10, Y: 10})
	e.Run(CmdContinueMove, Params{X: 30, Y: 10})
	e.Run(CmdSetState, Params{State: StateSelect})

	e.Undo()
	e.Undo()
	first, _ := e.ShapeModel().Get(ids[0])
	if first.Bounds().Min != (Point{0, 0}) {
		t.Errorf("expected original position after undoing move and group, got %+v", first.Bounds())
	}
	if e.ShapeModel().Len() != 2 {
		t.Errorf("expected members back, got %v", e.ShapeModel().IDs())
	}
}

func TestContinuationCommandsAreNotRecorded(t *testing.T) {
	e, _ := newTestEditor(t)
	ids := addTemplates(t, e, 1)
	e.Run(CmdUpdateSelected, Params{ShapeIDs: ids})
	depth := len(e.History().undoStack)

	e.Run(CmdStartMove, Params{X: 10, Y: 10})
	if e.StateKind() != StateMove {
		t.Fatalf("expected MoveState, got %s", e.StateKind())
	}
	cmd, err := NewCommand(e, CmdContinueMove, Params{X: 20, Y: 25})
	if err != nil {
		t.Fatal(err)
	}
	e.Execute(cmd)
	s, _ := e.ShapeModel().Get(ids[0])
	if s.Bounds().Min != (Point{10, 15}) {
		t.Fatalf("expected move to (10,15), got %+v", s.Bounds().Min)
	}
	cmd.Undo()
	s, _ = e.ShapeModel().Get(ids[0])
	if s.Bounds().Min != (Point{10, 15}) {
		t.Errorf("continuation undo should be a no-op, got %+v", s.Bounds().Min)
	}
	if got := len(e.History().undoStack); got != depth {
		t.Errorf("nothing should be recorded mid-gesture, got %d entries", got)
	}

	e.Run(CmdSetState, Params{State: StateSelect})
	if got := len(e.History().undoStack); got != depth+1 {
		t.Errorf("expected the finished gesture as one entry, got %d", got-depth)
	}
}

func TestStartMoveWithoutSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Run(CmdStartMove, Params{X: 1, Y: 1})
	if e.StateKind() != StateDraw {
		t.Errorf("expected to stay in DrawState, got %s", e.StateKind())
	}
}

func TestCommandDrivenDrawing(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Run(CmdSetState, Params{State: StateSelect})
	e.Run(CmdStartDraw, Params{X: 5, Y: 5})
	if e.StateKind() != StateDraw {
		t.Fatalf("START_DRAW should enter DrawState, got %s", e.StateKind())
	}
	e.Run(CmdContinueDraw, Params{X: 45, Y: 35})
	e.Run(CmdEndDraw, Params{})
	shapes := e.ShapeModel().Shapes()
	if len(shapes) != 1 || shapes[0].Bounds() != (Rect{Point{5, 5}, Point{45, 35}}) {
		t.Fatalf("unexpected shapes %+v", shapes)
	}
	e.Undo()
	if e.ShapeModel().Len() != 0 {
		t.Error("undo should remove the drawn shape")
	}
}

func TestUpdateSelectedDropsStaleIDs(t *testing.T) {
	e, _ := newTestEditor(t)
	ids := addTemplates(t, e, 2)
	e.Run(CmdUpdateSelected, Params{ShapeIDs: []int{ids[1], 404}})
	if !reflect.DeepEqual(e.SelectedModel().IDs(), []int{ids[1]}) {
		t.Errorf("expected only %d, got %v", ids[1], e.SelectedModel().IDs())
	}
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory()
	for i := 0; i < historyLimit+10; i++ {
		h.record(&updateSelectedCommand{})
	}
	if len(h.undoStack) != historyLimit {
		t.Errorf("expected %d entries, got %d", historyLimit, len(h.undoStack))
	}
	if h.Redo() {
		t.Error("nothing to redo")
	}
}
