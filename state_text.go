package main

// EditTextState edits the content of one text shape. The typed text is
// only written to the model on confirm or blur.
type EditTextState struct {
	e       *Editor
	shapeID int
	text    string
}

func newEditTextState(e *Editor, shapeID int) *EditTextState {
	s := &EditTextState{e: e, shapeID: shapeID}
	if shape, ok := e.shapes.Get(shapeID); ok {
		if t, ok := shape.(*Text); ok {
			s.text = t.Content()
		}
	}
	return s
}

func (s *EditTextState) Kind() StateKind { return StateEditText }

func (s *EditTextState) ShapeID() int { return s.shapeID }

func (s *EditTextState) Text() string { return s.text }

func (s *EditTextState) Enter() {
	shape, _ := s.e.shapes.Get(s.shapeID)
	t, ok := shape.(*Text)
	if !ok {
		s.e.setState(newSelectState(s.e))
		return
	}
	s.e.notify(ShowTextInput{
		ShapeID:    s.shapeID,
		Position:   t.Bounds().Min,
		Text:       s.text,
		FontFamily: t.FontFamily(),
		FontSize:   t.FontSize(),
		FontColor:  t.FontColor(),
		Bold:       t.Bold(),
		Italic:     t.Italic(),
	})
}

func (s *EditTextState) Exit() {
	s.e.notify(HideTextInput{})
}

func (s *EditTextState) setText(text string) {
	if text == s.text {
		return
	}
	s.text = text
	s.e.markDirty()
}

func (s *EditTextState) confirm() {
	if shape, ok := s.e.shapes.Get(s.shapeID); ok {
		if t, ok := shape.(*Text); ok && t.Content() != s.text {
			s.e.execute(newSetPropertyCommand(s.e, s.shapeID, PropContent, s.text))
		}
	}
	s.e.setState(newSelectState(s.e))
}

func (s *EditTextState) cancel() {
	s.e.setState(newSelectState(s.e))
}

// PointerDown outside the shape blurs the editor: the text is committed
// and the press is handled by the select state.
func (s *EditTextState) PointerDown(p Point) {
	if shape, ok := s.e.shapes.Get(s.shapeID); ok && shape.Contains(p) {
		return
	}
	s.confirm()
	s.e.state.PointerDown(p)
}

func (s *EditTextState) PointerMove(p Point) {}

func (s *EditTextState) PointerUp() {}

func (s *EditTextState) DoubleClick(p Point) {}

// CurrentShapes shows the pending text in place of the stored content.
func (s *EditTextState) CurrentShapes() []Shape {
	shapes := s.e.shapes.Shapes()
	for i, shape := range shapes {
		if shape.ID() != s.shapeID {
			continue
		}
		preview := shape.Clone()
		_ = preview.SetProperty(PropContent, s.text)
		shapes[i] = preview
	}
	return shapes
}
