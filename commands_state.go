package main

// The commands in this file steer the interaction states. They drive a
// gesture that other commands record, so none of them is kept in the
// history: Undo does nothing and Redo repeats Execute.
type transient struct{}

func (transient) Undo()            {}
func (transient) reversible() bool { return false }

type setStateCommand struct {
	transient
	e      *Editor
	params Params
}

func (c *setStateCommand) Execute() {
	e, p := c.e, c.params
	switch p.State {
	case StateDraw:
		if p.ShapeType != "" {
			e.shapeType = p.ShapeType
		}
		e.setState(newDrawState(e, e.shapeType))
	case StateSelect:
		e.setState(newSelectState(e))
	case StateMove:
		if e.selected.Len() == 0 {
			return
		}
		e.setState(newMoveState(e, Point{X: p.X, Y: p.Y}))
	case StateResize:
		if e.selected.Len() == 0 {
			return
		}
		e.setState(newResizeState(e, p.Handle, Point{X: p.X, Y: p.Y}))
	case StateEditText:
		e.setState(newEditTextState(e, p.ShapeID))
	}
}

func (c *setStateCommand) Redo() { c.Execute() }

type startDrawCommand struct {
	transient
	e  *Editor
	at Point
}

func (c *startDrawCommand) Execute() {
	if c.e.state.Kind() != StateDraw {
		c.e.setState(newDrawState(c.e, c.e.shapeType))
	}
	c.e.pointerDown(c.at)
}

func (c *startDrawCommand) Redo() { c.Execute() }

type continueDrawCommand struct {
	transient
	e  *Editor
	at Point
}

func (c *continueDrawCommand) Execute() {
	if c.e.state.Kind() == StateDraw {
		c.e.pointerMove(c.at)
	}
}

func (c *continueDrawCommand) Redo() { c.Execute() }

type endDrawCommand struct {
	transient
	e *Editor
}

func (c *endDrawCommand) Execute() {
	if c.e.state.Kind() == StateDraw {
		c.e.pointerUp()
	}
}

func (c *endDrawCommand) Redo() { c.Execute() }

// startMoveCommand begins a drag of the current selection anchored at the
// given point. It does nothing when the selection is empty.
type startMoveCommand struct {
	transient
	e  *Editor
	at Point
}

func (c *startMoveCommand) Execute() {
	if c.e.selected.Len() == 0 {
		return
	}
	if c.e.state.Kind() == StateMove {
		c.e.pointerDown(c.at)
		return
	}
	c.e.setState(newMoveState(c.e, c.at))
	c.e.lastMove, c.e.hasMove = c.at, true
}

func (c *startMoveCommand) Redo() { c.Execute() }

type continueMoveCommand struct {
	transient
	e  *Editor
	at Point
}

func (c *continueMoveCommand) Execute() {
	if c.e.state.Kind() == StateMove {
		c.e.pointerMove(c.at)
	}
}

func (c *continueMoveCommand) Redo() { c.Execute() }

type startResizeCommand struct {
	transient
	e      *Editor
	handle HandlePos
	at     Point
}

func (c *startResizeCommand) Execute() {
	if c.e.selected.Len() == 0 {
		return
	}
	c.e.setState(newResizeState(c.e, c.handle, c.at))
	c.e.lastMove, c.e.hasMove = c.at, true
}

func (c *startResizeCommand) Redo() { c.Execute() }

type continueResizeCommand struct {
	transient
	e  *Editor
	at Point
}

func (c *continueResizeCommand) Execute() {
	if c.e.state.Kind() == StateResize {
		c.e.pointerMove(c.at)
	}
}

func (c *continueResizeCommand) Redo() { c.Execute() }

type updateSelectedCommand struct {
	transient
	e   *Editor
	ids []int
}

func (c *updateSelectedCommand) Execute() { c.e.selected.Set(c.ids) }
func (c *updateSelectedCommand) Redo()    { c.Execute() }
