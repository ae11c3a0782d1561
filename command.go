package main

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidParams  = errors.New("invalid command parameters")
)

// Command is one user-triggered mutation. Commands that cannot be
// meaningfully reversed treat Undo as a no-op.
type Command interface {
	Execute()
	Undo()
	Redo()
}

// reversible is implemented by commands the History should keep. It
// reports false when Execute turned out to be a no-op.
type reversible interface {
	Command
	reversible() bool
}

// Params is the union of every command's inputs; each command reads only
// the fields it needs.
type Params struct {
	ShapeType    ShapeType
	Properties   map[string]any
	ShapeID      int
	ShapeIDs     []int
	PropertyName string
	Value        any
	Action       ZOrderAction
	State        StateKind
	Handle       HandlePos
	X, Y         float64
	EndX, EndY   float64
	ImageURL     string
}

type commandCreator func(e *Editor, p Params) (Command, error)

var commandCreators = map[CommandKey]commandCreator{
	CmdAddTemplateShape: func(e *Editor, p Params) (Command, error) {
		if !validShapeType(p.ShapeType) || p.ShapeType == ShapeGroup {
			return nil, fmt.Errorf("%w: %q", ErrUnknownShapeType, p.ShapeType)
		}
		return &addTemplateShapeCommand{e: e, shapeType: p.ShapeType, properties: p.Properties}, nil
	},
	CmdAddShape: func(e *Editor, p Params) (Command, error) {
		shape, err := NewShape(p.ShapeType, ShapeProps{
			ID:       e.shapes.NextID(),
			StartX:   p.X,
			StartY:   p.Y,
			EndX:     p.EndX,
			EndY:     p.EndY,
			ImageURL: p.ImageURL,
		})
		if err != nil {
			return nil, err
		}
		return &addShapeCommand{e: e, shape: shape, index: -1}, nil
	},
	CmdSetProperty: func(e *Editor, p Params) (Command, error) {
		if p.PropertyName == "" {
			return nil, fmt.Errorf("%w: property name is required", ErrInvalidParams)
		}
		return newSetPropertyCommand(e, p.ShapeID, p.PropertyName, p.Value), nil
	},
	CmdZOrderMove: func(e *Editor, p Params) (Command, error) {
		switch p.Action {
		case ZOrderFront, ZOrderBack, ZOrderForward, ZOrderBackward:
		default:
			return nil, fmt.Errorf("%w: z-order action %q", ErrInvalidParams, p.Action)
		}
		return &zOrderMoveCommand{e: e, action: p.Action, shapeID: p.ShapeID}, nil
	},
	CmdCanvasReset: func(e *Editor, p Params) (Command, error) {
		return &canvasResetCommand{e: e}, nil
	},
	CmdGroup: func(e *Editor, p Params) (Command, error) {
		return &groupCommand{e: e}, nil
	},
	CmdUngroup: func(e *Editor, p Params) (Command, error) {
		return &ungroupCommand{e: e, groupID: p.ShapeID}, nil
	},
	CmdSetState: func(e *Editor, p Params) (Command, error) {
		switch p.State {
		case StateDraw:
			if p.ShapeType != "" && (!validShapeType(p.ShapeType) || p.ShapeType == ShapeGroup) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownShapeType, p.ShapeType)
			}
		case StateResize:
			if !validHandle(p.Handle) {
				return nil, fmt.Errorf("%w: resize handle %q", ErrInvalidParams, p.Handle)
			}
		case StateSelect, StateMove, StateEditText:
		default:
			return nil, fmt.Errorf("%w: state %q", ErrInvalidParams, p.State)
		}
		return &setStateCommand{e: e, params: p}, nil
	},
	CmdStartDraw: func(e *Editor, p Params) (Command, error) {
		return &startDrawCommand{e: e, at: Point{X: p.X, Y: p.Y}}, nil
	},
	CmdContinueDraw: func(e *Editor, p Params) (Command, error) {
		return &continueDrawCommand{e: e, at: Point{X: p.X, Y: p.Y}}, nil
	},
	CmdEndDraw: func(e *Editor, p Params) (Command, error) {
		return &endDrawCommand{e: e}, nil
	},
	CmdStartMove: func(e *Editor, p Params) (Command, error) {
		return &startMoveCommand{e: e, at: Point{X: p.X, Y: p.Y}}, nil
	},
	CmdContinueMove: func(e *Editor, p Params) (Command, error) {
		return &continueMoveCommand{e: e, at: Point{X: p.X, Y: p.Y}}, nil
	},
	CmdStartResize: func(e *Editor, p Params) (Command, error) {
		if !validHandle(p.Handle) {
			return nil, fmt.Errorf("%w: resize handle %q", ErrInvalidParams, p.Handle)
		}
		return &startResizeCommand{e: e, handle: p.Handle, at: Point{X: p.X, Y: p.Y}}, nil
	},
	CmdContinueResize: func(e *Editor, p Params) (Command, error) {
		return &continueResizeCommand{e: e, at: Point{X: p.X, Y: p.Y}}, nil
	},
	CmdUpdateSelected: func(e *Editor, p Params) (Command, error) {
		return &updateSelectedCommand{e: e, ids: append([]int(nil), p.ShapeIDs...)}, nil
	},
}

// NewCommand looks key up in the fixed registry. An unknown key is a
// wiring mistake and is always reported.
func NewCommand(e *Editor, key CommandKey, p Params) (Command, error) {
	create, ok := commandCreators[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, key)
	}
	return create(e, p)
}

// LookupCommand reports whether key names a registered command.
func LookupCommand(key CommandKey) error {
	if _, ok := commandCreators[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, key)
	}
	return nil
}

func validHandle(h HandlePos) bool {
	switch h {
	case HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft:
		return true
	}
	return false
}
