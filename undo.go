package main

const historyLimit = 200

// History keeps the undo and redo stacks. Recording a new command drops
// everything that could have been redone.
type History struct {
	undoStack []Command
	redoStack []Command
}

func NewHistory() *History {
	return &History{
		undoStack: []Command{},
		redoStack: []Command{},
	}
}

func (h *History) record(c Command) {
	h.undoStack = append(h.undoStack, c)
	if len(h.undoStack) > historyLimit {
		h.undoStack = h.undoStack[len(h.undoStack)-historyLimit:]
	}
	h.redoStack = h.redoStack[:0]
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (h *History) Undo() bool {
	if len(h.undoStack) == 0 {
		return false
	}
	lastIndex := len(h.undoStack) - 1
	c := h.undoStack[lastIndex]
	h.undoStack = h.undoStack[:lastIndex]

	c.Undo()

	h.redoStack = append(h.redoStack, c)
	return true
}

func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}
	lastIndex := len(h.redoStack) - 1
	c := h.redoStack[lastIndex]
	h.redoStack = h.redoStack[:lastIndex]

	c.Redo()

	h.undoStack = append(h.undoStack, c)
	return true
}
