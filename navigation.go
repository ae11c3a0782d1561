package main

// handleNudge moves the selection by one cell per arrow key press. Each
// press is its own move gesture and so its own undo step.
func (m *model) handleNudge(key string) bool {
	if m.pressed {
		return false
	}
	w, h := m.cellSize()
	speed := m.getMoveSpeed(key)
	var dx, dy float64
	switch key {
	case "left", "shift+left":
		dx = -w
	case "right", "shift+right":
		dx = w
	case "up", "shift+up":
		dy = -h
	case "down", "shift+down":
		dy = h
	default:
		return false
	}
	m.nudge(dx*speed, dy*speed)
	return true
}

func (m *model) nudge(dx, dy float64) {
	r, ok := m.editor.SelectedModel().Bounds()
	if !ok {
		return
	}
	c := r.Center()
	m.run(CmdStartMove, Params{X: c.X, Y: c.Y})
	m.run(CmdContinueMove, Params{X: c.X + dx, Y: c.Y + dy})
	m.run(CmdSetState, Params{State: StateSelect})
}

func (m *model) getMoveSpeed(key string) float64 {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
