package main

import (
	"log"
	"sort"
)

// addShapeCommand commits a shape built elsewhere, normally by the draw
// state. index < 0 appends on top.
type addShapeCommand struct {
	e     *Editor
	shape Shape
	index int
}

func (c *addShapeCommand) Execute() {
	if c.index < 0 {
		c.e.shapes.Add(c.shape)
		c.index = c.e.shapes.IndexOf(c.shape.ID())
		return
	}
	c.e.shapes.Insert(c.index, c.shape)
}

func (c *addShapeCommand) Undo() {
	if s, ok := c.e.shapes.Get(c.shape.ID()); ok {
		c.shape = s
	}
	c.e.shapes.Remove(c.shape.ID())
}

func (c *addShapeCommand) Redo()            { c.Execute() }
func (c *addShapeCommand) reversible() bool { return true }

// addTemplateShapeCommand inserts a preconfigured shape at the default
// position, selects it and switches to the select state.
type addTemplateShapeCommand struct {
	e          *Editor
	shapeType  ShapeType
	properties map[string]any
	shape      Shape
	prevSel    []int
}

func (c *addTemplateShapeCommand) Execute() {
	if c.shape == nil {
		shape, err := c.build()
		if err != nil {
			log.Printf("add template: %v", err)
			return
		}
		c.shape = shape
	}
	c.prevSel = c.e.selected.IDs()
	c.e.shapes.Add(c.shape)
	c.e.selected.Set([]int{c.shape.ID()})
	if c.e.state.Kind() != StateSelect {
		c.e.setState(newSelectState(c.e))
	}
}

func (c *addTemplateShapeCommand) build() (Shape, error) {
	cfg := c.e.cfg
	x := (cfg.CanvasWidth - cfg.TemplateWidth) / 2
	y := (cfg.CanvasHeight - cfg.TemplateHeight) / 2
	props := ShapeProps{
		ID:     c.e.shapes.NextID(),
		StartX: x,
		StartY: y,
		EndX:   x + cfg.TemplateWidth,
		EndY:   y + cfg.TemplateHeight,
	}
	if src, ok := c.properties[PropImageURL].(string); ok {
		props.ImageURL = src
	}
	shape, err := NewShape(c.shapeType, props)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(c.properties))
	for name := range c.properties {
		if name != PropImageURL {
			names = append(names, name)
		}
	}
	// Geometry properties interact, so apply them in a stable order.
	sort.Strings(names)
	for _, name := range names {
		if err := shape.SetProperty(name, c.properties[name]); err != nil {
			log.Printf("add template: ignoring %s: %v", name, err)
		}
	}
	return shape, nil
}

func (c *addTemplateShapeCommand) Undo() {
	if c.shape == nil {
		return
	}
	if s, ok := c.e.shapes.Get(c.shape.ID()); ok {
		c.shape = s
	}
	c.e.shapes.Remove(c.shape.ID())
	c.e.selected.Set(c.prevSel)
}

func (c *addTemplateShapeCommand) Redo()            { c.Execute() }
func (c *addTemplateShapeCommand) reversible() bool { return c.shape != nil }

// setPropertyCommand writes one attribute. A shape that no longer exists
// turns the command into a no-op. Undo swaps back whole snapshots so
// geometry comes back exactly.
type setPropertyCommand struct {
	e       *Editor
	shapeID int
	name    string
	value   any
	before  Shape
	after   Shape
}

func newSetPropertyCommand(e *Editor, id int, name string, value any) *setPropertyCommand {
	return &setPropertyCommand{e: e, shapeID: id, name: name, value: value}
}

func (c *setPropertyCommand) Execute() {
	shape, ok := c.e.shapes.Get(c.shapeID)
	if !ok {
		return
	}
	next := shape.Clone()
	if err := next.SetProperty(c.name, c.value); err != nil {
		log.Printf("set property on shape %d: %v", c.shapeID, err)
		return
	}
	c.before = shape.Clone()
	c.after = next.Clone()
	c.e.shapes.Mutate(c.shapeID, func(s Shape) {
		_ = s.SetProperty(c.name, c.value)
	})
}

func (c *setPropertyCommand) Undo() {
	if c.before != nil {
		c.e.shapes.Replace(c.before.Clone())
	}
}

func (c *setPropertyCommand) Redo() {
	if c.after != nil {
		c.e.shapes.Replace(c.after.Clone())
	}
}

func (c *setPropertyCommand) reversible() bool { return c.before != nil }

// zOrderMoveCommand splices one shape within the ordering. Targets past
// either end clamp.
type zOrderMoveCommand struct {
	e       *Editor
	action  ZOrderAction
	shapeID int
	from    int
	to      int
}

func (c *zOrderMoveCommand) Execute() {
	c.from = c.e.shapes.IndexOf(c.shapeID)
	if c.from < 0 {
		return
	}
	last := c.e.shapes.Len() - 1
	switch c.action {
	case ZOrderFront:
		c.to = last
	case ZOrderBack:
		c.to = 0
	case ZOrderForward:
		c.to = clampIndex(c.from+1, last)
	case ZOrderBackward:
		c.to = clampIndex(c.from-1, last)
	}
	c.e.shapes.MoveTo(c.shapeID, c.to)
}

func (c *zOrderMoveCommand) Undo() {
	if c.from >= 0 {
		c.e.shapes.MoveTo(c.shapeID, c.from)
	}
}

func (c *zOrderMoveCommand) Redo() {
	if c.from >= 0 {
		c.e.shapes.MoveTo(c.shapeID, c.to)
	}
}

func (c *zOrderMoveCommand) reversible() bool { return c.from >= 0 && c.from != c.to }

// groupCommand wraps the current selection in a new group placed where
// the topmost member was. Members are resolved by id on every replay so
// the command stays valid after other commands swap shape objects.
type groupCommand struct {
	e        *Editor
	groupID  int
	members  []int
	indices  []int
	position int
	prevSel  []int
}

func (c *groupCommand) Execute() {
	if c.groupID == 0 {
		if !c.plan() {
			return
		}
	}
	members := make([]Shape, 0, len(c.members))
	for _, id := range c.members {
		s, ok := c.e.shapes.Get(id)
		if !ok {
			return
		}
		members = append(members, s)
	}
	c.prevSel = c.e.selected.IDs()
	for _, id := range c.members {
		c.e.shapes.Remove(id)
	}
	c.e.shapes.Insert(c.position, NewGroup(c.groupID, members))
	c.e.selected.Set([]int{c.groupID})
}

// plan picks members and positions from the live selection. Fewer than
// two selected shapes leave nothing to group.
func (c *groupCommand) plan() bool {
	type entry struct{ id, index int }
	var picked []entry
	for _, id := range c.e.selected.IDs() {
		if i := c.e.shapes.IndexOf(id); i >= 0 {
			picked = append(picked, entry{id, i})
		}
	}
	if len(picked) < 2 {
		return false
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].index < picked[j].index })
	for _, p := range picked {
		c.members = append(c.members, p.id)
		c.indices = append(c.indices, p.index)
	}
	top := picked[len(picked)-1].index
	c.position = top - (len(picked) - 1)
	c.groupID = c.e.shapes.NextID()
	return true
}

func (c *groupCommand) Undo() {
	if c.groupID == 0 {
		return
	}
	shape, ok := c.e.shapes.Get(c.groupID)
	if !ok {
		return
	}
	g := shape.(*Group)
	c.e.shapes.Remove(c.groupID)
	// Ascending inserts land every member back on its old index.
	for i, m := range g.Members() {
		c.e.shapes.Insert(c.indices[i], m)
	}
	c.e.selected.Set(c.prevSel)
}

func (c *groupCommand) Redo()            { c.Execute() }
func (c *groupCommand) reversible() bool { return c.groupID != 0 }

// ungroupCommand replaces a group with its members at the group's index.
type ungroupCommand struct {
	e       *Editor
	groupID int
	members []int
	index   int
	prevSel []int
	applied bool
}

func (c *ungroupCommand) Execute() {
	shape, ok := c.e.shapes.Get(c.groupID)
	if !ok {
		return
	}
	g, ok := shape.(*Group)
	if !ok {
		return
	}
	c.prevSel = c.e.selected.IDs()
	c.index = c.e.shapes.Remove(c.groupID)
	c.members = c.members[:0]
	for i, m := range g.Members() {
		c.e.shapes.Insert(c.index+i, m)
		c.members = append(c.members, m.ID())
	}
	c.e.selected.Set(c.members)
	c.applied = true
}

func (c *ungroupCommand) Undo() {
	if !c.applied {
		return
	}
	members := make([]Shape, 0, len(c.members))
	for _, id := range c.members {
		if s, ok := c.e.shapes.Get(id); ok {
			members = append(members, s)
		}
		c.e.shapes.Remove(id)
	}
	c.e.shapes.Insert(c.index, NewGroup(c.groupID, members))
	c.e.selected.Set(c.prevSel)
}

func (c *ungroupCommand) Redo()            { c.Execute() }
func (c *ungroupCommand) reversible() bool { return c.applied }

// canvasResetCommand clears the canvas, goes back to drawing the default
// shape type and tells input collaborators to drop pending edits.
type canvasResetCommand struct {
	e       *Editor
	shapes  []Shape
	prevSel []int
}

func (c *canvasResetCommand) Execute() {
	c.shapes = c.e.shapes.Shapes()
	c.prevSel = c.e.selected.IDs()
	c.e.shapes.Clear()
	c.e.selected.Clear()
	c.e.shapeType = c.e.cfg.DefaultShape
	c.e.setState(newDrawState(c.e, c.e.shapeType))
	c.e.notify(ResetInputFields{})
}

// Undo restores the shapes; the editor stays in the draw state.
func (c *canvasResetCommand) Undo() {
	for _, s := range c.shapes {
		c.e.shapes.Add(s)
	}
	c.e.selected.Set(c.prevSel)
}

func (c *canvasResetCommand) Redo()            { c.Execute() }
func (c *canvasResetCommand) reversible() bool { return len(c.shapes) > 0 }

// gestureCommand records a finished move or resize drag as one undo step.
// It is created already applied and only pushed when something changed.
type gestureCommand struct {
	e      *Editor
	before []Shape
	after  []Shape
	done   bool
}

func newGestureCommand(e *Editor, ids []int) *gestureCommand {
	g := &gestureCommand{e: e}
	for _, id := range ids {
		if s, ok := e.shapes.Get(id); ok {
			g.before = append(g.before, s.Clone())
		}
	}
	return g
}

func (g *gestureCommand) commit() {
	if g.done {
		return
	}
	g.done = true
	changed := false
	for _, b := range g.before {
		s, ok := g.e.shapes.Get(b.ID())
		if !ok {
			continue
		}
		g.after = append(g.after, s.Clone())
		if s.Start() != b.Start() || s.End() != b.End() {
			changed = true
		}
	}
	if changed {
		g.e.history.record(g)
	}
}

func (g *gestureCommand) Execute() {}

func (g *gestureCommand) Undo() {
	for _, s := range g.before {
		g.e.shapes.Replace(s.Clone())
	}
}

func (g *gestureCommand) Redo() {
	for _, s := range g.after {
		g.e.shapes.Replace(s.Clone())
	}
}
