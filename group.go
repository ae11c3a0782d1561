package main

// Group owns an ordered list of member shapes and reports their union
// as its own bounds. Geometry changes are mapped onto every member.
type Group struct {
	id      int
	members []Shape
	// start and end span the group the way they do for a leaf shape and
	// may be in either order after a resize.
	start, end Point
	// layout holds each member's corners as fractions of the frame.
	layout []memberLayout
}

type memberLayout struct {
	start, end Point
}

func NewGroup(id int, members []Shape) *Group {
	g := &Group{id: id, members: append([]Shape(nil), members...)}
	if len(members) > 0 {
		r := g.Bounds()
		g.start, g.end = r.Min, r.Max
	}
	g.layout = make([]memberLayout, len(g.members))
	for i, m := range g.members {
		g.layout[i] = memberLayout{
			start: fractionOf(m.Start(), g.start, g.end),
			end:   fractionOf(m.End(), g.start, g.end),
		}
	}
	return g
}

func fractionOf(p, start, end Point) Point {
	return Point{X: fraction(p.X, start.X, end.X), Y: fraction(p.Y, start.Y, end.Y)}
}

func fraction(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

func lerp(start, end, f Point) Point {
	return Point{X: start.X + f.X*(end.X-start.X), Y: start.Y + f.Y*(end.Y-start.Y)}
}

func (g *Group) ID() int         { return g.id }
func (g *Group) Type() ShapeType { return ShapeGroup }
func (g *Group) Start() Point    { return g.start }
func (g *Group) End() Point      { return g.end }

// Members returns the group's children in z-order.
func (g *Group) Members() []Shape {
	return append([]Shape(nil), g.members...)
}

func (g *Group) Bounds() Rect {
	if len(g.members) == 0 {
		return rectOf(g.start, g.end)
	}
	r := g.members[0].Bounds()
	for _, m := range g.members[1:] {
		r = r.Union(m.Bounds())
	}
	return r
}

func (g *Group) Contains(p Point) bool {
	for _, m := range g.members {
		if m.Contains(p) {
			return true
		}
	}
	return false
}

func (g *Group) Move(dx, dy float64) {
	for _, m := range g.members {
		m.Move(dx, dy)
	}
	g.start = g.start.Add(dx, dy)
	g.end = g.end.Add(dx, dy)
}

func (g *Group) Resize(dx, dy float64, grip Grip) {
	g.SetGeometry(grip.apply(g.start, g.end, dx, dy))
}

// SetGeometry places every member at its fractions of the new frame. A
// frame whose start and end swapped sides mirrors the members, and one
// squeezed to zero width keeps the layout for when it grows again.
func (g *Group) SetGeometry(start, end Point) {
	g.start, g.end = start, end
	for i, m := range g.members {
		l := g.layout[i]
		m.SetGeometry(lerp(start, end, l.start), lerp(start, end, l.end))
	}
}

func (g *Group) Properties() []Property {
	r := g.Bounds()
	return []Property{
		{Name: PropX, Kind: KindNumber, Value: r.Min.X},
		{Name: PropY, Kind: KindNumber, Value: r.Min.Y},
		{Name: PropWidth, Kind: KindNumber, Value: r.Width()},
		{Name: PropHeight, Kind: KindNumber, Value: r.Height()},
	}
}

func (g *Group) Property(name string) (any, bool) { return findProperty(g.Properties(), name) }

func (g *Group) SetProperty(name string, value any) error {
	r := g.Bounds()
	switch name {
	case PropX, PropY:
		v, err := toFloat(value)
		if err != nil {
			return err
		}
		if name == PropX {
			g.Move(v-r.Min.X, 0)
		} else {
			g.Move(0, v-r.Min.Y)
		}
	case PropWidth:
		v, err := toSize(value)
		if err != nil {
			return err
		}
		g.Resize(v-r.Width(), 0, gripFor(g.start, g.end, HandleBottomRight))
	case PropHeight:
		v, err := toSize(value)
		if err != nil {
			return err
		}
		g.Resize(0, v-r.Height(), gripFor(g.start, g.end, HandleBottomRight))
	default:
		return propertyError(g, name)
	}
	return nil
}

func (g *Group) Clone() Shape {
	members := make([]Shape, len(g.members))
	for i, m := range g.members {
		members[i] = m.Clone()
	}
	return &Group{
		id:      g.id,
		members: members,
		start:   g.start,
		end:     g.end,
		layout:  append([]memberLayout(nil), g.layout...),
	}
}
