package main

import "math"

type Point struct {
	X, Y float64
}

func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is a normalized box: Min is always the top-left corner.
type Rect struct {
	Min, Max Point
}

func rectOf(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects treats touching edges as overlap.
func (r Rect) Intersects(o Rect) bool {
	return !(r.Max.X < o.Min.X || o.Max.X < r.Min.X) &&
		!(r.Max.Y < o.Min.Y || o.Max.Y < r.Min.Y)
}

func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Corner returns the corner a resize handle grabs.
func (r Rect) Corner(h HandlePos) Point {
	switch h {
	case HandleTopLeft:
		return r.Min
	case HandleTopRight:
		return Point{X: r.Max.X, Y: r.Min.Y}
	case HandleBottomLeft:
		return Point{X: r.Min.X, Y: r.Max.Y}
	default:
		return r.Max
	}
}

// Grip records which stored coordinate follows the pointer on each axis
// of a resize. It is taken once when the drag starts, so a corner dragged
// past the opposite one keeps moving the same edge and start/end simply
// end up in the other order.
type Grip struct {
	StartX, StartY bool
}

// gripFor picks, for handle h, the coordinates of start/end that currently
// form the grabbed corner.
func gripFor(start, end Point, h HandlePos) Grip {
	left := h == HandleTopLeft || h == HandleBottomLeft
	top := h == HandleTopLeft || h == HandleTopRight
	return Grip{
		StartX: left == (start.X <= end.X),
		StartY: top == (start.Y <= end.Y),
	}
}

func (g Grip) apply(start, end Point, dx, dy float64) (Point, Point) {
	if g.StartX {
		start.X += dx
	} else {
		end.X += dx
	}
	if g.StartY {
		start.Y += dy
	} else {
		end.Y += dy
	}
	return start, end
}

// distanceToSegment is the shortest distance from p to the segment a-b.
func distanceToSegment(p, a, b Point) float64 {
	vx, vy := b.X-a.X, b.Y-a.Y
	lengthSq := vx*vx + vy*vy
	if lengthSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*vx + (p.Y-a.Y)*vy) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*vx), p.Y-(a.Y+t*vy))
}
