package main

import (
	"fmt"
	"math"
)

// Shape is a drawable entity on the canvas. Start and End are the two
// corners the shape was created from; either may be the top-left one.
type Shape interface {
	ID() int
	Type() ShapeType
	Start() Point
	End() Point
	Bounds() Rect
	Contains(p Point) bool
	Move(dx, dy float64)
	Resize(dx, dy float64, g Grip)
	SetGeometry(start, end Point)
	Properties() []Property
	Property(name string) (any, bool)
	SetProperty(name string, value any) error
	Clone() Shape
}

type Shadow struct {
	Angle  float64
	Radius float64
	Blur   float64
	Color  string
}

// base carries the geometry and style every leaf shape shares.
type base struct {
	id          int
	start       Point
	end         Point
	color       string
	borderWidth float64
	borderColor string
	shadow      Shadow
}

func newBase(props ShapeProps) base {
	return base{
		id:          props.ID,
		start:       Point{X: props.StartX, Y: props.StartY},
		end:         Point{X: props.EndX, Y: props.EndY},
		color:       defaultColor,
		borderColor: defaultColor,
		shadow:      Shadow{Color: defaultColor},
	}
}

func (b *base) ID() int       { return b.id }
func (b *base) Start() Point  { return b.start }
func (b *base) End() Point    { return b.end }
func (b *base) Bounds() Rect  { return rectOf(b.start, b.end) }
func (b *base) Color() string { return b.color }

func (b *base) Move(dx, dy float64) {
	b.start = b.start.Add(dx, dy)
	b.end = b.end.Add(dx, dy)
}

func (b *base) Resize(dx, dy float64, g Grip) {
	b.start, b.end = g.apply(b.start, b.end, dx, dy)
}

func (b *base) SetGeometry(start, end Point) {
	b.start, b.end = start, end
}

func (b *base) BorderWidth() float64 { return b.borderWidth }
func (b *base) BorderColor() string  { return b.borderColor }
func (b *base) Shadow() Shadow       { return b.shadow }

func (b *base) positionProperties() []Property {
	r := b.Bounds()
	return []Property{
		{Name: PropX, Kind: KindNumber, Value: r.Min.X},
		{Name: PropY, Kind: KindNumber, Value: r.Min.Y},
	}
}

func (b *base) sizeProperties() []Property {
	r := b.Bounds()
	return []Property{
		{Name: PropWidth, Kind: KindNumber, Value: r.Width()},
		{Name: PropHeight, Kind: KindNumber, Value: r.Height()},
	}
}

func (b *base) styleProperties() []Property {
	return []Property{
		{Name: PropColor, Kind: KindColor, Value: b.color},
		{Name: PropBorderWidth, Kind: KindNumber, Value: b.borderWidth},
		{Name: PropBorderColor, Kind: KindColor, Value: b.borderColor},
	}
}

func (b *base) shadowProperties() []Property {
	return []Property{
		{Name: PropShadowAngle, Kind: KindNumber, Value: b.shadow.Angle},
		{Name: PropShadowRadius, Kind: KindNumber, Value: b.shadow.Radius},
		{Name: PropShadowBlur, Kind: KindNumber, Value: b.shadow.Blur},
		{Name: PropShadowColor, Kind: KindColor, Value: b.shadow.Color},
	}
}

// setBaseProperty reports handled=false when name is not a shared attribute.
func (b *base) setBaseProperty(name string, value any) (handled bool, err error) {
	switch name {
	case PropX, PropY:
		v, err := toFloat(value)
		if err != nil {
			return true, err
		}
		r := b.Bounds()
		if name == PropX {
			b.Move(v-r.Min.X, 0)
		} else {
			b.Move(0, v-r.Min.Y)
		}
	case PropWidth:
		v, err := toSize(value)
		if err != nil {
			return true, err
		}
		if b.start.X <= b.end.X {
			b.end.X = b.start.X + v
		} else {
			b.start.X = b.end.X + v
		}
	case PropHeight:
		v, err := toSize(value)
		if err != nil {
			return true, err
		}
		if b.start.Y <= b.end.Y {
			b.end.Y = b.start.Y + v
		} else {
			b.start.Y = b.end.Y + v
		}
	case PropColor, PropBorderColor, PropShadowColor:
		c, err := toColor(value)
		if err != nil {
			return true, err
		}
		switch name {
		case PropColor:
			b.color = c
		case PropBorderColor:
			b.borderColor = c
		default:
			b.shadow.Color = c
		}
	case PropBorderWidth, PropShadowRadius, PropShadowBlur:
		v, err := toSize(value)
		if err != nil {
			return true, err
		}
		switch name {
		case PropBorderWidth:
			b.borderWidth = v
		case PropShadowRadius:
			b.shadow.Radius = v
		default:
			b.shadow.Blur = v
		}
	case PropShadowAngle:
		v, err := toFloat(value)
		if err != nil {
			return true, err
		}
		b.shadow.Angle = math.Mod(v, 360)
	default:
		return false, nil
	}
	return true, nil
}

func setLeafProperty(s Shape, b *base, name string, value any) error {
	for _, p := range s.Properties() {
		if p.Name != name {
			continue
		}
		if p.Kind == KindRead {
			return fmt.Errorf("%w: %s is read-only", ErrInvalidValue, name)
		}
		if _, err := b.setBaseProperty(name, value); err != nil {
			return err
		}
		return nil
	}
	return propertyError(s, name)
}

type Rectangle struct {
	base
}

func (r *Rectangle) Type() ShapeType { return ShapeRectangle }

func (r *Rectangle) Contains(p Point) bool { return r.Bounds().Contains(p) }

func (r *Rectangle) Properties() []Property {
	props := append(r.positionProperties(), r.sizeProperties()...)
	props = append(props, r.styleProperties()...)
	return append(props, r.shadowProperties()...)
}

func (r *Rectangle) Property(name string) (any, bool) { return findProperty(r.Properties(), name) }

func (r *Rectangle) SetProperty(name string, value any) error {
	return setLeafProperty(r, &r.base, name, value)
}

func (r *Rectangle) Clone() Shape {
	c := *r
	return &c
}

type Ellipse struct {
	base
}

func (e *Ellipse) Type() ShapeType { return ShapeEllipse }

func (e *Ellipse) Contains(p Point) bool {
	r := e.Bounds()
	rx, ry := r.Width()/2, r.Height()/2
	if rx == 0 || ry == 0 {
		return r.Contains(p)
	}
	c := r.Center()
	nx, ny := (p.X-c.X)/rx, (p.Y-c.Y)/ry
	return nx*nx+ny*ny <= 1
}

func (e *Ellipse) Properties() []Property {
	props := append(e.positionProperties(), e.sizeProperties()...)
	props = append(props, e.styleProperties()...)
	return append(props, e.shadowProperties()...)
}

func (e *Ellipse) Property(name string) (any, bool) { return findProperty(e.Properties(), name) }

func (e *Ellipse) SetProperty(name string, value any) error {
	return setLeafProperty(e, &e.base, name, value)
}

func (e *Ellipse) Clone() Shape {
	c := *e
	return &c
}

// lineHitTolerance widens thin lines so they can be grabbed.
const lineHitTolerance = 3

type Line struct {
	base
	lineWidth float64
}

func (l *Line) Type() ShapeType { return ShapeLine }

func (l *Line) LineWidth() float64 { return l.lineWidth }

func (l *Line) Length() float64 {
	return math.Hypot(l.end.X-l.start.X, l.end.Y-l.start.Y)
}

func (l *Line) Contains(p Point) bool {
	return distanceToSegment(p, l.start, l.end) <= math.Max(l.lineWidth/2, lineHitTolerance)
}

func (l *Line) Properties() []Property {
	props := l.positionProperties()
	props = append(props,
		Property{Name: PropLineLength, Kind: KindRead, Value: l.Length()},
		Property{Name: PropLineWidth, Kind: KindNumber, Value: l.lineWidth},
		Property{Name: PropColor, Kind: KindColor, Value: l.color},
	)
	return append(props, l.shadowProperties()...)
}

func (l *Line) Property(name string) (any, bool) { return findProperty(l.Properties(), name) }

func (l *Line) SetProperty(name string, value any) error {
	if name == PropLineWidth {
		v, err := toSize(value)
		if err != nil {
			return err
		}
		l.lineWidth = v
		return nil
	}
	return setLeafProperty(l, &l.base, name, value)
}

func (l *Line) Clone() Shape {
	c := *l
	return &c
}

type Image struct {
	base
	src string
}

func (i *Image) Type() ShapeType { return ShapeImage }

func (i *Image) Source() string { return i.src }

func (i *Image) Contains(p Point) bool { return i.Bounds().Contains(p) }

func (i *Image) Properties() []Property {
	props := append(i.positionProperties(), i.sizeProperties()...)
	props = append(props,
		Property{Name: PropImageURL, Kind: KindRead, Value: i.src},
		Property{Name: PropBorderWidth, Kind: KindNumber, Value: i.borderWidth},
		Property{Name: PropBorderColor, Kind: KindColor, Value: i.borderColor},
	)
	return append(props, i.shadowProperties()...)
}

func (i *Image) Property(name string) (any, bool) { return findProperty(i.Properties(), name) }

func (i *Image) SetProperty(name string, value any) error {
	return setLeafProperty(i, &i.base, name, value)
}

func (i *Image) Clone() Shape {
	c := *i
	return &c
}

type Text struct {
	base
	content    string
	fontFamily string
	fontSize   float64
	fontColor  string
	bold       bool
	italic     bool
}

func (t *Text) Type() ShapeType { return ShapeText }

func (t *Text) Content() string    { return t.content }
func (t *Text) FontFamily() string { return t.fontFamily }
func (t *Text) FontSize() float64  { return t.fontSize }
func (t *Text) FontColor() string  { return t.fontColor }
func (t *Text) Bold() bool         { return t.bold }
func (t *Text) Italic() bool       { return t.italic }

func (t *Text) Contains(p Point) bool { return t.Bounds().Contains(p) }

func (t *Text) Properties() []Property {
	props := append(t.positionProperties(), t.sizeProperties()...)
	props = append(props,
		Property{Name: PropContent, Kind: KindText, Value: t.content},
		Property{Name: PropFontFamily, Kind: KindDropdown, Value: t.fontFamily, Options: fontFamilies},
		Property{Name: PropFontSize, Kind: KindNumber, Value: t.fontSize},
		Property{Name: PropFontColor, Kind: KindColor, Value: t.fontColor},
		Property{Name: PropBold, Kind: KindBoolean, Value: t.bold},
		Property{Name: PropItalic, Kind: KindBoolean, Value: t.italic},
	)
	return append(props, t.shadowProperties()...)
}

func (t *Text) Property(name string) (any, bool) { return findProperty(t.Properties(), name) }

func (t *Text) SetProperty(name string, value any) error {
	var err error
	switch name {
	case PropContent:
		var s string
		if s, err = toText(value); err == nil {
			t.content = s
		}
	case PropFontFamily:
		var f string
		if f, err = toFontFamily(value); err == nil {
			t.fontFamily = f
		}
	case PropFontSize:
		var v float64
		if v, err = toSize(value); err == nil {
			t.fontSize = v
		}
	case PropFontColor:
		var c string
		if c, err = toColor(value); err == nil {
			t.fontColor = c
		}
	case PropBold, PropItalic:
		var v bool
		if v, err = toBool(value); err == nil {
			if name == PropBold {
				t.bold = v
			} else {
				t.italic = v
			}
		}
	default:
		return setLeafProperty(t, &t.base, name, value)
	}
	return err
}

func (t *Text) Clone() Shape {
	c := *t
	return &c
}
