package main

import (
	"errors"
	"fmt"
)

var ErrUnknownShapeType = errors.New("unknown shape type")

// ShapeProps are the creation parameters shared by every shape type.
type ShapeProps struct {
	ID     int
	StartX float64
	StartY float64
	EndX   float64
	EndY   float64
	// ImageURL is only read for image shapes.
	ImageURL string
}

type shapeCreator func(props ShapeProps) Shape

var shapeCreators = map[ShapeType]shapeCreator{
	ShapeRectangle: func(p ShapeProps) Shape {
		return &Rectangle{base: newBase(p)}
	},
	ShapeEllipse: func(p ShapeProps) Shape {
		return &Ellipse{base: newBase(p)}
	},
	ShapeLine: func(p ShapeProps) Shape {
		return &Line{base: newBase(p), lineWidth: 1}
	},
	ShapeImage: func(p ShapeProps) Shape {
		return &Image{base: newBase(p), src: p.ImageURL}
	},
	ShapeText: func(p ShapeProps) Shape {
		b := newBase(p)
		b.color = ""
		return &Text{
			base:       b,
			content:    defaultTextContent,
			fontFamily: defaultFontFamily,
			fontSize:   defaultFontSize,
			fontColor:  defaultColor,
		}
	},
	ShapeGroup: func(p ShapeProps) Shape {
		g := NewGroup(p.ID, nil)
		g.start = Point{X: p.StartX, Y: p.StartY}
		g.end = Point{X: p.EndX, Y: p.EndY}
		return g
	},
}

// NewShape builds a shape of the given type. An unknown type means the
// caller was wired wrong, so it is reported rather than skipped.
func NewShape(t ShapeType, props ShapeProps) (Shape, error) {
	create, ok := shapeCreators[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeType, t)
	}
	return create(props), nil
}

func validShapeType(t ShapeType) bool {
	_, ok := shapeCreators[t]
	return ok
}
