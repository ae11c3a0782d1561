package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	handleSize     = 8.0
	selectionColor = "#1e90ff"
	canvasColor    = "#ffffff"
)

// Rasterizer paints the latest shapes snapshot onto an in-memory surface.
// It subscribes to the editor and only keeps the clones it is handed.
type Rasterizer struct {
	width, height int
	shapes        []Shape
	selected      []Shape

	fonts  map[fontKey]*truetype.Font
	faces  map[faceKey]font.Face
	images map[string]image.Image
	failed map[string]bool
}

type fontKey struct {
	mono, bold, italic bool
}

type faceKey struct {
	fontKey
	size float64
}

func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		fonts:  make(map[fontKey]*truetype.Font),
		faces:  make(map[faceKey]font.Face),
		images: make(map[string]image.Image),
		failed: make(map[string]bool),
	}
}

// Attach subscribes the rasterizer to e's shape snapshots.
func (r *Rasterizer) Attach(e *Editor) (cancel func()) {
	return e.Subscribe(func(ev Event) {
		if u, ok := ev.(ShapesUpdated); ok {
			r.shapes = u.Shapes
			r.selected = u.Selected
		}
	})
}

func (r *Rasterizer) Shapes() []Shape   { return r.shapes }
func (r *Rasterizer) Selected() []Shape { return r.selected }

// Render draws every shape in z-order, then the selection outline with its
// handles and the rubber band when one is given.
func (r *Rasterizer) Render(band *Rect) image.Image {
	dc := gg.NewContext(r.width, r.height)
	dc.SetHexColor(canvasColor)
	dc.Clear()

	for _, s := range r.shapes {
		r.drawShape(dc, s)
	}
	r.drawSelection(dc)
	if band != nil {
		dc.SetHexColor(selectionColor)
		dc.SetLineWidth(1)
		dc.SetDash(4, 3)
		dc.DrawRectangle(band.Min.X, band.Min.Y, band.Width(), band.Height())
		dc.Stroke()
		dc.SetDash()
	}
	return dc.Image()
}

func (r *Rasterizer) drawShape(dc *gg.Context, s Shape) {
	switch v := s.(type) {
	case *Group:
		for _, m := range v.Members() {
			r.drawShape(dc, m)
		}
	case *Rectangle:
		b := v.Bounds()
		r.drawShadow(dc, v.Shadow(), func(dx, dy float64) {
			dc.DrawRectangle(b.Min.X+dx, b.Min.Y+dy, b.Width(), b.Height())
		})
		dc.DrawRectangle(b.Min.X, b.Min.Y, b.Width(), b.Height())
		fillAndBorder(dc, v.Color(), v.BorderWidth(), v.BorderColor())
	case *Ellipse:
		b := v.Bounds()
		c := b.Center()
		r.drawShadow(dc, v.Shadow(), func(dx, dy float64) {
			dc.DrawEllipse(c.X+dx, c.Y+dy, b.Width()/2, b.Height()/2)
		})
		dc.DrawEllipse(c.X, c.Y, b.Width()/2, b.Height()/2)
		fillAndBorder(dc, v.Color(), v.BorderWidth(), v.BorderColor())
	case *Line:
		a, z := v.Start(), v.End()
		dc.SetLineWidth(math.Max(v.LineWidth(), 1))
		r.drawShadowStroke(dc, v.Shadow(), func(dx, dy float64) {
			dc.DrawLine(a.X+dx, a.Y+dy, z.X+dx, z.Y+dy)
		})
		dc.SetHexColor(v.Color())
		dc.DrawLine(a.X, a.Y, z.X, z.Y)
		dc.Stroke()
	case *Image:
		r.drawImage(dc, v)
	case *Text:
		r.drawText(dc, v)
	}
}

func fillAndBorder(dc *gg.Context, fill string, borderWidth float64, border string) {
	dc.SetHexColor(fill)
	if borderWidth <= 0 {
		dc.Fill()
		return
	}
	dc.FillPreserve()
	dc.SetHexColor(border)
	dc.SetLineWidth(borderWidth)
	dc.Stroke()
}

// shadowOffset turns the angle and radius into a drop offset. Blur widens
// the shadow by fading it rather than by a real convolution.
func shadowOffset(sh Shadow) (dx, dy float64, ok bool) {
	if sh.Radius <= 0 {
		return 0, 0, false
	}
	rad := gg.Radians(sh.Angle)
	return math.Cos(rad) * sh.Radius, math.Sin(rad) * sh.Radius, true
}

func (r *Rasterizer) drawShadow(dc *gg.Context, sh Shadow, path func(dx, dy float64)) {
	dx, dy, ok := shadowOffset(sh)
	if !ok {
		return
	}
	path(dx, dy)
	dc.SetColor(shadowColor(sh))
	dc.Fill()
}

func (r *Rasterizer) drawShadowStroke(dc *gg.Context, sh Shadow, path func(dx, dy float64)) {
	dx, dy, ok := shadowOffset(sh)
	if !ok {
		return
	}
	path(dx, dy)
	dc.SetColor(shadowColor(sh))
	dc.Stroke()
}

func shadowColor(sh Shadow) color.Color {
	c := parseHex(sh.Color)
	alpha := 1 / (1 + sh.Blur/10)
	c.A = uint8(float64(c.A) * alpha)
	return c
}

func (r *Rasterizer) drawImage(dc *gg.Context, v *Image) {
	b := v.Bounds()
	img := r.loadImage(v.Source())
	if img == nil {
		// Placeholder for a missing picture: a crossed box.
		dc.SetHexColor("#999999")
		dc.SetLineWidth(1)
		dc.DrawRectangle(b.Min.X, b.Min.Y, b.Width(), b.Height())
		dc.DrawLine(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
		dc.DrawLine(b.Max.X, b.Min.Y, b.Min.X, b.Max.Y)
		dc.Stroke()
		return
	}
	size := img.Bounds().Size()
	if size.X == 0 || size.Y == 0 || b.Width() == 0 || b.Height() == 0 {
		return
	}
	dc.Push()
	dc.Translate(b.Min.X, b.Min.Y)
	dc.Scale(b.Width()/float64(size.X), b.Height()/float64(size.Y))
	dc.DrawImage(img, 0, 0)
	dc.Pop()
	if v.BorderWidth() > 0 {
		dc.DrawRectangle(b.Min.X, b.Min.Y, b.Width(), b.Height())
		dc.SetHexColor(v.BorderColor())
		dc.SetLineWidth(v.BorderWidth())
		dc.Stroke()
	}
}

// loadImage caches decoded pictures by source. A source that failed once
// is not retried.
func (r *Rasterizer) loadImage(src string) image.Image {
	if src == "" || r.failed[src] {
		return nil
	}
	if img, ok := r.images[src]; ok {
		return img
	}
	img, err := gg.LoadImage(src)
	if err != nil {
		log.Printf("raster: load image %q: %v", src, err)
		r.failed[src] = true
		return nil
	}
	r.images[src] = img
	return img
}

func (r *Rasterizer) drawText(dc *gg.Context, v *Text) {
	face, err := r.face(v.FontFamily(), v.Bold(), v.Italic(), v.FontSize())
	if err != nil {
		log.Printf("raster: %v", err)
		return
	}
	b := v.Bounds()
	dc.SetFontFace(face)
	dc.SetHexColor(v.FontColor())
	dc.DrawStringWrapped(v.Content(), b.Min.X, b.Min.Y, 0, 0, math.Max(b.Width(), 1), 1.2, gg.AlignLeft)
}

// face maps a family onto the embedded Go fonts: monospaced families get
// Go Mono, everything else Go Regular, with the matching weight and slant.
func (r *Rasterizer) face(family string, bold, italic bool, size float64) (font.Face, error) {
	key := faceKey{fontKey{mono: family == "Courier New", bold: bold, italic: italic}, size}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	ttf, err := r.font(key.fontKey)
	if err != nil {
		return nil, err
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    math.Max(size, 1),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[key] = f
	return f, nil
}

func (r *Rasterizer) font(k fontKey) (*truetype.Font, error) {
	if f, ok := r.fonts[k]; ok {
		return f, nil
	}
	var data []byte
	switch {
	case k.mono && k.bold && k.italic:
		data = gomonobolditalic.TTF
	case k.mono && k.bold:
		data = gomonobold.TTF
	case k.mono && k.italic:
		data = gomonoitalic.TTF
	case k.mono:
		data = gomono.TTF
	case k.bold && k.italic:
		data = gobolditalic.TTF
	case k.bold:
		data = gobold.TTF
	case k.italic:
		data = goitalic.TTF
	default:
		data = goregular.TTF
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	r.fonts[k] = f
	return f, nil
}

func (r *Rasterizer) drawSelection(dc *gg.Context) {
	if len(r.selected) == 0 {
		return
	}
	bounds := r.selected[0].Bounds()
	for _, s := range r.selected[1:] {
		bounds = bounds.Union(s.Bounds())
	}
	dc.SetHexColor(selectionColor)
	dc.SetLineWidth(1)
	dc.DrawRectangle(bounds.Min.X, bounds.Min.Y, bounds.Width(), bounds.Height())
	dc.Stroke()
	for _, h := range []HandlePos{HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft} {
		c := bounds.Corner(h)
		dc.DrawRectangle(c.X-handleSize/2, c.Y-handleSize/2, handleSize, handleSize)
		dc.Fill()
	}
}

// parseHex decodes #rgb and #rrggbb; anything else is opaque black.
func parseHex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	red, green, blue := c.RGB255()
	return color.NRGBA{R: red, G: green, B: blue, A: 255}
}
