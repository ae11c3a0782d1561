package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	readOnlyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// canvasCells is the size of the canvas area in terminal cells. The
// property panel takes the right edge, the input and status lines the
// bottom two rows.
func (m *model) canvasCells() (cols, rows int) {
	cols = m.width - panelWidth
	rows = m.height - 2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// cellSize is how many canvas units one terminal cell spans.
func (m *model) cellSize() (w, h float64) {
	cols, rows := m.canvasCells()
	cfg := m.editor.Config()
	return cfg.CanvasWidth / float64(cols), cfg.CanvasHeight / float64(rows)
}

// toCanvas maps a terminal cell to the canvas point under its center.
func (m *model) toCanvas(cx, cy int) (Point, bool) {
	cols, rows := m.canvasCells()
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return Point{}, false
	}
	w, h := m.cellSize()
	return Point{X: (float64(cx) + 0.5) * w, Y: (float64(cy) + 0.5) * h}, true
}

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, rows := m.canvasCells()

	var band *Rect
	if r, ok := m.editor.Band(); ok {
		band = &r
	}
	img := m.raster.Render(band)

	side := m.renderPanel()
	if m.help {
		side = m.helpView()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCanvas(img),
		panelStyle.Height(rows).Width(panelWidth-3).Render(side),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderInputLine(), m.renderStatus())
}

// renderCanvas samples the raster into half-block cells: the upper half
// of each cell takes the foreground color, the lower half the background.
// Runs of equal cells share one styled segment.
func (m *model) renderCanvas(img image.Image) string {
	cols, rows := m.canvasCells()
	b := img.Bounds()
	sx := float64(b.Dx()) / float64(cols)
	sy := float64(b.Dy()) / float64(rows)

	var out strings.Builder
	for row := 0; row < rows; row++ {
		var runTop, runBottom string
		runLen := 0
		flush := func() {
			if runLen == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runTop)).
				Background(lipgloss.Color(runBottom))
			out.WriteString(style.Render(strings.Repeat("▀", runLen)))
			runLen = 0
		}
		for col := 0; col < cols; col++ {
			x := b.Min.X + int((float64(col)+0.5)*sx)
			top := hexColor(img.At(x, b.Min.Y+int((float64(row)+0.25)*sy)))
			bottom := hexColor(img.At(x, b.Min.Y+int((float64(row)+0.75)*sy)))
			if runLen > 0 && (top != runTop || bottom != runBottom) {
				flush()
			}
			runTop, runBottom = top, bottom
			runLen++
		}
		flush()
		if row < rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func (m *model) renderPanel() string {
	var lines []string
	sel := m.raster.Selected()
	switch len(sel) {
	case 0:
		lines = append(lines, titleStyle.Render("Nothing selected"))
	case 1:
		s := sel[0]
		lines = append(lines, titleStyle.Render(fmt.Sprintf("%s #%d", s.Type(), s.ID())), "")
		for i, p := range s.Properties() {
			line := fmt.Sprintf("%-12s %s", p.Name, formatValue(p.Value))
			switch {
			case i == m.propCursor:
				line = cursorStyle.Render(line)
			case p.Kind == KindRead:
				line = readOnlyStyle.Render(line)
			}
			lines = append(lines, line)
		}
	default:
		lines = append(lines, titleStyle.Render(fmt.Sprintf("%d shapes selected", len(sel))))
	}
	return strings.Join(lines, "\n")
}

func formatValue(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	case string:
		return v
	}
	return fmt.Sprint(v)
}

func (m *model) renderInputLine() string {
	if m.inputMode != inputNone {
		return m.input.View()
	}
	return messageStyle.Render(m.message)
}

func (m *model) renderStatus() string {
	mode := string(m.state)
	switch s := m.editor.State().(type) {
	case *DrawState:
		mode += " · " + string(m.shapeType)
	case *ResizeState:
		mode += " · " + string(s.Handle())
	case *EditTextState:
		mode += fmt.Sprintf(" · #%d", s.ShapeID())
	}
	var keys []string
	h := m.editor.History()
	if h.CanUndo() {
		keys = append(keys, "u: undo")
	}
	if h.CanRedo() {
		keys = append(keys, "ctrl+r: redo")
	}
	keys = append(keys, "?: help", "q: quit")
	status := fmt.Sprintf("%s | shapes: %d | selected: %d | %s",
		mode, len(m.raster.Shapes()), len(m.raster.Selected()), strings.Join(keys, "  "))
	return statusStyle.Width(m.width).Render(status)
}

func (m *model) helpView() string {
	lines := []string{
		titleStyle.Render("Keys"),
		"",
		"mouse       draw / select / drag",
		"dbl-click   edit text",
		"corners     resize selection",
		"arrows      nudge (shift: x2)",
		"u / ctrl+r  undo / redo",
		"p / y       paste / copy text",
		"e           export PNG",
		"tab, enter  edit property",
		"esc         clear selection",
		"",
	}
	for _, key := range sortedKeys(m.config.Bindings) {
		lines = append(lines, fmt.Sprintf("%-11s %s", key, m.config.Bindings[key]))
	}
	return strings.Join(lines, "\n")
}
