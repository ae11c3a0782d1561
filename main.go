package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := config.validateBindings(); err != nil {
		log.Fatal(err)
	}
	logFile, err := setupLogging(config.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	p := tea.NewProgram(
		newModel(config),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// setupLogging sends the standard logger to path, or discards it so
// nothing is written over the alternate screen.
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	session := uuid.NewString()[:8]
	return tea.LogToFile(path, fmt.Sprintf("sketch %s ", session))
}

type inputMode int

const (
	inputNone inputMode = iota
	inputText
	inputProperty
)

const (
	doubleClickInterval = 400 * time.Millisecond
	panelWidth          = 32
)

type model struct {
	editor *Editor
	raster *Rasterizer
	config *Config

	width     int
	height    int
	state     StateKind
	shapeType ShapeType
	help      bool
	message   string

	input      textinput.Model
	inputMode  inputMode
	editShape  int
	editProp   string
	propCursor int

	pressed   bool
	lastClick time.Time
	clickX    int
	clickY    int

	now func() time.Time
}

func newModel(config *Config) *model {
	e := NewEditor(config.Editor)
	m := &model{
		editor:    e,
		config:    config,
		raster:    NewRasterizer(int(config.Editor.CanvasWidth), int(config.Editor.CanvasHeight)),
		state:     e.StateKind(),
		shapeType: e.ShapeType(),
		input:     textinput.New(),
		now:       time.Now,
	}
	m.input.CharLimit = 500
	m.input.Width = 60
	m.raster.Attach(e)
	e.Subscribe(m.onEvent)
	log.Printf("editor ready: canvas %vx%v, %d key bindings", config.Editor.CanvasWidth, config.Editor.CanvasHeight, len(config.Bindings))
	return m
}

func (m *model) onEvent(ev Event) {
	switch ev := ev.(type) {
	case StateChanged:
		m.state = ev.State
		if ev.ShapeType != "" {
			m.shapeType = ev.ShapeType
		}
	case ShowTextInput:
		m.input.Prompt = "text> "
		m.input.SetValue(ev.Text)
		m.input.CursorEnd()
		m.input.Focus()
		m.inputMode = inputText
	case HideTextInput:
		if m.inputMode == inputText {
			m.closeInput()
		}
	case ResetInputFields:
		m.closeInput()
		m.propCursor = 0
		m.message = "canvas cleared"
	case ShapesUpdated:
		if len(ev.Selected) != 1 {
			m.propCursor = 0
		} else if n := len(ev.Selected[0].Properties()); m.propCursor >= n {
			m.propCursor = n - 1
		}
	}
}

func (m *model) closeInput() {
	m.input.Blur()
	m.input.Reset()
	m.inputMode = inputNone
	m.editProp = ""
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	p, inside := m.toCanvas(msg.X, msg.Y)
	switch msg.Type {
	case tea.MouseLeft:
		if m.pressed {
			if inside {
				m.editor.PointerMove(p.X, p.Y)
			}
			return
		}
		if !inside {
			return
		}
		m.pressed = true
		m.press(msg.X, msg.Y, p)
	case tea.MouseMotion:
		if m.pressed && inside {
			m.editor.PointerMove(p.X, p.Y)
		}
	case tea.MouseRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		m.editor.PointerUp()
		m.editor.ReleasePointer()
	}
}

// press turns a button press into a double click, a handle grab or a
// plain pointer down.
func (m *model) press(cx, cy int, p Point) {
	now := m.now()
	double := now.Sub(m.lastClick) <= doubleClickInterval && cx == m.clickX && cy == m.clickY
	m.lastClick, m.clickX, m.clickY = now, cx, cy
	if double {
		m.lastClick = time.Time{}
		m.editor.DoubleClick(p.X, p.Y)
		return
	}
	if m.editor.StateKind() == StateSelect {
		w, h := m.cellSize()
		if handle, ok := m.editor.HandleAt(p, max(w, h)); ok {
			m.run(CmdStartResize, Params{Handle: handle, X: p.X, Y: p.Y})
			return
		}
	}
	m.editor.PointerDown(p.X, p.Y)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.inputMode != inputNone {
		return m.handleInputKey(msg)
	}
	m.message = ""
	key := msg.String()

	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
		}
		return nil
	}

	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "?":
		m.help = true
		return nil
	case "u", "ctrl+z":
		if !m.editor.Undo() {
			m.message = "nothing to undo"
		}
		return nil
	case "ctrl+r", "ctrl+y":
		if !m.editor.Redo() {
			m.message = "nothing to redo"
		}
		return nil
	case "p", "ctrl+v":
		m.paste()
		return nil
	case "y":
		m.copyText()
		return nil
	case "e":
		if name, err := m.exportPNG(); err != nil {
			log.Print(err)
			m.message = err.Error()
		} else {
			m.message = "exported " + name
		}
		return nil
	case "tab":
		m.movePropCursor(1)
		return nil
	case "shift+tab":
		m.movePropCursor(-1)
		return nil
	case "enter":
		return m.editProperty()
	case "esc":
		m.run(CmdUpdateSelected, Params{})
		return nil
	}

	if m.handleNudge(key) {
		return nil
	}
	if b, ok := m.config.Bindings[key]; ok {
		m.runBinding(b)
	}
	return nil
}

func (m *model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		if m.inputMode == inputText {
			m.editor.ConfirmText()
		} else {
			m.commitProperty()
		}
		return nil
	case tea.KeyEsc:
		if m.inputMode == inputText {
			m.editor.CancelText()
		} else {
			m.closeInput()
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.inputMode == inputText {
		m.editor.TypeText(m.input.Value())
	}
	return cmd
}

func (m *model) run(key CommandKey, p Params) {
	if err := m.editor.Run(key, p); err != nil {
		log.Printf("command %s: %v", key, err)
		m.message = err.Error()
	}
}

// runBinding turns a key binding into command parameters, filling in the
// current selection where the command needs a target.
func (m *model) runBinding(b Binding) {
	p := Params{}
	switch b.Command {
	case CmdSetState:
		p.State, p.ShapeType, _ = stateArg(b.Arg)
	case CmdAddTemplateShape:
		p.ShapeType = ShapeType(b.Arg)
		p.Properties = m.templateProperties(p.ShapeType)
	case CmdZOrderMove:
		id, ok := m.singleSelected()
		if !ok {
			m.message = "select one shape first"
			return
		}
		p.Action = ZOrderAction(b.Arg)
		p.ShapeID = id
	case CmdUngroup:
		id, ok := m.singleSelected()
		if !ok {
			m.message = "select one group first"
			return
		}
		p.ShapeID = id
	case CmdGroup:
		if m.editor.SelectedModel().Len() < 2 {
			m.message = "select at least two shapes"
			return
		}
	}
	m.run(b.Command, p)
}

func (m *model) singleSelected() (int, bool) {
	ids := m.editor.SelectedModel().IDs()
	if len(ids) != 1 {
		return 0, false
	}
	return ids[0], true
}

func (m *model) templateProperties(t ShapeType) map[string]any {
	props := map[string]any{}
	switch t {
	case ShapeText:
		props[PropFontFamily] = m.config.FontFamily
		props[PropFontSize] = m.config.FontSize
	case ShapeImage:
		props[PropImageURL] = m.config.Editor.ImageURL
	default:
		props[PropColor] = m.config.Editor.DrawColor
	}
	return props
}

// paste adds the clipboard as a picture when it names an image file and
// as a text shape otherwise.
func (m *model) paste() {
	text, err := readClipboardText()
	if err != nil {
		log.Printf("paste: %v", err)
		m.message = "clipboard unavailable"
		return
	}
	text = cleanClipboardText(text)
	if text == "" {
		m.message = "clipboard is empty"
		return
	}
	if path, ok := imagePath(text); ok {
		m.run(CmdAddTemplateShape, Params{
			ShapeType:  ShapeImage,
			Properties: map[string]any{PropImageURL: path},
		})
		return
	}
	props := m.templateProperties(ShapeText)
	props[PropContent] = text
	m.run(CmdAddTemplateShape, Params{ShapeType: ShapeText, Properties: props})
}

func (m *model) copyText() {
	id, ok := m.singleSelected()
	if !ok {
		m.message = "select one text shape first"
		return
	}
	shape, _ := m.editor.ShapeModel().Get(id)
	t, ok := shape.(*Text)
	if !ok {
		m.message = "select one text shape first"
		return
	}
	if err := writeClipboardText(t.Content()); err != nil {
		log.Printf("copy: %v", err)
		m.message = "clipboard unavailable"
		return
	}
	m.message = "copied"
}

func (m *model) movePropCursor(delta int) {
	sel := m.raster.Selected()
	if len(sel) != 1 {
		return
	}
	n := len(sel[0].Properties())
	if n == 0 {
		return
	}
	m.propCursor = (m.propCursor + delta + n) % n
}

func (m *model) selectedProperty() (Shape, Property, bool) {
	sel := m.raster.Selected()
	if len(sel) != 1 {
		return nil, Property{}, false
	}
	props := sel[0].Properties()
	if m.propCursor < 0 || m.propCursor >= len(props) {
		return nil, Property{}, false
	}
	return sel[0], props[m.propCursor], true
}

// editProperty toggles booleans, cycles dropdowns and opens the input
// line for everything else that is writable.
func (m *model) editProperty() tea.Cmd {
	s, p, ok := m.selectedProperty()
	if !ok {
		return nil
	}
	switch p.Kind {
	case KindRead:
		m.message = p.Name + " is read-only"
	case KindBoolean:
		v, _ := p.Value.(bool)
		m.setProperty(s, p.Name, !v)
	case KindDropdown:
		m.setProperty(s, p.Name, nextOption(p.Options, fmt.Sprint(p.Value)))
	default:
		m.editShape = s.ID()
		m.editProp = p.Name
		m.input.Prompt = p.Name + "> "
		m.input.SetValue(formatValue(p.Value))
		m.input.CursorEnd()
		m.inputMode = inputProperty
		return m.input.Focus()
	}
	return nil
}

func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (m *model) commitProperty() {
	shape, ok := m.editor.ShapeModel().Get(m.editShape)
	if ok {
		m.setProperty(shape, m.editProp, m.input.Value())
	}
	m.closeInput()
}

// setProperty checks the value on a copy first so a bad entry can be
// reported instead of only logged.
func (m *model) setProperty(s Shape, name string, value any) {
	if err := s.Clone().SetProperty(name, value); err != nil {
		m.message = err.Error()
		return
	}
	m.run(CmdSetProperty, Params{ShapeID: s.ID(), PropertyName: name, Value: value})
}
