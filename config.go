package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidBinding = errors.New("invalid key binding")

type Config struct {
	Editor     EditorConfig
	FontFamily string
	FontSize   float64
	LogFile    string
	Bindings   map[string]Binding
}

// Binding ties a key to a registry command. Arg is interpreted per
// command: a state or shape type for SET_STATE, a shape type for
// ADD_TEMPLATE_SHAPE, an action for Z_ORDER_MOVE.
type Binding struct {
	Command CommandKey
	Arg     string
}

func (b Binding) String() string {
	if b.Arg == "" {
		return string(b.Command)
	}
	return string(b.Command) + ":" + b.Arg
}

func defaultBindings() map[string]Binding {
	return map[string]Binding{
		"s": {Command: CmdSetState, Arg: string(StateSelect)},
		"r": {Command: CmdSetState, Arg: string(ShapeRectangle)},
		"o": {Command: CmdSetState, Arg: string(ShapeEllipse)},
		"l": {Command: CmdSetState, Arg: string(ShapeLine)},
		"i": {Command: CmdSetState, Arg: string(ShapeImage)},
		"t": {Command: CmdSetState, Arg: string(ShapeText)},
		"R": {Command: CmdAddTemplateShape, Arg: string(ShapeRectangle)},
		"O": {Command: CmdAddTemplateShape, Arg: string(ShapeEllipse)},
		"L": {Command: CmdAddTemplateShape, Arg: string(ShapeLine)},
		"T": {Command: CmdAddTemplateShape, Arg: string(ShapeText)},
		"g": {Command: CmdGroup},
		"G": {Command: CmdUngroup},
		"f": {Command: CmdZOrderMove, Arg: string(ZOrderFront)},
		"b": {Command: CmdZOrderMove, Arg: string(ZOrderBack)},
		"]": {Command: CmdZOrderMove, Arg: string(ZOrderForward)},
		"[": {Command: CmdZOrderMove, Arg: string(ZOrderBackward)},
		"X": {Command: CmdCanvasReset},
	}
}

func defaultConfig() *Config {
	return &Config{
		Editor:     defaultEditorConfig(),
		FontFamily: defaultFontFamily,
		FontSize:   defaultFontSize,
		Bindings:   defaultBindings(),
	}
}

// loadConfig reads ~/.sketchrc. A missing file yields the defaults; a
// malformed value or binding is an error.
func loadConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig(), nil
	}
	file, err := os.Open(filepath.Join(homeDir, ".sketchrc"))
	if err != nil {
		return defaultConfig(), nil
	}
	defer file.Close()
	return parseConfig(file, homeDir)
}

func parseConfig(r io.Reader, homeDir string) (*Config, error) {
	config := defaultConfig()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if strings.HasPrefix(strings.ToLower(key), "bind.") {
			b, err := parseBinding(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			config.Bindings[key[len("bind."):]] = b
			continue
		}

		if err := config.set(strings.ToLower(key), value, homeDir); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) set(key, value, homeDir string) error {
	switch key {
	case "canvaswidth", "canvas_width":
		return setPositive(&c.Editor.CanvasWidth, key, value)
	case "canvasheight", "canvas_height":
		return setPositive(&c.Editor.CanvasHeight, key, value)
	case "templatewidth", "template_width":
		return setPositive(&c.Editor.TemplateWidth, key, value)
	case "templateheight", "template_height":
		return setPositive(&c.Editor.TemplateHeight, key, value)
	case "defaultshape", "default_shape":
		t := ShapeType(strings.ToLower(value))
		if !validShapeType(t) || t == ShapeGroup {
			return fmt.Errorf("%w: %q", ErrUnknownShapeType, value)
		}
		c.Editor.DefaultShape = t
	case "fontfamily", "font_family":
		f, err := toFontFamily(value)
		if err != nil {
			return err
		}
		c.FontFamily = f
	case "fontsize", "font_size":
		return setPositive(&c.FontSize, key, value)
	case "color":
		col, err := toColor(value)
		if err != nil {
			return err
		}
		c.Editor.DrawColor = col
	case "image", "imageurl":
		c.Editor.ImageURL = expandHome(value, homeDir)
	case "logfile", "log_file":
		c.LogFile = expandHome(value, homeDir)
	}
	return nil
}

func setPositive(dst *float64, key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("%s: %q is not a positive number", key, value)
	}
	*dst = v
	return nil
}

func expandHome(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// parseBinding checks "<COMMAND_KEY>[:arg]" against the command registry.
// Only commands that make sense from a single key press can be bound.
func parseBinding(value string) (Binding, error) {
	cmd, arg, _ := strings.Cut(value, ":")
	b := Binding{Command: CommandKey(strings.TrimSpace(cmd)), Arg: strings.TrimSpace(arg)}
	if err := LookupCommand(b.Command); err != nil {
		return Binding{}, err
	}
	return b, b.validate()
}

func (b Binding) validate() error {
	switch b.Command {
	case CmdSetState:
		if _, _, ok := stateArg(b.Arg); !ok {
			return fmt.Errorf("%w: %s needs a state or shape type, got %q", ErrInvalidBinding, b.Command, b.Arg)
		}
	case CmdAddTemplateShape:
		if t := ShapeType(b.Arg); !validShapeType(t) || t == ShapeGroup {
			return fmt.Errorf("%w: %q", ErrUnknownShapeType, b.Arg)
		}
	case CmdZOrderMove:
		switch ZOrderAction(b.Arg) {
		case ZOrderFront, ZOrderBack, ZOrderForward, ZOrderBackward:
		default:
			return fmt.Errorf("%w: z-order action %q", ErrInvalidBinding, b.Arg)
		}
	case CmdGroup, CmdUngroup, CmdCanvasReset:
	default:
		return fmt.Errorf("%w: %s cannot be bound to a key", ErrInvalidBinding, b.Command)
	}
	return nil
}

// stateArg reads a SET_STATE argument. A shape type means the draw state
// for that type.
func stateArg(arg string) (StateKind, ShapeType, bool) {
	if t := ShapeType(arg); validShapeType(t) && t != ShapeGroup {
		return StateDraw, t, true
	}
	switch k := StateKind(arg); k {
	case StateSelect, StateDraw:
		return k, "", true
	}
	return "", "", false
}

// validateBindings re-checks every binding, including the built-in ones.
func (c *Config) validateBindings() error {
	for key, b := range c.Bindings {
		if err := LookupCommand(b.Command); err != nil {
			return fmt.Errorf("bind.%s: %w", key, err)
		}
		if err := b.validate(); err != nil {
			return fmt.Errorf("bind.%s: %w", key, err)
		}
	}
	return nil
}

func sortedKeys(bindings map[string]Binding) []string {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
