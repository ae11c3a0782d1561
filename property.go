package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidValue    = errors.New("invalid property value")
)

// Property describes one editable attribute for the property panel.
type Property struct {
	Name    string
	Kind    PropertyKind
	Value   any
	Options []string
}

func propertyError(s Shape, name string) error {
	return fmt.Errorf("%w: %s on %s", ErrUnknownProperty, name, s.Type())
}

func findProperty(props []Property, name string) (any, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %v is not a number", ErrInvalidValue, v)
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, b)
		}
		return parsed, nil
	}
	return false, fmt.Errorf("%w: %v is not a boolean", ErrInvalidValue, v)
}

func toText(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %v is not text", ErrInvalidValue, v)
	}
	return s, nil
}

// toColor accepts #rgb and #rrggbb hex colors.
func toColor(v any) (string, error) {
	s, err := toText(v)
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return "", fmt.Errorf("%w: %q is not a hex color", ErrInvalidValue, s)
	}
	if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
		return "", fmt.Errorf("%w: %q is not a hex color", ErrInvalidValue, s)
	}
	return strings.ToLower(s), nil
}

func toFontFamily(v any) (string, error) {
	s, err := toText(v)
	if err != nil {
		return "", err
	}
	for _, f := range fontFamilies {
		if strings.EqualFold(f, s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported font %q", ErrInvalidValue, s)
}

func toSize(v any) (float64, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		f = -f
	}
	return f, nil
}
