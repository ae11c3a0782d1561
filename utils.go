package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/text/encoding/charmap"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// cleanClipboardText turns clipboard content into plain text for a text
// shape: RTF markup and control characters are dropped and line endings
// become \n.
func cleanClipboardText(text string) string {
	if strings.Contains(text, "\\rtf") {
		text = stripRTF(text)
	}
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
	text = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, text)
	return strings.TrimRight(text, "\n")
}

// rtfDestinations are groups whose content is document metadata rather
// than text.
var rtfDestinations = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"header":     true,
	"footer":     true,
}

// stripRTF keeps the literal text of an RTF document. Control words vanish
// together with their delimiting space, \par and \line become newlines,
// \'hh is read as Windows-1252 and \uN as a code point whose fallback
// character is dropped. Destination groups such as the font table are
// skipped whole.
func stripRTF(text string) string {
	var out strings.Builder
	out.Grow(len(text))
	depth, skipFrom := 0, 0
	groupStart := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '{':
			depth++
			groupStart = true
			continue
		case '}':
			if depth == skipFrom {
				skipFrom = 0
			}
			depth--
			groupStart = false
			continue
		}
		first := groupStart
		groupStart = false
		if c != '\\' {
			if skipFrom == 0 && c != '\n' && c != '\r' {
				out.WriteByte(c)
			}
			continue
		}
		if i+1 >= len(text) {
			break
		}
		next := text[i+1]
		switch {
		case next == '\\' || next == '{' || next == '}':
			i++
			if skipFrom == 0 {
				out.WriteByte(next)
			}
		case next == '\'':
			if i+4 <= len(text) && skipFrom == 0 {
				if b, err := strconv.ParseUint(text[i+2:i+4], 16, 8); err == nil {
					out.WriteRune(charmap.Windows1252.DecodeByte(byte(b)))
				}
			}
			i += 3
		case next == '*':
			if first && skipFrom == 0 {
				skipFrom = depth
			}
			i++
		case isASCIILetter(next):
			j := i + 1
			for j < len(text) && isASCIILetter(text[j]) {
				j++
			}
			word := text[i+1 : j]
			k := j
			if k < len(text) && text[k] == '-' {
				k++
			}
			for k < len(text) && text[k] >= '0' && text[k] <= '9' {
				k++
			}
			param := text[j:k]
			if k < len(text) && text[k] == ' ' {
				k++
			}
			i = k - 1
			if first && skipFrom == 0 && rtfDestinations[word] {
				skipFrom = depth
			}
			if skipFrom != 0 {
				continue
			}
			switch word {
			case "par", "line":
				out.WriteByte('\n')
			case "tab":
				out.WriteByte('\t')
			case "u":
				if n, err := strconv.Atoi(param); err == nil {
					if n < 0 {
						n += 65536
					}
					out.WriteRune(rune(n))
					i = skipRTFFallback(text, k) - 1
				}
			}
		default:
			// Control symbols such as \~ or \-.
			i++
		}
	}
	return out.String()
}

// skipRTFFallback returns the index after the one-character fallback that
// follows a \uN escape starting at i.
func skipRTFFallback(text string, i int) int {
	if i >= len(text) {
		return i
	}
	switch {
	case strings.HasPrefix(text[i:], "\\'"):
		return min(i+4, len(text))
	case text[i] == '\\' || text[i] == '{' || text[i] == '}':
		return i
	}
	return i + 1
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// imagePath reports whether text is the path of an existing picture file.
func imagePath(text string) (string, bool) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "file://")
	if strings.ContainsRune(text, '\n') || !imageExtensions[strings.ToLower(filepath.Ext(text))] {
		return "", false
	}
	if info, err := os.Stat(text); err != nil || info.IsDir() {
		return "", false
	}
	return text, true
}
