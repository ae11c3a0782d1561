package main

import (
	"fmt"

	"github.com/fogleman/gg"
)

// exportPNG writes the canvas as it is painted, without the selection
// overlay, to a timestamped file in the current directory.
func (m *model) exportPNG() (string, error) {
	filename := fmt.Sprintf("sketch-%s.png", m.now().Format("20060102-150405"))
	saved := m.raster.selected
	m.raster.selected = nil
	img := m.raster.Render(nil)
	m.raster.selected = saved
	if err := gg.SavePNG(filename, img); err != nil {
		return "", fmt.Errorf("export %s: %w", filename, err)
	}
	return filename, nil
}
