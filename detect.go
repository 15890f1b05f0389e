package whitebg

import (
	"fmt"
	"image"
	"image/color"
)

// CountBackground reports how many pixels of img the engine would change,
// along with the total pixel count. The image is not modified.
func (e *Engine) CountBackground(img image.Image) (matched, total int, err error) {
	if img == nil {
		return 0, 0, fmt.Errorf("nil image provided")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := nrgbaAt(img, x, y)
			if !e.isBackground(c.R, c.G, c.B) {
				continue
			}
			if c == (color.NRGBA{R: 0xff, G: 0xff, B: 0xff}) {
				continue
			}
			matched++
		}
	}

	return matched, width * height, nil
}
