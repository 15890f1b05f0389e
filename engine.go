package whitebg

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
)

// DefaultThreshold is the per-channel brightness cutoff. A pixel is
// background when R, G and B are all strictly greater than it.
const DefaultThreshold uint8 = 240

// Engine clears near-white pixels using a fixed threshold.
type Engine struct {
	threshold uint8
}

// NewEngine constructs an Engine with the given per-channel threshold.
func NewEngine(threshold uint8) *Engine {
	return &Engine{threshold: threshold}
}

// Threshold reports the cutoff the engine compares against.
func (e *Engine) Threshold() uint8 {
	return e.threshold
}

var defaultEngine struct {
	once sync.Once
	eng  *Engine
}

func engineDefault() *Engine {
	defaultEngine.once.Do(func() {
		defaultEngine.eng = NewEngine(DefaultThreshold)
	})
	return defaultEngine.eng
}

// RemoveBackground applies the default engine to the provided image.
func RemoveBackground(img image.Image) (*image.NRGBA, int, error) {
	return engineDefault().RemoveBackground(img)
}

// RemoveBackground converts img into a new *image.NRGBA and clears every
// background pixel in it. It returns the result and the number of pixels that
// changed.
func (e *Engine) RemoveBackground(img image.Image) (*image.NRGBA, int, error) {
	if img == nil {
		return nil, 0, fmt.Errorf("nil image provided")
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, 0, fmt.Errorf("invalid image dimensions %dx%d", bounds.Dx(), bounds.Dy())
	}

	nrgba := cloneToNRGBA(img)
	return nrgba, e.Apply(nrgba), nil
}

// Apply clears background pixels of img in place and returns how many pixels
// changed. Pixels that are already transparent white are not counted, so a
// second pass over the same buffer reports zero.
func (e *Engine) Apply(img *image.NRGBA) int {
	if img == nil {
		return 0
	}

	bounds := img.Rect
	width := bounds.Dx()
	changed := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y):]
		for x := 0; x < width; x++ {
			px := row[x*4 : x*4+4 : x*4+4]
			if !e.isBackground(px[0], px[1], px[2]) {
				continue
			}
			if px[0] == 0xff && px[1] == 0xff && px[2] == 0xff && px[3] == 0 {
				continue
			}
			px[0], px[1], px[2], px[3] = 0xff, 0xff, 0xff, 0
			changed++
		}
	}

	return changed
}

func (e *Engine) isBackground(r, g, b uint8) bool {
	return r > e.threshold && g > e.threshold && b > e.threshold
}

// cloneToNRGBA copies the image into a mutable non-premultiplied buffer.
// Sources that can hold translucent colour without premultiplying it are read
// channel by channel, so pixels that fail the rule keep their exact values.
// Everything else goes through draw.Src.
func cloneToNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)

	switch s := src.(type) {
	case *image.NRGBA:
		rowLen := bounds.Dx() * 4
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):][:rowLen], s.Pix[s.PixOffset(bounds.Min.X, y):][:rowLen])
		}
	case *image.NRGBA64, *image.Paletted:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				dst.SetNRGBA(x, y, nrgbaAt(s, x, y))
			}
		}
	default:
		draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	}
	return dst
}

// nrgbaAt reads a pixel the same way cloneToNRGBA stores it.
func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	switch m := img.(type) {
	case *image.NRGBA:
		return m.NRGBAAt(x, y)
	case *image.NRGBA64:
		return narrowNRGBA64(m.NRGBA64At(x, y))
	case *image.Paletted:
		idx := int(m.ColorIndexAt(x, y))
		if idx >= len(m.Palette) {
			return color.NRGBA{}
		}
		return paletteNRGBA(m.Palette[idx])
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func paletteNRGBA(c color.Color) color.NRGBA {
	switch v := c.(type) {
	case color.NRGBA:
		return v
	case color.NRGBA64:
		return narrowNRGBA64(v)
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// narrowNRGBA64 keeps the high byte of each channel.
func narrowNRGBA64(c color.NRGBA64) color.NRGBA {
	return color.NRGBA{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8), A: uint8(c.A >> 8)}
}
