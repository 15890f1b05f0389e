package whitebg

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestCountBackgroundMatchesApply(t *testing.T) {
	img := newNRGBA(
		color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		color.NRGBA{R: 241, G: 241, B: 241, A: 1},
		color.NRGBA{R: 255, G: 255, B: 255, A: 0},
		color.NRGBA{R: 240, G: 255, B: 255, A: 255},
	)
	before := append([]uint8(nil), img.Pix...)

	matched, total, err := NewEngine(DefaultThreshold).CountBackground(img)
	if err != nil {
		t.Fatalf("CountBackground error: %v", err)
	}
	if total != 4 {
		t.Fatalf("total = %d, want 4", total)
	}
	if matched != 2 {
		t.Fatalf("matched = %d, want 2", matched)
	}
	if !bytes.Equal(before, img.Pix) {
		t.Fatalf("CountBackground mutated the image")
	}

	if changed := NewEngine(DefaultThreshold).Apply(img); changed != matched {
		t.Fatalf("Apply changed %d, CountBackground reported %d", changed, matched)
	}
}

func TestCountBackgroundGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.SetGray(0, 0, color.Gray{Y: 250})
	img.SetGray(1, 0, color.Gray{Y: 240})
	img.SetGray(2, 0, color.Gray{Y: 0})

	matched, total, err := NewEngine(DefaultThreshold).CountBackground(img)
	if err != nil {
		t.Fatalf("CountBackground error: %v", err)
	}
	if matched != 1 || total != 3 {
		t.Fatalf("matched=%d total=%d, want 1 and 3", matched, total)
	}
}

func TestCountBackgroundRejectsNil(t *testing.T) {
	if _, _, err := NewEngine(DefaultThreshold).CountBackground(nil); err == nil {
		t.Fatalf("expected error for nil image")
	}
}
