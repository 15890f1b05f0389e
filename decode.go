package whitebg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	// PNG is the target format. GIF, JPEG and WebP are registered so that a
	// mislabeled file still decodes and is rewritten as PNG.
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
)

// Decode reads any registered image format and reports its name.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// DecodeImageBytes decodes an in-memory image.
func DecodeImageBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}

	img, format, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodePNGBytes encodes img as PNG in memory.
func EncodePNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
