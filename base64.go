package whitebg

import (
	"encoding/base64"
	"fmt"
	"image"
	"strings"
)

// DecodeBase64Image decodes a base64 payload, optionally wrapped in a data URL
// such as "data:image/png;base64,...".
func DecodeBase64Image(input string) (image.Image, string, error) {
	data, err := decodePayload(input)
	if err != nil {
		return nil, "", err
	}
	return DecodeImageBytes(data)
}

// RemoveBackgroundBase64 runs the default engine over a base64 image.
func RemoveBackgroundBase64(input string) (string, int, error) {
	return engineDefault().RemoveBackgroundBase64(input)
}

// RemoveBackgroundBase64 clears the background of a base64 image and returns
// the PNG result as base64 with the number of pixels that changed.
func (e *Engine) RemoveBackgroundBase64(input string) (string, int, error) {
	data, err := decodePayload(input)
	if err != nil {
		return "", 0, err
	}

	out, changed, err := e.RemoveBackgroundBytes(data)
	if err != nil {
		return "", 0, err
	}
	return base64.StdEncoding.EncodeToString(out), changed, nil
}

func decodePayload(input string) ([]byte, error) {
	raw := strings.TrimSpace(input)
	if len(raw) > 5 && strings.EqualFold(raw[:5], "data:") {
		_, payload, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, fmt.Errorf("data URL without payload")
		}
		raw = payload
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}
