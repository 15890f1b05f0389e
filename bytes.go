package whitebg

// RemoveBackgroundBytes decodes raw image bytes, clears the background with
// the default engine and returns the result encoded as PNG along with the
// number of pixels that changed.
func RemoveBackgroundBytes(data []byte) ([]byte, int, error) {
	return engineDefault().RemoveBackgroundBytes(data)
}

// RemoveBackgroundBytes is the byte-slice form of Engine.RemoveBackground.
func (e *Engine) RemoveBackgroundBytes(data []byte) ([]byte, int, error) {
	img, _, err := DecodeImageBytes(data)
	if err != nil {
		return nil, 0, err
	}

	cleaned, changed, err := e.RemoveBackground(img)
	if err != nil {
		return nil, 0, err
	}

	out, err := EncodePNGBytes(cleaned)
	if err != nil {
		return nil, 0, err
	}
	return out, changed, nil
}
