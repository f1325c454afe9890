package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestImage(t *testing.T, encode func(b *bytes.Buffer, img image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var b bytes.Buffer
	require.NoError(t, encode(&b, img))
	return b.Bytes()
}

func TestValidateImageAcceptsJPEGAndPNG(t *testing.T) {
	p := NewImageProcessor()

	jpegData := encodeTestImage(t, func(b *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(b, img, nil)
	})
	pngData := encodeTestImage(t, func(b *bytes.Buffer, img image.Image) error {
		return png.Encode(b, img)
	})

	assert.NoError(t, p.ValidateImage(jpegData))
	assert.NoError(t, p.ValidateImage(pngData))
}

func TestValidateImageOversizeIsSizeError(t *testing.T) {
	p := &ImageProcessor{MaxSize: 16}
	data := encodeTestImage(t, func(b *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(b, img, nil)
	})

	err := p.ValidateImage(data)

	// A valid JPEG over the cap must surface as too-large, not as a
	// format problem.
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.NotErrorIs(t, err, ErrImageUnsupported)
}

func TestValidateImageRejectsNonImages(t *testing.T) {
	p := NewImageProcessor()

	err := p.ValidateImage([]byte("definitely not an image"))

	assert.ErrorIs(t, err, ErrImageUnsupported)
	assert.NotErrorIs(t, err, ErrImageTooLarge)
}

func TestValidateImageRejectsDisallowedFormats(t *testing.T) {
	p := NewImageProcessor()

	// GIF decodes (the decoder is registered for ProcessImage) but is
	// not an accepted upload format.
	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

	assert.ErrorIs(t, p.ValidateImage(gif), ErrImageUnsupported)
}
