package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeImageData_RejectsOversizedDimensions(t *testing.T) {
	for _, size := range [][2]int{{MaxImageSide + 1, 1}, {1, MaxImageSide + 1}} {
		img := image.NewGray(image.Rect(0, 0, size[0], size[1]))
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, img))

		_, err := DecodeImageData(base64.StdEncoding.EncodeToString(buf.Bytes()))
		assert.ErrorIs(t, err, ErrBadImage, "%dx%d", size[0], size[1])

		_, err = PrepareProfilePic(base64.StdEncoding.EncodeToString(buf.Bytes()))
		assert.ErrorIs(t, err, ErrBadImage)
	}

	edge := pngDataURL(t, MaxImageSide, 1)
	img, err := DecodeImageData(edge)
	require.NoError(t, err)
	assert.Equal(t, MaxImageSide, img.Bounds().Dx())
}

func TestDecodeImageData(t *testing.T) {
	dataURL := pngDataURL(t, 20, 10)

	img, err := DecodeImageData(dataURL)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())

	bare := strings.TrimPrefix(dataURL, "data:image/png;base64,")
	img, err = DecodeImageData(bare)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dy())

	for _, bad := range []string{"", "data:image/png,plain", "data:image/png;base64,!!!", base64.StdEncoding.EncodeToString([]byte("not an image"))} {
		_, err := DecodeImageData(bad)
		assert.ErrorIs(t, err, ErrBadImage, bad)
	}
}

func TestPrepareProfilePic_Downscales(t *testing.T) {
	out, err := PrepareProfilePic(pngDataURL(t, 1000, 500))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, ProfilePicWidth, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestPrepareProfilePic_KeepsSmallImages(t *testing.T) {
	out, err := PrepareProfilePic(pngDataURL(t, 64, 32))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestInlinePictureStore(t *testing.T) {
	url, err := InlinePictureStore{}.Save(context.Background(), "owner", []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,/9g=", url)
}
