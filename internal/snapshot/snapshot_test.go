package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{255, 0, 0, 255}
			if (x+y)%2 == 1 {
				c = color.NRGBA{0, 0, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.webp":     WebP,
		"dir/b.TGA":  TGA,
		"c.png":      PNG,
		"d.tar.webp": WebP,
	} {
		f, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, f, path)
	}
	_, err := FormatOf("frame.jpg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = FormatOf("frame")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, "tga", TGA.String())
}

func TestEncode(t *testing.T) {
	img := checker()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, WebP))
	require.Greater(t, buf.Len(), 12)
	assert.Equal(t, "RIFF", string(buf.Bytes()[0:4]))
	assert.Equal(t, "WEBP", string(buf.Bytes()[8:12]))

	buf.Reset()
	require.NoError(t, Encode(&buf, img, PNG))
	got, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, img, TGA))
	got, err = tga.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds().Size(), got.Bounds().Size())
	r, g, b, _ := got.At(1, 0).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b})

	assert.ErrorIs(t, Encode(&buf, img, Format(9)), ErrUnknownFormat)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "frame.png")
	require.NoError(t, Save(path, checker()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.ErrorIs(t, Save(filepath.Join(dir, "frame.bmp"), checker()), ErrUnknownFormat)
}
