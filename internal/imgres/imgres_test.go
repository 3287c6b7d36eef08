package imgres

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var black = color.NRGBA{A: 0xff}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), A: 0xff})
		}
	}
	return img
}

// ninePatchSource builds an 8x8 bordered raster: top ticks at x 2..4, left
// ticks at y 2..3, bottom padding ticks at x 3..4 and an unmarked right edge.
func ninePatchSource() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 1; y < 7; y++ {
		for x := 1; x < 7; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0x80, A: 0xff})
		}
	}
	for x := 2; x <= 4; x++ {
		img.SetNRGBA(x, 0, black)
	}
	for y := 2; y <= 3; y++ {
		img.SetNRGBA(0, y, black)
	}
	for x := 3; x <= 4; x++ {
		img.SetNRGBA(x, 7, black)
	}
	return img
}

func TestFilterChunks(t *testing.T) {
	t.Parallel()

	src := encodePNG(t, gradient(4, 4))
	withText, err := spliceChunk(src, "tEXt", []byte("Comment\x00stripped"))
	require.NoError(t, err)
	require.Greater(t, len(withText), len(src))

	filtered, err := FilterChunks(withText)
	require.NoError(t, err)
	assert.Equal(t, src, filtered)
}

func TestFilterChunksErrors(t *testing.T) {
	t.Parallel()

	_, err := FilterChunks([]byte("not a png"))
	assert.ErrorIs(t, err, ErrNotPNG)

	src := encodePNG(t, gradient(4, 4))
	_, err = FilterChunks(src[:len(src)-6])
	assert.Error(t, err)
}

func TestExtractNinePatch(t *testing.T) {
	t.Parallel()

	np, err := ExtractNinePatch(ninePatchSource())
	require.NoError(t, err)

	assert.Equal(t, []Segment{{Start: 1, End: 4}}, np.HorizontalStretch)
	assert.Equal(t, []Segment{{Start: 1, End: 3}}, np.VerticalStretch)

	// Horizontal padding comes from the bottom ticks; the unmarked right
	// edge falls back to the vertical stretch region.
	assert.Equal(t, [4]int32{2, 2, 1, 3}, np.Padding)
}

func TestExtractNinePatchErrors(t *testing.T) {
	t.Parallel()

	_, err := ExtractNinePatch(image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	assert.ErrorContains(t, err, "at least 3x3")

	_, err = ExtractNinePatch(image.NewNRGBA(image.Rect(0, 0, 8, 8)))
	assert.ErrorContains(t, err, "no stretch regions")

	bad := ninePatchSource()
	bad.SetNRGBA(3, 0, color.NRGBA{R: 0xff, A: 0xff})
	_, err = ExtractNinePatch(bad)
	assert.ErrorContains(t, err, "top border")
}

func TestCropBorder(t *testing.T) {
	t.Parallel()

	src := gradient(6, 5)
	cropped := CropBorder(src)

	assert.Equal(t, image.Rect(0, 0, 4, 3), cropped.Rect)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, src.NRGBAAt(x+1, y+1), cropped.NRGBAAt(x, y))
		}
	}

	// The source raster is untouched.
	assert.Equal(t, gradient(6, 5), src)
}

func TestNinePatchSerialize(t *testing.T) {
	t.Parallel()

	np := &NinePatch{
		HorizontalStretch: []Segment{{Start: 1, End: 4}},
		VerticalStretch:   []Segment{{Start: 2, End: 3}},
		Padding:           [4]int32{1, 2, 3, 4},
	}
	assert.Equal(t, []byte{
		1, 0, 0, 0, 1, 0, 0, 0, 4, 0, 0, 0,
		1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0,
		1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0,
	}, np.Serialize())
}

func TestCompile(t *testing.T) {
	t.Parallel()

	src := encodePNG(t, gradient(16, 16))
	res, err := Compile(src, false)
	require.NoError(t, err)
	assert.Nil(t, res.NinePatch)

	filtered, err := FilterChunks(src)
	require.NoError(t, err)
	if res.Reencoded {
		assert.LessOrEqual(t, len(res.Payload), len(filtered))
	} else {
		assert.Equal(t, filtered, res.Payload)
	}

	decoded, err := png.Decode(bytes.NewReader(res.Payload))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), decoded.Bounds())
}

func TestCompileNinePatch(t *testing.T) {
	t.Parallel()

	src := encodePNG(t, ninePatchSource())
	res, err := Compile(src, true)
	require.NoError(t, err)
	require.NotNil(t, res.NinePatch)
	assert.True(t, res.Reencoded)

	// The border is cropped and the metadata chunk rides ahead of the
	// pixel data.
	decoded, err := png.Decode(bytes.NewReader(res.Payload))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 6), decoded.Bounds())

	chunks, err := iterChunks(res.Payload)
	require.NoError(t, err)
	var types []string
	for _, c := range chunks {
		if c.typ == metaChunk || c.typ == "IDAT" {
			types = append(types, c.typ)
		}
	}
	require.NotEmpty(t, types)
	assert.Equal(t, metaChunk, types[0])
	assert.Equal(t, res.NinePatch.Serialize(), chunks[1].data)
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	_, err := Compile([]byte("not a png"), false)
	assert.ErrorIs(t, err, ErrNotPNG)

	_, err = Compile(encodePNG(t, gradient(8, 8)), true)
	assert.ErrorContains(t, err, "9-patch")
}
