package imgres

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// Segment is a half-open pixel range in cropped-image coordinates.
type Segment struct {
	Start int32
	End   int32
}

// NinePatch holds the stretch regions and padding extracted from a
// nine-patch border.
type NinePatch struct {
	HorizontalStretch []Segment
	VerticalStretch   []Segment
	// Padding is left, right, top, bottom in cropped-image pixels.
	Padding [4]int32
}

// ExtractNinePatch reads the 1-pixel border of the uncropped raster. Top
// and left border ticks define stretch regions; right and bottom ticks
// define the padding box. Border pixels must be fully transparent or
// opaque black.
func ExtractNinePatch(img *image.NRGBA) (*NinePatch, error) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w < 3 || h < 3 {
		return nil, fmt.Errorf("image must be at least 3x3 to carry a nine-patch border, got %dx%d", w, h)
	}

	np := &NinePatch{}
	var err error

	np.HorizontalStretch, err = scanTicks(w-2, func(i int) (bool, error) {
		return borderPixel(img, i+1, 0)
	})
	if err != nil {
		return nil, fmt.Errorf("top border: %w", err)
	}
	np.VerticalStretch, err = scanTicks(h-2, func(i int) (bool, error) {
		return borderPixel(img, 0, i+1)
	})
	if err != nil {
		return nil, fmt.Errorf("left border: %w", err)
	}
	if len(np.HorizontalStretch) == 0 || len(np.VerticalStretch) == 0 {
		return nil, fmt.Errorf("no stretch regions found")
	}

	hPad, err := scanTicks(w-2, func(i int) (bool, error) {
		return borderPixel(img, i+1, h-1)
	})
	if err != nil {
		return nil, fmt.Errorf("bottom border: %w", err)
	}
	vPad, err := scanTicks(h-2, func(i int) (bool, error) {
		return borderPixel(img, w-1, i+1)
	})
	if err != nil {
		return nil, fmt.Errorf("right border: %w", err)
	}

	// Padding defaults to the stretch regions when no padding ticks exist.
	left, right := paddingFor(hPad, np.HorizontalStretch, int32(w-2))
	top, bottom := paddingFor(vPad, np.VerticalStretch, int32(h-2))
	np.Padding = [4]int32{left, right, top, bottom}

	return np, nil
}

// paddingFor derives leading/trailing padding from the tick segments on one
// padding edge, falling back to the stretch segments.
func paddingFor(pad, stretch []Segment, extent int32) (lead, trail int32) {
	segs := pad
	if len(segs) == 0 {
		segs = stretch
	}
	return segs[0].Start, extent - segs[len(segs)-1].End
}

// scanTicks converts a run of black border pixels into segments.
func scanTicks(n int, isTick func(int) (bool, error)) ([]Segment, error) {
	var segs []Segment
	open := false
	for i := 0; i < n; i++ {
		tick, err := isTick(i)
		if err != nil {
			return nil, err
		}
		switch {
		case tick && !open:
			segs = append(segs, Segment{Start: int32(i)})
			open = true
		case !tick && open:
			segs[len(segs)-1].End = int32(i)
			open = false
		}
	}
	if open {
		segs[len(segs)-1].End = int32(n)
	}
	return segs, nil
}

// borderPixel reports whether the border pixel at (x, y) is a tick.
func borderPixel(img *image.NRGBA, x, y int) (bool, error) {
	c := img.NRGBAAt(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	switch {
	case c.A == 0:
		return false, nil
	case c == (color.NRGBA{R: 0, G: 0, B: 0, A: 0xff}):
		return true, nil
	default:
		return false, fmt.Errorf("pixel at (%d, %d) must be transparent or opaque black, got #%02x%02x%02x%02x", x, y, c.A, c.R, c.G, c.B)
	}
}

// CropBorder returns a new raster with the 1-pixel border removed. The
// input raster is left untouched; the extraction step may still hold it.
func CropBorder(img *image.NRGBA) *image.NRGBA {
	w := img.Rect.Dx() - 2
	h := img.Rect.Dy() - 2
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := img.PixOffset(img.Rect.Min.X+1, img.Rect.Min.Y+1+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+w*4], img.Pix[src:src+w*4])
	}
	return out
}

// Serialize encodes the nine-patch metadata for the compiled image chunk.
// All fields are little-endian: segment counts, the segments themselves,
// then the padding box.
func (np *NinePatch) Serialize() []byte {
	var buf bytes.Buffer
	writeSegments := func(segs []Segment) {
		binary.Write(&buf, binary.LittleEndian, uint32(len(segs))) //nolint:errcheck // bytes.Buffer does not fail
		for _, s := range segs {
			binary.Write(&buf, binary.LittleEndian, s.Start) //nolint:errcheck
			binary.Write(&buf, binary.LittleEndian, s.End)   //nolint:errcheck
		}
	}
	writeSegments(np.HorizontalStretch)
	writeSegments(np.VerticalStretch)
	for _, p := range np.Padding {
		binary.Write(&buf, binary.LittleEndian, p) //nolint:errcheck
	}
	return buf.Bytes()
}
