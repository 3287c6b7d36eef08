package imgres

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// Result is the outcome of compiling one image.
type Result struct {
	// Payload is the selected compiled bytes.
	Payload []byte
	// NinePatch is non-nil when border metadata was extracted.
	NinePatch *NinePatch
	// Reencoded reports whether Payload is the re-encoded candidate rather
	// than the filtered original.
	Reencoded bool
}

// Compile filters, decodes and re-encodes one image.
//
// The filtered original is the fallback candidate. Nine-patch images always
// use the re-encoded candidate, since the border crop changes their
// dimensions; other images use whichever candidate is smaller, preferring
// the re-encoded one on ties.
func Compile(src []byte, ninePatch bool) (Result, error) {
	filtered, err := FilterChunks(src)
	if err != nil {
		return Result{}, err
	}

	decoded, err := png.Decode(bytes.NewReader(filtered))
	if err != nil {
		return Result{}, fmt.Errorf("decode png: %w", err)
	}
	raster := toNRGBA(decoded)

	var np *NinePatch
	if ninePatch {
		np, err = ExtractNinePatch(raster)
		if err != nil {
			return Result{}, fmt.Errorf("9-patch: %w", err)
		}
		raster = CropBorder(raster)
	}

	reencoded, err := reencode(raster, np)
	if err != nil {
		return Result{}, err
	}

	if np == nil && len(reencoded) > len(filtered) {
		return Result{Payload: filtered, Reencoded: false}, nil
	}
	return Result{Payload: reencoded, NinePatch: np, Reencoded: true}, nil
}

func reencode(raster *image.NRGBA, np *NinePatch) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, raster); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	if np == nil {
		return buf.Bytes(), nil
	}
	out, err := spliceChunk(buf.Bytes(), metaChunk, np.Serialize())
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

// toNRGBA normalizes any decoded image to a row-major 4-byte-per-pixel
// raster anchored at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	out := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Rect, img, img.Bounds().Min, draw.Src)
	return out
}
