package crop

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// Region is a pixel rectangle within a captured screen image.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RegionError reports a configured region that does not fit inside the
// source image. It always indicates misconfiguration, never a transient
// condition.
type RegionError struct {
	Region Region
	Bounds image.Rectangle
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("region %dx%d at (%d,%d) does not fit image %dx%d",
		e.Region.Width, e.Region.Height, e.Region.X, e.Region.Y,
		e.Bounds.Dx(), e.Bounds.Dy())
}

// Extract crops a region out of img and returns it as a PNG buffer suitable
// for OCR submission. The cropped pixels are copied into a fresh raster, so
// two extractions running concurrently on the same source image never share
// pixel state.
func Extract(img image.Image, r Region) ([]byte, error) {
	bounds := img.Bounds()
	if r.X < 0 || r.Y < 0 || r.Width <= 0 || r.Height <= 0 ||
		r.X+r.Width > bounds.Dx() || r.Y+r.Height > bounds.Dy() {
		return nil, &RegionError{Region: r, Bounds: bounds}
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	origin := image.Pt(bounds.Min.X+r.X, bounds.Min.Y+r.Y)
	draw.Draw(dst, dst.Bounds(), img, origin, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode crop as PNG: %v", err)
	}
	return buf.Bytes(), nil
}
