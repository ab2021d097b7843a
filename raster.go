package main

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// RasterSurface is a CPU surface backed by an RGBA image, used headless.
type RasterSurface struct {
	img *image.RGBA
}

// NewRasterSurface returns a cleared surface of the given size.
func NewRasterSurface(width, height int) *RasterSurface {
	r := &RasterSurface{}
	r.Resize(width, height)
	return r
}

func (r *RasterSurface) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the pixel buffer. Contents are discarded.
func (r *RasterSurface) Resize(width, height int) {
	r.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

func (r *RasterSurface) Clear() {
	clear(r.img.Pix)
}

func (r *RasterSurface) FillRect(x, y, w, h float64, c color.Color) {
	dr := pixelRect(x, y, w, h).Intersect(r.img.Bounds())
	if dr.Empty() {
		return
	}
	draw.Draw(r.img, dr, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *RasterSurface) DrawImage(img image.Image, x, y, w, h, alpha float64) {
	dr := pixelRect(x, y, w, h)
	if dr.Empty() || !dr.Overlaps(r.img.Bounds()) || alpha <= 0 {
		return
	}
	var opts *draw.Options
	if alpha < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(alpha * 0xff)})}
	}
	draw.ApproxBiLinear.Scale(r.img, dr, img, img.Bounds(), draw.Over, opts)
}

// Image exposes the current frame.
func (r *RasterSurface) Image() *image.RGBA {
	return r.img
}

// WritePNG encodes the current frame.
func (r *RasterSurface) WritePNG(w io.Writer) error {
	return errors.Wrap(png.Encode(w, r.img), "encode png")
}

// SavePNG writes the current frame to path.
func (r *RasterSurface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create snapshot")
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close snapshot")
}

// pixelRect snaps a float rectangle to whole pixels
func pixelRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Floor(x+w)), int(math.Floor(y+h)),
	)
}
