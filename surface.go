package main

import (
	"image"
	"image/color"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/draw"
)

// Surface is a 2D drawable area the boids render onto.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	Clear()
	FillRect(x, y, w, h float64, c color.Color)
	DrawImage(img image.Image, x, y, w, h, alpha float64)
}

// canvasSurface is an offscreen Ebitengine image presented to the window each frame
type canvasSurface struct {
	canvas  *ebiten.Image
	width   int
	height  int
	sprites map[image.Image]*ebiten.Image // decoded sprite -> GPU image
}

func newCanvasSurface(width, height int) *canvasSurface {
	c := &canvasSurface{sprites: make(map[image.Image]*ebiten.Image)}
	c.Resize(width, height)
	return c
}

func (c *canvasSurface) Size() (int, int) {
	return c.width, c.height
}

// Resize replaces the backing image; Ebitengine images have a fixed size.
func (c *canvasSurface) Resize(width, height int) {
	if width == c.width && height == c.height && c.canvas != nil {
		return
	}
	if c.canvas != nil {
		c.canvas.Deallocate()
	}
	c.width, c.height = width, height
	// Ebitengine panics on empty images
	c.canvas = ebiten.NewImage(max(width, 1), max(height, 1))
}

func (c *canvasSurface) Clear() {
	c.canvas.Clear()
}

func (c *canvasSurface) FillRect(x, y, w, h float64, col color.Color) {
	vector.DrawFilledRect(c.canvas, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *canvasSurface) DrawImage(img image.Image, x, y, w, h, alpha float64) {
	src := c.gpuImage(img)
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	c.canvas.DrawImage(src, op)
}

// Present copies the canvas onto the window.
func (c *canvasSurface) Present(screen *ebiten.Image) {
	screen.DrawImage(c.canvas, nil)
}

func (c *canvasSurface) gpuImage(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if !reflect.TypeOf(img).Comparable() {
		// cannot be a map key; boids never pass these, see comparableImage
		return ebiten.NewImageFromImage(img)
	}
	if e, ok := c.sprites[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	c.sprites[img] = e
	return e
}

// comparableImage returns img itself when it can be used as a map key,
// otherwise an RGBA copy of it. Surfaces cache converted sprites by image.
func comparableImage(img image.Image) image.Image {
	if img == nil || reflect.TypeOf(img).Comparable() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

// fadeColor scales c by alpha, returning premultiplied RGBA
func fadeColor(c color.Color, alpha float64) color.Color {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return color.RGBA{}
	}
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}
