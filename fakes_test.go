package main

import (
	"context"
	"image"
	"image/color"
	"sync"
)

// drawCall records one FillRect or DrawImage
type drawCall struct {
	x, y, w, h float64
	c          color.Color
	img        image.Image
	alpha      float64
}

// recordingSurface remembers every call made to it
type recordingSurface struct {
	w, h    int
	clears  int
	resizes int
	rects   []drawCall
	images  []drawCall
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (r *recordingSurface) Size() (int, int) { return r.w, r.h }

func (r *recordingSurface) Resize(w, h int) {
	r.w, r.h = w, h
	r.resizes++
}

func (r *recordingSurface) Clear() {
	r.clears++
	r.rects = r.rects[:0]
	r.images = r.images[:0]
}

func (r *recordingSurface) FillRect(x, y, w, h float64, c color.Color) {
	r.rects = append(r.rects, drawCall{x: x, y: y, w: w, h: h, c: c})
}

func (r *recordingSurface) DrawImage(img image.Image, x, y, w, h, alpha float64) {
	r.images = append(r.images, drawCall{x: x, y: y, w: w, h: h, img: img, alpha: alpha})
}

// seqRand cycles through fixed values
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// manualLoader completes only when the test says so
type manualLoader struct {
	mu     sync.Mutex
	source string
	done   func(image.Image, error)
}

func (m *manualLoader) Load(_ context.Context, source string, done func(image.Image, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source = source
	m.done = done
}

func (m *manualLoader) complete(img image.Image, err error) {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	done(img, err)
}

// sizeViewport is a viewport tests can resize
type sizeViewport struct {
	w, h int
}

func (v *sizeViewport) Size() (int, int) { return v.w, v.h }

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
