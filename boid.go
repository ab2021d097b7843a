package main

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Boid defaults
const (
	DefaultBoidScale      = 10.0
	DefaultOffscreenLimit = 20.0
)

// ErrInvalidPosition is returned by SetPosition for a non-finite position.
var ErrInvalidPosition = errors.New("invalid position")

// DefaultBoidColor is used when no colour was ever set
var DefaultBoidColor color.Color = color.RGBA{0xff, 0x00, 0x00, 0xff}

// Boid is a single sprite moving in a straight line across a surface
type Boid struct {
	position  Vector2
	direction Vector2

	// Visual settings
	color  color.Color
	sprite image.Image
	scale  Vector2
	alpha  float64
	fade   *gween.Tween

	offscreenLimit float64

	// Not owned; size is read on every wrap check so resizes apply at once
	surface Surface
}

// Visual carries optional visual attributes. Nil fields are left unchanged.
type Visual struct {
	Color  color.Color
	Sprite image.Image
	Scale  *Vector2
}

// BoidOption configures a boid before its first draw
type BoidOption func(b *Boid)

// WithSprite draws the boid as img instead of a filled square.
func WithSprite(img image.Image) BoidOption {
	return func(b *Boid) { b.sprite = comparableImage(img) }
}

// WithColor sets the square colour.
func WithColor(c color.Color) BoidOption {
	return func(b *Boid) { b.color = c }
}

// WithPalette colours the boid from p at its starting position.
func WithPalette(p Palette) BoidOption {
	return func(b *Boid) {
		if p != nil {
			b.color = p.ColorAt(b.position)
		}
	}
}

// WithScale sets the drawn size.
func WithScale(s Vector2) BoidOption {
	return func(b *Boid) { b.scale = s }
}

// WithOffscreenLimit sets the wraparound margin.
func WithOffscreenLimit(limit float64) BoidOption {
	return func(b *Boid) { b.offscreenLimit = limit }
}

// WithFadeIn eases the boid's alpha from 0 to 1 over the given number of ticks.
func WithFadeIn(ticks int) BoidOption {
	return func(b *Boid) {
		if ticks <= 0 {
			return
		}
		b.fade = gween.New(0, 1, float32(ticks), ease.OutQuad)
		b.alpha = 0
	}
}

// NewBoid places a boid at a random point on the surface with a random
// direction and draws it once.
func NewBoid(surface Surface, rng RandomSource, opts ...BoidOption) *Boid {
	w, h := surface.Size()
	b := &Boid{
		surface:        surface,
		scale:          Vector2{DefaultBoidScale, DefaultBoidScale},
		alpha:          1,
		offscreenLimit: DefaultOffscreenLimit,
	}
	b.position = Vector2{rng.Float64() * float64(w), rng.Float64() * float64(h)}
	b.direction = Vector2{rng.Float64()*4 - 2, rng.Float64()*2 - 1}

	for _, opt := range opts {
		opt(b)
	}

	b.Draw()
	return b
}

// Update moves the boid one tick, wraps it and redraws it.
func (b *Boid) Update() error {
	err := b.position.Translate(b.direction)
	b.wrap()
	if b.fade != nil {
		a, done := b.fade.Update(1)
		b.alpha = float64(a)
		if done {
			b.fade = nil
		}
	}
	b.Draw()
	return err
}

// SetDirection replaces the per-tick displacement. A zero direction keeps the boid still.
func (b *Boid) SetDirection(d Vector2) {
	b.direction = d
}

// SetPosition moves the boid. Non-finite positions are rejected.
func (b *Boid) SetPosition(p Vector2) error {
	if !p.Finite() {
		return errors.Wrapf(ErrInvalidPosition, "set position (%v, %v)", p.X, p.Y)
	}
	b.position = p
	return nil
}

// SetVisual updates whichever visual attributes are set in v.
func (b *Boid) SetVisual(v Visual) {
	if v.Color != nil {
		b.color = v.Color
	}
	if v.Sprite != nil {
		b.sprite = comparableImage(v.Sprite)
	}
	if v.Scale != nil {
		b.scale = *v.Scale
	}
}

// SetOffscreenLimit replaces the wraparound margin.
func (b *Boid) SetOffscreenLimit(limit float64) {
	b.offscreenLimit = limit
}

// Accessors for the boid's current state
func (b *Boid) Position() Vector2 { return b.position }
func (b *Boid) Direction() Vector2 { return b.direction }
func (b *Boid) Scale() Vector2 { return b.scale }
func (b *Boid) Sprite() image.Image { return b.sprite }
func (b *Boid) OffscreenLimit() float64 { return b.offscreenLimit }
func (b *Boid) Alpha() float64 { return b.alpha }

// Color returns the fill colour, red if none was set.
func (b *Boid) Color() color.Color {
	if b.color == nil {
		return DefaultBoidColor
	}
	return b.color
}

// Draw renders the sprite stretched to scale, or a filled square when there is no sprite.
func (b *Boid) Draw() {
	if b.sprite != nil {
		b.surface.DrawImage(b.sprite, b.position.X, b.position.Y, b.scale.X, b.scale.Y, b.alpha)
		return
	}
	b.surface.FillRect(b.position.X, b.position.Y, b.scale.X, b.scale.Y, fadeColor(b.Color(), b.alpha))
}

// wrap moves a boid that left the surface plus margin to the opposite edge.
// The low-side target is one pixel inside the far margin, the high-side
// target is not; existing animations depend on it.
func (b *Boid) wrap() {
	w, h := b.surface.Size()
	width, height := float64(w), float64(h)
	limit := b.offscreenLimit

	// Horizontal
	if b.position.X < -limit {
		b.position.X = width + limit - 1
	} else if b.position.X > width+limit {
		b.position.X = 1 - limit
	}

	// Vertical
	if b.position.Y < -limit {
		b.position.Y = height + limit - 1
	} else if b.position.Y > height+limit {
		b.position.Y = 1 - limit
	}
}
