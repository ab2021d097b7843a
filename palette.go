package main

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/pkg/errors"
)

// Palette picks a boid colour from its spawn position
type Palette interface {
	ColorAt(p Vector2) color.Color
}

// Palette names accepted in configuration
const (
	PaletteSolid = "solid"
	PaletteNoise = "noise"
)

// Perlin parameters for the noise palette
const (
	noiseAlpha     = 2.0
	noiseBeta      = 2.0
	noiseOctaves   = 3
	noiseFrequency = 1.0 / 200.0 // world pixels per noise unit
)

var namedColors = map[string]color.RGBA{
	"red":    {0xff, 0x00, 0x00, 0xff},
	"green":  {0x00, 0x80, 0x00, 0xff},
	"blue":   {0x00, 0x00, 0xff, 0xff},
	"white":  {0xff, 0xff, 0xff, 0xff},
	"black":  {0x00, 0x00, 0x00, 0xff},
	"yellow": {0xff, 0xff, 0x00, 0xff},
	"orange": {0xff, 0xa5, 0x00, 0xff},
	"cyan":   {0x00, 0xff, 0xff, 0xff},
}

// solidPalette gives every boid the same colour
type solidPalette struct {
	c color.Color
}

func (s solidPalette) ColorAt(Vector2) color.Color { return s.c }

// noisePalette maps a Perlin field to hue so nearby boids share similar colours
type noisePalette struct {
	noise *perlin.Perlin
}

func newNoisePalette(seed int64) *noisePalette {
	return &noisePalette{noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)}
}

func (n *noisePalette) ColorAt(p Vector2) color.Color {
	v := n.noise.Noise2D(p.X*noiseFrequency, p.Y*noiseFrequency)
	// Noise2D is roughly in [-1,1]
	v = math.Max(-1, math.Min(1, v))
	h := (v + 1) / 2 * 359
	r, g, b := hsvToRGB(h, 1, 1)
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

// NewPalette builds the palette named by kind. base is used by the solid palette.
func NewPalette(kind string, base color.Color, seed int64) (Palette, error) {
	switch strings.ToLower(kind) {
	case "", PaletteSolid:
		return solidPalette{c: base}, nil
	case PaletteNoise:
		return newNoisePalette(seed), nil
	}
	return nil, errors.Errorf("unknown palette %q", kind)
}

// ParseColor accepts a colour name or a #RGB / #RRGGBB / #RRGGBBAA hex value.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, errors.Errorf("unknown colour %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, errors.Errorf("bad hex colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "bad hex colour %q", s)
	}
	return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// hsvToRGB helper
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
