package main

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidDisplacement is returned when a translation carries a non-finite component.
var ErrInvalidDisplacement = errors.New("invalid displacement")

// Vector2 is a 2D point or per-tick displacement
type Vector2 struct {
	X, Y float64
}

// Finite reports whether both components are real numbers
func (v Vector2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Translate adds d into v in place. A non-finite d leaves v untouched.
func (v *Vector2) Translate(d Vector2) error {
	if !d.Finite() {
		return errors.Wrapf(ErrInvalidDisplacement, "translate by (%v, %v)", d.X, d.Y)
	}
	v.X += d.X
	v.Y += d.Y
	return nil
}
