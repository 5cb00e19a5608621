// Package weierstrass implements the group law of short Weierstrass curves
// y^2 = x^3 + b (a = 0) over prime fields, in affine and homogeneous
// projective coordinates, together with scalar and multi-scalar
// multiplication.
package weierstrass

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/athanorlabs/go-pasta/internal/field"
)

var (
	// ErrLengthMismatch is returned when a multi-scalar multiplication is
	// given a different number of points and scalars.
	ErrLengthMismatch = errors.New("points and scalars differ in length")

	errGeneratorNotOnCurve = errors.New("generator is not on the curve")
)

// Params describes a curve y^2 = x^3 + B over GF(P) whose generator G has
// prime order N. Rejections are prefixed with RejectAs, or Name when
// RejectAs is empty.
type Params struct {
	Name     string
	RejectAs string
	P      *big.Int
	N      *big.Int
	B      *big.Int
	Gx, Gy *big.Int
}

// Curve is an instantiated curve. It is immutable and safe for concurrent use.
type Curve struct {
	name   string
	reject string
	base   *field.Field
	scalar *field.Field
	b      field.Element
	b3     field.Element
	g      Affine
}

// New builds the curve described by params.
func New(params *Params) (*Curve, error) {
	base, err := field.New(params.P)
	if err != nil {
		return nil, fmt.Errorf("invalid base field: %w", err)
	}
	scalar, err := field.New(params.N)
	if err != nil {
		return nil, fmt.Errorf("invalid scalar field: %w", err)
	}

	b := base.FromBig(params.B)
	c := &Curve{
		name:   params.Name,
		reject: params.RejectAs,
		base:   base,
		scalar: scalar,
		b:      b,
		b3:     base.Add(base.Double(b), b),
		g: Affine{
			X: base.FromBig(params.Gx),
			Y: base.FromBig(params.Gy),
		},
	}
	if c.reject == "" {
		c.reject = c.name
	}
	if !c.IsOnCurve(c.g) {
		return nil, errGeneratorNotOnCurve
	}
	return c, nil
}

// Name returns the curve name.
func (c *Curve) Name() string {
	return c.name
}

// RejectionPrefix returns the curve label carried by rejection errors.
func (c *Curve) RejectionPrefix() string {
	return c.reject
}

// Base returns the field coordinates live in.
func (c *Curve) Base() *field.Field {
	return c.base
}

// Scalar returns the field of scalars, of order equal to the group order.
func (c *Curve) Scalar() *field.Field {
	return c.scalar
}

// B returns the curve constant b.
func (c *Curve) B() field.Element {
	return c.b
}

// Generator returns the fixed generator in affine coordinates.
func (c *Curve) Generator() Affine {
	return c.g
}

// IsOnCurve reports whether p is infinity or satisfies y^2 = x^3 + b.
func (c *Curve) IsOnCurve(p Affine) bool {
	if p.Inf {
		return true
	}
	f := c.base
	lhs := f.Square(p.Y)
	rhs := f.Add(f.Mul(f.Square(p.X), p.X), c.b)
	return lhs == rhs
}

// IsYNegative reports whether y < -y under the canonical integer order.
// Infinity has no y coordinate and is not negative.
func (c *Curve) IsYNegative(p Affine) bool {
	if p.Inf {
		return false
	}
	return c.base.IsNegative(p.Y)
}
