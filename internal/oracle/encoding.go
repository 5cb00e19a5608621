package oracle

import (
	"github.com/athanorlabs/go-pasta/internal/field"
	"github.com/athanorlabs/go-pasta/internal/weierstrass"
	"github.com/athanorlabs/go-pasta/types"
)

// FieldToU256 returns the canonical value of e as a wire word.
func FieldToU256(f *field.Field, e field.Element) types.U256 {
	return types.U256FromLimbs(f.Canonical(e))
}

// U256ToField decodes u, failing with field.ErrNotCanonical unless u is
// below the modulus of f.
func U256ToField(f *field.Field, u types.U256) (field.Element, error) {
	return f.FromCanonical(u.Limbs())
}

// U256ToFieldReduce returns u reduced modulo the modulus of f. It never
// fails.
func U256ToFieldReduce(f *field.Field, u types.U256) field.Element {
	return f.Reduce(u.Limbs())
}

// AffineToWire encodes p. Infinity encodes as (0, 0).
func AffineToWire(c *weierstrass.Curve, p weierstrass.Affine) types.AffinePoint {
	if p.Inf {
		return types.AffinePoint{}
	}
	return types.AffinePoint{
		X: FieldToU256(c.Base(), p.X),
		Y: FieldToU256(c.Base(), p.Y),
	}
}

// AffineFromWire decodes w. The pair (0, 0) decodes to infinity without any
// curve check; otherwise both coordinates must be below the base field
// modulus. Curve membership is not checked here, see ValidateCurvePoint.
func AffineFromWire(c *weierstrass.Curve, w types.AffinePoint) (weierstrass.Affine, error) {
	if w.IsZero() {
		return weierstrass.Infinity(), nil
	}
	x, err := U256ToField(c.Base(), w.X)
	if err != nil {
		return weierstrass.Affine{}, types.NewError(c.RejectionPrefix(), types.ErrInvalidPoint)
	}
	y, err := U256ToField(c.Base(), w.Y)
	if err != nil {
		return weierstrass.Affine{}, types.NewError(c.RejectionPrefix(), types.ErrInvalidPoint)
	}
	return weierstrass.Affine{X: x, Y: y}, nil
}

// ProjectiveToWire encodes p without normalizing it. Any point with Z = 0
// encodes as (0, 0, 0).
func ProjectiveToWire(c *weierstrass.Curve, p weierstrass.Projective) types.ProjectivePoint {
	if c.IsIdentity(p) {
		return types.ProjectivePoint{}
	}
	f := c.Base()
	return types.ProjectivePoint{
		X: FieldToU256(f, p.X),
		Y: FieldToU256(f, p.Y),
		Z: FieldToU256(f, p.Z),
	}
}

// ProjectiveFromWire decodes w. Every coordinate must be below the base
// field modulus; (0, 0, 0) decodes to the canonical identity.
func ProjectiveFromWire(c *weierstrass.Curve, w types.ProjectivePoint) (weierstrass.Projective, error) {
	if w.IsZero() {
		return c.Identity(), nil
	}

	var coords [3]field.Element
	for i, u := range []types.U256{w.X, w.Y, w.Z} {
		e, err := U256ToField(c.Base(), u)
		if err != nil {
			return weierstrass.Projective{}, types.NewError(c.RejectionPrefix(), types.ErrInvalidPoint)
		}
		coords[i] = e
	}
	return weierstrass.Projective{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
