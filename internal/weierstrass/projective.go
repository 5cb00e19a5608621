package weierstrass

import "github.com/athanorlabs/go-pasta/internal/field"

// Projective is a point in homogeneous coordinates representing
// (X/Z, Y/Z). Any point with Z = 0 is the point at infinity.
type Projective struct {
	X, Y, Z field.Element
}

// Identity returns the canonical projective identity (0, 1, 0).
func (c *Curve) Identity() Projective {
	return Projective{Y: c.base.One()}
}

// ProjectiveGenerator returns the generator with Z = 1.
func (c *Curve) ProjectiveGenerator() Projective {
	return c.FromAffine(c.g)
}

// IsIdentity reports whether p is the point at infinity.
func (c *Curve) IsIdentity(p Projective) bool {
	return c.base.IsZero(p.Z)
}

// FromAffine lifts p to projective coordinates.
func (c *Curve) FromAffine(p Affine) Projective {
	if p.Inf {
		return c.Identity()
	}
	return Projective{X: p.X, Y: p.Y, Z: c.base.One()}
}

// ToAffine normalizes p.
func (c *Curve) ToAffine(p Projective) Affine {
	if c.IsIdentity(p) {
		return Infinity()
	}
	f := c.base
	zinv := f.InvertOrZero(p.Z)
	return Affine{X: f.Mul(p.X, zinv), Y: f.Mul(p.Y, zinv)}
}

// EqualProjective reports whether p and q represent the same point.
func (c *Curve) EqualProjective(p, q Projective) bool {
	pInf, qInf := c.IsIdentity(p), c.IsIdentity(q)
	if pInf || qInf {
		return pInf == qInf
	}
	f := c.base
	return f.Mul(p.X, q.Z) == f.Mul(q.X, p.Z) &&
		f.Mul(p.Y, q.Z) == f.Mul(q.Y, p.Z)
}

// NegateProjective returns -p.
func (c *Curve) NegateProjective(p Projective) Projective {
	return Projective{X: p.X, Y: c.base.Neg(p.Y), Z: p.Z}
}

// AddProjective returns p + q. The formula is complete for a = 0 (Renes,
// Costello, Batina 2016, algorithm 7): it handles doubling and the identity
// without branches.
func (c *Curve) AddProjective(p, q Projective) Projective {
	f := c.base
	var x3, y3, z3 field.Element

	t0 := f.Mul(p.X, q.X)
	t1 := f.Mul(p.Y, q.Y)
	t2 := f.Mul(p.Z, q.Z)
	t3 := f.Add(p.X, p.Y)
	t4 := f.Add(q.X, q.Y)
	t3 = f.Mul(t3, t4)
	t4 = f.Add(t0, t1)
	t3 = f.Sub(t3, t4)
	t4 = f.Add(p.Y, p.Z)
	x3 = f.Add(q.Y, q.Z)
	t4 = f.Mul(t4, x3)
	x3 = f.Add(t1, t2)
	t4 = f.Sub(t4, x3)
	x3 = f.Add(p.X, p.Z)
	y3 = f.Add(q.X, q.Z)
	x3 = f.Mul(x3, y3)
	y3 = f.Add(t0, t2)
	y3 = f.Sub(x3, y3)
	x3 = f.Add(t0, t0)
	t0 = f.Add(x3, t0)
	t2 = f.Mul(c.b3, t2)
	z3 = f.Add(t1, t2)
	t1 = f.Sub(t1, t2)
	y3 = f.Mul(c.b3, y3)
	x3 = f.Mul(t4, y3)
	t2 = f.Mul(t3, t1)
	x3 = f.Sub(t2, x3)
	y3 = f.Mul(y3, t0)
	t1 = f.Mul(t1, z3)
	y3 = f.Add(t1, y3)
	t0 = f.Mul(t0, t3)
	z3 = f.Mul(z3, t4)
	z3 = f.Add(z3, t0)

	return Projective{X: x3, Y: y3, Z: z3}
}

// DoubleProjective returns 2p (algorithm 9 of the same paper).
func (c *Curve) DoubleProjective(p Projective) Projective {
	f := c.base
	var x3, y3, z3 field.Element

	t0 := f.Square(p.Y)
	z3 = f.Double(t0)
	z3 = f.Double(z3)
	z3 = f.Double(z3)
	t1 := f.Mul(p.Y, p.Z)
	t2 := f.Square(p.Z)
	t2 = f.Mul(c.b3, t2)
	x3 = f.Mul(t2, z3)
	y3 = f.Add(t0, t2)
	z3 = f.Mul(t1, z3)
	t1 = f.Double(t2)
	t2 = f.Add(t1, t2)
	t0 = f.Sub(t0, t2)
	y3 = f.Mul(t0, y3)
	y3 = f.Add(x3, y3)
	t1 = f.Mul(p.X, p.Y)
	x3 = f.Mul(t0, t1)
	x3 = f.Double(x3)

	return Projective{X: x3, Y: y3, Z: z3}
}
