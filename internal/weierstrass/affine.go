package weierstrass

import "github.com/athanorlabs/go-pasta/internal/field"

// Affine is a point (X, Y), or the point at infinity when Inf is set. The
// coordinates of infinity are ignored.
type Affine struct {
	X, Y field.Element
	Inf  bool
}

// Infinity returns the affine point at infinity.
func Infinity() Affine {
	return Affine{Inf: true}
}

// Equal reports whether p and q are the same point.
func (p Affine) Equal(q Affine) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return p.X == q.X && p.Y == q.Y
}

// Add returns p + q using the chord rule, falling through to Double when
// p == q.
func (c *Curve) Add(p, q Affine) Affine {
	if p.Inf {
		return q
	}
	if q.Inf {
		return p
	}

	f := c.base
	if p.X == q.X {
		if p.Y == q.Y {
			return c.Double(p)
		}
		return Infinity()
	}

	lambda := f.Mul(f.Sub(q.Y, p.Y), f.InvertOrZero(f.Sub(q.X, p.X)))
	return c.finish(p, q.X, lambda)
}

// Double returns 2p using the tangent rule. Points with y = 0 have order two
// and double to infinity.
func (c *Curve) Double(p Affine) Affine {
	if p.Inf || c.base.IsZero(p.Y) {
		return Infinity()
	}

	f := c.base
	xx := f.Square(p.X)
	num := f.Add(f.Double(xx), xx)
	lambda := f.Mul(num, f.InvertOrZero(f.Double(p.Y)))
	return c.finish(p, p.X, lambda)
}

// finish computes the sum from slope lambda through p and a second point with
// abscissa x2.
func (c *Curve) finish(p Affine, x2, lambda field.Element) Affine {
	f := c.base
	x3 := f.Sub(f.Sub(f.Square(lambda), p.X), x2)
	y3 := f.Sub(f.Mul(lambda, f.Sub(p.X, x3)), p.Y)
	return Affine{X: x3, Y: y3}
}

// Negate returns -p.
func (c *Curve) Negate(p Affine) Affine {
	if p.Inf {
		return p
	}
	return Affine{X: p.X, Y: c.base.Neg(p.Y)}
}
