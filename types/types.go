package types

import (
	"context"
	"fmt"
)

// AffinePoint is the wire form of an affine curve point. The all-zero pair
// encodes the point at infinity.
type AffinePoint struct {
	X, Y U256
}

// ProjectivePoint is the wire form of a homogeneous projective point
// (X/Z, Y/Z). The all-zero triple encodes the point at infinity.
type ProjectivePoint struct {
	X, Y, Z U256
}

// IsZero reports whether p is the infinity encoding.
func (p AffinePoint) IsZero() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// IsZero reports whether p is the infinity encoding.
func (p ProjectivePoint) IsZero() bool {
	return p.X.IsZero() && p.Y.IsZero() && p.Z.IsZero()
}

// String returns the point as decimal coordinates.
func (p AffinePoint) String() string {
	if p.IsZero() {
		return "infinity"
	}
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

// String returns the point as decimal coordinates.
func (p ProjectivePoint) String() string {
	return fmt.Sprintf("(%s, %s, %s)", p.X, p.Y, p.Z)
}

// Oracle is the call surface of a curve implementation under test. Every
// method may be a round trip to a remote collaborator, so all of them take a
// context. Rejections are reported as Error values carrying an ErrorKind.
type Oracle interface {
	Name() string
	Generator(ctx context.Context) (AffinePoint, error)
	IsInfinity(ctx context.Context, p AffinePoint) (bool, error)
	Add(ctx context.Context, p1, p2 AffinePoint) (AffinePoint, error)
	Double(ctx context.Context, p AffinePoint) (AffinePoint, error)
	Negate(ctx context.Context, p AffinePoint) (AffinePoint, error)
	ScalarMul(ctx context.Context, p AffinePoint, s U256) (AffinePoint, error)
	MultiScalarMul(ctx context.Context, points []AffinePoint, scalars []U256) (AffinePoint, error)
	IsYNegative(ctx context.Context, p AffinePoint) (bool, error)
	InvertFr(ctx context.Context, v U256) (U256, error)
	InvertFq(ctx context.Context, v U256) (U256, error)
	ValidateCurvePoint(ctx context.Context, p AffinePoint) error
	ValidateScalarField(ctx context.Context, s U256) error
	FromLeBytesModOrder(ctx context.Context, b []byte) (U256, error)
	PowSmall(ctx context.Context, base, exponent, modulus U256) (U256, error)
}

// ProjectiveOracle extends Oracle with the projective-coordinate API.
type ProjectiveOracle interface {
	Oracle
	ProjectiveGenerator(ctx context.Context) (ProjectivePoint, error)
	IsProjectiveInfinity(ctx context.Context, p ProjectivePoint) (bool, error)
	ProjectiveAdd(ctx context.Context, p1, p2 ProjectivePoint) (ProjectivePoint, error)
	ProjectiveDouble(ctx context.Context, p ProjectivePoint) (ProjectivePoint, error)
	ProjectiveNegate(ctx context.Context, p ProjectivePoint) (ProjectivePoint, error)
	ProjectiveScalarMul(ctx context.Context, p ProjectivePoint, s U256) (ProjectivePoint, error)
	ToAffine(ctx context.Context, p ProjectivePoint) (AffinePoint, error)
}
