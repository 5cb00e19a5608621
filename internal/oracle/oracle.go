// Package oracle exposes a weierstrass.Curve through the wire-level
// types.ProjectiveOracle interface. It owns range checks, point validation
// and the mapping of failures onto types.ErrorKind rejections.
package oracle

import (
	"context"
	"errors"

	"github.com/athanorlabs/go-pasta/internal/field"
	"github.com/athanorlabs/go-pasta/internal/weierstrass"
	"github.com/athanorlabs/go-pasta/types"
)

var _ types.ProjectiveOracle = &Oracle{}

// Oracle evaluates curve operations locally.
type Oracle struct {
	curve         *weierstrass.Curve
	viaProjective bool
}

// Option configures an Oracle.
type Option func(*Oracle)

// ViaProjective routes the affine operations through the projective
// formulas and computes multi-scalar multiplication as a plain sum of
// scalar multiplications. Results are identical; the option exists so two
// independent code paths can be compared.
func ViaProjective() Option {
	return func(o *Oracle) {
		o.viaProjective = true
	}
}

// New returns an oracle for curve.
func New(curve *weierstrass.Curve, opts ...Option) *Oracle {
	o := &Oracle{curve: curve}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Curve returns the underlying curve.
func (o *Oracle) Curve() *weierstrass.Curve {
	return o.curve
}

func (o *Oracle) reject(kind types.ErrorKind) error {
	return types.NewError(o.curve.RejectionPrefix(), kind)
}

// Name returns the curve name, e.g. "Pallas".
func (o *Oracle) Name() string {
	if o.viaProjective {
		return o.curve.Name() + " (projective)"
	}
	return o.curve.Name()
}

// Generator returns the generator.
func (o *Oracle) Generator(context.Context) (types.AffinePoint, error) {
	return AffineToWire(o.curve, o.curve.Generator()), nil
}

// IsInfinity reports whether p is the (0, 0) encoding.
func (o *Oracle) IsInfinity(_ context.Context, p types.AffinePoint) (bool, error) {
	return p.IsZero(), nil
}

func (o *Oracle) decode(points ...types.AffinePoint) ([]weierstrass.Affine, error) {
	res := make([]weierstrass.Affine, len(points))
	for i, p := range points {
		a, err := AffineFromWire(o.curve, p)
		if err != nil {
			return nil, err
		}
		res[i] = a
	}
	return res, nil
}

func (o *Oracle) encode(p weierstrass.Affine) types.AffinePoint {
	return AffineToWire(o.curve, p)
}

// Add returns p1 + p2.
func (o *Oracle) Add(_ context.Context, p1, p2 types.AffinePoint) (types.AffinePoint, error) {
	pts, err := o.decode(p1, p2)
	if err != nil {
		return types.AffinePoint{}, err
	}

	c := o.curve
	if o.viaProjective {
		sum := c.AddProjective(c.FromAffine(pts[0]), c.FromAffine(pts[1]))
		return o.encode(c.ToAffine(sum)), nil
	}
	return o.encode(c.Add(pts[0], pts[1])), nil
}

// Double returns 2p.
func (o *Oracle) Double(_ context.Context, p types.AffinePoint) (types.AffinePoint, error) {
	pts, err := o.decode(p)
	if err != nil {
		return types.AffinePoint{}, err
	}

	c := o.curve
	if o.viaProjective {
		return o.encode(c.ToAffine(c.DoubleProjective(c.FromAffine(pts[0])))), nil
	}
	return o.encode(c.Double(pts[0])), nil
}

// Negate returns -p.
func (o *Oracle) Negate(_ context.Context, p types.AffinePoint) (types.AffinePoint, error) {
	pts, err := o.decode(p)
	if err != nil {
		return types.AffinePoint{}, err
	}

	c := o.curve
	if o.viaProjective {
		return o.encode(c.ToAffine(c.NegateProjective(c.FromAffine(pts[0])))), nil
	}
	return o.encode(c.Negate(pts[0])), nil
}

func (o *Oracle) scalar(s types.U256) (field.Element, error) {
	k, err := U256ToField(o.curve.Scalar(), s)
	if err != nil {
		return field.Element{}, o.reject(types.ErrInvalidScalar)
	}
	return k, nil
}

// ScalarMul returns s*p. The scalar must be below the group order.
func (o *Oracle) ScalarMul(ctx context.Context, p types.AffinePoint, s types.U256) (types.AffinePoint, error) {
	if err := ctx.Err(); err != nil {
		return types.AffinePoint{}, err
	}
	pts, err := o.decode(p)
	if err != nil {
		return types.AffinePoint{}, err
	}
	k, err := o.scalar(s)
	if err != nil {
		return types.AffinePoint{}, err
	}
	return o.encode(o.curve.ScalarMul(pts[0], k)), nil
}

// MultiScalarMul returns sum(scalars[i] * points[i]).
func (o *Oracle) MultiScalarMul(ctx context.Context, points []types.AffinePoint, scalars []types.U256) (types.AffinePoint, error) {
	if err := ctx.Err(); err != nil {
		return types.AffinePoint{}, err
	}
	if len(points) != len(scalars) {
		return types.AffinePoint{}, o.reject(types.ErrLengthMismatch)
	}
	pts, err := o.decode(points...)
	if err != nil {
		return types.AffinePoint{}, err
	}
	ks := make([]field.Element, len(scalars))
	for i, s := range scalars {
		if ks[i], err = o.scalar(s); err != nil {
			return types.AffinePoint{}, err
		}
	}

	c := o.curve
	if o.viaProjective {
		acc := c.Identity()
		for i := range pts {
			acc = c.AddProjective(acc, c.ScalarMulProjective(c.FromAffine(pts[i]), ks[i]))
		}
		return o.encode(c.ToAffine(acc)), nil
	}

	res, err := c.MultiScalarMul(pts, ks)
	if errors.Is(err, weierstrass.ErrLengthMismatch) {
		return types.AffinePoint{}, o.reject(types.ErrLengthMismatch)
	}
	if err != nil {
		return types.AffinePoint{}, err
	}
	return o.encode(res), nil
}

// IsYNegative reports whether y < -y for the point's y coordinate.
func (o *Oracle) IsYNegative(_ context.Context, p types.AffinePoint) (bool, error) {
	pts, err := o.decode(p)
	if err != nil {
		return false, err
	}
	return o.curve.IsYNegative(pts[0]), nil
}

func (o *Oracle) invert(f *field.Field, v types.U256, rangeErr types.ErrorKind) (types.U256, error) {
	e, err := U256ToField(f, v)
	if err != nil {
		return types.U256{}, o.reject(rangeErr)
	}
	inv, err := f.Inverse(e)
	if errors.Is(err, field.ErrDivisionByZero) {
		return types.U256{}, o.reject(types.ErrDivisionByZero)
	}
	if err != nil {
		return types.U256{}, err
	}
	return FieldToU256(f, inv), nil
}

// InvertFr returns the inverse of v in the scalar field.
func (o *Oracle) InvertFr(_ context.Context, v types.U256) (types.U256, error) {
	return o.invert(o.curve.Scalar(), v, types.ErrInvalidScalar)
}

// InvertFq returns the inverse of v in the base field.
func (o *Oracle) InvertFq(_ context.Context, v types.U256) (types.U256, error) {
	return o.invert(o.curve.Base(), v, types.ErrInvalidBaseField)
}

// ValidateCurvePoint fails with ErrInvalidPoint unless both coordinates are
// nonzero, below the base field modulus and satisfy the curve equation. The
// infinity encoding does not pass.
func (o *Oracle) ValidateCurvePoint(_ context.Context, p types.AffinePoint) error {
	if p.X.IsZero() || p.Y.IsZero() {
		return o.reject(types.ErrInvalidPoint)
	}
	a, err := AffineFromWire(o.curve, p)
	if err != nil {
		return err
	}
	if !o.curve.IsOnCurve(a) {
		return o.reject(types.ErrInvalidPoint)
	}
	return nil
}

// ValidateScalarField fails with ErrInvalidScalar unless s is below the
// group order.
func (o *Oracle) ValidateScalarField(_ context.Context, s types.U256) error {
	_, err := o.scalar(s)
	return err
}

// FromLeBytesModOrder reduces the little-endian integer b modulo the group
// order.
func (o *Oracle) FromLeBytesModOrder(_ context.Context, b []byte) (types.U256, error) {
	f := o.curve.Scalar()
	return FieldToU256(f, f.FromBytesModOrder(b)), nil
}

// PowSmall returns base^exponent in the field named by modulus, which must be
// the scalar or the base field modulus of the curve. base must be below the
// modulus.
func (o *Oracle) PowSmall(_ context.Context, base, exponent, modulus types.U256) (types.U256, error) {
	var (
		f        *field.Field
		rangeErr types.ErrorKind
	)
	switch {
	case modulus == ModulusToU256(o.curve.Scalar()):
		f, rangeErr = o.curve.Scalar(), types.ErrInvalidScalar
	case modulus == ModulusToU256(o.curve.Base()):
		f, rangeErr = o.curve.Base(), types.ErrInvalidBaseField
	default:
		return types.U256{}, o.reject(types.ErrUnknownModulus)
	}

	b, err := U256ToField(f, base)
	if err != nil {
		return types.U256{}, o.reject(rangeErr)
	}
	return FieldToU256(f, f.Exp(b, exponent.Limbs())), nil
}

// ModulusToU256 returns the modulus of f as a wire word.
func ModulusToU256(f *field.Field) types.U256 {
	return types.U256FromLimbs(f.ModulusLimbs())
}
