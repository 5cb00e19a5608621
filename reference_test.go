package pasta

import (
	"context"
	"math/big"

	"github.com/athanorlabs/go-pasta/types"
)

// bigOracle is an independent affine implementation over math/big used as
// the reference in tests. Projective inputs are normalized first and
// projective results always have Z = 1.
type bigOracle struct {
	curve Curve
	p, r  *big.Int
}

var _ types.ProjectiveOracle = &bigOracle{}

type bigPoint struct {
	x, y *big.Int
}

func newBigOracle(curve Curve) *bigOracle {
	return &bigOracle{
		curve: curve,
		p:     curve.BaseModulus.Big(),
		r:     curve.ScalarModulus.Big(),
	}
}

func (o *bigOracle) reject(kind types.ErrorKind) error {
	return types.NewError(o.curve.RejectionPrefix, kind)
}

func (o *bigOracle) wire(v *big.Int) types.U256 {
	u, err := types.U256FromBig(v)
	if err != nil {
		panic(err)
	}
	return u
}

func (o *bigOracle) decode(w types.AffinePoint) (*bigPoint, error) {
	if w.IsZero() {
		return nil, nil
	}
	x, y := w.X.Big(), w.Y.Big()
	if x.Cmp(o.p) >= 0 || y.Cmp(o.p) >= 0 {
		return nil, o.reject(types.ErrInvalidPoint)
	}
	return &bigPoint{x, y}, nil
}

func (o *bigOracle) encode(p *bigPoint) types.AffinePoint {
	if p == nil {
		return types.AffinePoint{}
	}
	return types.AffinePoint{X: o.wire(p.x), Y: o.wire(p.y)}
}

func (o *bigOracle) add(a, b *bigPoint) *bigPoint {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	var num, den *big.Int
	if a.x.Cmp(b.x) == 0 {
		sum := new(big.Int).Add(a.y, b.y)
		if sum.Mod(sum, o.p).Sign() == 0 {
			return nil
		}
		num = new(big.Int).Mul(a.x, a.x)
		num.Mul(num, big.NewInt(3))
		den = new(big.Int).Lsh(a.y, 1)
	} else {
		num = new(big.Int).Sub(b.y, a.y)
		den = new(big.Int).Sub(b.x, a.x)
	}
	den.Mod(den, o.p)
	lambda := num.Mul(num, den.ModInverse(den, o.p))
	lambda.Mod(lambda, o.p)

	x := new(big.Int).Mul(lambda, lambda)
	x.Sub(x, a.x).Sub(x, b.x).Mod(x, o.p)
	y := new(big.Int).Sub(a.x, x)
	y.Mul(y, lambda).Sub(y, a.y).Mod(y, o.p)
	return &bigPoint{x, y}
}

func (o *bigOracle) mul(p *bigPoint, k *big.Int) *bigPoint {
	var acc *bigPoint
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = o.add(acc, acc)
		if k.Bit(i) == 1 {
			acc = o.add(acc, p)
		}
	}
	return acc
}

func (o *bigOracle) scalar(s types.U256) (*big.Int, error) {
	k := s.Big()
	if k.Cmp(o.r) >= 0 {
		return nil, o.reject(types.ErrInvalidScalar)
	}
	return k, nil
}

func (o *bigOracle) Name() string {
	return "math/big"
}

func (o *bigOracle) Generator(context.Context) (types.AffinePoint, error) {
	return o.encode(&bigPoint{new(big.Int).Sub(o.p, big.NewInt(1)), big.NewInt(2)}), nil
}

func (o *bigOracle) IsInfinity(_ context.Context, p types.AffinePoint) (bool, error) {
	return p.IsZero(), nil
}

func (o *bigOracle) Add(_ context.Context, p1, p2 types.AffinePoint) (types.AffinePoint, error) {
	a, err := o.decode(p1)
	if err != nil {
		return types.AffinePoint{}, err
	}
	b, err := o.decode(p2)
	if err != nil {
		return types.AffinePoint{}, err
	}
	return o.encode(o.add(a, b)), nil
}

func (o *bigOracle) Double(ctx context.Context, p types.AffinePoint) (types.AffinePoint, error) {
	return o.Add(ctx, p, p)
}

func (o *bigOracle) Negate(_ context.Context, p types.AffinePoint) (types.AffinePoint, error) {
	a, err := o.decode(p)
	if err != nil || a == nil {
		return types.AffinePoint{}, err
	}
	y := new(big.Int).Sub(o.p, a.y)
	return o.encode(&bigPoint{a.x, y.Mod(y, o.p)}), nil
}

func (o *bigOracle) ScalarMul(ctx context.Context, p types.AffinePoint, s types.U256) (types.AffinePoint, error) {
	if err := ctx.Err(); err != nil {
		return types.AffinePoint{}, err
	}
	a, err := o.decode(p)
	if err != nil {
		return types.AffinePoint{}, err
	}
	k, err := o.scalar(s)
	if err != nil {
		return types.AffinePoint{}, err
	}
	return o.encode(o.mul(a, k)), nil
}

func (o *bigOracle) MultiScalarMul(ctx context.Context, points []types.AffinePoint, scalars []types.U256) (types.AffinePoint, error) {
	if len(points) != len(scalars) {
		return types.AffinePoint{}, o.reject(types.ErrLengthMismatch)
	}
	var acc *bigPoint
	for i := range points {
		if err := ctx.Err(); err != nil {
			return types.AffinePoint{}, err
		}
		a, err := o.decode(points[i])
		if err != nil {
			return types.AffinePoint{}, err
		}
		k, err := o.scalar(scalars[i])
		if err != nil {
			return types.AffinePoint{}, err
		}
		acc = o.add(acc, o.mul(a, k))
	}
	return o.encode(acc), nil
}

func (o *bigOracle) IsYNegative(_ context.Context, p types.AffinePoint) (bool, error) {
	a, err := o.decode(p)
	if err != nil || a == nil {
		return false, err
	}
	neg := new(big.Int).Sub(o.p, a.y)
	neg.Mod(neg, o.p)
	return a.y.Cmp(neg) < 0, nil
}

func (o *bigOracle) invert(v types.U256, m *big.Int, kind types.ErrorKind) (types.U256, error) {
	x := v.Big()
	if x.Cmp(m) >= 0 {
		return types.U256{}, o.reject(kind)
	}
	if x.Sign() == 0 {
		return types.U256{}, o.reject(types.ErrDivisionByZero)
	}
	return o.wire(new(big.Int).ModInverse(x, m)), nil
}

func (o *bigOracle) InvertFr(_ context.Context, v types.U256) (types.U256, error) {
	return o.invert(v, o.r, types.ErrInvalidScalar)
}

func (o *bigOracle) InvertFq(_ context.Context, v types.U256) (types.U256, error) {
	return o.invert(v, o.p, types.ErrInvalidBaseField)
}

func (o *bigOracle) ValidateCurvePoint(_ context.Context, p types.AffinePoint) error {
	x, y := p.X.Big(), p.Y.Big()
	if x.Sign() == 0 || y.Sign() == 0 || x.Cmp(o.p) >= 0 || y.Cmp(o.p) >= 0 {
		return o.reject(types.ErrInvalidPoint)
	}
	lhs := new(big.Int).Mul(y, y)
	rhs := new(big.Int).Exp(x, big.NewInt(3), nil)
	rhs.Add(rhs, big.NewInt(5))
	if lhs.Sub(lhs, rhs).Mod(lhs, o.p).Sign() != 0 {
		return o.reject(types.ErrInvalidPoint)
	}
	return nil
}

func (o *bigOracle) ValidateScalarField(_ context.Context, s types.U256) error {
	_, err := o.scalar(s)
	return err
}

func (o *bigOracle) FromLeBytesModOrder(_ context.Context, b []byte) (types.U256, error) {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	x := new(big.Int).SetBytes(be)
	return o.wire(x.Mod(x, o.r)), nil
}

func (o *bigOracle) PowSmall(_ context.Context, base, exponent, modulus types.U256) (types.U256, error) {
	var m *big.Int
	var kind types.ErrorKind
	switch mod := modulus.Big(); {
	case mod.Cmp(o.r) == 0:
		m, kind = o.r, types.ErrInvalidScalar
	case mod.Cmp(o.p) == 0:
		m, kind = o.p, types.ErrInvalidBaseField
	default:
		return types.U256{}, o.reject(types.ErrUnknownModulus)
	}
	b := base.Big()
	if b.Cmp(m) >= 0 {
		return types.U256{}, o.reject(kind)
	}
	return o.wire(new(big.Int).Exp(b, exponent.Big(), m)), nil
}

func (o *bigOracle) decodeProjective(w types.ProjectivePoint) (*bigPoint, error) {
	x, y, z := w.X.Big(), w.Y.Big(), w.Z.Big()
	if x.Cmp(o.p) >= 0 || y.Cmp(o.p) >= 0 || z.Cmp(o.p) >= 0 {
		return nil, o.reject(types.ErrInvalidPoint)
	}
	if z.Sign() == 0 {
		return nil, nil
	}
	zinv := new(big.Int).ModInverse(z, o.p)
	x.Mul(x, zinv).Mod(x, o.p)
	y.Mul(y, zinv).Mod(y, o.p)
	return &bigPoint{x, y}, nil
}

func (o *bigOracle) encodeProjective(p *bigPoint) types.ProjectivePoint {
	if p == nil {
		return types.ProjectivePoint{}
	}
	return types.ProjectivePoint{X: o.wire(p.x), Y: o.wire(p.y), Z: types.U256FromUint64(1)}
}

func (o *bigOracle) ProjectiveGenerator(ctx context.Context) (types.ProjectivePoint, error) {
	g, _ := o.Generator(ctx)
	return types.ProjectivePoint{X: g.X, Y: g.Y, Z: types.U256FromUint64(1)}, nil
}

func (o *bigOracle) IsProjectiveInfinity(_ context.Context, p types.ProjectivePoint) (bool, error) {
	a, err := o.decodeProjective(p)
	if err != nil {
		return false, err
	}
	return a == nil, nil
}

func (o *bigOracle) ProjectiveAdd(_ context.Context, p1, p2 types.ProjectivePoint) (types.ProjectivePoint, error) {
	a, err := o.decodeProjective(p1)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	b, err := o.decodeProjective(p2)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	return o.encodeProjective(o.add(a, b)), nil
}

func (o *bigOracle) ProjectiveDouble(ctx context.Context, p types.ProjectivePoint) (types.ProjectivePoint, error) {
	return o.ProjectiveAdd(ctx, p, p)
}

func (o *bigOracle) ProjectiveNegate(ctx context.Context, p types.ProjectivePoint) (types.ProjectivePoint, error) {
	a, err := o.ToAffine(ctx, p)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	neg, err := o.Negate(ctx, a)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	b, _ := o.decode(neg)
	return o.encodeProjective(b), nil
}

func (o *bigOracle) ProjectiveScalarMul(ctx context.Context, p types.ProjectivePoint, s types.U256) (types.ProjectivePoint, error) {
	a, err := o.decodeProjective(p)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	k, err := o.scalar(s)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	return o.encodeProjective(o.mul(a, k)), nil
}

func (o *bigOracle) ToAffine(_ context.Context, p types.ProjectivePoint) (types.AffinePoint, error) {
	a, err := o.decodeProjective(p)
	if err != nil {
		return types.AffinePoint{}, err
	}
	return o.encode(a), nil
}
