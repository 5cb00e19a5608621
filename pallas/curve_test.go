package pallas

import (
	"context"
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/coinbase/kryptology/pkg/core/curves"
	"github.com/coinbase/kryptology/pkg/core/curves/native/pasta/fq"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/athanorlabs/go-pasta/types"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(0x5eed))
}

func randomPoint(t *testing.T, rng *rand.Rand) types.AffinePoint {
	p, err := RandomPoint(rng)
	require.NoError(t, err)
	return p
}

func randomScalar(t *testing.T, rng *rand.Rand) types.U256 {
	s, err := RandomScalar(rng)
	require.NoError(t, err)
	return s
}

func toKryptology(t *testing.T, w types.AffinePoint) curves.Point {
	if w.IsZero() {
		return new(curves.PointPallas).Identity()
	}
	p, err := new(curves.PointPallas).Set(w.X.Big(), w.Y.Big())
	require.NoError(t, err)
	return p
}

func fromKryptology(t *testing.T, p curves.Point) types.AffinePoint {
	if p.IsIdentity() {
		return types.AffinePoint{}
	}
	pp, ok := p.(*curves.PointPallas)
	require.True(t, ok)
	x, err := types.U256FromBig(pp.X().BigInt())
	require.NoError(t, err)
	y, err := types.U256FromBig(pp.Y().BigInt())
	require.NoError(t, err)
	return types.AffinePoint{X: x, Y: y}
}

func kryptologyScalar(t *testing.T, s types.U256) curves.Scalar {
	k, err := new(curves.ScalarPallas).SetBigInt(s.Big())
	require.NoError(t, err)
	return k
}

func requireRejection(t *testing.T, err error, kind types.ErrorKind, description string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	var e types.Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, description, e.Description)
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()

	for i := 0; i < 10; i++ {
		p1 := randomPoint(t, rng)
		p2 := randomPoint(t, rng)
		res, err := c.Add(ctx, p1, p2)
		require.NoError(t, err)
		expected := fromKryptology(t, toKryptology(t, p1).Add(toKryptology(t, p2)))
		require.Equal(t, expected, res)
	}

	p := randomPoint(t, rng)
	res, err := c.Add(ctx, p, types.AffinePoint{})
	require.NoError(t, err)
	require.Equal(t, p, res)
	res, err = c.Add(ctx, types.AffinePoint{}, p)
	require.NoError(t, err)
	require.Equal(t, p, res)
}

func TestGenerator(t *testing.T) {
	g, err := NewCurve().Generator(context.Background())
	require.NoError(t, err)

	p, _ := new(big.Int).SetString(BaseModulus, 10)
	require.Equal(t, 0, g.X.Big().Cmp(new(big.Int).Sub(p, big.NewInt(1))))
	require.Equal(t, types.U256FromUint64(2), g.Y)
	require.Equal(t, PointToWire(Curve().Generator()), g)
}

func TestIsInfinity(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()

	inf, err := c.IsInfinity(ctx, types.AffinePoint{})
	require.NoError(t, err)
	require.True(t, inf)
	for i := 0; i < 10; i++ {
		inf, err = c.IsInfinity(ctx, randomPoint(t, rng))
		require.NoError(t, err)
		require.False(t, inf)
	}
}

func TestNegate(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()

	for i := 0; i < 10; i++ {
		p := randomPoint(t, rng)
		res, err := c.Negate(ctx, p)
		require.NoError(t, err)
		require.Equal(t, fromKryptology(t, toKryptology(t, p).Neg()), res)
	}

	res, err := c.Negate(ctx, types.AffinePoint{})
	require.NoError(t, err)
	require.True(t, res.IsZero())
}

func TestScalarMul(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()

	for i := 0; i < 10; i++ {
		p := randomPoint(t, rng)
		s := randomScalar(t, rng)
		res, err := c.ScalarMul(ctx, p, s)
		require.NoError(t, err)
		expected := fromKryptology(t, toKryptology(t, p).Mul(kryptologyScalar(t, s)))
		require.Equal(t, expected, res)
	}
}

func TestMultiScalarMul(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()

	for length := 1; length < 10; length++ {
		points := make([]types.AffinePoint, length)
		scalars := make([]types.U256, length)
		kpoints := make([]curves.Point, length)
		kscalars := make([]curves.Scalar, length)
		for i := range points {
			points[i] = randomPoint(t, rng)
			scalars[i] = randomScalar(t, rng)
			kpoints[i] = toKryptology(t, points[i])
			kscalars[i] = kryptologyScalar(t, scalars[i])
		}

		res, err := c.MultiScalarMul(ctx, points, scalars)
		require.NoError(t, err)
		expected := new(curves.PointPallas).Identity().SumOfProducts(kpoints, kscalars)
		require.Equal(t, fromKryptology(t, expected), res, "length %d", length)
	}
}

func TestIsYNegative(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()
	half := new(big.Int).Rsh(BaseField().Modulus(), 1)

	for i := 0; i < 10; i++ {
		p := randomPoint(t, rng)
		// y < -y exactly when y <= (p-1)/2
		expected := p.Y.Big().Cmp(half) <= 0

		neg, err := c.IsYNegative(ctx, p)
		require.NoError(t, err)
		require.Equal(t, expected, neg)

		minusP, err := c.Negate(ctx, p)
		require.NoError(t, err)
		neg, err = c.IsYNegative(ctx, minusP)
		require.NoError(t, err)
		require.Equal(t, !expected, neg)
	}
}

func TestInvert(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()

	for i := 0; i < 10; i++ {
		s := randomScalar(t, rng)
		inv, err := c.InvertFr(ctx, s)
		require.NoError(t, err)
		kinv, ok := new(fq.Fq).Invert(new(fq.Fq).SetBigInt(s.Big()))
		require.True(t, ok)
		require.Equal(t, 0, inv.Big().Cmp(kinv.BigInt()))

		f, err := BaseField().Random(rng)
		require.NoError(t, err)
		v := types.U256FromLimbs(BaseField().Canonical(f))
		inv, err = c.InvertFq(ctx, v)
		require.NoError(t, err)
		require.Equal(t, 0, inv.Big().Cmp(new(big.Int).ModInverse(v.Big(), BaseField().Modulus())))
	}

	_, err := c.InvertFr(ctx, types.U256{})
	requireRejection(t, err, types.ErrDivisionByZero, "Pallas: division by zero")
}

func TestValidateCurvePoint(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()

	p := randomPoint(t, rng)
	require.NoError(t, c.ValidateCurvePoint(ctx, p))

	bad := []types.AffinePoint{
		{X: types.U256{}, Y: p.Y},
		{X: p.X, Y: types.U256{}},
		{X: types.MaxU256(), Y: p.Y},
		{X: p.X, Y: types.MaxU256()},
		{X: types.U256FromUint64(1), Y: types.U256FromUint64(3)},
	}
	for _, b := range bad {
		requireRejection(t, c.ValidateCurvePoint(ctx, b), types.ErrInvalidPoint, "Pallas: invalid point")
	}
}

func TestValidateScalarField(t *testing.T) {
	ctx := context.Background()
	c := NewCurve()

	require.NoError(t, c.ValidateScalarField(ctx, randomScalar(t, testRNG())))

	r, err := types.ParseU256(ScalarModulus)
	require.NoError(t, err)
	requireRejection(t, c.ValidateScalarField(ctx, r), types.ErrInvalidScalar, "Pallas: invalid scalar field")

	rm1, err := types.U256FromBig(new(big.Int).Sub(r.Big(), big.NewInt(1)))
	require.NoError(t, err)
	require.NoError(t, c.ValidateScalarField(ctx, rm1))

	_, err = ScalarFromWire(r)
	requireRejection(t, err, types.ErrInvalidScalar, "Pallas: invalid scalar field")
}

func TestFromLeBytesModOrder(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()
	r, _ := new(big.Int).SetString(ScalarModulus, 10)

	for i := 0; i < 10; i++ {
		for _, n := range []int{32, 48} {
			b := make([]byte, n)
			_, _ = rng.Read(b)
			res, err := c.FromLeBytesModOrder(ctx, b)
			require.NoError(t, err)

			be := make([]byte, n)
			for j := range b {
				be[n-1-j] = b[j]
			}
			expected := new(big.Int).Mod(new(big.Int).SetBytes(be), r)
			require.Equal(t, 0, res.Big().Cmp(expected))
		}
	}
}

func TestPowSmall(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()
	modulus, err := types.ParseU256(ScalarModulus)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		base := randomScalar(t, rng)
		exponent := rng.Uint64()
		res, err := c.PowSmall(ctx, base, types.U256FromUint64(exponent), modulus)
		require.NoError(t, err)
		expected := new(big.Int).Exp(base.Big(), new(big.Int).SetUint64(exponent), modulus.Big())
		require.Equal(t, 0, res.Big().Cmp(expected))
	}
}

func TestDouble(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	c := NewCurve()

	for i := 0; i < 10; i++ {
		p := randomPoint(t, rng)
		res, err := c.Double(ctx, p)
		require.NoError(t, err)
		require.Equal(t, fromKryptology(t, toKryptology(t, p).Double()), res)
	}

	res, err := c.Double(ctx, types.AffinePoint{})
	require.NoError(t, err)
	require.True(t, res.IsZero())
}

func TestProjectivePathMatches(t *testing.T) {
	ctx := context.Background()
	rng := testRNG()
	a, b := NewCurve(), NewCurve(ViaProjective())

	for i := 0; i < 5; i++ {
		p1 := randomPoint(t, rng)
		p2 := randomPoint(t, rng)
		r1, err := a.Add(ctx, p1, p2)
		require.NoError(t, err)
		r2, err := b.Add(ctx, p1, p2)
		require.NoError(t, err)
		require.Equal(t, r1, r2)
	}
}

func TestHashToScalar(t *testing.T) {
	msg := []byte("pasta")
	s := HashToScalar(msg)

	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(msg)
	digest := h.Sum(nil)
	be := make([]byte, len(digest))
	for i := range digest {
		be[len(digest)-1-i] = digest[i]
	}
	r, _ := new(big.Int).SetString(ScalarModulus, 10)
	expected := new(big.Int).Mod(new(big.Int).SetBytes(be), r)
	require.Equal(t, 0, s.Big().Cmp(expected))
	require.NoError(t, NewCurve().ValidateScalarField(context.Background(), s))
}

func TestWireConversions(t *testing.T) {
	rng := testRNG()
	for i := 0; i < 5; i++ {
		p := randomPoint(t, rng)
		a, err := PointFromWire(p)
		require.NoError(t, err)
		require.Equal(t, p, PointToWire(a))

		s := randomScalar(t, rng)
		e, err := ScalarFromWire(s)
		require.NoError(t, err)
		require.Equal(t, s, ScalarToWire(e))
	}

	_, err := PointFromWire(types.AffinePoint{X: types.U256FromUint64(1), Y: types.MaxU256()})
	requireRejection(t, err, types.ErrInvalidPoint, "Pallas: invalid point")
}
