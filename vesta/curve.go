// Package vesta provides the Vesta curve y^2 = x^3 + 5 over GF(q). Its
// group order is the base field modulus of Pallas and vice versa.
package vesta

import (
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/athanorlabs/go-pasta/internal/field"
	"github.com/athanorlabs/go-pasta/internal/oracle"
	"github.com/athanorlabs/go-pasta/internal/weierstrass"
	"github.com/athanorlabs/go-pasta/types"
)

const (
	// Name is the display name of the curve.
	Name = "Vesta"

	// RejectionPrefix labels rejection errors. Vesta shares the Pallas
	// strings, so an invalid point reads "Pallas: invalid point".
	RejectionPrefix = "Pallas"

	// BaseModulus is the modulus q of the base field.
	BaseModulus = "28948022309329048855892746252171976963363056481941647379679742748393362948097"

	// ScalarModulus is the group order, equal to the Pallas base modulus.
	ScalarModulus = "28948022309329048855892746252171976963363056481941560715954676764349967630337"
)

var curve = newCurve()

func newCurve() *weierstrass.Curve {
	q, _ := new(big.Int).SetString(BaseModulus, 10)
	r, _ := new(big.Int).SetString(ScalarModulus, 10)
	c, err := weierstrass.New(&weierstrass.Params{
		Name:     Name,
		RejectAs: RejectionPrefix,
		P:        q,
		N:        r,
		B:        big.NewInt(5),
		Gx:       new(big.Int).Sub(q, big.NewInt(1)),
		Gy:       big.NewInt(2),
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Option configures the oracle returned by NewCurve.
type Option = oracle.Option

// ViaProjective makes the oracle compute affine results through the
// projective formulas.
func ViaProjective() Option {
	return oracle.ViaProjective()
}

// NewCurve returns an oracle evaluating Vesta operations locally.
func NewCurve(opts ...Option) types.ProjectiveOracle {
	return oracle.New(curve, opts...)
}

// Curve returns the Vesta group engine.
func Curve() *weierstrass.Curve {
	return curve
}

// BaseField returns GF(q).
func BaseField() *field.Field {
	return curve.Base()
}

// ScalarField returns GF(p), the Pallas base field.
func ScalarField() *field.Field {
	return curve.Scalar()
}

// PointToWire encodes p.
func PointToWire(p weierstrass.Affine) types.AffinePoint {
	return oracle.AffineToWire(curve, p)
}

// PointFromWire decodes w, rejecting coordinates that are not below q.
func PointFromWire(w types.AffinePoint) (weierstrass.Affine, error) {
	return oracle.AffineFromWire(curve, w)
}

// ScalarToWire encodes a scalar.
func ScalarToWire(s field.Element) types.U256 {
	return oracle.FieldToU256(curve.Scalar(), s)
}

// ScalarFromWire decodes a scalar, failing with ErrInvalidScalar unless
// u is below the group order.
func ScalarFromWire(u types.U256) (field.Element, error) {
	s, err := oracle.U256ToField(curve.Scalar(), u)
	if err != nil {
		return field.Element{}, types.NewError(RejectionPrefix, types.ErrInvalidScalar)
	}
	return s, nil
}

// HashToScalar returns the Keccak-256 digest of msg read as a little-endian
// integer and reduced modulo the group order.
func HashToScalar(msg []byte) types.U256 {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(msg)
	f := curve.Scalar()
	return oracle.FieldToU256(f, f.FromBytesModOrder(h.Sum(nil)))
}

// RandomScalar draws a scalar from r.
func RandomScalar(r io.Reader) (types.U256, error) {
	s, err := curve.Scalar().Random(r)
	if err != nil {
		return types.U256{}, fmt.Errorf("failed to generate scalar: %w", err)
	}
	return ScalarToWire(s), nil
}

// RandomPoint returns a multiple of the generator by a scalar drawn from r.
func RandomPoint(r io.Reader) (types.AffinePoint, error) {
	s, err := curve.Scalar().Random(r)
	if err != nil {
		return types.AffinePoint{}, fmt.Errorf("failed to generate point: %w", err)
	}
	return PointToWire(curve.ScalarMul(curve.Generator(), s)), nil
}
