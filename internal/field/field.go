// Package field implements arithmetic in prime fields GF(p) for odd moduli
// below 2^256. Elements are kept in Montgomery form over four 64-bit limbs
// and are always fully reduced, so two elements of the same field are equal
// exactly when they compare equal with ==.
package field

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var (
	// ErrDivisionByZero is returned when inverting zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNotCanonical is returned when decoding a value that is not below
	// the modulus.
	ErrNotCanonical = errors.New("value is not below the field modulus")

	// ErrUnsupportedFieldSize is returned for moduli wider than 256 bits.
	ErrUnsupportedFieldSize = errors.New("unsupported field size")

	// ErrInvalidModulus is returned for even moduli and moduli below 3.
	ErrInvalidModulus = errors.New("modulus must be an odd integer greater than 2")
)

// Element is a field element in Montgomery form. An Element only has meaning
// together with the Field that produced it.
type Element [4]uint64

// Field holds a modulus and its precomputed Montgomery constants. A Field is
// immutable and safe for concurrent use.
type Field struct {
	p       [4]uint64
	inv     uint64    // -p^-1 mod 2^64
	r2      [4]uint64 // 2^512 mod p
	one     Element   // 2^256 mod p
	r64     Element   // 2^64 in Montgomery form
	pMinus2 [4]uint64
	modulus *big.Int
}

// New returns the field of integers modulo the given odd modulus.
func New(modulus *big.Int) (*Field, error) {
	if modulus.BitLen() > 256 {
		return nil, fmt.Errorf("%w: modulus has %d bits", ErrUnsupportedFieldSize, modulus.BitLen())
	}
	if modulus.Cmp(big.NewInt(3)) < 0 || modulus.Bit(0) == 0 {
		return nil, ErrInvalidModulus
	}

	r := new(big.Int).Lsh(big.NewInt(1), 256)
	r2 := new(big.Int).Mul(r, r)

	f := &Field{
		p:       toLimbs(modulus),
		r2:      toLimbs(r2.Mod(r2, modulus)),
		one:     Element(toLimbs(r.Mod(r, modulus))),
		pMinus2: toLimbs(new(big.Int).Sub(modulus, big.NewInt(2))),
		modulus: new(big.Int).Set(modulus),
	}
	f.inv = negInverse64(f.p[0])
	f.r64 = f.Reduce([4]uint64{0, 1, 0, 0})
	return f, nil
}

// MustNew is like New for a modulus given in decimal or 0x-prefixed hex. It
// panics on error and is meant for package-level constants.
func MustNew(modulus string) *Field {
	m, ok := new(big.Int).SetString(modulus, 0)
	if !ok {
		panic(fmt.Sprintf("field: invalid modulus %q", modulus))
	}
	f, err := New(m)
	if err != nil {
		panic(err)
	}
	return f
}

func toLimbs(b *big.Int) [4]uint64 {
	var buf [32]byte
	b.FillBytes(buf[:])
	var l [4]uint64
	for i := 0; i < 4; i++ {
		l[i] = binary.BigEndian.Uint64(buf[24-8*i:])
	}
	return l
}

// Modulus returns a copy of p.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// ModulusLimbs returns p as little-endian 64-bit limbs.
func (f *Field) ModulusLimbs() [4]uint64 {
	return f.p
}

// Bits returns the bit length of p.
func (f *Field) Bits() int {
	return f.modulus.BitLen()
}

// Zero returns the additive identity.
func (f *Field) Zero() Element {
	return Element{}
}

// One returns the multiplicative identity.
func (f *Field) One() Element {
	return f.one
}

// IsZero reports whether a == 0.
func (f *Field) IsZero(a Element) bool {
	return isZeroLimbs((*[4]uint64)(&a))
}

// FromUint64 returns v mod p.
func (f *Field) FromUint64(v uint64) Element {
	return f.Reduce([4]uint64{v})
}

// Reduce returns the element congruent to the 256-bit integer l.
func (f *Field) Reduce(l [4]uint64) Element {
	return montMul(&l, &f.r2, &f.p, f.inv)
}

// FromCanonical returns the element with canonical value l. It fails with
// ErrNotCanonical unless l < p.
func (f *Field) FromCanonical(l [4]uint64) (Element, error) {
	if cmpLimbs(&l, &f.p) >= 0 {
		return Element{}, ErrNotCanonical
	}
	return f.Reduce(l), nil
}

// Canonical returns the integer value of a in [0, p) as little-endian limbs.
func (f *Field) Canonical(a Element) [4]uint64 {
	one := [4]uint64{1}
	return montMul((*[4]uint64)(&a), &one, &f.p, f.inv)
}

// Bytes returns the canonical little-endian encoding of a.
func (f *Field) Bytes(a Element) [32]byte {
	l := f.Canonical(a)
	var b [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(b[8*i:], l[i])
	}
	return b
}

// SetBytes decodes a canonical little-endian encoding. Values not below p
// are rejected with ErrNotCanonical.
func (f *Field) SetBytes(b [32]byte) (Element, error) {
	var l [4]uint64
	for i := 0; i < 4; i++ {
		l[i] = binary.LittleEndian.Uint64(b[8*i:])
	}
	return f.FromCanonical(l)
}

// FromBytesModOrder interprets b as a little-endian integer of any length
// and reduces it modulo p.
func (f *Field) FromBytesModOrder(b []byte) Element {
	n := (len(b) + 7) / 8
	buf := make([]byte, 8*n)
	copy(buf, b)

	acc := Element{}
	for i := n - 1; i >= 0; i-- {
		w := binary.LittleEndian.Uint64(buf[8*i:])
		acc = f.Add(f.Mul(acc, f.r64), f.FromUint64(w))
	}
	return acc
}

// FromBig returns b mod p. Negative values are reduced to [0, p).
func (f *Field) FromBig(b *big.Int) Element {
	v := new(big.Int).Mod(b, f.modulus)
	return f.Reduce(toLimbs(v))
}

// BigInt returns the canonical value of a.
func (f *Field) BigInt(a Element) *big.Int {
	b := f.Bytes(a)
	var be [32]byte
	for i, v := range b {
		be[31-i] = v
	}
	return new(big.Int).SetBytes(be[:])
}

// Random returns an element drawn from r. 64 bytes are read and reduced, so
// the bias is negligible.
func (f *Field) Random(r io.Reader) (Element, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Element{}, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return f.FromBytesModOrder(buf[:]), nil
}

// Add returns a + b.
func (f *Field) Add(a, b Element) Element {
	return modAdd((*[4]uint64)(&a), (*[4]uint64)(&b), &f.p)
}

// Double returns 2a.
func (f *Field) Double(a Element) Element {
	return f.Add(a, a)
}

// Sub returns a - b.
func (f *Field) Sub(a, b Element) Element {
	return modSub((*[4]uint64)(&a), (*[4]uint64)(&b), &f.p)
}

// Neg returns -a.
func (f *Field) Neg(a Element) Element {
	return f.Sub(Element{}, a)
}

// Mul returns a * b.
func (f *Field) Mul(a, b Element) Element {
	return montMul((*[4]uint64)(&a), (*[4]uint64)(&b), &f.p, f.inv)
}

// Square returns a^2.
func (f *Field) Square(a Element) Element {
	return f.Mul(a, a)
}

// Exp returns a^e for the 256-bit exponent e (little-endian limbs).
func (f *Field) Exp(a Element, e [4]uint64) Element {
	z := f.one
	started := false
	for i := 255; i >= 0; i-- {
		if started {
			z = f.Square(z)
		}
		if (e[i/64]>>(uint(i)%64))&1 == 1 {
			z = f.Mul(z, a)
			started = true
		}
	}
	return z
}

// PowSmall returns a^e for a 64-bit exponent, e.g. to evaluate the vanishing
// polynomial X^n - 1 of a domain.
func (f *Field) PowSmall(a Element, e uint64) Element {
	return f.Exp(a, [4]uint64{e})
}

// Inverse returns a^-1. It fails with ErrDivisionByZero for a == 0.
func (f *Field) Inverse(a Element) (Element, error) {
	if f.IsZero(a) {
		return Element{}, ErrDivisionByZero
	}
	return f.Exp(a, f.pMinus2), nil
}

// InvertOrZero returns a^-1, or zero for a == 0. Callers use it where the
// operand is known to be nonzero.
func (f *Field) InvertOrZero(a Element) Element {
	return f.Exp(a, f.pMinus2)
}

// Cmp compares the canonical values of a and b.
func (f *Field) Cmp(a, b Element) int {
	ca, cb := f.Canonical(a), f.Canonical(b)
	return cmpLimbs(&ca, &cb)
}

// IsNegative reports whether a < -a under the canonical integer order on
// [0, p). Zero is not negative; for nonzero a exactly one of a and -a is.
func (f *Field) IsNegative(a Element) bool {
	return f.Cmp(a, f.Neg(a)) < 0
}
