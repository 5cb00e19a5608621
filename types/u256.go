package types

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// U256 is an unsigned 256-bit word, the wire form of field elements, scalars
// and point coordinates. It has the representation of uint256.Int: four
// 64-bit limbs, least significant first.
type U256 uint256.Int

// Int returns a copy of u as a uint256.Int.
func (u U256) Int() *uint256.Int {
	v := uint256.Int(u)
	return &v
}

// U256FromInt returns v as a U256.
func U256FromInt(v *uint256.Int) U256 {
	return U256(*v)
}

// MaxU256 returns 2^256 - 1.
func MaxU256() U256 {
	return U256FromInt(new(uint256.Int).SetAllOne())
}

// U256FromUint64 returns v as a U256.
func U256FromUint64(v uint64) U256 {
	return U256FromInt(uint256.NewInt(v))
}

// U256FromLimbs returns the U256 with the given little-endian 64-bit limbs.
func U256FromLimbs(l [4]uint64) U256 {
	return U256(l)
}

// U256FromBig converts b, which must be non-negative and fit in 256 bits.
func U256FromBig(b *big.Int) (U256, error) {
	if b.Sign() < 0 {
		return U256{}, fmt.Errorf("%w: negative value", ErrUnsupportedFieldSize)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return U256{}, fmt.Errorf("%w: value needs %d bits", ErrUnsupportedFieldSize, b.BitLen())
	}
	return U256FromInt(v), nil
}

// ParseU256 parses a decimal or 0x-prefixed hexadecimal number. Leading
// zeros are allowed in both forms.
func ParseU256(s string) (U256, error) {
	var (
		v   *uint256.Int
		err error
	)
	if len(s) > 2 && strings.EqualFold(s[:2], "0x") {
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" {
			digits = "0"
		}
		v, err = uint256.FromHex("0x" + digits)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		// a well-formed number that uint256 refuses is too wide
		if b, ok := new(big.Int).SetString(s, 0); ok && b.Sign() >= 0 {
			return U256{}, fmt.Errorf("%w: value needs %d bits", ErrUnsupportedFieldSize, b.BitLen())
		}
		return U256{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return U256FromInt(v), nil
}

// Limbs returns u as little-endian 64-bit limbs.
func (u U256) Limbs() [4]uint64 {
	return [4]uint64(u)
}

// Big returns u as a big integer.
func (u U256) Big() *big.Int {
	return u.Int().ToBig()
}

// IsZero reports whether u == 0.
func (u U256) IsZero() bool {
	return u.Int().IsZero()
}

// Cmp compares u and v as integers and returns -1, 0 or +1.
func (u U256) Cmp(v U256) int {
	return u.Int().Cmp(v.Int())
}

// String returns u in decimal.
func (u U256) String() string {
	return u.Int().Dec()
}

// MarshalText implements encoding.TextMarshaler using decimal notation.
func (u U256) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Decimal and 0x-prefixed
// hexadecimal input are accepted.
func (u *U256) UnmarshalText(text []byte) error {
	v, err := ParseU256(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
