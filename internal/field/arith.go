package field

import "math/bits"

// Limb-level helpers. Values are four 64-bit limbs in little-endian order.
// Nothing here is constant-time; the package computes on public data only.

// montMul returns a*b/2^256 mod p using the CIOS method. a may be any 256-bit
// value and b must be below p; the result is fully reduced.
func montMul(a, b, p *[4]uint64, inv uint64) [4]uint64 {
	var t [6]uint64
	for i := 0; i < 4; i++ {
		var c, carry, hi, lo uint64
		for j := 0; j < 4; j++ {
			hi, lo = bits.Mul64(a[j], b[i])
			lo, carry = bits.Add64(lo, t[j], 0)
			hi += carry
			lo, carry = bits.Add64(lo, c, 0)
			hi += carry
			t[j] = lo
			c = hi
		}
		t[4], carry = bits.Add64(t[4], c, 0)
		t[5] = carry

		m := t[0] * inv
		hi, lo = bits.Mul64(m, p[0])
		_, carry = bits.Add64(lo, t[0], 0)
		c = hi + carry
		for j := 1; j < 4; j++ {
			hi, lo = bits.Mul64(m, p[j])
			lo, carry = bits.Add64(lo, t[j], 0)
			hi += carry
			lo, carry = bits.Add64(lo, c, 0)
			hi += carry
			t[j-1] = lo
			c = hi
		}
		t[3], carry = bits.Add64(t[4], c, 0)
		t[4] = t[5] + carry
	}

	// t < 2p here, one conditional subtraction is enough.
	var s [4]uint64
	var borrow uint64
	s[0], borrow = bits.Sub64(t[0], p[0], 0)
	s[1], borrow = bits.Sub64(t[1], p[1], borrow)
	s[2], borrow = bits.Sub64(t[2], p[2], borrow)
	s[3], borrow = bits.Sub64(t[3], p[3], borrow)
	_, borrow = bits.Sub64(t[4], 0, borrow)
	if borrow == 0 {
		return s
	}
	return [4]uint64{t[0], t[1], t[2], t[3]}
}

// modAdd returns a+b mod p for a, b < p.
func modAdd(a, b, p *[4]uint64) [4]uint64 {
	var z, s [4]uint64
	var carry, borrow uint64
	z[0], carry = bits.Add64(a[0], b[0], 0)
	z[1], carry = bits.Add64(a[1], b[1], carry)
	z[2], carry = bits.Add64(a[2], b[2], carry)
	z[3], carry = bits.Add64(a[3], b[3], carry)

	s[0], borrow = bits.Sub64(z[0], p[0], 0)
	s[1], borrow = bits.Sub64(z[1], p[1], borrow)
	s[2], borrow = bits.Sub64(z[2], p[2], borrow)
	s[3], borrow = bits.Sub64(z[3], p[3], borrow)
	_, borrow = bits.Sub64(carry, 0, borrow)
	if borrow == 0 {
		return s
	}
	return z
}

// modSub returns a-b mod p for a, b < p.
func modSub(a, b, p *[4]uint64) [4]uint64 {
	var z [4]uint64
	var borrow, carry uint64
	z[0], borrow = bits.Sub64(a[0], b[0], 0)
	z[1], borrow = bits.Sub64(a[1], b[1], borrow)
	z[2], borrow = bits.Sub64(a[2], b[2], borrow)
	z[3], borrow = bits.Sub64(a[3], b[3], borrow)
	if borrow == 0 {
		return z
	}
	z[0], carry = bits.Add64(z[0], p[0], 0)
	z[1], carry = bits.Add64(z[1], p[1], carry)
	z[2], carry = bits.Add64(z[2], p[2], carry)
	z[3], _ = bits.Add64(z[3], p[3], carry)
	return z
}

// negInverse64 returns -p0^-1 mod 2^64 for odd p0 (Newton iteration, each
// step doubles the number of correct low bits).
func negInverse64(p0 uint64) uint64 {
	inv := uint64(1)
	for i := 0; i < 6; i++ {
		inv *= 2 - p0*inv
	}
	return -inv
}

// cmpLimbs compares a and b as integers.
func cmpLimbs(a, b *[4]uint64) int {
	for i := 3; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func isZeroLimbs(a *[4]uint64) bool {
	return a[0]|a[1]|a[2]|a[3] == 0
}
