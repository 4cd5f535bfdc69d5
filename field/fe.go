// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements fast arithmetic modulo 2^521-1.
package field

import (
	"crypto/subtle"
	"errors"

	fiat "github.com/mit-plv/fiat-crypto/fiat-go/64/p521"
)

// Element represents an element of the field GF(2^521-1). Note that this
// is not a cryptographically secure group, and should only be used to
// interact with e521.Point coordinates.
//
// This type works similarly to math/big.Int, and all arguments and receivers
// are allowed to alias.
//
// The zero value is a valid zero element.
type Element struct {
	limbs fiat.TightFieldElement
}

func newElementFromLimbs(l0, l1, l2, l3, l4, l5, l6, l7, l8 uint64) *Element {
	e := new(Element)
	fiat.Carry(&e.limbs, &fiat.LooseFieldElement{l0, l1, l2, l3, l4, l5, l6, l7, l8})
	return e
}

var feZero = newElementFromLimbs(0, 0, 0, 0, 0, 0, 0, 0, 0)

// Zero sets v = 0, and returns v.
func (v *Element) Zero() *Element {
	*v = *feZero
	return v
}

var feOne = newElementFromLimbs(1, 0, 0, 0, 0, 0, 0, 0, 0)

// One sets v = 1, and returns v.
func (v *Element) One() *Element {
	*v = *feOne
	return v
}

// Add sets v = a + b, and returns v.
func (v *Element) Add(a, b *Element) *Element {
	fiat.CarryAdd(&v.limbs, &a.limbs, &b.limbs)
	return v
}

// Subtract sets v = a - b, and returns v.
func (v *Element) Subtract(a, b *Element) *Element {
	fiat.CarrySub(&v.limbs, &a.limbs, &b.limbs)
	return v
}

// Negate sets v = -a, and returns v.
func (v *Element) Negate(a *Element) *Element {
	fiat.CarryOpp(&v.limbs, &a.limbs)
	return v
}

// Pow25191 sets v = x^(2^519-1), and returns v.
//
// 2^519-1 is (p-3)/4, and the exponents used by Invert, Sqrt, and SqrtRatio
// are all within a few squarings and multiplications of it, so this chain is
// the shared core of all three.
func (v *Element) Pow25191(x *Element) *Element {
	var z2, z3, z6, z7, z2_8_0, z2_16_0, z2_32_0, z2_64_0, z2_128_0, z2_256_0, t Element

	z2.Square(x)
	z2.Multiply(&z2, x) // 2^2 - 1
	z3.Square(&z2)
	z3.Multiply(&z3, x) // 2^3 - 1

	t.Square(&z3)        // 2^4 - 2^1
	t.Square(&t)         // 2^5 - 2^2
	t.Square(&t)         // 2^6 - 2^3
	z6.Multiply(&t, &z3) // 2^6 - 1

	z7.Square(&z6)
	z7.Multiply(&z7, x) // 2^7 - 1

	t.Square(&z7)
	z2_8_0.Multiply(&t, x) // 2^8 - 1

	t.Square(&z2_8_0) // 2^9 - 2^1
	for i := 0; i < 7; i++ {
		t.Square(&t) // 2^16 - 2^8
	}
	z2_16_0.Multiply(&t, &z2_8_0) // 2^16 - 1

	t.Square(&z2_16_0) // 2^17 - 2^1
	for i := 0; i < 15; i++ {
		t.Square(&t) // 2^32 - 2^16
	}
	z2_32_0.Multiply(&t, &z2_16_0) // 2^32 - 1

	t.Square(&z2_32_0) // 2^33 - 2^1
	for i := 0; i < 31; i++ {
		t.Square(&t) // 2^64 - 2^32
	}
	z2_64_0.Multiply(&t, &z2_32_0) // 2^64 - 1

	t.Square(&z2_64_0) // 2^65 - 2^1
	for i := 0; i < 63; i++ {
		t.Square(&t) // 2^128 - 2^64
	}
	z2_128_0.Multiply(&t, &z2_64_0) // 2^128 - 1

	t.Square(&z2_128_0) // 2^129 - 2^1
	for i := 0; i < 127; i++ {
		t.Square(&t) // 2^256 - 2^128
	}
	z2_256_0.Multiply(&t, &z2_128_0) // 2^256 - 1

	t.Square(&z2_256_0) // 2^257 - 2^1
	for i := 0; i < 255; i++ {
		t.Square(&t) // 2^512 - 2^256
	}
	t.Multiply(&t, &z2_256_0) // 2^512 - 1

	for i := 0; i < 7; i++ {
		t.Square(&t) // 2^519 - 2^7
	}
	return v.Multiply(&t, &z7) // 2^519 - 1
}

// Invert sets v = 1/z mod p, and returns v.
//
// If z == 0, Invert returns v = 0.
func (v *Element) Invert(z *Element) *Element {
	// Inversion is implemented as exponentiation with exponent p − 2,
	// split as p − 2 = 4·(2^519 − 1) + 1. It comes out to 520 squarings
	// and 13 multiplications.
	var t Element

	t.Pow25191(z)            // 2^519 - 1
	t.Square(&t)             // 2^520 - 2
	t.Square(&t)             // 2^521 - 4
	return v.Multiply(&t, z) // 2^521 - 3 = p - 2
}

// Set sets v = a, and returns v.
func (v *Element) Set(a *Element) *Element {
	*v = *a
	return v
}

// SetBytes sets v to x, where x is a 66-byte little-endian encoding. If x is
// not of the right length, SetBytes returns nil and an error, and the
// receiver is unchanged.
//
// The seven most significant bits (the high bits of the last byte) are
// ignored, and the non-canonical value 2^521-1 is accepted, reducing to
// zero.
func (v *Element) SetBytes(x []byte) (*Element, error) {
	if len(x) != 66 {
		return nil, errors.New("e521: invalid field element input size")
	}

	var xCopy [66]byte
	copy(xCopy[:], x)
	xCopy[65] &= 1 // Ignore the bits above 2^521.

	fiat.FromBytes(&v.limbs, &xCopy)

	return v, nil
}

// Bytes returns the canonical 66-byte little-endian encoding of v.
func (v *Element) Bytes() []byte {
	// This function is outlined to make the allocations inline in the caller
	// rather than happen on the heap.
	var out [66]byte
	return v.bytes(&out)
}

func (v *Element) bytes(out *[66]byte) []byte {
	fiat.ToBytes(out, &v.limbs)
	return out[:]
}

// Equal returns 1 if v and u are equal, and 0 otherwise.
func (v *Element) Equal(u *Element) int {
	sa, sv := u.Bytes(), v.Bytes()
	return subtle.ConstantTimeCompare(sa, sv)
}

// mask64Bits returns 0xffffffff if cond is 1, and 0 otherwise.
func mask64Bits(cond int) uint64 { return ^(uint64(cond) - 1) }

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *Element) Select(a, b *Element, cond int) *Element {
	// fiat.Selectznz is unusable, due to the function prototype taking
	// an unexported type.  Performance isn't amazing either.
	m := mask64Bits(cond)
	for i := range v.limbs {
		v.limbs[i] = (m & a.limbs[i]) | (^m & b.limbs[i])
	}
	return v
}

// Swap swaps v and u if cond == 1 or leaves them unchanged if cond == 0, and returns v.
func (v *Element) Swap(u *Element, cond int) {
	m := mask64Bits(cond)
	for i := range v.limbs {
		t := m & (v.limbs[i] ^ u.limbs[i])
		v.limbs[i] ^= t
		u.limbs[i] ^= t
	}
}

// IsNegative returns 1 if v is negative, and 0 otherwise.
//
// An element is negative if its least significant bit is set, following the
// convention the curve layer uses to steer square root parity.
func (v *Element) IsNegative() int {
	return int(v.Bytes()[0] & 1)
}

// Absolute sets v to |u|, and returns v.
func (v *Element) Absolute(u *Element) *Element {
	return v.Select(new(Element).Negate(u), u, u.IsNegative())
}

// Multiply sets v = x * y, and returns v.
func (v *Element) Multiply(x, y *Element) *Element {
	fiat.CarryMul(&v.limbs, (*fiat.LooseFieldElement)(&x.limbs), (*fiat.LooseFieldElement)(&y.limbs))
	return v
}

// Square sets v = x * x, and returns v.
func (v *Element) Square(x *Element) *Element {
	fiat.CarrySquare(&v.limbs, (*fiat.LooseFieldElement)(&x.limbs))
	return v
}

// Mult32 sets v = x * y, and returns v.
func (v *Element) Mult32(x *Element, y uint32) *Element {
	// fiat generates no small-constant multiply for this prime, so do a
	// full CarryMul with a single-limb loose element.
	yLimbs := fiat.LooseFieldElement{uint64(y), 0, 0, 0, 0, 0, 0, 0, 0}
	fiat.CarryMul(&v.limbs, (*fiat.LooseFieldElement)(&x.limbs), &yLimbs)
	return v
}

// Sqrt sets r to the non-negative square root of v, if one exists, and
// returns r and 1.
//
// If v is not a quadratic residue, Sqrt sets r to a value with r² = -v (the
// only alternative when p ≡ 3 (mod 4)), and returns r and 0. The candidate
// is always verified: a caller that ignores wasSquare gets no guarantee.
func (r *Element) Sqrt(v *Element) (rr *Element, wasSquare int) {
	t0 := new(Element)

	// candidate = v^((p+1)/4), with (p+1)/4 = 2^519.
	candidate := new(Element).Pow25191(v)
	candidate.Multiply(candidate, v)

	check := t0.Square(candidate)
	wasSquare = check.Equal(v)

	r.Absolute(candidate) // Choose the non-negative square root.
	return r, wasSquare
}

// SqrtRatio sets r to the non-negative square root of the ratio of u and v.
//
// If u/v is square, SqrtRatio returns r and 1. If u/v is not square, SqrtRatio
// sets r such that r² * v = -u, and returns r and 0. Either way r² * v = ±u,
// and the verification multiply is never skipped.
func (r *Element) SqrtRatio(u, v *Element) (rr *Element, wasSquare int) {
	t0 := new(Element)

	// r = (u * v) * (u * v3)^((p-3)/4), with (p-3)/4 = 2^519 - 1.
	v2 := new(Element).Square(v)
	uv := new(Element).Multiply(u, v)
	uv3 := new(Element).Multiply(uv, v2)
	rr = new(Element).Multiply(uv, t0.Pow25191(uv3))

	check := new(Element).Multiply(v, t0.Square(rr)) // check = v * r^2
	wasSquare = check.Equal(u)

	r.Absolute(rr) // Choose the non-negative square root.
	return r, wasSquare
}
