// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package e521

// This file contains functionality that is not part of the core group logic,
// like encodings, accessors, and subgroup tools.

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"filippo.io/e521/field"
)

// IsOnCurve returns 1 if v satisfies the curve equation, and 0 otherwise.
//
// Points built by the checked constructors and by the group operations are
// always on the curve. IsOnCurve is for vetting points built through
// unchecked paths, so unlike the rest of the API it accepts the zero value
// without panicking (and reports 0 for it).
func (v *Point) IsOnCurve() int {
	return isOnCurve(&v.x, &v.y)
}

// X returns the affine x coordinate of v as a fresh arbitrary-precision
// integer.
func (v *Point) X() *big.Int {
	checkInitialized(v)
	return v.x.BigInt()
}

// Y returns the affine y coordinate of v as a fresh arbitrary-precision
// integer.
func (v *Point) Y() *big.Int {
	checkInitialized(v)
	return v.y.BigInt()
}

// String returns the affine coordinates of v in decimal, for debugging. The
// zero value formats as "(0, 0)".
func (v *Point) String() string {
	return fmt.Sprintf("(%v, %v)", v.x.BigInt(), v.y.BigInt())
}

// Bytes returns the canonical 66-byte encoding of v: the y coordinate in
// little-endian order, with the sign (the least significant bit) of the x
// coordinate in the most significant bit of the final byte. Bit 520 of y and
// the sign bit never overlap.
func (v *Point) Bytes() []byte {
	// This function is outlined to make the allocations inline in the caller
	// rather than happen on the heap.
	var buf [66]byte
	return v.bytes(&buf)
}

func (v *Point) bytes(buf *[66]byte) []byte {
	checkInitialized(v)
	copy(buf[:], v.y.Bytes())
	buf[65] |= byte(v.x.IsNegative() << 7)
	return buf[:]
}

// NewPointFromBytes decodes the 66-byte encoding produced by Bytes, and
// returns the point, or nil and an error if the encoding is not the
// canonical encoding of a point on the curve.
//
// Unlike the RFC 8032 decoding rules, non-canonical y values, stray bits
// between bit 521 and the sign bit, and a sign bit paired with x = 0 are all
// rejected, so every point has exactly one accepted encoding.
func NewPointFromBytes(data []byte) (*Point, error) {
	if len(data) != 66 {
		return nil, errors.New("e521: invalid point encoding length")
	}
	if data[65]&0x7e != 0 {
		return nil, errors.New("e521: invalid point encoding")
	}
	sign := int(data[65] >> 7)

	p := &Point{}
	if _, err := p.y.SetBytes(data); err != nil {
		return nil, err
	}
	// SetBytes ignores the high bits, so reject the non-canonical y = p by
	// comparing with the round-tripped encoding.
	if enc := p.y.Bytes(); !bytes.Equal(enc[:65], data[:65]) || enc[65] != data[65]&1 {
		return nil, errors.New("e521: invalid point encoding")
	}

	// x² = (1 - y²) / (1 + 376014·y²), by the same symmetry NewPointFromX
	// uses for y².
	y2 := new(field.Element).Square(&p.y)
	num := new(field.Element).Subtract(feOne, y2)
	den := new(field.Element).Mult32(y2, 376014)
	den.Add(feOne, den)

	x, wasSquare := new(field.Element).SqrtRatio(num, den)
	if wasSquare == 0 {
		return nil, errors.New("e521: invalid point encoding")
	}
	if sign == 1 && x.Equal(feZero) == 1 {
		return nil, errors.New("e521: invalid point encoding")
	}

	xNeg := new(field.Element).Negate(x)
	p.x.Select(xNeg, x, sign)
	return p, nil
}

// MultByCofactor returns 4 * v, clearing the low-order component of v.
func (v *Point) MultByCofactor() (*Point, error) {
	p, err := v.Double()
	if err != nil {
		return nil, err
	}
	return p.Double()
}

var order, _ = new(big.Int).SetString(
	"7ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffd"+
		"15b6c64746fc85f736b8af5e7ec53f04fbd8c4569a8f1f4540ea2435f5180d6b", 16)

// Order returns the order of the prime-order subgroup generated by the
// canonical generator, the 519-bit prime
// 2^519 - 337554763258501705789107630418782636071904961214051226618635150085779108655765.
// The full curve group has 4 times as many points.
func Order() *big.Int {
	return new(big.Int).Set(order)
}
