// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package e521

import (
	"errors"
	"math/big"
)

// Scalars are arbitrary-precision non-negative integers, and they multiply
// the point as given: there is no implicit reduction modulo the subgroup
// order, so for a base point in the prime-order subgroup s and s + Order()
// produce the same point through different amounts of work. All three
// strategies are pure functions that validate their base point and agree on
// every input; they differ in cost model and in what the execution time
// reveals about the scalar.

func scalarMultInput(s *big.Int, q *Point) error {
	checkInitialized(q)
	if s.Sign() < 0 {
		return errors.New("e521: negative scalar")
	}
	if q.IsOnCurve() != 1 {
		return errors.New("e521: invalid point coordinates")
	}
	return nil
}

var oneInt = big.NewInt(1)

// RepeatedAddScalarMult returns s * q by adding q to the neutral element s
// times. It takes time proportional to the value of s, so it is only viable
// for small scalars, as a correctness reference for the other strategies.
//
// The loop counter is an arbitrary-precision integer: a scalar too large to
// finish is still counted exactly, never narrowed or truncated.
func RepeatedAddScalarMult(s *big.Int, q *Point) (*Point, error) {
	if err := scalarMultInput(s, q); err != nil {
		return nil, err
	}

	v := NewIdentityPoint()
	for i := new(big.Int); i.Cmp(s) < 0; i.Add(i, oneInt) {
		affineAdd(&v.x, &v.y, &v.x, &v.y, &q.x, &q.y)
	}
	return v, nil
}

// VarTimeScalarMult returns s * q by binary double-and-add, walking the bits
// of s from the most significant down.
//
// Execution time depends on the bit length and bit pattern of s, so this
// must only be used with public scalars.
func VarTimeScalarMult(s *big.Int, q *Point) (*Point, error) {
	if err := scalarMultInput(s, q); err != nil {
		return nil, err
	}

	v := NewIdentityPoint()
	for i := s.BitLen() - 1; i >= 0; i-- {
		affineAdd(&v.x, &v.y, &v.x, &v.y, &v.x, &v.y)
		if s.Bit(i) == 1 {
			affineAdd(&v.x, &v.y, &v.x, &v.y, &q.x, &q.y)
		}
	}
	return v, nil
}

// ScalarMult returns s * q using a Montgomery ladder.
//
// The ladder runs a fixed 521 iterations for every scalar that fits the
// field width, processing leading zero bits exactly like any other bit, and
// each iteration performs the same sequence of curve operations with the
// two accumulators steered by constant-time swaps. Neither the bit length
// nor the bit pattern of such scalars shows in the operation sequence.
// Wider scalars are computed correctly over their full bit length rather
// than truncated, at the cost of revealing that they are wider.
func ScalarMult(s *big.Int, q *Point) (*Point, error) {
	if err := scalarMultInput(s, q); err != nil {
		return nil, err
	}

	r0 := NewIdentityPoint()
	r1 := &Point{x: q.x, y: q.y}

	bits := s.BitLen()
	if bits < 521 {
		bits = 521
	}
	for i := bits - 1; i >= 0; i-- {
		b := int(s.Bit(i))

		// Conditionally swap the accumulators so the invariant
		// r1 - r0 = q holds with r0 tracking the processed prefix.
		r0.x.Swap(&r1.x, b)
		r0.y.Swap(&r1.y, b)

		affineAdd(&r1.x, &r1.y, &r0.x, &r0.y, &r1.x, &r1.y)
		affineAdd(&r0.x, &r0.y, &r0.x, &r0.y, &r0.x, &r0.y)

		r0.x.Swap(&r1.x, b)
		r0.y.Swap(&r1.y, b)
	}
	return r0, nil
}

// ScalarBaseMult returns s * G, where G is the canonical generator, with the
// same constant-time behavior as ScalarMult.
func ScalarBaseMult(s *big.Int) (*Point, error) {
	return ScalarMult(s, generator)
}
