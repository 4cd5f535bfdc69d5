// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package e521 implements group logic for the Edwards curve
//
//	x^2 + y^2 = 1 - 376014*x^2*y^2
//
// over the Mersenne prime field GF(2^521-1).
//
// This is the high-security curve E-521, proposed independently by
// Bernstein and Lange, by Hamburg, and by Aranha, Barreto, Pereira, and
// Ricardini, with a prime-order subgroup of about 2^519 and cofactor 4.
//
// The curve constant d = -376014 is a non-residue, so the addition formulas
// are complete: they are valid for every pair of points on the curve,
// including doublings and additions involving the neutral element (0, 1).
package e521

import (
	"errors"
	"math/big"

	"filippo.io/e521/field"
)

// d is the curve equation constant, -376014 mod p.
var d = new(field.Element).Negate(new(field.Element).Mult32(new(field.Element).One(), 376014))

var feZero = new(field.Element)
var feOne = new(field.Element).One()

// Point represents a point on the e521 curve, in affine coordinates with
// both values in canonical reduced form.
//
// Points are immutable: every operation returns a new Point, and Points can
// be shared between goroutines without synchronization.
//
// The zero value is NOT valid, and operations on it panic.
type Point struct {
	// Make the type not comparable with bradfitz's device, so that
	// comparisons go through Equal and can't accidentally match the
	// invalid zero value. First so it doesn't force trailing padding.
	_ [0]func()

	x, y field.Element
}

func checkInitialized(points ...*Point) {
	for _, p := range points {
		if p.x == (field.Element{}) && p.y == (field.Element{}) {
			panic("e521: use of uninitialized Point")
		}
	}
}

// Constructors.

var identity = mustNewPoint("0", "1")

// NewIdentityPoint returns a new Point set to the identity, the neutral
// element (0, 1).
func NewIdentityPoint() *Point {
	p := *identity
	return &p
}

var generator = mustNewPoint(
	"752cb45c48648b189df90cb2296b2878a3bfd9f42fc6c818ec8bf3c9c0c6203913f6"+
		"ecc5ccc72434b1ae949d568fc99c6059d0fb13364838aa302a940a2f19ba6c", "c")

// NewGeneratorPoint returns a new Point set to the canonical generator, the
// standard base point with y = 12, which generates the prime-order subgroup.
func NewGeneratorPoint() *Point {
	p := *generator
	return &p
}

func mustNewPoint(x, y string) *Point {
	xx, okx := new(big.Int).SetString(x, 16)
	yy, oky := new(big.Int).SetString(y, 16)
	if !okx || !oky {
		panic("e521: invalid point constant")
	}
	p, err := NewPoint(xx, yy)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPoint returns the point with affine coordinates (x, y). If either
// coordinate is negative or not less than 2^521 - 1, or if the coordinates
// are not on the curve, NewPoint returns nil and an error.
func NewPoint(x, y *big.Int) (*Point, error) {
	p := &Point{}
	if _, err := p.x.SetBigInt(x); err != nil {
		return nil, err
	}
	if _, err := p.y.SetBigInt(y); err != nil {
		return nil, err
	}
	if isOnCurve(&p.x, &p.y) != 1 {
		return nil, errors.New("e521: invalid point coordinates")
	}
	return p, nil
}

func isOnCurve(x, y *field.Element) int {
	// x² + y² = 1 + dx²y²
	var lhs, rhs field.Element
	x2 := new(field.Element).Square(x)
	y2 := new(field.Element).Square(y)
	lhs.Add(x2, y2)
	rhs.Multiply(d, x2)
	rhs.Multiply(&rhs, y2)
	rhs.Add(feOne, &rhs)
	return lhs.Equal(&rhs)
}

// NewPointFromX returns the point with the given x coordinate and the y
// coordinate whose least significant bit matches yLSB. The y coordinate is
// recovered from the curve equation as
//
//	y² = (1 - x²) / (1 + 376014·x²)
//
// If no point on the curve has the given x coordinate, NewPointFromX returns
// nil and an error, whichever parity was requested. If the recovered y is
// zero, yLSB is ignored, as zero is its own negation.
func NewPointFromX(x *big.Int, yLSB bool) (*Point, error) {
	p := &Point{}
	if _, err := p.x.SetBigInt(x); err != nil {
		return nil, err
	}

	x2 := new(field.Element).Square(&p.x)
	num := new(field.Element).Subtract(feOne, x2)
	den := new(field.Element).Mult32(x2, 376014)
	den.Add(feOne, den)

	y, wasSquare := new(field.Element).SqrtRatio(num, den)
	if wasSquare == 0 {
		return nil, errors.New("e521: no point with the given x coordinate")
	}

	// SqrtRatio returns the root with a clear least significant bit.
	sign := 0
	if yLSB {
		sign = 1
	}
	yNeg := new(field.Element).Negate(y)
	p.y.Select(yNeg, y, sign)
	return p, nil
}

// Addition and subtraction.

// affineAdd sets (x3, y3) to the complete affine sum
//
//	x3 = (x1·y2 + y1·x2) / (1 + d·x1·x2·y1·y2)
//	y3 = (y1·y2 - x1·x2) / (1 - d·x1·x2·y1·y2)
//
// and returns 1 if both denominators were invertible. Since d is a
// non-residue the denominators are never zero for points on the curve; a
// zero denominator can only come from off-curve inputs, and then (x3, y3)
// is set to (0, 0). Both inversions are carried by a single Invert through
// the product of the denominators, which doesn't change the result.
//
// The output may alias any of the inputs. The operation sequence is fixed,
// with no branches on coordinate values.
func affineAdd(x3, y3, x1, y1, x2, y2 *field.Element) (ok int) {
	var x1x2, y1y2, x1y2, y1x2, dt field.Element
	x1x2.Multiply(x1, x2)
	y1y2.Multiply(y1, y2)
	x1y2.Multiply(x1, y2)
	y1x2.Multiply(y1, x2)
	dt.Multiply(&x1x2, &y1y2)
	dt.Multiply(d, &dt)

	var denX, denY field.Element
	denX.Add(feOne, &dt)
	denY.Subtract(feOne, &dt)

	// 1/denX = denY·inv, 1/denY = denX·inv, with inv = 1/(denX·denY).
	var prod, inv field.Element
	prod.Multiply(&denX, &denY)
	ok = 1 - prod.Equal(feZero)
	inv.Invert(&prod) // zero if either denominator is zero

	var numX, numY field.Element
	numX.Add(&x1y2, &y1x2)
	numY.Subtract(&y1y2, &x1x2)

	x3.Multiply(&numX, &inv)
	x3.Multiply(x3, &denY)
	y3.Multiply(&numY, &inv)
	y3.Multiply(y3, &denX)
	return ok
}

// Add returns p + q.
//
// The addition law is complete, so for points on the curve Add never fails.
// A zero denominator is only possible for off-curve points built through
// unchecked paths, and surfaces as nil and an error, never as a garbage
// point.
func (p *Point) Add(q *Point) (*Point, error) {
	checkInitialized(p, q)
	v := &Point{}
	if affineAdd(&v.x, &v.y, &p.x, &p.y, &q.x, &q.y) != 1 {
		return nil, errors.New("e521: invalid point")
	}
	return v, nil
}

// Subtract returns p - q.
func (p *Point) Subtract(q *Point) (*Point, error) {
	checkInitialized(p, q)
	return p.Add(q.Negate())
}

// Doubling.

// Double returns p + p. The complete addition formulas double correctly, so
// this is a convenience, not a separate code path.
func (p *Point) Double() (*Point, error) {
	return p.Add(p)
}

// Negation.

// Negate returns -p = (-x, y), with the x coordinate in canonical reduced
// form. The negation of the identity is the identity.
func (p *Point) Negate() *Point {
	checkInitialized(p)
	v := &Point{y: p.y}
	v.x.Negate(&p.x)
	return v
}

// Equal returns 1 if p is equivalent to u, and 0 otherwise.
//
// Coordinates are always canonical, so points are equal exactly when their
// affine coordinates match.
func (p *Point) Equal(u *Point) int {
	checkInitialized(p, u)
	return p.x.Equal(&u.x) & p.y.Equal(&u.y)
}
