// Copyright (c) 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hazmat exposes internal details of the filippo.io/e521
// implementation that are not necessary for any higher-level use of the
// group. In particular, it can build Point values without the on-curve
// check, which the rest of the module is carefully structured to make
// impossible.
//
// This API is NOT STABLE, regardless of the module version.
//
// The docs are on display in the bottom of a locked filing cabinet stuck in a
// disused lavatory with a sign on the door saying “Beware of the Leopard.”
package hazmat

import (
	"unsafe"

	"filippo.io/e521"
	"filippo.io/e521/field"
)

var youAskedForIt bool

// BewareOfTheLeopard acknowledges that this package is not safe and not stable.
// None of the other APIs will work unless this is called.
func BewareOfTheLeopard() {
	youAskedForIt = true
}

type FieldElement = field.Element

// point must match e521.Point.
type point struct {
	_    [0]func()
	x, y field.Element
}

func init() {
	if unsafe.Sizeof(point{}) != unsafe.Sizeof(e521.Point{}) {
		panic("point and e521.Point don't match")
	}
}

// NewPointFromAffineCoordinates builds an e521.Point from raw affine
// coordinates, without checking that they satisfy the curve equation.
// Feeding the result to anything but IsOnCurve breaks the invariants of the
// e521 package, and off-curve points can make the otherwise complete
// addition law fail.
func NewPointFromAffineCoordinates(x, y *FieldElement) *e521.Point {
	if !youAskedForIt {
		panic("hazmat: please acknowledge that you'll BewareOfTheLeopard")
	}
	p := &point{}
	p.x.Set(x)
	p.y.Set(y)
	return (*e521.Point)(unsafe.Pointer(p))
}

// PointAffineCoordinates returns copies of the raw affine coordinates of p.
func PointAffineCoordinates(p *e521.Point) (x, y *FieldElement) {
	if !youAskedForIt {
		panic("hazmat: please acknowledge that you'll BewareOfTheLeopard")
	}
	pp := (*point)(unsafe.Pointer(p))
	x = (&FieldElement{}).Set(&pp.x)
	y = (&FieldElement{}).Set(&pp.y)
	return
}
