// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"errors"
	"math/big"
)

// This file contains additional functionality that is not part of the core
// field arithmetic, bridging Element to the arbitrary-precision coordinates
// of the public curve API.

// fieldOrder is p = 2^521 - 1.
var fieldOrder = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 521), big.NewInt(1))

// SetBigInt sets v = n, and returns v. If n is negative or not less than
// p = 2^521 - 1, SetBigInt returns nil and an error, and the receiver is
// unchanged. Out-of-range values are rejected, never reduced.
func (v *Element) SetBigInt(n *big.Int) (*Element, error) {
	if n.Sign() < 0 || n.Cmp(fieldOrder) >= 0 {
		return nil, errors.New("e521: field element out of range")
	}

	var buf [66]byte
	n.FillBytes(buf[:])
	invertEndianness(buf[:])
	return v.SetBytes(buf[:])
}

// BigInt returns v as a math/big integer.
func (v *Element) BigInt() *big.Int {
	buf := v.Bytes()
	invertEndianness(buf)
	return new(big.Int).SetBytes(buf)
}

func invertEndianness(v []byte) {
	for i := 0; i < len(v)/2; i++ {
		v[i], v[len(v)-1-i] = v[len(v)-1-i], v[i]
	}
}
