// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package e521

// This file contains benchmarks comparing the cost of a base point
// multiplication across curve implementations:
// 1. E521 (this package's Montgomery ladder, ~260-bit security)
// 2. Edwards25519 (filippo.io/edwards25519, ~128-bit security)
// 3. Secp256k1 (decred's pure Go Jacobian arithmetic, ~128-bit security)
// 4. Btcec (the elliptic.Curve-shaped btcec interface, ~128-bit security)
//
// E521 pays for both the wider field and the affine group law, which costs
// an inversion per addition, so the gap to the 256-bit curves is much wider
// than the field size alone would suggest.

import (
	"math/big"
	"testing"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// benchSeckey is a fixed scalar, valid for every implementation under
// comparison.
var benchSeckey = []byte{
	0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01,
	0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01,
	0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01,
	0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01,
}

func BenchmarkScalarBaseMult_E521(b *testing.B) {
	s := new(big.Int).SetBytes(benchSeckey)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ScalarBaseMult(s); err != nil {
			b.Fatalf("failed to multiply: %v", err)
		}
	}
}

func BenchmarkScalarBaseMult_Edwards25519(b *testing.B) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(benchSeckey)
	if err != nil {
		b.Fatalf("failed to build scalar: %v", err)
	}
	p := edwards25519.NewIdentityPoint()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarBaseMult(s)
	}
}

func BenchmarkScalarBaseMult_Secp256k1(b *testing.B) {
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(benchSeckey); overflow {
		b.Fatal("scalar overflows the group order")
	}
	var result secp256k1.JacobianPoint
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		secp256k1.ScalarBaseMultNonConst(&k, &result)
	}
}

func BenchmarkScalarBaseMult_Btcec(b *testing.B) {
	curve := btcec.S256()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		curve.ScalarBaseMult(benchSeckey)
	}
}
