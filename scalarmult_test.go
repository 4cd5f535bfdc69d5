// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package e521

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func TestScalarMultSmallScalars(t *testing.T) {
	for _, tt := range []struct {
		s        int64
		expected *Point
	}{
		{0, I},
		{1, B},
		{2, double(t, B)},
		{3, add(t, double(t, B), B)},
	} {
		s := big.NewInt(tt.s)
		for name, f := range strategies {
			p, err := f(s, B)
			if err != nil {
				t.Fatalf("%s(%d, B): %v", name, tt.s, err)
			}
			if p.Equal(tt.expected) != 1 {
				t.Errorf("%s(%d, B) = %v", name, tt.s, p)
			}
			checkOnCurve(t, p)
		}
	}
}

var strategies = map[string]func(*big.Int, *Point) (*Point, error){
	"RepeatedAddScalarMult": RepeatedAddScalarMult,
	"VarTimeScalarMult":     VarTimeScalarMult,
	"ScalarMult":            ScalarMult,
}

func TestScalarMultStrategiesAgree(t *testing.T) {
	max := int64(1000)
	if testing.Short() {
		max = 24
	}

	// expected tracks s*B incrementally, one addition per step, as an
	// independent reference for all three strategies.
	expected := NewIdentityPoint()
	for s := int64(0); s <= max; s++ {
		sb := big.NewInt(s)
		for name, f := range strategies {
			p, err := f(sb, B)
			if err != nil {
				t.Fatalf("%s(%d, B): %v", name, s, err)
			}
			if p.Equal(expected) != 1 {
				t.Fatalf("%s(%d, B) = %v, expected %v", name, s, p, expected)
			}
		}
		expected = add(t, expected, B)
	}
}

func TestScalarMultWideScalars(t *testing.T) {
	randomWide := make([]byte, 70) // 560 bits, wider than the field
	if _, err := rand.Read(randomWide); err != nil {
		t.Fatal(err)
	}

	twoTo521 := new(big.Int).Lsh(big.NewInt(1), 521)
	for _, tt := range []struct {
		name string
		s    *big.Int
	}{
		{"order - 1", new(big.Int).Sub(order, big.NewInt(1))},
		{"order", new(big.Int).Set(order)},
		{"order + 5", new(big.Int).Add(order, big.NewInt(5))},
		{"2^521 - 1", new(big.Int).Sub(twoTo521, big.NewInt(1))},
		{"2^521", twoTo521},
		{"2^522 + 3", new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 522), big.NewInt(3))},
		{"random 560-bit", new(big.Int).SetBytes(randomWide)},
	} {
		ladder, err := ScalarMult(tt.s, B)
		if err != nil {
			t.Fatal(err)
		}
		varTime, err := VarTimeScalarMult(tt.s, B)
		if err != nil {
			t.Fatal(err)
		}
		if ladder.Equal(varTime) != 1 {
			t.Errorf("%s: ladder and double-and-add disagree", tt.name)
		}
		checkOnCurve(t, ladder)

		// B generates a subgroup of prime order R, so s*B must match
		// (s mod R)*B, even though the scalar itself is never reduced.
		reduced, err := VarTimeScalarMult(new(big.Int).Mod(tt.s, order), B)
		if err != nil {
			t.Fatal(err)
		}
		if ladder.Equal(reduced) != 1 {
			t.Errorf("%s: s*B != (s mod R)*B", tt.name)
		}
	}
}

func TestScalarMultOrderOfGenerator(t *testing.T) {
	p, err := ScalarMult(order, B)
	if err != nil {
		t.Fatal(err)
	}
	if p.Equal(I) != 1 {
		t.Errorf("R*B = %v, expected the identity", p)
	}

	p, err = VarTimeScalarMult(order, B)
	if err != nil {
		t.Fatal(err)
	}
	if p.Equal(I) != 1 {
		t.Errorf("R*B = %v, expected the identity (double-and-add)", p)
	}

	rMinus1 := new(big.Int).Sub(order, big.NewInt(1))
	p, err = ScalarMult(rMinus1, B)
	if err != nil {
		t.Fatal(err)
	}
	if p.Equal(B.Negate()) != 1 {
		t.Errorf("(R-1)*B = %v, expected -B", p)
	}
}

func TestScalarMultMatchesDouble(t *testing.T) {
	byAdd := add(t, B, B)
	byDouble := double(t, B)
	byLadder, err := ScalarMult(big.NewInt(2), B)
	if err != nil {
		t.Fatal(err)
	}
	if byAdd.Equal(byDouble) != 1 || byAdd.Equal(byLadder) != 1 {
		t.Errorf("B + B, 2*B, and the ladder disagree: %v, %v, %v", byAdd, byDouble, byLadder)
	}
}

func TestScalarBaseMult(t *testing.T) {
	for _, s := range []*big.Int{big.NewInt(0), big.NewInt(7), new(big.Int).Rsh(order, 200)} {
		p, err := ScalarBaseMult(s)
		if err != nil {
			t.Fatal(err)
		}
		q, err := ScalarMult(s, B)
		if err != nil {
			t.Fatal(err)
		}
		if p.Equal(q) != 1 {
			t.Errorf("ScalarBaseMult(%v) != ScalarMult(%v, B)", s, s)
		}
	}
}

func TestScalarMultTorsionBase(t *testing.T) {
	// (1, 0) has order 4, so multiples cycle through the 4-torsion:
	// (1, 0), (0, -1), (-1, 0), and back to the identity.
	torsion, err := NewPointFromX(big.NewInt(1), false)
	if err != nil {
		t.Fatal(err)
	}
	cycle := []*Point{I, torsion, add(t, torsion, torsion), add(t, add(t, torsion, torsion), torsion)}
	for s := int64(0); s < 12; s++ {
		expected := cycle[s%4]
		for name, f := range strategies {
			p, err := f(big.NewInt(s), torsion)
			if err != nil {
				t.Fatalf("%s(%d, (1,0)): %v", name, s, err)
			}
			if p.Equal(expected) != 1 {
				t.Errorf("%s(%d, (1,0)) = %v, expected %v", name, s, p, expected)
			}
		}
	}
}

func TestScalarMultErrors(t *testing.T) {
	for name, f := range strategies {
		if p, err := f(big.NewInt(-1), B); err == nil || p != nil {
			t.Errorf("%s: expected error for a negative scalar", name)
		}

		offCurve := &Point{}
		offCurve.x.SetBigInt(big.NewInt(2))
		offCurve.y.SetBigInt(big.NewInt(3))
		if p, err := f(big.NewInt(2), offCurve); err == nil || p != nil {
			t.Errorf("%s: expected error for an off-curve base", name)
		}
	}

	if p, err := ScalarBaseMult(big.NewInt(-7)); err == nil || p != nil {
		t.Error("ScalarBaseMult: expected error for a negative scalar")
	}
}

// Benchmarks.

var benchScalar = new(big.Int).Sub(order, big.NewInt(1))

func BenchmarkScalarMult(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ScalarMult(benchScalar, B); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVarTimeScalarMult(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := VarTimeScalarMult(benchScalar, B); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRepeatedAddScalarMult(b *testing.B) {
	s := big.NewInt(1000)
	for i := 0; i < b.N; i++ {
		if _, err := RepeatedAddScalarMult(s, B); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScalarBaseMult(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ScalarBaseMult(benchScalar); err != nil {
			b.Fatal(err)
		}
	}
}
