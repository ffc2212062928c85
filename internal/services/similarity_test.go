package services

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	cases := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "scaled_copy", a: []float32{1, 1}, b: []float32{4, 4}, want: 1},
		{name: "empty", a: nil, b: []float32{1}, want: 0},
		{name: "length_mismatch", a: []float32{1, 2}, b: []float32{1, 2, 3}, want: 0},
		{name: "zero_vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cosine(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("cosine = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSimilarityPercent(t *testing.T) {
	cases := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{name: "self_similarity_is_100", a: []float32{3, 4}, b: []float32{3, 4}, want: 100},
		{name: "opposite_stays_negative", a: []float32{1, 0}, b: []float32{-1, 0}, want: -100},
		{name: "rounded_to_two_decimals", a: []float32{1, 0}, b: []float32{1, 1}, want: 70.71},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := similarityPercent(tc.a, tc.b)
			if got != tc.want {
				t.Fatalf("similarityPercent = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSimilarityDeterminism(t *testing.T) {
	a := []float32{0.12, -0.7, 0.33, 0.05}
	b := []float32{0.4, 0.1, -0.2, 0.9}
	first := similarityPercent(a, b)
	for i := 0; i < 10; i++ {
		if got := similarityPercent(a, b); got != first {
			t.Fatalf("similarityPercent not deterministic: %v != %v", got, first)
		}
	}
}
