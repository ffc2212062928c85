package services

import "math"

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// similarityPercent scales cosine similarity to a percentage rounded to two
// decimals. A negative cosine stays negative; opposite answers are a signal,
// not an error.
func similarityPercent(a, b []float32) float64 {
	return math.Round(cosine(a, b)*100*100) / 100
}
