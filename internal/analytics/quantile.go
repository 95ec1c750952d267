package analytics

import (
	"math"
	"sort"
)

// Quantile считает квантиль q с линейной интерполяцией между соседними
// порядковыми статистиками: позиция (n-1)*q. Для пустой выборки 0.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n == 1 {
		return sorted[0]
	}

	q = math.Min(1, math.Max(0, q))
	pos := float64(n-1) * q
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
