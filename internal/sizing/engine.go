package sizing

import (
	"math"
	"strconv"

	"github.com/agamariel/uniformes/internal/models"
)

const (
	// Manual означает, что автоматический подбор недостаточно уверен.
	Manual = "MANUAL"

	// Tolerance расширяет диапазон для частичного совпадения.
	Tolerance = 0.05
	// PartialRatio - доля веса за попадание в расширенный диапазон.
	PartialRatio = 0.5
)

// Result - рекомендованный размер и его балл.
type Result struct {
	Size  string  `json:"size"`
	Score float64 `json:"score"`
}

// IsManual сообщает, нужен ли ручной подбор.
func (r Result) IsManual() bool {
	return r.Size == Manual
}

// Recommend подбирает размер по таблице нужного вида.
func Recommend(kind models.SizeChartKind, m models.Measurements) Result {
	return ChartFor(kind).Recommend(m)
}

// RecommendGarment подбирает размер верхней одежды.
func RecommendGarment(m models.Measurements) Result {
	return GarmentChart.Recommend(m)
}

// RecommendPants подбирает размер брюк.
func RecommendPants(m models.Measurements) Result {
	return PantsChart.Recommend(m)
}

// Recommend выбирает строку с наибольшим баллом. При равенстве
// побеждает строка, объявленная раньше. Ожидает проверенные данные.
func (c Chart) Recommend(m models.Measurements) Result {
	if len(c.Entries) == 0 {
		return Result{Size: Manual}
	}

	best := Result{Size: c.Entries[0].Size, Score: c.score(c.Entries[0], m)}
	for _, e := range c.Entries[1:] {
		if s := c.score(e, m); s > best.Score {
			best = Result{Size: e.Size, Score: s}
		}
	}

	if best.Score < c.MinScore {
		return Result{Size: Manual, Score: best.Score}
	}
	return best
}

// Confidence возвращает score / max в диапазоне [0,1].
func (c Chart) Confidence(r Result) float64 {
	max := c.Weights.Max()
	if max <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, r.Score/max))
}

func (c Chart) score(e Entry, m models.Measurements) float64 {
	return scoreDimension(m.Height, e.Height, c.Weights.Height) +
		scoreDimension(m.Chest, e.Chest, c.Weights.Chest) +
		scoreDimension(m.Waist, e.Waist, c.Weights.Waist) +
		scoreDimension(m.Hips, e.Hips, c.Weights.Hips)
}

func scoreDimension(value float64, r Range, weight float64) float64 {
	if weight == 0 {
		return 0
	}
	if value >= r.Min && value <= r.Max {
		return weight
	}
	low := r.Min * (1 - Tolerance)
	high := r.Max * (1 + Tolerance)
	if (value >= low && value < r.Min) || (value > r.Max && value <= high) {
		return weight * PartialRatio
	}
	return 0
}

// ClosestAvailable подгоняет рекомендацию под размеры, которые есть у формы.
// Если рекомендованный размер доступен или сравнение невозможно,
// он возвращается без изменений. При равном расстоянии побеждает
// размер, идущий раньше в списке.
func ClosestAvailable(recommended string, available []string) string {
	if recommended == Manual || len(available) == 0 {
		return recommended
	}
	for _, s := range available {
		if s == recommended {
			return recommended
		}
	}

	target, ok := sizeOrdinal(recommended)
	if !ok {
		return recommended
	}

	closest := recommended
	bestDist := math.Inf(1)
	for _, s := range available {
		v, ok := sizeOrdinal(s)
		if !ok {
			continue
		}
		if d := math.Abs(v - target); d < bestDist {
			bestDist = d
			closest = s
		}
	}
	return closest
}

// sizeOrdinal переводит размер в число: числовые размеры как есть,
// буквенные - по позиции в таблице верхней одежды.
func sizeOrdinal(size string) (float64, bool) {
	if v, err := strconv.ParseFloat(size, 64); err == nil {
		return v, true
	}
	for i, e := range GarmentChart.Entries {
		if e.Size == size {
			return float64(i), true
		}
	}
	return 0, false
}
