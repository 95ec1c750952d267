package analytics

import (
	"time"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/utils"
)

// Границы возрастных корзин WIP, в днях включительно.
const (
	Bucket0to2  = "0-2"
	Bucket3to7  = "3-7"
	Bucket8to14 = "8-14"
	Bucket15    = "15+"
)

var agingBuckets = []string{Bucket0to2, Bucket3to7, Bucket8to14, Bucket15}

// Item - резерв вместе с восстановленной историей.
type Item struct {
	Reservation *models.Reservation
	Timeline    Timeline
}

// NewItems строит таймлайны для всех резервов.
func NewItems(reservations []*models.Reservation) []Item {
	items := make([]Item, 0, len(reservations))
	for _, r := range reservations {
		if r == nil {
			continue
		}
		items = append(items, Item{Reservation: r, Timeline: BuildTimeline(r)})
	}
	return items
}

// days перечисляет полночи UTC от start до дня, содержащего now.
func days(start, now time.Time) []time.Time {
	var out []time.Time
	last := utils.StartOfDayUTC(now)
	for d := utils.StartOfDayUTC(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// CumulativeFlow считает распределение резервов по статусам на конец каждого дня.
func CumulativeFlow(items []Item, start, now time.Time) []models.CFDPoint {
	dayList := days(start, now)
	points := make([]models.CFDPoint, 0, len(dayList))
	for _, day := range dayList {
		end := utils.EndOfDayUTC(day)
		point := models.CFDPoint{Date: utils.DayKey(day)}
		for _, it := range items {
			if it.Reservation.CreatedAt.After(end) {
				continue
			}
			if status, ok := it.Timeline.StatusAt(end); ok {
				point.Add(status)
			}
		}
		points = append(points, point)
	}
	return points
}

// Throughput считает первые доставки и первые отмены внутри окна по дням.
func Throughput(items []Item, start, now time.Time) []models.ThroughputPoint {
	dayList := days(start, now)
	points := make([]models.ThroughputPoint, len(dayList))
	index := make(map[string]int, len(dayList))
	for i, day := range dayList {
		key := utils.DayKey(day)
		points[i].Date = key
		index[key] = i
	}

	to := utils.EndOfDayUTC(now)
	for _, it := range items {
		if at, ok := it.Timeline.FirstIn(models.StatusEntregue, start, to); ok {
			if i, found := index[utils.DayKey(at)]; found {
				points[i].Entregues++
			}
		}
		if at, ok := it.Timeline.FirstIn(models.StatusCancelada, start, to); ok {
			if i, found := index[utils.DayKey(at)]; found {
				points[i].Canceladas++
			}
		}
	}
	return points
}

// CycleTime считает медиану и p90 времени от создания до доставки
// по дням доставки.
func CycleTime(items []Item, start, now time.Time) []models.CycleTimePoint {
	dayList := days(start, now)
	samples := make(map[string][]float64, len(dayList))

	to := utils.EndOfDayUTC(now)
	for _, it := range items {
		deliveredAt, ok := it.Timeline.FirstIn(models.StatusEntregue, start, to)
		if !ok {
			continue
		}
		cycle := deliveredAt.Sub(it.Reservation.CreatedAt).Hours() / 24
		if cycle < 0 {
			cycle = 0
		}
		key := utils.DayKey(deliveredAt)
		samples[key] = append(samples[key], cycle)
	}

	points := make([]models.CycleTimePoint, 0, len(dayList))
	for _, day := range dayList {
		key := utils.DayKey(day)
		values := samples[key]
		points = append(points, models.CycleTimePoint{
			Date:       key,
			Count:      len(values),
			MedianDays: round2(Quantile(values, 0.5)),
			P90Days:    round2(Quantile(values, 0.9)),
		})
	}
	return points
}

// AgingWIP раскладывает открытые резервы по возрасту текущего статуса
// и по самому статусу на момент now.
func AgingWIP(items []Item, now time.Time) ([]models.AgingBucket, []models.StatusCount) {
	bucketCounts := make(map[string]int, len(agingBuckets))
	statusCounts := make(map[models.ReservationStatus]int, len(models.OpenStatuses))

	for _, it := range items {
		status, ok := it.Timeline.StatusAt(now)
		if !ok || models.IsTerminal(status) {
			continue
		}
		since, found := it.Timeline.EnteredAt(status, now)
		if !found {
			since = it.Reservation.CreatedAt
		}
		bucketCounts[AgeBucket(ageInDays(since, now))]++
		statusCounts[status]++
	}

	buckets := make([]models.AgingBucket, 0, len(agingBuckets))
	for _, b := range agingBuckets {
		buckets = append(buckets, models.AgingBucket{Bucket: b, Count: bucketCounts[b]})
	}
	byStatus := make([]models.StatusCount, 0, len(models.OpenStatuses))
	for _, s := range models.OpenStatuses {
		byStatus = append(byStatus, models.StatusCount{Status: s, Count: statusCounts[s]})
	}
	return buckets, byStatus
}

// AgeBucket возвращает корзину для возраста в целых днях.
func AgeBucket(days int) string {
	switch {
	case days <= 2:
		return Bucket0to2
	case days <= 7:
		return Bucket3to7
	case days <= 14:
		return Bucket8to14
	default:
		return Bucket15
	}
}

func ageInDays(since, now time.Time) int {
	d := now.Sub(since)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
