package analytics

import (
	"sort"
	"time"

	"github.com/agamariel/uniformes/internal/models"
)

// Point - статус резерва, действующий начиная с момента At.
type Point struct {
	At     time.Time
	Status models.ReservationStatus
}

// Timeline - отсортированная по времени история статусов. Никогда не пуста
// и начинается не позже создания резерва.
type Timeline []Point

// BuildTimeline восстанавливает историю статусов резерва из журнала событий.
// События без валидного времени отбрасываются.
func BuildTimeline(r *models.Reservation) Timeline {
	points := make(Timeline, 0, len(r.Events)+1)
	for _, e := range r.Events {
		if e.At.IsZero() {
			continue
		}
		points = append(points, Point{At: e.At.UTC(), Status: models.NormalizeStatus(e.Status)})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].At.Before(points[j].At)
	})

	createdAt := r.CreatedAt.UTC()
	if len(points) == 0 {
		return Timeline{{At: createdAt, Status: models.NormalizeStatus(r.Status)}}
	}
	if r.CreatedAt.IsZero() {
		return points
	}

	if points[0].At.After(createdAt) {
		baseline := Point{At: createdAt, Status: models.StatusAguardando}
		points = append(Timeline{baseline}, points...)
	}
	return points
}

// StatusAt возвращает статус на момент t. Событие ровно в t уже учтено.
// ok == false, если резерва в момент t ещё не было.
func (tl Timeline) StatusAt(t time.Time) (status models.ReservationStatus, ok bool) {
	for _, p := range tl {
		if p.At.After(t) {
			break
		}
		status, ok = p.Status, true
	}
	return status, ok
}

// FirstIn возвращает время первого перехода в статус внутри [from, to].
func (tl Timeline) FirstIn(status models.ReservationStatus, from, to time.Time) (time.Time, bool) {
	for _, p := range tl {
		if p.Status != status || p.At.Before(from) || p.At.After(to) {
			continue
		}
		return p.At, true
	}
	return time.Time{}, false
}

// EnteredAt ищет с конца последнее событие со статусом status не позже now.
func (tl Timeline) EnteredAt(status models.ReservationStatus, now time.Time) (time.Time, bool) {
	for i := len(tl) - 1; i >= 0; i-- {
		p := tl[i]
		if p.At.After(now) {
			continue
		}
		if p.Status == status {
			return p.At, true
		}
	}
	return time.Time{}, false
}

// CountUnparseable возвращает число событий без валидного времени.
func CountUnparseable(reservations []*models.Reservation) int {
	n := 0
	for _, r := range reservations {
		if r == nil {
			continue
		}
		for _, e := range r.Events {
			if e.At.IsZero() {
				n++
			}
		}
	}
	return n
}
