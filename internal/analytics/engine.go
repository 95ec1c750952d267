package analytics

import (
	"time"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/utils"
)

// Options - параметры расчёта дашборда.
type Options struct {
	// Enabled - значение флага dashboardChartsEnabled на момент запроса.
	Enabled bool
	// Days - длина окна; приводится к [7, 365].
	Days int
	// Now - момент расчёта; нулевое значение означает текущее время.
	Now time.Time
}

// Compute строит все представления дашборда по уже отобранным резервам.
// При выключенном флаге расчёт не выполняется.
func Compute(reservations []*models.Reservation, opts Options) *models.Dashboard {
	if !opts.Enabled {
		return &models.Dashboard{DashboardChartsEnabled: false}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	rangeDays := utils.ClampDays(opts.Days)
	start := utils.WindowStart(now, rangeDays)
	items := NewItems(reservations)

	aging, stale := AgingWIP(items, now)

	return &models.Dashboard{
		DashboardChartsEnabled: true,
		RangeDays:              rangeDays,
		CFD:                    CumulativeFlow(items, start, now),
		Throughput:             Throughput(items, start, now),
		CycleTime:              CycleTime(items, start, now),
		AgingWIP:               aging,
		StaleByStatus:          stale,
	}
}
