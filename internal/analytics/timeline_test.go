package analytics

import (
	"testing"
	"time"

	"github.com/agamariel/uniformes/internal/models"
)

var base = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

// at возвращает момент day дней и hour часов после base.
func at(day, hour int) time.Time {
	return base.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
}

func event(t time.Time, status models.ReservationStatus) models.ReservationEvent {
	return models.NewEvent(models.EventStatusChanged, t, status, models.RoleAdmin)
}

func TestBuildTimeline(t *testing.T) {
	tests := []struct {
		name string
		r    *models.Reservation
		want Timeline
	}{
		{
			name: "no events uses current status",
			r: &models.Reservation{
				CreatedAt: at(0, 10),
				Status:    "enviado",
			},
			want: Timeline{{At: at(0, 10), Status: models.StatusEntregue}},
		},
		{
			name: "events sorted and legacy statuses mapped",
			r: &models.Reservation{
				CreatedAt: at(0, 10),
				Status:    models.StatusEmProcessamento,
				Events: []models.ReservationEvent{
					event(at(2, 0), "em-producao"),
					event(at(0, 10), models.StatusAguardando),
					event(at(1, 0), models.StatusRecebida),
				},
			},
			want: Timeline{
				{At: at(0, 10), Status: models.StatusAguardando},
				{At: at(1, 0), Status: models.StatusRecebida},
				{At: at(2, 0), Status: models.StatusEmProcessamento},
			},
		},
		{
			name: "baseline prepended when log starts after creation",
			r: &models.Reservation{
				CreatedAt: at(0, 10),
				Status:    models.StatusRecebida,
				Events:    []models.ReservationEvent{event(at(3, 0), models.StatusRecebida)},
			},
			want: Timeline{
				{At: at(0, 10), Status: models.StatusAguardando},
				{At: at(3, 0), Status: models.StatusRecebida},
			},
		},
		{
			name: "unknown status becomes aguardando",
			r: &models.Reservation{
				CreatedAt: at(0, 10),
				Events:    []models.ReservationEvent{event(at(0, 10), "perdida")},
			},
			want: Timeline{{At: at(0, 10), Status: models.StatusAguardando}},
		},
		{
			name: "events without time are dropped",
			r: &models.Reservation{
				CreatedAt: at(0, 10),
				Status:    models.StatusFinalizada,
				Events: []models.ReservationEvent{
					{Type: models.EventStatusChanged, Status: models.StatusRecebida},
				},
			},
			want: Timeline{{At: at(0, 10), Status: models.StatusFinalizada}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTimeline(tt.r)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if !got[i].At.Equal(tt.want[i].At) || got[i].Status != tt.want[i].Status {
					t.Errorf("point %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
			if got[0].At.After(tt.r.CreatedAt) {
				t.Errorf("first point %v after createdAt %v", got[0].At, tt.r.CreatedAt)
			}
		})
	}
}

func TestTimelineStatusAt(t *testing.T) {
	tl := Timeline{
		{At: at(0, 10), Status: models.StatusAguardando},
		{At: at(3, 0), Status: models.StatusRecebida},
		{At: at(3, 0), Status: models.StatusEmProcessamento},
		{At: at(5, 0), Status: models.StatusEntregue},
	}

	tests := []struct {
		name   string
		t      time.Time
		want   models.ReservationStatus
		wantOK bool
	}{
		{"before first event", at(0, 9), "", false},
		{"exactly at first event", at(0, 10), models.StatusAguardando, true},
		{"between events", at(2, 23), models.StatusAguardando, true},
		{"tie at same instant applies both", at(3, 0), models.StatusEmProcessamento, true},
		{"after last event", at(40, 0), models.StatusEntregue, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tl.StatusAt(tt.t)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("StatusAt(%v) = %q, %v; want %q, %v", tt.t, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTimelineFirstInAndEnteredAt(t *testing.T) {
	tl := Timeline{
		{At: at(0, 0), Status: models.StatusAguardando},
		{At: at(2, 0), Status: models.StatusRecebida},
		{At: at(4, 0), Status: models.StatusAguardando},
		{At: at(6, 0), Status: models.StatusRecebida},
	}

	got, ok := tl.FirstIn(models.StatusRecebida, at(0, 0), at(10, 0))
	if !ok || !got.Equal(at(2, 0)) {
		t.Errorf("FirstIn() = %v, %v; want %v", got, ok, at(2, 0))
	}

	got, ok = tl.FirstIn(models.StatusRecebida, at(3, 0), at(10, 0))
	if !ok || !got.Equal(at(6, 0)) {
		t.Errorf("FirstIn() from day 3 = %v, %v; want %v", got, ok, at(6, 0))
	}

	if _, ok := tl.FirstIn(models.StatusEntregue, at(0, 0), at(10, 0)); ok {
		t.Error("FirstIn() found a status that never happened")
	}

	got, ok = tl.EnteredAt(models.StatusRecebida, at(10, 0))
	if !ok || !got.Equal(at(6, 0)) {
		t.Errorf("EnteredAt() = %v, %v; want %v", got, ok, at(6, 0))
	}

	got, ok = tl.EnteredAt(models.StatusRecebida, at(5, 0))
	if !ok || !got.Equal(at(2, 0)) {
		t.Errorf("EnteredAt() before last change = %v, %v; want %v", got, ok, at(2, 0))
	}
}

func TestCountUnparseable(t *testing.T) {
	rs := []*models.Reservation{
		{Events: []models.ReservationEvent{event(at(0, 0), models.StatusAguardando), {}}},
		nil,
		{Events: []models.ReservationEvent{{}, {}}},
	}
	if got := CountUnparseable(rs); got != 3 {
		t.Errorf("CountUnparseable() = %d, want 3", got)
	}
}
