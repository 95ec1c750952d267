package models

// Dashboard - ответ аналитики по резервам.
// При выключенном флаге заполняется только DashboardChartsEnabled.
type Dashboard struct {
	DashboardChartsEnabled bool              `json:"dashboardChartsEnabled"`
	RangeDays              int               `json:"rangeDays,omitempty"`
	CFD                    []CFDPoint        `json:"cfd,omitempty"`
	Throughput             []ThroughputPoint `json:"throughput,omitempty"`
	CycleTime              []CycleTimePoint  `json:"cycleTime,omitempty"`
	AgingWIP               []AgingBucket     `json:"agingWip,omitempty"`
	StaleByStatus          []StatusCount     `json:"staleByStatus,omitempty"`
}

// DashboardSettingsRequest - запрос на смену флага графиков.
type DashboardSettingsRequest struct {
	DashboardChartsEnabled *bool `json:"dashboardChartsEnabled" validate:"required"`
}

// CFDPoint - количество резервов по статусам на конец дня.
type CFDPoint struct {
	Date            string `json:"date"`
	Aguardando      int    `json:"aguardando"`
	Recebida        int    `json:"recebida"`
	EmProcessamento int    `json:"em-processamento"`
	Finalizada      int    `json:"finalizada"`
	Entregue        int    `json:"entregue"`
	Cancelada       int    `json:"cancelada"`
}

// Add увеличивает счётчик статуса.
func (p *CFDPoint) Add(s ReservationStatus) {
	switch s {
	case StatusAguardando:
		p.Aguardando++
	case StatusRecebida:
		p.Recebida++
	case StatusEmProcessamento:
		p.EmProcessamento++
	case StatusFinalizada:
		p.Finalizada++
	case StatusEntregue:
		p.Entregue++
	case StatusCancelada:
		p.Cancelada++
	}
}

// Count возвращает счётчик статуса.
func (p CFDPoint) Count(s ReservationStatus) int {
	switch s {
	case StatusAguardando:
		return p.Aguardando
	case StatusRecebida:
		return p.Recebida
	case StatusEmProcessamento:
		return p.EmProcessamento
	case StatusFinalizada:
		return p.Finalizada
	case StatusEntregue:
		return p.Entregue
	case StatusCancelada:
		return p.Cancelada
	}
	return 0
}

// ThroughputPoint - завершённые резервы за день.
type ThroughputPoint struct {
	Date       string `json:"date"`
	Entregues  int    `json:"entregues"`
	Canceladas int    `json:"canceladas"`
}

// CycleTimePoint - время цикла доставленных за день резервов.
type CycleTimePoint struct {
	Date       string  `json:"date"`
	Count      int     `json:"count"`
	MedianDays float64 `json:"medianDays"`
	P90Days    float64 `json:"p90Days"`
}

// AgingBucket - количество WIP в диапазоне возраста.
type AgingBucket struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// StatusCount - количество открытых резервов в статусе.
type StatusCount struct {
	Status ReservationStatus `json:"status"`
	Count  int               `json:"count"`
}
