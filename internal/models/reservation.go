package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationStatus описывает этап обработки резерва.
type ReservationStatus string

const (
	StatusAguardando      ReservationStatus = "aguardando"
	StatusRecebida        ReservationStatus = "recebida"
	StatusEmProcessamento ReservationStatus = "em-processamento"
	StatusFinalizada      ReservationStatus = "finalizada"
	StatusEntregue        ReservationStatus = "entregue"
	StatusCancelada       ReservationStatus = "cancelada"

	// Устаревшие значения, встречающиеся в старых записях.
	legacyStatusEmProducao ReservationStatus = "em-producao"
	legacyStatusEnviado    ReservationStatus = "enviado"
)

// CanonicalStatuses - все рабочие статусы в порядке потока.
var CanonicalStatuses = []ReservationStatus{
	StatusAguardando,
	StatusRecebida,
	StatusEmProcessamento,
	StatusFinalizada,
	StatusEntregue,
	StatusCancelada,
}

// OpenStatuses - нетерминальные статусы (WIP).
var OpenStatuses = []ReservationStatus{
	StatusAguardando,
	StatusRecebida,
	StatusEmProcessamento,
	StatusFinalizada,
}

var legacyStatuses = map[ReservationStatus]ReservationStatus{
	legacyStatusEmProducao: StatusEmProcessamento,
	legacyStatusEnviado:    StatusEntregue,
}

// NormalizeStatus переводит статус в текущий словарь.
// Неизвестные значения становятся aguardando.
func NormalizeStatus(s ReservationStatus) ReservationStatus {
	if mapped, ok := legacyStatuses[s]; ok {
		return mapped
	}
	if IsKnownStatus(s) {
		return s
	}
	return StatusAguardando
}

// IsKnownStatus сообщает, входит ли статус в текущий словарь.
func IsKnownStatus(s ReservationStatus) bool {
	for _, known := range CanonicalStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal сообщает, завершён ли резерв.
func IsTerminal(s ReservationStatus) bool {
	return s == StatusEntregue || s == StatusCancelada
}

// Типы событий журнала.
const (
	EventCreated       = "created"
	EventStatusChanged = "status_changed"
	EventBackfill      = "backfill"
)

// ReservationEvent - запись журнала изменений статуса.
type ReservationEvent struct {
	Type      string            `json:"type"`
	At        time.Time         `json:"at"`
	Status    ReservationStatus `json:"status"`
	ActorRole Role              `json:"actorRole"`
}

// NewEvent создаёт событие с временем в UTC.
func NewEvent(eventType string, at time.Time, status ReservationStatus, actor Role) ReservationEvent {
	return ReservationEvent{
		Type:      eventType,
		At:        at.UTC(),
		Status:    status,
		ActorRole: actor,
	}
}

// Measurements - обмеры ребёнка в сантиметрах.
type Measurements struct {
	Height float64 `json:"height" validate:"required,gt=0,lte=250"`
	Chest  float64 `json:"chest" validate:"omitempty,gt=0,lte=250"`
	Waist  float64 `json:"waist" validate:"required,gt=0,lte=250"`
	Hips   float64 `json:"hips" validate:"required,gt=0,lte=250"`
}

// Reservation представляет резерв формы.
type Reservation struct {
	ID            uuid.UUID          `db:"id"`
	UserID        uuid.UUID          `db:"user_id"`
	ChildName     string             `db:"child_name"`
	SchoolID      uuid.UUID          `db:"school_id"`
	UniformID     uuid.UUID          `db:"uniform_id"`
	SupplierID    *uuid.UUID         `db:"supplier_id"`
	Measurements  *Measurements      `db:"measurements"`
	SuggestedSize string             `db:"suggested_size"`
	Status        ReservationStatus  `db:"status"`
	Value         decimal.Decimal    `db:"value"`
	Version       int                `db:"version"`
	CreatedAt     time.Time          `db:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at"`
	Events        []ReservationEvent `db:"events"`
}

// CreateReservationRequest - запрос на создание резерва.
type CreateReservationRequest struct {
	UniformID    uuid.UUID     `json:"uniformId" validate:"required"`
	SchoolID     uuid.UUID     `json:"schoolId" validate:"required"`
	ChildName    string        `json:"childName" validate:"required,max=120"`
	Measurements *Measurements `json:"measurements,omitempty" validate:"omitempty"`
}

// UpdateStatusRequest - запрос на смену статуса.
type UpdateStatusRequest struct {
	Status  ReservationStatus `json:"status" validate:"required"`
	Version *int              `json:"version,omitempty" validate:"omitempty,min=0"`
}

// ReservationResponse ответ для списка резервов.
type ReservationResponse struct {
	ID            string        `json:"id"`
	ChildName     string        `json:"childName"`
	SchoolID      string        `json:"schoolId"`
	UniformID     string        `json:"uniformId"`
	SupplierID    string        `json:"supplierId,omitempty"`
	Measurements  *Measurements `json:"measurements,omitempty"`
	SuggestedSize string        `json:"suggestedSize"`
	Status        string        `json:"status"`
	Value         float64       `json:"value"`
	Version       int           `json:"version"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

type rawEvent struct {
	Type      string `json:"type"`
	At        any    `json:"at"`
	Status    string `json:"status"`
	ActorRole string `json:"actorRole"`
}

var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
}

// DecodeEvents разбирает журнал событий из JSON.
// Событие с нечитаемым временем сохраняется с нулевым At; такие события
// отбрасываются при построении таймлайна.
func DecodeEvents(data []byte) ([]ReservationEvent, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]ReservationEvent, 0, len(items))
	for _, item := range items {
		var raw rawEvent
		if err := json.Unmarshal(item, &raw); err != nil {
			events = append(events, ReservationEvent{})
			continue
		}
		events = append(events, ReservationEvent{
			Type:      raw.Type,
			At:        parseEventTime(raw.At),
			Status:    ReservationStatus(raw.Status),
			ActorRole: Role(raw.ActorRole),
		})
	}
	return events, nil
}

func parseEventTime(v any) time.Time {
	switch val := v.(type) {
	case string:
		for _, layout := range eventTimeLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t.UTC()
			}
		}
	case float64:
		// миллисекунды Unix
		if val > 0 {
			return time.UnixMilli(int64(val)).UTC()
		}
	}
	return time.Time{}
}
