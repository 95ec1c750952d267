package services

import (
	"context"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultBackfillBatch = 100

// EventBackfillWorker восстанавливает журналы событий у старых резервов,
// созданных до появления журнала.
type EventBackfillWorker struct {
	storage   EventBackfillStorage
	batchSize int
	logger    logrus.FieldLogger
}

func NewEventBackfillWorker(storage EventBackfillStorage, batchSize int, logger logrus.FieldLogger) *EventBackfillWorker {
	if batchSize <= 0 {
		batchSize = defaultBackfillBatch
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EventBackfillWorker{
		storage:   storage,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start запускает однократный проход в отдельной горутине.
// Проход прерывается по ctx.Done().
func (w *EventBackfillWorker) Start(ctx context.Context) {
	go func() {
		filled, err := w.Run(ctx)
		if err != nil {
			w.logger.WithError(err).Error("event backfill failed")
			return
		}
		w.logger.WithField("reservations", filled).Info("event backfill finished")
	}()
}

// Run заполняет журналы пачками, пока они не кончатся.
// Возвращает число обновлённых резервов.
func (w *EventBackfillWorker) Run(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		batch, err := w.storage.ListWithoutEvents(ctx, w.batchSize)
		if err != nil {
			return total, err
		}
		if len(batch) == 0 {
			return total, nil
		}

		filled := w.processBatch(ctx, batch)
		total += filled

		// Ни одна запись не обновилась: следующая пачка будет той же
		if filled == 0 {
			w.logger.WithField("pending", len(batch)).Warn("event backfill made no progress")
			return total, nil
		}
	}
}

func (w *EventBackfillWorker) processBatch(ctx context.Context, batch []*models.Reservation) int {
	filled := 0
	for _, r := range batch {
		ok, err := w.storage.FillEmptyEvents(ctx, r.ID, BackfillEvents(r))
		if err != nil {
			w.logger.WithError(err).WithField("reservation_id", r.ID).Error("fill reservation events")
			continue
		}
		if ok {
			filled++
		}
	}
	return filled
}

// BackfillEvents строит журнал по полям резерва: событие created на момент
// создания и, если статус уже сдвинулся, событие backfill на момент
// последнего обновления.
func BackfillEvents(r *models.Reservation) []models.ReservationEvent {
	events := []models.ReservationEvent{
		models.NewEvent(models.EventCreated, r.CreatedAt, models.StatusAguardando, ""),
	}

	status := models.NormalizeStatus(r.Status)
	if status == models.StatusAguardando {
		return events
	}

	at := r.UpdatedAt
	if at.IsZero() || at.Before(r.CreatedAt) {
		at = r.CreatedAt
	}
	return append(events, models.NewEvent(models.EventBackfill, at, status, ""))
}
