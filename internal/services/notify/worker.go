package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"paygate/internal/store/repositories"
)

// Worker polls stored notifications and runs them through the processor.
type Worker struct {
	notifications repositories.NotificationRepository
	processor     *Processor
	pollEvery     time.Duration
	batchSize     int
}

func NewWorker(notifications repositories.NotificationRepository, processor *Processor, pollEvery time.Duration, batchSize int) *Worker {
	if pollEvery == 0 {
		pollEvery = 2 * time.Second
	}
	if batchSize == 0 {
		batchSize = 50
	}
	return &Worker{
		notifications: notifications,
		processor:     processor,
		pollEvery:     pollEvery,
		batchSize:     batchSize,
	}
}

// Run processes notifications until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	log.Info().
		Dur("poll_every", w.pollEvery).
		Int("batch_size", w.batchSize).
		Msg("notification worker started")

	ticker := time.NewTicker(w.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("notification worker stopping")
			return
		case <-ticker.C:
			if err := w.processNextBatch(ctx); err != nil {
				log.Error().Err(err).Msg("error processing notification batch")
			}
		}
	}
}

func (w *Worker) processNextBatch(ctx context.Context) error {
	batch, err := w.notifications.FindUnprocessed(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}

	log.Debug().Int("count", len(batch)).Msg("processing notification batch")

	for _, n := range batch {
		start := time.Now()
		err := w.processor.Process(ctx, n)
		if err != nil {
			log.Error().
				Err(err).
				Int64("notification_id", n.ID).
				Str("kind", n.Kind).
				Str("session_id", n.SessionID).
				Dur("duration", time.Since(start)).
				Msg("failed to process notification")
			// Leave it queued; the next poll retries it.
			continue
		}
		log.Info().
			Int64("notification_id", n.ID).
			Str("kind", n.Kind).
			Str("session_id", n.SessionID).
			Dur("duration", time.Since(start)).
			Msg("notification processed")
	}
	return nil
}
