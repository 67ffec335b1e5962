// Package syncsim drives sync jobs to completion in the background.
// There is no real provider behind an integration, so a ticker stands in
// for one: running jobs older than a configured age are moved to a
// terminal state, with the outcome derived from the job id so repeated
// runs against the same document behave the same.
package syncsim

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/metrics"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/store"
)

// Simulator completes running sync jobs after a fixed age.
type Simulator struct {
	store         *store.Store
	log           *logger.Logger
	completeAfter time.Duration
	tick          time.Duration
	now           func() time.Time
}

// New creates a Simulator. Jobs in running state older than
// completeAfter are completed on the next tick.
func New(st *store.Store, log *logger.Logger, completeAfter, tick time.Duration) *Simulator {
	return &Simulator{
		store:         st,
		log:           log,
		completeAfter: completeAfter,
		tick:          tick,
		now:           time.Now,
	}
}

// Run ticks until the context is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	s.log.Info("Sync simulator started", map[string]interface{}{
		"complete_after": s.completeAfter.String(),
		"tick":           s.tick.String(),
	})

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sync simulator stopped", nil)
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.log.Error("Sync sweep failed", err, nil)
			}
		}
	}
}

// Sweep completes every running job older than the configured age.
// Exported so tests can drive it without the ticker.
func (s *Simulator) Sweep(ctx context.Context) error {
	now := s.now()
	cutoff := now.Add(-s.completeAfter)
	finishedAt := now.UTC().Format(time.RFC3339)

	type done struct {
		id     string
		status string
	}
	var completed []done

	err := s.store.Update(ctx, func(doc *models.Document) error {
		for _, job := range doc.SyncJobs {
			if job.Status != models.SyncStatusRunning {
				continue
			}
			startedAt, err := time.Parse(time.RFC3339, job.StartedAt)
			if err != nil || startedAt.After(cutoff) {
				continue
			}

			status, stats := Outcome(job.ID)
			if err := doc.CompleteSyncJob(job.ID, status, finishedAt, stats); err != nil {
				return err
			}
			completed = append(completed, done{id: job.ID, status: status})
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, d := range completed {
		metrics.SyncCompletions.WithLabelValues(d.status).Inc()
		s.log.Info("Sync job completed", map[string]interface{}{
			"job_id": d.id,
			"status": d.status,
		})
	}
	return nil
}

// Outcome derives a job's terminal status and stats from its id.
// Roughly one job in five fails; successful runs report a listing count.
func Outcome(jobID string) (string, models.Extra) {
	h := fnv.New32a()
	h.Write([]byte(jobID))
	sum := h.Sum32()

	if sum%5 == 0 {
		return models.SyncStatusFailed, models.Extra{"error": "provider timeout"}
	}
	return models.SyncStatusSuccess, models.Extra{"count": int(sum%200) + 1}
}
