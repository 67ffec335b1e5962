package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/store"
)

// SyncService defines the business logic for provider integrations and
// sync jobs.
type SyncService interface {
	// Integrations returns the configured provider connections.
	Integrations(ctx context.Context) ([]models.Integration, error)

	// Jobs returns the sync jobs, newest first, optionally scoped to a
	// team.
	Jobs(ctx context.Context, teamID string) ([]models.SyncJob, error)

	// RunSync starts a new sync run for a provider: a job in running
	// state with started_at=now is prepended to the job list. Returns the
	// new job's id.
	RunSync(ctx context.Context, provider string) (string, error)
}

type syncService struct {
	store *store.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewSyncService creates a new instance of SyncService.
func NewSyncService(st *store.Store, log *logger.Logger) SyncService {
	return &syncService{store: st, log: log, now: time.Now}
}

func (s *syncService) Integrations(ctx context.Context) ([]models.Integration, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for integrations", err, nil)
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	return doc.Integrations, nil
}

func (s *syncService) Jobs(ctx context.Context, teamID string) ([]models.SyncJob, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for sync jobs", err, nil)
		return nil, fmt.Errorf("failed to list sync jobs: %w", err)
	}
	if teamID == "" {
		return doc.SyncJobs, nil
	}

	out := make([]models.SyncJob, 0, len(doc.SyncJobs))
	for _, j := range doc.SyncJobs {
		if j.TeamID == teamID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *syncService) RunSync(ctx context.Context, provider string) (string, error) {
	id := newID("job")
	startedAt := s.now().UTC().Format(time.RFC3339)

	err := s.store.Update(ctx, func(doc *models.Document) error {
		doc.PrependSyncJob(models.SyncJob{
			ID:         id,
			TeamID:     doc.FirstTeamID(),
			Provider:   provider,
			Status:     models.SyncStatusRunning,
			StartedAt:  startedAt,
			FinishedAt: nil,
		})
		return nil
	})
	if err != nil {
		s.log.Error("Failed to start sync job", err, map[string]interface{}{
			"provider": provider,
		})
		return "", fmt.Errorf("failed to start sync: %w", err)
	}

	s.log.Info("Sync job started", map[string]interface{}{
		"job_id":   id,
		"provider": provider,
	})
	return id, nil
}
