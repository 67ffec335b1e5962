package services

import (
	"context"
	"fmt"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/pagination"
	"github.com/pcabrera/inmo/api/internal/store"
)

// LeadService defines the business logic for the lead pipeline.
type LeadService interface {
	// LeadsPage returns one page of leads, optionally scoped to a team.
	LeadsPage(ctx context.Context, teamID string, req pagination.Request) (*Page[models.Lead], error)
}

type leadService struct {
	store *store.Store
	log   *logger.Logger
}

// NewLeadService creates a new instance of LeadService.
func NewLeadService(st *store.Store, log *logger.Logger) LeadService {
	return &leadService{store: st, log: log}
}

func (s *leadService) LeadsPage(ctx context.Context, teamID string, req pagination.Request) (*Page[models.Lead], error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for leads page", err, nil)
		return nil, fmt.Errorf("failed to page leads: %w", err)
	}

	req = req.Normalize()
	scoped := doc.Leads
	if teamID != "" {
		scoped = make([]models.Lead, 0, len(doc.Leads))
		for _, l := range doc.Leads {
			if l.TeamID == teamID {
				scoped = append(scoped, l)
			}
		}
	}

	items, total := pagination.Slice(scoped, req)
	return &Page[models.Lead]{
		Items:    items,
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
	}, nil
}
