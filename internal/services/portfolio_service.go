package services

import (
	"context"
	"fmt"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/pagination"
	"github.com/pcabrera/inmo/api/internal/store"
)

// PortfolioService defines the business logic for property listings.
type PortfolioService interface {
	// ListProperties returns all properties, optionally scoped to a team.
	ListProperties(ctx context.Context, teamID string) ([]models.Property, error)

	// GetProperty returns the property with the given id, or nil when no
	// such property exists (absence is not an error).
	GetProperty(ctx context.Context, id string) (*models.Property, error)

	// SaveProperty upserts a property: an incoming record whose id matches
	// an existing one is merged into it; otherwise a fresh id is assigned
	// and the record appended. Returns the id of the affected record.
	SaveProperty(ctx context.Context, in models.Property) (string, error)

	// PortfolioPage returns one page of the team portfolio.
	PortfolioPage(ctx context.Context, teamID string, req pagination.Request) (*Page[models.Property], error)
}

type portfolioService struct {
	store *store.Store
	log   *logger.Logger
}

// NewPortfolioService creates a new instance of PortfolioService.
func NewPortfolioService(st *store.Store, log *logger.Logger) PortfolioService {
	return &portfolioService{store: st, log: log}
}

func (s *portfolioService) ListProperties(ctx context.Context, teamID string) ([]models.Property, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for property list", err, nil)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return filterPropertiesByTeam(doc.Properties, teamID), nil
}

func (s *portfolioService) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for property lookup", err, map[string]interface{}{
			"property_id": id,
		})
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	p := doc.FindProperty(id)
	if p == nil {
		s.log.Debug("Property not found", map[string]interface{}{"property_id": id})
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (s *portfolioService) SaveProperty(ctx context.Context, in models.Property) (string, error) {
	var affected string
	created := false
	err := s.store.Update(ctx, func(doc *models.Document) error {
		if in.TeamID == "" {
			in.TeamID = doc.FirstTeamID()
		}
		if doc.MergeProperty(in) {
			affected = in.ID
			return nil
		}
		// Appends always carry a generated id; a client-supplied id that
		// matches nothing is replaced, not trusted.
		in.ID = newID("prop")
		affected = in.ID
		created = true
		doc.AppendProperty(in)
		return nil
	})
	if err != nil {
		s.log.Error("Failed to save property", err, map[string]interface{}{
			"property_id": in.ID,
		})
		return "", fmt.Errorf("failed to save property: %w", err)
	}

	s.log.Info("Property saved", map[string]interface{}{
		"property_id": affected,
		"created":     created,
	})
	return affected, nil
}

func (s *portfolioService) PortfolioPage(ctx context.Context, teamID string, req pagination.Request) (*Page[models.Property], error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for portfolio page", err, nil)
		return nil, fmt.Errorf("failed to page portfolio: %w", err)
	}

	req = req.Normalize()
	scoped := filterPropertiesByTeam(doc.Properties, teamID)
	items, total := pagination.Slice(scoped, req)
	return &Page[models.Property]{
		Items:    items,
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
	}, nil
}

// filterPropertiesByTeam returns properties for the given team; an empty
// teamID means unscoped.
func filterPropertiesByTeam(props []models.Property, teamID string) []models.Property {
	if teamID == "" {
		out := make([]models.Property, len(props))
		copy(out, props)
		return out
	}
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}
