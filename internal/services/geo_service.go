package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pcabrera/inmo/api/internal/geodata"
	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/store"
)

// Service-level errors
var (
	ErrEmptyPolygon = errors.New("subplot polygon must not be empty")
)

// GeoService serves map datasets and user-drawn subplots.
type GeoService interface {
	// MapIndexes returns the searchable dataset metadata.
	MapIndexes(ctx context.Context) ([]models.MapIndex, error)

	// PlotsByBounds returns the district plot polygons. The bounds are
	// accepted but not applied; the dataset is small enough to send whole
	// and clients clip on render. Revisit if the dataset grows.
	PlotsByBounds(ctx context.Context) (*geodata.FeatureCollection, error)

	// SubplotsByBounds returns the stored user-drawn subplots.
	SubplotsByBounds(ctx context.Context, teamID string) ([]models.Subplot, error)

	// SaveSubplotBounds appends a new subplot with a generated id.
	// Returns ErrEmptyPolygon when the polygon has no points.
	SaveSubplotBounds(ctx context.Context, polygon [][]float64) (string, error)
}

type geoService struct {
	store *store.Store
	log   *logger.Logger
}

// NewGeoService creates a new instance of GeoService.
func NewGeoService(st *store.Store, log *logger.Logger) GeoService {
	return &geoService{store: st, log: log}
}

func (s *geoService) MapIndexes(ctx context.Context) ([]models.MapIndex, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for map indexes", err, nil)
		return nil, fmt.Errorf("failed to list map indexes: %w", err)
	}
	return doc.MapIndexes, nil
}

func (s *geoService) PlotsByBounds(_ context.Context) (*geodata.FeatureCollection, error) {
	fc, err := geodata.DistrictPlots()
	if err != nil {
		s.log.Error("Failed to decode district plots", err, nil)
		return nil, fmt.Errorf("failed to load district plots: %w", err)
	}
	return fc, nil
}

func (s *geoService) SubplotsByBounds(ctx context.Context, teamID string) ([]models.Subplot, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for subplots", err, nil)
		return nil, fmt.Errorf("failed to list subplots: %w", err)
	}
	if teamID == "" {
		return doc.Subplots, nil
	}

	out := make([]models.Subplot, 0, len(doc.Subplots))
	for _, sp := range doc.Subplots {
		if sp.TeamID == teamID {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (s *geoService) SaveSubplotBounds(ctx context.Context, polygon [][]float64) (string, error) {
	if len(polygon) == 0 {
		return "", ErrEmptyPolygon
	}

	id := newID("subplot")
	err := s.store.Update(ctx, func(doc *models.Document) error {
		doc.Subplots = append(doc.Subplots, models.Subplot{
			ID:      id,
			TeamID:  doc.FirstTeamID(),
			Polygon: polygon,
		})
		return nil
	})
	if err != nil {
		s.log.Error("Failed to save subplot", err, nil)
		return "", fmt.Errorf("failed to save subplot: %w", err)
	}

	s.log.Info("Subplot saved", map[string]interface{}{
		"subplot_id": id,
		"points":     len(polygon),
	})
	return id, nil
}
