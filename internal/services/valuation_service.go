package services

import (
	"context"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/store"
)

// ValuationConditions holds the weighting factors the valuation model
// applies per attribute.
type ValuationConditions struct {
	BathroomsWeight float64 `json:"bathrooms_weight"`
	BedroomsWeight  float64 `json:"bedrooms_weight"`
	M2Weight        float64 `json:"m2_weight"`
}

// ValuationPoint is one entry in the historical estimate series.
type ValuationPoint struct {
	Date     string  `json:"date"`
	Estimate float64 `json:"estimate"`
}

// ValuationService serves valuation model parameters and history.
type ValuationService interface {
	// Conditions returns the current valuation model weights.
	Conditions(ctx context.Context) (*ValuationConditions, error)

	// HistoricalSeries returns the estimate time series for the demo
	// market, oldest first.
	HistoricalSeries(ctx context.Context) ([]ValuationPoint, error)

	// ExtraFeaturesSchema maps feature names to their value types, the
	// contract for the open features map on properties.
	ExtraFeaturesSchema(ctx context.Context) (map[string]string, error)
}

type valuationService struct {
	store *store.Store
	log   *logger.Logger
}

// NewValuationService creates a new instance of ValuationService.
func NewValuationService(st *store.Store, log *logger.Logger) ValuationService {
	return &valuationService{store: st, log: log}
}

func (s *valuationService) Conditions(_ context.Context) (*ValuationConditions, error) {
	return &ValuationConditions{
		BathroomsWeight: 1.1,
		BedroomsWeight:  1.3,
		M2Weight:        1.5,
	}, nil
}

func (s *valuationService) HistoricalSeries(_ context.Context) ([]ValuationPoint, error) {
	return []ValuationPoint{
		{Date: "2024-01-01", Estimate: 390000},
		{Date: "2024-06-01", Estimate: 405000},
		{Date: "2025-01-01", Estimate: 420000},
	}, nil
}

func (s *valuationService) ExtraFeaturesSchema(_ context.Context) (map[string]string, error) {
	return map[string]string{
		"elevator":     "boolean",
		"balcony":      "boolean",
		"energy_label": "string",
	}, nil
}
