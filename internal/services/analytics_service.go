package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/store"
)

// avgDaysOnMarket is a placeholder until listing events carry real
// publish/close timestamps.
const avgDaysOnMarket = 42

// Tally is a (key, count) pair serialized as a two-element array, the
// entries shape the dashboard charts consume.
type Tally struct {
	Key   string
	Count int
}

// MarshalJSON renders the tally as ["key", count].
func (t Tally) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.Key, t.Count})
}

// DashboardCounts holds the entity totals shown on the dashboard.
type DashboardCounts struct {
	Leads       int `json:"leads"`
	Properties  int `json:"properties"`
	Collections int `json:"collections"`
	SyncJobs    int `json:"syncJobs"`
	Valuations  int `json:"valuations"`
}

// Analytics holds the group-by tallies for the analytics view.
type Analytics struct {
	PropertiesByStatus []Tally `json:"propertiesByStatus"`
	LeadsByStage       []Tally `json:"leadsByStage"`
	AvgDOM             int     `json:"avgDom"`
}

// AnalyticsService computes derived views over the current document.
// Nothing here persists state.
type AnalyticsService interface {
	// Dashboard returns entity counts for the dashboard header.
	Dashboard(ctx context.Context) (*DashboardCounts, error)

	// Analytics returns group-by tallies over properties and leads.
	Analytics(ctx context.Context) (*Analytics, error)
}

type analyticsService struct {
	store *store.Store
	log   *logger.Logger
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(st *store.Store, log *logger.Logger) AnalyticsService {
	return &analyticsService{store: st, log: log}
}

func (s *analyticsService) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for dashboard counts", err, nil)
		return nil, fmt.Errorf("failed to compute dashboard counts: %w", err)
	}
	return &DashboardCounts{
		Leads:       len(doc.Leads),
		Properties:  len(doc.Properties),
		Collections: len(doc.Collections),
		SyncJobs:    len(doc.SyncJobs),
		Valuations:  len(doc.Valuations),
	}, nil
}

func (s *analyticsService) Analytics(ctx context.Context) (*Analytics, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for analytics", err, nil)
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	byStatus := tally(doc.Properties, func(p models.Property) string { return p.Status })
	byStage := tally(doc.Leads, func(l models.Lead) string { return l.Stage })

	return &Analytics{
		PropertiesByStatus: byStatus,
		LeadsByStage:       byStage,
		AvgDOM:             avgDaysOnMarket,
	}, nil
}

// tally counts records by key in first-seen order, keeping output
// deterministic for a given document.
func tally[T any](items []T, key func(T) string) []Tally {
	index := make(map[string]int, 8)
	out := make([]Tally, 0, 8)
	for _, item := range items {
		k := key(item)
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, Tally{Key: k, Count: 1})
	}
	return out
}
