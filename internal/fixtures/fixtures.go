// Package fixtures builds the seed document used to bootstrap a fresh
// store. Aside from a small lat/lng jitter the output is deterministic.
package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pcabrera/inmo/api/internal/models"
)

const teamID = "team_1"

var (
	districts  = []string{"Eixample", "Gràcia", "Sants-Montjuïc"}
	leadStages = []string{
		models.LeadStageNew,
		models.LeadStageContacted,
		models.LeadStageQualified,
		models.LeadStageOffer,
		models.LeadStageWon,
		models.LeadStageLost,
	}
	leadSources = []string{"web", "idealista", "walk-in"}
	providers   = []struct{ id, name string }{
		{"int_idealista", "Idealista ILC"},
		{"int_fotocasa", "Fotocasa API"},
		{"int_habitaclia", "Habitaclia API"},
	}
)

// Generate produces the seed document: one team with one member, 20
// properties, 3 collections with partial membership, 10 leads, and one of
// each reference record plus 3 integrations and 3 sync jobs covering every
// job state.
func Generate(now time.Time) *models.Document {
	nowStr := now.UTC().Format(time.RFC3339)

	doc := &models.Document{
		Users: []models.User{
			{ID: "user_1", Email: "agent@example.com", Name: "Agent Smith", Role: "admin"},
		},
		Teams: []models.Team{
			{ID: teamID, Name: "Barcelona Realty", Plan: "trial", Country: "ES"},
		},
		TeamMembers: []models.TeamMember{
			{TeamID: teamID, UserID: "user_1", Role: "admin"},
		},
		Collections: []models.Collection{
			{ID: "col_1", TeamID: teamID, Name: "Hot Leads Tour"},
			{ID: "col_2", TeamID: teamID, Name: "Penthouse"},
			{ID: "col_3", TeamID: teamID, Name: "Investments"},
		},
		CollectionItems: []models.CollectionItem{
			{CollectionID: "col_1", PropertyID: "prop_1"},
			{CollectionID: "col_1", PropertyID: "prop_2"},
			{CollectionID: "col_2", PropertyID: "prop_3"},
		},
		Valuations: []models.Valuation{
			{
				ID:         "val_1",
				PropertyID: "prop_1",
				Estimate:   420000,
				Low:        400000,
				High:       440000,
				Factors:    models.Extra{"condition": "good"},
				CreatedAt:  nowStr,
			},
		},
		MapIndexes: []models.MapIndex{
			{ID: "map_1", Country: "ES", Muni: "Barcelona", District: "all", UpdatedAt: nowStr},
		},
		Notifications: []models.Notification{},
		Subplots:      []models.Subplot{},
	}

	doc.Properties = generateProperties(20)
	doc.Leads = generateLeads(10)
	doc.Integrations = generateIntegrations()
	doc.SyncJobs = generateSyncJobs(now)

	return doc
}

func generateProperties(n int) []models.Property {
	properties := make([]models.Property, 0, n)
	for i := 0; i < n; i++ {
		status := models.PropertyStatusActive
		switch i % 3 {
		case 1:
			status = models.PropertyStatusDraft
		case 2:
			status = models.PropertyStatusSold
		}
		saleType := models.SaleTypeSale
		if i%2 == 1 {
			saleType = models.SaleTypeRent
		}
		properties = append(properties, models.Property{
			ID:       fmt.Sprintf("prop_%d", i+1),
			TeamID:   teamID,
			Status:   status,
			SaleType: saleType,
			Price:    float64(250000 + i*10000),
			Address:  fmt.Sprintf("Carrer de Exemple %d, Barcelona", i+1),
			Lat:      41.38 + rand.Float64()*0.05,
			Lng:      2.15 + rand.Float64()*0.05,
			District: districts[i%3],
			BuiltM2:  float64(80 + i*2),
			Beds:     2 + i%3,
			Baths:    1 + i%2,
			Year:     1990 + i%25,
			Features: models.Extra{"elevator": i%2 == 0, "balcony": i%3 == 0},
			Media:    []string{},
		})
	}
	return properties
}

func generateLeads(n int) []models.Lead {
	leads := make([]models.Lead, 0, n)
	for i := 0; i < n; i++ {
		locations := districts[:2]
		notes := ""
		if i%2 == 0 {
			notes = "Looking for balcony"
		}
		leads = append(leads, models.Lead{
			ID:               fmt.Sprintf("lead_%d", i+1),
			TeamID:           teamID,
			Source:           leadSources[i%3],
			Name:             fmt.Sprintf("Lead %d", i+1),
			Contact:          fmt.Sprintf("+34 600 000 %d", 100+i),
			BudgetMin:        200000,
			BudgetMax:        600000,
			DesiredLocations: append([]string(nil), locations[:i%2+1]...),
			Stage:            leadStages[i%6],
			Tags:             []string{"buyer"},
			Notes:            notes,
		})
	}
	return leads
}

func generateIntegrations() []models.Integration {
	integrations := make([]models.Integration, 0, len(providers))
	for _, p := range providers {
		integrations = append(integrations, models.Integration{
			ID:       p.id,
			TeamID:   teamID,
			Provider: p.name,
			Status:   "Not configured",
		})
	}
	return integrations
}

func generateSyncJobs(now time.Time) []models.SyncJob {
	nowStr := now.UTC().Format(time.RFC3339)
	hourAgo := now.Add(-time.Hour).UTC().Format(time.RFC3339)
	twoHoursAgo := now.Add(-2 * time.Hour).UTC().Format(time.RFC3339)
	failedAt := now.Add(-2*time.Hour + 100*time.Second).UTC().Format(time.RFC3339)

	return []models.SyncJob{
		{
			ID:        "job_1",
			TeamID:    teamID,
			Provider:  "Idealista ILC",
			Status:    models.SyncStatusRunning,
			Stats:     models.Extra{"count": 10},
			StartedAt: nowStr,
		},
		{
			ID:         "job_2",
			TeamID:     teamID,
			Provider:   "Fotocasa API",
			Status:     models.SyncStatusSuccess,
			Stats:      models.Extra{"count": 120},
			StartedAt:  hourAgo,
			FinishedAt: &nowStr,
		},
		{
			ID:         "job_3",
			TeamID:     teamID,
			Provider:   "Habitaclia API",
			Status:     models.SyncStatusFailed,
			Stats:      models.Extra{"count": 3},
			StartedAt:  twoHoursAgo,
			FinishedAt: &failedAt,
		},
	}
}
