package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcabrera/inmo/api/internal/models"
)

func TestGenerate_Counts(t *testing.T) {
	doc := Generate(time.Now())

	assert.Len(t, doc.Users, 1)
	assert.Len(t, doc.Teams, 1)
	assert.Len(t, doc.TeamMembers, 1)
	assert.Len(t, doc.Properties, 20)
	assert.Len(t, doc.Collections, 3)
	assert.Len(t, doc.CollectionItems, 3)
	assert.Len(t, doc.Leads, 10)
	assert.Len(t, doc.Valuations, 1)
	assert.Len(t, doc.MapIndexes, 1)
	assert.Len(t, doc.Integrations, 3)
	assert.Len(t, doc.SyncJobs, 3)
	assert.Empty(t, doc.Subplots)
}

func TestGenerate_PropertyCycles(t *testing.T) {
	doc := Generate(time.Now())

	for i, p := range doc.Properties {
		want := models.PropertyStatusActive
		switch i % 3 {
		case 1:
			want = models.PropertyStatusDraft
		case 2:
			want = models.PropertyStatusSold
		}
		assert.Equal(t, want, p.Status, "property %d status", i)

		wantSale := models.SaleTypeSale
		if i%2 == 1 {
			wantSale = models.SaleTypeRent
		}
		assert.Equal(t, wantSale, p.SaleType, "property %d sale_type", i)
		assert.Equal(t, float64(250000+i*10000), p.Price, "property %d price", i)
		assert.Equal(t, "team_1", p.TeamID)
		assert.InDelta(t, 41.405, p.Lat, 0.025, "property %d lat jitter range", i)
		assert.InDelta(t, 2.175, p.Lng, 0.025, "property %d lng jitter range", i)
	}
}

func TestGenerate_UniqueIDs(t *testing.T) {
	doc := Generate(time.Now())

	seen := map[string]bool{}
	for _, p := range doc.Properties {
		require.False(t, seen[p.ID], "duplicate property id %s", p.ID)
		seen[p.ID] = true
	}
	for _, l := range doc.Leads {
		require.False(t, seen[l.ID], "duplicate lead id %s", l.ID)
		seen[l.ID] = true
	}
}

func TestGenerate_LeadCycles(t *testing.T) {
	doc := Generate(time.Now())

	stages := []string{
		models.LeadStageNew, models.LeadStageContacted, models.LeadStageQualified,
		models.LeadStageOffer, models.LeadStageWon, models.LeadStageLost,
	}
	sources := []string{"web", "idealista", "walk-in"}
	for i, l := range doc.Leads {
		assert.Equal(t, stages[i%6], l.Stage, "lead %d stage", i)
		assert.Equal(t, sources[i%3], l.Source, "lead %d source", i)
		assert.NotEmpty(t, l.DesiredLocations)
	}
}

func TestGenerate_SyncJobStates(t *testing.T) {
	doc := Generate(time.Now())

	byStatus := map[string]models.SyncJob{}
	for _, j := range doc.SyncJobs {
		byStatus[j.Status] = j
	}
	require.Len(t, byStatus, 3, "one job per state")

	running := byStatus[models.SyncStatusRunning]
	assert.Nil(t, running.FinishedAt)
	assert.NotNil(t, byStatus[models.SyncStatusSuccess].FinishedAt)
	assert.NotNil(t, byStatus[models.SyncStatusFailed].FinishedAt)
}

func TestGenerate_ReferentialIntegrity(t *testing.T) {
	doc := Generate(time.Now())

	for _, ci := range doc.CollectionItems {
		assert.NotNil(t, doc.FindProperty(ci.PropertyID), "collection item references %s", ci.PropertyID)
	}
	for _, v := range doc.Valuations {
		assert.NotNil(t, doc.FindProperty(v.PropertyID))
		assert.LessOrEqual(t, v.Low, v.Estimate)
		assert.LessOrEqual(t, v.Estimate, v.High)
	}
	for _, p := range doc.Properties {
		assert.Equal(t, doc.Teams[0].ID, p.TeamID)
	}
}
