package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/pagination"
	"github.com/pcabrera/inmo/api/internal/store"
)

func newFixtureStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.NewMemoryBackend(), logger.New("test"))
}

func TestPortfolioService_ListProperties(t *testing.T) {
	s := NewPortfolioService(newFixtureStore(t), logger.New("test"))

	props, err := s.ListProperties(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, props, 20)

	// Every third property starting at index 0 is active.
	for i, p := range props {
		if i%3 == 0 {
			assert.Equal(t, models.PropertyStatusActive, p.Status, "property %d", i)
		}
	}
}

func TestPortfolioService_ListProperties_TeamScope(t *testing.T) {
	s := NewPortfolioService(newFixtureStore(t), logger.New("test"))

	props, err := s.ListProperties(context.Background(), "team_1")
	require.NoError(t, err)
	assert.Len(t, props, 20)

	props, err = s.ListProperties(context.Background(), "team_nope")
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestPortfolioService_GetProperty_AbsentIsNotError(t *testing.T) {
	s := NewPortfolioService(newFixtureStore(t), logger.New("test"))

	p, err := s.GetProperty(context.Background(), "prop_missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPortfolioService_SaveProperty_MergeKeepsCount(t *testing.T) {
	ctx := context.Background()
	st := newFixtureStore(t)
	s := NewPortfolioService(st, logger.New("test"))

	before, err := s.ListProperties(ctx, "")
	require.NoError(t, err)
	target := before[0]

	id, err := s.SaveProperty(ctx, models.Property{ID: target.ID, Price: 999999})
	require.NoError(t, err)
	assert.Equal(t, target.ID, id)

	after, err := s.ListProperties(ctx, "")
	require.NoError(t, err)
	assert.Len(t, after, len(before), "merge must not change count")

	merged, err := s.GetProperty(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(999999), merged.Price)
	assert.Equal(t, target.Address, merged.Address, "unset fields keep stored values")
}

func TestPortfolioService_SaveProperty_NewGetsGeneratedID(t *testing.T) {
	ctx := context.Background()
	s := NewPortfolioService(newFixtureStore(t), logger.New("test"))

	id, err := s.SaveProperty(ctx, models.Property{Address: "Carrer Nou 1", Price: 310000})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "prop_"))

	saved, err := s.GetProperty(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "team_1", saved.TeamID, "new records default to the first team")

	props, err := s.ListProperties(ctx, "")
	require.NoError(t, err)
	assert.Len(t, props, 21)
}

func TestPortfolioService_SaveProperty_UnknownIDGetsFreshID(t *testing.T) {
	ctx := context.Background()
	s := NewPortfolioService(newFixtureStore(t), logger.New("test"))

	id, err := s.SaveProperty(ctx, models.Property{ID: "prop_client_chosen", Address: "Carrer Nou 2", Price: 280000})
	require.NoError(t, err)
	assert.NotEqual(t, "prop_client_chosen", id, "ids on appended records are generated, never taken from the payload")
	assert.True(t, strings.HasPrefix(id, "prop_"))

	props, err := s.ListProperties(ctx, "")
	require.NoError(t, err)
	assert.Len(t, props, 21, "unknown id appends exactly one record")

	missing, err := s.GetProperty(ctx, "prop_client_chosen")
	require.NoError(t, err)
	assert.Nil(t, missing, "the client-chosen id is never stored")
}

func TestPortfolioService_PortfolioPage(t *testing.T) {
	s := NewPortfolioService(newFixtureStore(t), logger.New("test"))

	page, err := s.PortfolioPage(context.Background(), "", pagination.Request{Page: 2, PageSize: 7})
	require.NoError(t, err)
	assert.Equal(t, 20, page.Total)
	assert.Len(t, page.Items, 7)
	assert.Equal(t, "prop_8", page.Items[0].ID)
}

func TestCollectionService_CreateDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := NewCollectionService(newFixtureStore(t), logger.New("test"))

	id1, err := s.Create(ctx, "Open houses")
	require.NoError(t, err)
	id2, err := s.Create(ctx, "Open houses")
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.True(t, strings.HasPrefix(id1, "col_"))

	listing, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listing.Collections, 5)
}

func TestCollectionService_AddRemoveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewCollectionService(newFixtureStore(t), logger.New("test"))

	before, err := s.List(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Add(ctx, "col_1", "prop_19"))
	require.NoError(t, s.Remove(ctx, "col_1", "prop_19"))

	after, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Items, after.Items)
}

func TestCollectionService_AddDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	s := NewCollectionService(newFixtureStore(t), logger.New("test"))

	require.NoError(t, s.Add(ctx, "col_1", "prop_19"))
	err := s.Add(ctx, "col_1", "prop_19")
	assert.ErrorIs(t, err, ErrDuplicateMembership)
}

func TestCollectionService_RemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewCollectionService(newFixtureStore(t), logger.New("test"))

	before, err := s.List(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, "col_1", "prop_never_added"))

	after, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Items, after.Items)
}

func TestLeadService_PageTwoOfFour(t *testing.T) {
	s := NewLeadService(newFixtureStore(t), logger.New("test"))

	page, err := s.LeadsPage(context.Background(), "", pagination.Request{Page: 2, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Total)
	require.Len(t, page.Items, 4)
	assert.Equal(t, "lead_5", page.Items[0].ID)
	assert.Equal(t, "lead_8", page.Items[3].ID)
}

func TestAccountService_CurrentAccount(t *testing.T) {
	s := NewAccountService(newFixtureStore(t), logger.New("test"))

	acc, err := s.CurrentAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user_1", acc.User.ID)
	assert.Equal(t, "team_1", acc.Team.ID)
}

func TestAccountService_SaveUserDataMerges(t *testing.T) {
	ctx := context.Background()
	s := NewAccountService(newFixtureStore(t), logger.New("test"))

	require.NoError(t, s.SaveUserData(ctx, models.User{Name: "Renamed Agent"}))

	acc, err := s.CurrentAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Agent", acc.User.Name)
	assert.NotEmpty(t, acc.User.Email, "unset fields keep stored values")
}

func TestAccountService_Subscription(t *testing.T) {
	s := NewAccountService(newFixtureStore(t), logger.New("test"))

	sub, err := s.Subscription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "trial", sub.Plan)
	assert.Equal(t, 3, sub.DaysLeft)
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	s := NewAnalyticsService(newFixtureStore(t), logger.New("test"))

	counts, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, counts.Leads)
	assert.Equal(t, 20, counts.Properties)
	assert.Equal(t, 3, counts.Collections)
	assert.Equal(t, 3, counts.SyncJobs)
	assert.Equal(t, 1, counts.Valuations)
}

func TestAnalyticsService_Tallies(t *testing.T) {
	s := NewAnalyticsService(newFixtureStore(t), logger.New("test"))

	a, err := s.Analytics(context.Background())
	require.NoError(t, err)

	statusTotal := 0
	for _, tl := range a.PropertiesByStatus {
		statusTotal += tl.Count
	}
	assert.Equal(t, 20, statusTotal)
	assert.Len(t, a.PropertiesByStatus, 3)
	assert.Equal(t, models.PropertyStatusActive, a.PropertiesByStatus[0].Key, "first-seen order")

	stageTotal := 0
	for _, tl := range a.LeadsByStage {
		stageTotal += tl.Count
	}
	assert.Equal(t, 10, stageTotal)
	assert.Equal(t, 42, a.AvgDOM)
}

func TestTally_MarshalsAsEntryPair(t *testing.T) {
	data, err := json.Marshal(Tally{Key: "active", Count: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `["active",7]`, string(data))
}

func TestGeoService_SaveSubplotBounds(t *testing.T) {
	ctx := context.Background()
	s := NewGeoService(newFixtureStore(t), logger.New("test"))

	_, err := s.SaveSubplotBounds(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyPolygon)

	id, err := s.SaveSubplotBounds(ctx, [][]float64{{2.15, 41.39}, {2.16, 41.39}, {2.16, 41.40}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "subplot_"))

	subplots, err := s.SubplotsByBounds(ctx, "team_1")
	require.NoError(t, err)
	require.Len(t, subplots, 1)
	assert.Equal(t, id, subplots[0].ID)
}

func TestGeoService_PlotsByBounds(t *testing.T) {
	s := NewGeoService(newFixtureStore(t), logger.New("test"))

	fc, err := s.PlotsByBounds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.NotEmpty(t, fc.Features)
}

func TestSyncService_RunSyncPrepends(t *testing.T) {
	ctx := context.Background()
	s := NewSyncService(newFixtureStore(t), logger.New("test"))

	id, err := s.RunSync(ctx, "idealista")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "job_"))

	jobs, err := s.Jobs(ctx, "")
	require.NoError(t, err)
	require.Len(t, jobs, 4)

	newest := jobs[0]
	assert.Equal(t, id, newest.ID)
	assert.Equal(t, models.SyncStatusRunning, newest.Status)
	assert.Equal(t, "idealista", newest.Provider)
	assert.Nil(t, newest.FinishedAt)
	assert.NotEmpty(t, newest.StartedAt)
}

func TestSyncService_RepeatedRunSyncAppendsDistinctJobs(t *testing.T) {
	ctx := context.Background()
	s := NewSyncService(newFixtureStore(t), logger.New("test"))

	id1, err := s.RunSync(ctx, "idealista")
	require.NoError(t, err)
	id2, err := s.RunSync(ctx, "idealista")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	jobs, err := s.Jobs(ctx, "")
	require.NoError(t, err)
	assert.Len(t, jobs, 5)
	assert.Equal(t, id2, jobs[0].ID, "newest first")
}
