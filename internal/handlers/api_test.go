package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/middleware"
	"github.com/pcabrera/inmo/api/internal/services"
	"github.com/pcabrera/inmo/api/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()

	log := logger.New("test")
	st := store.New(store.NewMemoryBackend(), log)

	api := &API{
		Portfolio:   NewPortfolioHandler(services.NewPortfolioService(st, log)),
		Collections: NewCollectionHandler(services.NewCollectionService(st, log)),
		Leads:       NewLeadHandler(services.NewLeadService(st, log)),
		Account:     NewAccountHandler(services.NewAccountService(st, log)),
		Analytics:   NewAnalyticsHandler(services.NewAnalyticsService(st, log)),
		Valuations:  NewValuationHandler(services.NewValuationService(st, log)),
		Geo:         NewGeoHandler(services.NewGeoService(st, log)),
		Sync:        NewSyncHandler(services.NewSyncService(st, log)),
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	api.Register(router)
	return router, st
}

func doPost(t *testing.T, router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestFetchProperties_FreshStore(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_properties", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	properties := body["properties"].([]any)
	require.Len(t, properties, 20)

	for i, raw := range properties {
		p := raw.(map[string]any)
		if i%3 == 0 {
			assert.Equal(t, "active", p["status"], "property %d", i)
		}
	}
}

func TestFetchProperty_MissingReturnsNull(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_property", `{"id":"prop_nope"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"property":null}`, w.Body.String())
}

func TestFetchProperty_MissingIDFailsValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_property", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestSaveProperty_UpsertByID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/save_property", `{"id":"prop_1","price":777777}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "prop_1", body["id"])

	w = doPost(t, router, "/api/fetch_property", `{"id":"prop_1"}`)
	got := decode(t, w)["property"].(map[string]any)
	assert.Equal(t, float64(777777), got["price"])
	assert.NotEmpty(t, got["address"], "merge keeps unset fields")

	w = doPost(t, router, "/api/fetch_properties", "")
	assert.Len(t, decode(t, w)["properties"].([]any), 20, "upsert by id never changes count")
}

func TestSaveProperty_NewAppendsWithGeneratedID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/save_property", `{"address":"Carrer Nou 5","price":300000}`)
	require.Equal(t, http.StatusOK, w.Code)

	id, _ := decode(t, w)["id"].(string)
	assert.True(t, strings.HasPrefix(id, "prop_"))

	w = doPost(t, router, "/api/fetch_properties", "")
	assert.Len(t, decode(t, w)["properties"].([]any), 21)
}

func TestSaveProperty_UnknownIDReplacedWithGeneratedID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/save_property", `{"id":"prop_client_chosen","address":"Carrer Nou 9","price":280000}`)
	require.Equal(t, http.StatusOK, w.Code)

	id, _ := decode(t, w)["id"].(string)
	assert.True(t, strings.HasPrefix(id, "prop_"))
	assert.NotEqual(t, "prop_client_chosen", id)

	w = doPost(t, router, "/api/fetch_property", `{"id":"prop_client_chosen"}`)
	assert.JSONEq(t, `{"property":null}`, w.Body.String())

	w = doPost(t, router, "/api/fetch_properties", "")
	assert.Len(t, decode(t, w)["properties"].([]any), 21)
}

func TestFetchTeamPortfolioPaginated_Defaults(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_team_portfolio_paginated", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(10), body["pageSize"])
	assert.Equal(t, float64(20), body["total"])
	assert.Len(t, body["items"].([]any), 10)
}

func TestFetchTeamPortfolioPaginated_OutOfRange(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_team_portfolio_paginated", `{"page":9,"pageSize":10}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(20), body["total"])
	assert.Empty(t, body["items"])
}

func TestGetLeads_PageTwoOfFour(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/get_leads", `{"page":2,"pageSize":4}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(10), body["total"])
	items := body["items"].([]any)
	require.Len(t, items, 4)
	assert.Equal(t, "lead_5", items[0].(map[string]any)["id"])
	assert.Equal(t, "lead_8", items[3].(map[string]any)["id"])
}

func TestSaveCollection_CreateDistinctIDs(t *testing.T) {
	router, _ := newTestRouter(t)

	w1 := doPost(t, router, "/api/save_collection", `{"action":"create","name":"Dupes"}`)
	require.Equal(t, http.StatusOK, w1.Code)
	w2 := doPost(t, router, "/api/save_collection", `{"action":"create","name":"Dupes"}`)
	require.Equal(t, http.StatusOK, w2.Code)

	id1, _ := decode(t, w1)["id"].(string)
	id2, _ := decode(t, w2)["id"].(string)
	assert.True(t, strings.HasPrefix(id1, "col_"))
	assert.NotEqual(t, id1, id2)
}

func TestSaveCollection_AddRemoveRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	before := doPost(t, router, "/api/fetch_collections", "").Body.String()

	w := doPost(t, router, "/api/save_collection", `{"action":"add","collection_id":"col_2","property_id":"prop_10"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doPost(t, router, "/api/save_collection", `{"action":"remove","collection_id":"col_2","property_id":"prop_10"}`)
	require.Equal(t, http.StatusOK, w.Code)

	after := doPost(t, router, "/api/fetch_collections", "").Body.String()
	assert.JSONEq(t, before, after)
}

func TestSaveCollection_DuplicateAddRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/save_collection", `{"action":"add","collection_id":"col_2","property_id":"prop_10"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doPost(t, router, "/api/save_collection", `{"action":"add","collection_id":"col_2","property_id":"prop_10"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	errObj := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "BAD_REQUEST", errObj["code"])
}

func TestSaveCollection_UnknownActionRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/save_collection", `{"action":"destroy","collection_id":"col_1","property_id":"prop_1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	errObj := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestSaveCollection_CreateRequiresName(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/save_collection", `{"action":"create"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunSync_PrependsRunningJob(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/run_sync", `{"provider":"Idealista ILC"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["ok"])

	w = doPost(t, router, "/api/active_team_sync_jobs", "")
	require.Equal(t, http.StatusOK, w.Code)

	jobs := decode(t, w)["jobs"].([]any)
	require.Len(t, jobs, 4)

	newest := jobs[0].(map[string]any)
	assert.Equal(t, "running", newest["status"])
	assert.Equal(t, "Idealista ILC", newest["provider"])
	assert.Nil(t, newest["finished_at"])
	assert.NotEmpty(t, newest["started_at"])
}

func TestRunSync_RequiresProvider(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/run_sync", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFetchUserData(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_user_data", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	user := body["user"].(map[string]any)
	team := body["team"].(map[string]any)
	assert.Equal(t, "user_1", user["id"])
	assert.Equal(t, "team_1", team["id"])
}

func TestSaveUserData_Merges(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/save_user_data", `{"name":"New Name"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doPost(t, router, "/api/fetch_user_data", "")
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "New Name", user["name"])
	assert.Equal(t, "agent@example.com", user["email"])
}

func TestGetUsersInTeam(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/get_users_in_team", `{"team_id":"team_1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"].([]any), 1)
}

func TestFetchSubscription(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_subscription", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"plan":"trial","days_left":3}`, w.Body.String())
}

func TestFetchUserNotifications(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_user_notifications", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	_, ok := body["notifications"]
	assert.True(t, ok)
}

func TestFetchDashboardAnalytics(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_dashboard_analytics", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(10), body["leads"])
	assert.Equal(t, float64(20), body["properties"])
	assert.Equal(t, float64(3), body["collections"])
	assert.Equal(t, float64(3), body["syncJobs"])
	assert.Equal(t, float64(1), body["valuations"])
}

func TestFetchAnalytics_EntryPairs(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_analytics", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(42), body["avgDom"])

	byStatus := body["propertiesByStatus"].([]any)
	require.NotEmpty(t, byStatus)
	first := byStatus[0].([]any)
	require.Len(t, first, 2, "tallies serialize as [key, count] pairs")
	assert.Equal(t, "active", first[0])
}

func TestGetValuationConditions(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/get_valuation_conditions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"conditions":{"bathrooms_weight":1.1,"bedrooms_weight":1.3,"m2_weight":1.5}}`,
		w.Body.String())
}

func TestFetchHistoricalValuations(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_historical_valuations", "")
	require.Equal(t, http.StatusOK, w.Code)

	series := decode(t, w)["series"].([]any)
	require.Len(t, series, 3)
	first := series[0].(map[string]any)
	assert.Equal(t, "2024-01-01", first["date"])
}

func TestGetExtraFeaturesSchema(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/get_extra_features_schema", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"schema":{"elevator":"boolean","balcony":"boolean","energy_label":"string"}}`,
		w.Body.String())
}

func TestFetchMapSearchIndexes(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_map_search_indexes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["indexes"].([]any), 1)
}

func TestGetPlotsByBounds_ReturnsGeoJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/get_plots_by_bounds", `{"bounds":{"south":41.3,"west":2.1,"north":41.5,"east":2.3}}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "FeatureCollection", body["type"])
	assert.NotEmpty(t, body["features"])
}

func TestSubplots_SaveAndList(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/get_subplots_by_bounds", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["subplots"])

	w = doPost(t, router, "/api/save_subplot_bounds", `{"polygon":[[2.15,41.39],[2.16,41.39],[2.16,41.40]]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["ok"])

	w = doPost(t, router, "/api/get_subplots_by_bounds", "")
	subplots := decode(t, w)["subplots"].([]any)
	require.Len(t, subplots, 1)
	sp := subplots[0].(map[string]any)
	assert.Equal(t, "team_1", sp["team_id"])
}

func TestSaveSubplotBounds_EmptyPolygonRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/save_subplot_bounds", `{"polygon":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFetchIntegrationData(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/fetch_integration_data", "")
	require.Equal(t, http.StatusOK, w.Code)

	integrations := decode(t, w)["integrations"].([]any)
	require.Len(t, integrations, 3)
	for _, raw := range integrations {
		assert.Equal(t, "Not configured", raw.(map[string]any)["status"])
	}
}

func TestInvalidBodyIsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doPost(t, router, "/api/save_property", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	errObj := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "BAD_REQUEST", errObj["code"])
}
