package handlers

import (
	"github.com/gin-gonic/gin"
)

// API bundles the domain handlers for route registration.
type API struct {
	Portfolio   *PortfolioHandler
	Collections *CollectionHandler
	Leads       *LeadHandler
	Account     *AccountHandler
	Analytics   *AnalyticsHandler
	Valuations  *ValuationHandler
	Geo         *GeoHandler
	Sync        *SyncHandler
}

// Register mounts the operation catalog under /api. Every operation is a
// POST taking and returning JSON.
func (a *API) Register(r gin.IRouter) {
	api := r.Group("/api")

	// User/Org
	api.POST("/fetch_user_data", a.Account.FetchUserData)
	api.POST("/save_user_data", a.Account.SaveUserData)
	api.POST("/get_users_in_team", a.Account.GetUsersInTeam)
	api.POST("/fetch_subscription", a.Account.FetchSubscription)
	api.POST("/fetch_user_notifications", a.Account.FetchUserNotifications)

	// Properties/Collections
	api.POST("/fetch_properties", a.Portfolio.FetchProperties)
	api.POST("/fetch_property", a.Portfolio.FetchProperty)
	api.POST("/save_property", a.Portfolio.SaveProperty)
	api.POST("/fetch_team_portfolio_paginated", a.Portfolio.FetchTeamPortfolioPaginated)
	api.POST("/fetch_collections", a.Collections.FetchCollections)
	api.POST("/save_collection", a.Collections.SaveCollection)

	// Leads
	api.POST("/get_leads", a.Leads.GetLeads)

	// Map/Search
	api.POST("/fetch_map_search_indexes", a.Geo.FetchMapSearchIndexes)
	api.POST("/get_plots_by_bounds", a.Geo.GetPlotsByBounds)
	api.POST("/get_subplots_by_bounds", a.Geo.GetSubplotsByBounds)
	api.POST("/save_subplot_bounds", a.Geo.SaveSubplotBounds)

	// Valuation/Analytics
	api.POST("/get_valuation_conditions", a.Valuations.GetValuationConditions)
	api.POST("/fetch_historical_valuations", a.Valuations.FetchHistoricalValuations)
	api.POST("/get_extra_features_schema", a.Valuations.GetExtraFeaturesSchema)
	api.POST("/fetch_dashboard_analytics", a.Analytics.FetchDashboardAnalytics)
	api.POST("/fetch_analytics", a.Analytics.FetchAnalytics)

	// Integrations/Sync
	api.POST("/fetch_integration_data", a.Sync.FetchIntegrationData)
	api.POST("/active_team_sync_jobs", a.Sync.ActiveTeamSyncJobs)
	api.POST("/run_sync", a.Sync.RunSync)
}
