package models

// Extra is an open extension map carried by records whose contents the
// backend stores but does not interpret (property features, valuation
// factors, sync stats, notification payloads).
type Extra map[string]any

// Property status values.
const (
	PropertyStatusActive = "active"
	PropertyStatusDraft  = "draft"
	PropertyStatusSold   = "sold"
)

// Sale types.
const (
	SaleTypeSale = "sale"
	SaleTypeRent = "rent"
)

// Lead pipeline stages.
const (
	LeadStageNew       = "new"
	LeadStageContacted = "contacted"
	LeadStageQualified = "qualified"
	LeadStageOffer     = "offer"
	LeadStageWon       = "won"
	LeadStageLost      = "lost"
)

// Sync job states. A job is created running and moves to exactly one of
// the terminal states.
const (
	SyncStatusRunning = "running"
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// User is an account holder. Users belong to teams through TeamMember rows.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Team is the tenant unit; every domain record hangs off a team.
type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Plan    string `json:"plan,omitempty"`
	Country string `json:"country,omitempty"`
}

// TeamMember joins a user to a team with a role. The (team_id, user_id)
// pair is unique.
type TeamMember struct {
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Property is a listing owned by a team.
type Property struct {
	ID       string   `json:"id"`
	TeamID   string   `json:"team_id"`
	Status   string   `json:"status"`
	SaleType string   `json:"sale_type"`
	Price    float64  `json:"price"`
	Address  string   `json:"address"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	District string   `json:"district"`
	BuiltM2  float64  `json:"built_m2,omitempty"`
	PlotM2   float64  `json:"plot_m2,omitempty"`
	Beds     int      `json:"beds,omitempty"`
	Baths    int      `json:"baths,omitempty"`
	Year     int      `json:"year,omitempty"`
	Features Extra    `json:"features_json,omitempty"`
	Media    []string `json:"media"`
}

// Collection is a named grouping of properties (e.g. a viewing tour).
type Collection struct {
	ID     string `json:"id"`
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

// CollectionItem links a property into a collection. Pairs are unique;
// both sides should exist but the store does not hard-enforce it on
// removal of the referenced records.
type CollectionItem struct {
	CollectionID string `json:"collection_id"`
	PropertyID   string `json:"property_id"`
}

// Lead is a prospective buyer or renter in the pipeline.
type Lead struct {
	ID               string   `json:"id"`
	TeamID           string   `json:"team_id"`
	Source           string   `json:"source,omitempty"`
	Name             string   `json:"name"`
	Contact          string   `json:"contact"`
	BudgetMin        float64  `json:"budget_min,omitempty"`
	BudgetMax        float64  `json:"budget_max,omitempty"`
	DesiredLocations []string `json:"desired_locations"`
	Stage            string   `json:"stage"`
	Tags             []string `json:"tags"`
	Notes            string   `json:"notes,omitempty"`
}

// Valuation is a point-in-time estimate for a property. Low <= Estimate
// <= High is expected of well-formed records.
type Valuation struct {
	ID         string  `json:"id"`
	PropertyID string  `json:"property_id"`
	Estimate   float64 `json:"estimate"`
	Low        float64 `json:"low"`
	High       float64 `json:"high"`
	Factors    Extra   `json:"factors_json,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// MapIndex is reference metadata for a searchable geographic dataset.
type MapIndex struct {
	ID         string `json:"id"`
	Country    string `json:"country"`
	Muni       string `json:"muni"`
	District   string `json:"district"`
	DatasetURL string `json:"dataset_url,omitempty"`
	UpdatedAt  string `json:"updated_at"`
}

// Notification is an in-app message addressed to a user.
type Notification struct {
	ID      string  `json:"id"`
	UserID  string  `json:"user_id"`
	Type    string  `json:"type"`
	Payload Extra   `json:"payload_json,omitempty"`
	ReadAt  *string `json:"read_at"`
}

// Integration is a configured (or not) connection to an external listing
// provider. Providers are modeled by name and status only.
type Integration struct {
	ID          string  `json:"id"`
	TeamID      string  `json:"team_id"`
	Provider    string  `json:"provider"`
	Status      string  `json:"status"`
	CredsMasked string  `json:"creds_masked,omitempty"`
	LastSyncAt  *string `json:"last_sync_at,omitempty"`
}

// SyncJob tracks one provider sync run. FinishedAt is nil exactly while
// the job is running.
type SyncJob struct {
	ID         string  `json:"id"`
	TeamID     string  `json:"team_id"`
	Provider   string  `json:"provider"`
	Status     string  `json:"status"`
	Stats      Extra   `json:"stats_json,omitempty"`
	StartedAt  string  `json:"started_at"`
	FinishedAt *string `json:"finished_at"`
}

// Subplot is a user-drawn polygon over the map, stored as an ordered list
// of [lng, lat] pairs. Persisted subplots have a non-empty polygon.
type Subplot struct {
	ID      string      `json:"id"`
	TeamID  string      `json:"team_id"`
	Polygon [][]float64 `json:"polygon"`
}
