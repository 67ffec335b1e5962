package models

import (
	"errors"
	"fmt"
)

// Document-level errors returned by mutation helpers.
var (
	ErrDuplicateCollectionItem = errors.New("collection item already exists")
	ErrJobNotRunning           = errors.New("sync job is not running")
	ErrInvalidJobStatus        = errors.New("invalid terminal sync job status")
)

// Document is the whole database: one ordered sequence per entity kind,
// persisted and replaced as a single JSON aggregate.
type Document struct {
	Users           []User           `json:"users"`
	Teams           []Team           `json:"teams"`
	TeamMembers     []TeamMember     `json:"team_members"`
	Properties      []Property       `json:"properties"`
	Collections     []Collection     `json:"collections"`
	CollectionItems []CollectionItem `json:"collection_items"`
	Leads           []Lead           `json:"leads"`
	Valuations      []Valuation      `json:"valuations"`
	MapIndexes      []MapIndex       `json:"map_indexes"`
	Notifications   []Notification   `json:"notifications"`
	Integrations    []Integration    `json:"integrations"`
	SyncJobs        []SyncJob        `json:"sync_jobs"`
	Subplots        []Subplot        `json:"subplots"`
}

// FindProperty returns the first property with the given id, or nil.
func (d *Document) FindProperty(id string) *Property {
	for i := range d.Properties {
		if d.Properties[i].ID == id {
			return &d.Properties[i]
		}
	}
	return nil
}

// MergeProperty merges the incoming record into the stored property with
// the same id. The merge is a shallow overwrite: set (non-zero) incoming
// fields replace stored ones, everything else is kept. Returns false when
// no stored property matches, leaving the document untouched; the caller
// decides how to append (ids on appended records are assigned by the
// service, never taken from the payload).
func (d *Document) MergeProperty(in Property) bool {
	if in.ID == "" {
		return false
	}
	existing := d.FindProperty(in.ID)
	if existing == nil {
		return false
	}
	mergeProperty(existing, in)
	return true
}

// AppendProperty appends a new property record, defaulting the media list.
func (d *Document) AppendProperty(in Property) {
	if in.Media == nil {
		in.Media = []string{}
	}
	d.Properties = append(d.Properties, in)
}

func mergeProperty(dst *Property, in Property) {
	if in.TeamID != "" {
		dst.TeamID = in.TeamID
	}
	if in.Status != "" {
		dst.Status = in.Status
	}
	if in.SaleType != "" {
		dst.SaleType = in.SaleType
	}
	if in.Price != 0 {
		dst.Price = in.Price
	}
	if in.Address != "" {
		dst.Address = in.Address
	}
	if in.Lat != 0 {
		dst.Lat = in.Lat
	}
	if in.Lng != 0 {
		dst.Lng = in.Lng
	}
	if in.District != "" {
		dst.District = in.District
	}
	if in.BuiltM2 != 0 {
		dst.BuiltM2 = in.BuiltM2
	}
	if in.PlotM2 != 0 {
		dst.PlotM2 = in.PlotM2
	}
	if in.Beds != 0 {
		dst.Beds = in.Beds
	}
	if in.Baths != 0 {
		dst.Baths = in.Baths
	}
	if in.Year != 0 {
		dst.Year = in.Year
	}
	if in.Features != nil {
		dst.Features = in.Features
	}
	if in.Media != nil {
		dst.Media = in.Media
	}
}

// HasCollectionItem reports whether the exact (collection, property) pair
// is already present.
func (d *Document) HasCollectionItem(collectionID, propertyID string) bool {
	for _, ci := range d.CollectionItems {
		if ci.CollectionID == collectionID && ci.PropertyID == propertyID {
			return true
		}
	}
	return false
}

// AddCollectionItem appends a membership pair, enforcing pair uniqueness.
func (d *Document) AddCollectionItem(collectionID, propertyID string) error {
	if d.HasCollectionItem(collectionID, propertyID) {
		return fmt.Errorf("%w: (%s, %s)", ErrDuplicateCollectionItem, collectionID, propertyID)
	}
	d.CollectionItems = append(d.CollectionItems, CollectionItem{
		CollectionID: collectionID,
		PropertyID:   propertyID,
	})
	return nil
}

// RemoveCollectionItem filters out the exact pair. Removing an absent pair
// is a no-op, mirroring list-filter semantics.
func (d *Document) RemoveCollectionItem(collectionID, propertyID string) {
	kept := d.CollectionItems[:0]
	for _, ci := range d.CollectionItems {
		if ci.CollectionID == collectionID && ci.PropertyID == propertyID {
			continue
		}
		kept = append(kept, ci)
	}
	d.CollectionItems = kept
}

// PrependSyncJob inserts a job at the front of the sequence, newest first.
func (d *Document) PrependSyncJob(job SyncJob) {
	d.SyncJobs = append([]SyncJob{job}, d.SyncJobs...)
}

// CompleteSyncJob moves a running job to a terminal state and stamps
// finished_at. The transition is monotonic: a job leaves running exactly
// once and terminal jobs are never touched again.
func (d *Document) CompleteSyncJob(id, status, finishedAt string, stats Extra) error {
	if status != SyncStatusSuccess && status != SyncStatusFailed {
		return fmt.Errorf("%w: %q", ErrInvalidJobStatus, status)
	}
	for i := range d.SyncJobs {
		if d.SyncJobs[i].ID != id {
			continue
		}
		if d.SyncJobs[i].Status != SyncStatusRunning {
			return fmt.Errorf("%w: %s is %s", ErrJobNotRunning, id, d.SyncJobs[i].Status)
		}
		d.SyncJobs[i].Status = status
		d.SyncJobs[i].FinishedAt = &finishedAt
		if stats != nil {
			d.SyncJobs[i].Stats = stats
		}
		return nil
	}
	return fmt.Errorf("%w: %s not found", ErrJobNotRunning, id)
}

// FirstTeamID returns the id of the first team, the default scope for
// operations that do not carry an explicit team. Empty when the document
// has no teams.
func (d *Document) FirstTeamID() string {
	if len(d.Teams) == 0 {
		return ""
	}
	return d.Teams[0].ID
}
