package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/store"
)

// Collection mutation actions. The set is closed; anything else is
// rejected at the request boundary.
const (
	CollectionActionCreate = "create"
	CollectionActionAdd    = "add"
	CollectionActionRemove = "remove"
)

// Service-level errors
var (
	ErrDuplicateMembership = errors.New("property is already in the collection")
	ErrUnknownAction       = errors.New("unknown collection action")
)

// CollectionListing bundles collections with their membership rows, the
// shape fetch_collections returns.
type CollectionListing struct {
	Collections []models.Collection     `json:"collections"`
	Items       []models.CollectionItem `json:"items"`
}

// CollectionService defines the business logic for property collections.
type CollectionService interface {
	// List returns all collections with their membership pairs.
	List(ctx context.Context) (*CollectionListing, error)

	// Create appends a new collection with a generated id and returns it.
	Create(ctx context.Context, name string) (string, error)

	// Add links a property into a collection. Returns
	// ErrDuplicateMembership when the pair already exists.
	Add(ctx context.Context, collectionID, propertyID string) error

	// Remove unlinks a property from a collection. Removing an absent
	// pair is a no-op.
	Remove(ctx context.Context, collectionID, propertyID string) error
}

type collectionService struct {
	store *store.Store
	log   *logger.Logger
}

// NewCollectionService creates a new instance of CollectionService.
func NewCollectionService(st *store.Store, log *logger.Logger) CollectionService {
	return &collectionService{store: st, log: log}
}

func (s *collectionService) List(ctx context.Context) (*CollectionListing, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for collection list", err, nil)
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return &CollectionListing{
		Collections: doc.Collections,
		Items:       doc.CollectionItems,
	}, nil
}

func (s *collectionService) Create(ctx context.Context, name string) (string, error) {
	id := newID("col")
	err := s.store.Update(ctx, func(doc *models.Document) error {
		doc.Collections = append(doc.Collections, models.Collection{
			ID:     id,
			TeamID: doc.FirstTeamID(),
			Name:   name,
		})
		return nil
	})
	if err != nil {
		s.log.Error("Failed to create collection", err, map[string]interface{}{"name": name})
		return "", fmt.Errorf("failed to create collection: %w", err)
	}

	s.log.Info("Collection created", map[string]interface{}{
		"collection_id": id,
		"name":          name,
	})
	return id, nil
}

func (s *collectionService) Add(ctx context.Context, collectionID, propertyID string) error {
	err := s.store.Update(ctx, func(doc *models.Document) error {
		return doc.AddCollectionItem(collectionID, propertyID)
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateCollectionItem) {
			return fmt.Errorf("%w: (%s, %s)", ErrDuplicateMembership, collectionID, propertyID)
		}
		s.log.Error("Failed to add collection item", err, map[string]interface{}{
			"collection_id": collectionID,
			"property_id":   propertyID,
		})
		return fmt.Errorf("failed to add collection item: %w", err)
	}

	s.log.Info("Collection item added", map[string]interface{}{
		"collection_id": collectionID,
		"property_id":   propertyID,
	})
	return nil
}

func (s *collectionService) Remove(ctx context.Context, collectionID, propertyID string) error {
	err := s.store.Update(ctx, func(doc *models.Document) error {
		doc.RemoveCollectionItem(collectionID, propertyID)
		return nil
	})
	if err != nil {
		s.log.Error("Failed to remove collection item", err, map[string]interface{}{
			"collection_id": collectionID,
			"property_id":   propertyID,
		})
		return fmt.Errorf("failed to remove collection item: %w", err)
	}

	s.log.Info("Collection item removed", map[string]interface{}{
		"collection_id": collectionID,
		"property_id":   propertyID,
	})
	return nil
}
