// Package store owns persistence of the single JSON document that backs
// every request handler. The document is loaded, mutated and saved as one
// aggregate; a Backend decides where the serialized bytes live.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pcabrera/inmo/api/internal/fixtures"
	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/metrics"
	"github.com/pcabrera/inmo/api/internal/models"
)

// Backend persists the serialized document. Load returns (nil, nil) when
// no state has been written yet; the store bootstraps fixtures in that
// case.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Store is the single source of truth for the document. A mutex
// serializes the read-modify-write cycle inside the process; persistence
// across processes stays last-write-wins.
type Store struct {
	mu      sync.Mutex
	backend Backend
	log     *logger.Logger
	now     func() time.Time
}

// New creates a Store on top of the given backend.
func New(backend Backend, log *logger.Logger) *Store {
	return &Store{
		backend: backend,
		log:     log,
		now:     time.Now,
	}
}

// Load returns the current document, bootstrapping the seed fixtures on
// first access.
func (s *Store) Load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Save persists the full document, replacing any prior state.
func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, doc)
}

// Update runs one atomic read-modify-write cycle: the document is loaded,
// handed to fn, and persisted when fn returns nil. An error from fn
// aborts the cycle without writing.
func (s *Store) Update(ctx context.Context, fn func(*models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.saveLocked(ctx, doc)
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Close releases backend resources.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) loadLocked(ctx context.Context) (*models.Document, error) {
	data, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if data == nil {
		doc := fixtures.Generate(s.now())
		if err := s.saveLocked(ctx, doc); err != nil {
			return nil, err
		}
		s.log.Info("Bootstrapped document from fixtures", map[string]interface{}{
			"properties": len(doc.Properties),
			"leads":      len(doc.Leads),
		})
		return doc, nil
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

func (s *Store) saveLocked(ctx context.Context, doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	metrics.StoreSaves.Inc()
	return nil
}
