package search

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// ListingIndex wraps an in-memory Bleve index of listings.
//
// All public methods are safe for concurrent use. Rebuild swaps in a fresh
// index under the write lock.
type ListingIndex struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the listing index.
type Options struct {
	Logger *slog.Logger // uses slog.Default when nil
}

const batchSize = 500

// NewListingIndex creates an empty in-memory index.
func NewListingIndex(opts Options) (*ListingIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &ListingIndex{index: index, logger: logger}, nil
}

// Close releases the index.
func (s *ListingIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexListings adds documents in batches.
func (s *ListingIndex) IndexListings(docs []*ListingDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexBatches(s.index, docs)
}

// Rebuild replaces the whole index with docs.
func (s *ListingIndex) Rebuild(docs []*ListingDocument) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	if err := indexBatches(fresh, docs); err != nil {
		_ = fresh.Close()
		return err
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		s.logger.Warn("failed to close previous listing index", "error", err)
	}
	s.logger.Info("rebuilt listing index", "documents", len(docs))
	return nil
}

// DocumentCount returns the number of indexed listings.
func (s *ListingIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

func indexBatches(index bleve.Index, docs []*ListingDocument) error {
	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))

		batch := index.NewBatch()
		for _, doc := range docs[i:end] {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}
