package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/core/ports"
	"github.com/ewilliams-labs/vibestudio/internal/logger"
)

var catalogLog = logger.For("catalog")

// CatalogService holds the catalog of the active account and persists it
// after every mutation.
type CatalogService struct {
	repo ports.CatalogRepository

	mu        sync.Mutex
	accountID string
	catalog   domain.Catalog
}

// NewCatalogService constructs an unscoped CatalogService holding an empty catalog.
func NewCatalogService(repo ports.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo, catalog: domain.Catalog{}}
}

// LoadFor scopes the service to accountID and loads its snapshot. An empty
// id yields an empty catalog without touching storage.
func (s *CatalogService) LoadFor(ctx context.Context, accountID string) (domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if accountID == "" {
		s.accountID = ""
		s.catalog = domain.Catalog{}
		return domain.Catalog{}, nil
	}

	catalog, err := s.repo.LoadCatalog(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load %s: %w", accountID, err)
	}
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	s.accountID = accountID
	s.catalog = catalog
	catalogLog.Debugf("loaded %d bands for %s", len(catalog), accountID)
	return catalog.Clone(), nil
}

// Save persists a full snapshot for accountID.
func (s *CatalogService) Save(ctx context.Context, accountID string, catalog domain.Catalog) error {
	if err := s.repo.SaveCatalog(ctx, accountID, catalog); err != nil {
		return fmt.Errorf("catalog: failed to save %s: %w", accountID, err)
	}
	return nil
}

// AddBand appends band. Names are not checked for uniqueness.
func (s *CatalogService) AddBand(ctx context.Context, band domain.Band) error {
	return s.apply(ctx, func(c domain.Catalog) (domain.Catalog, error) {
		return c.WithBand(band), nil
	})
}

// AddAlbum appends album to the band identified by bandID.
func (s *CatalogService) AddAlbum(ctx context.Context, bandID string, album domain.Album) error {
	return s.apply(ctx, func(c domain.Catalog) (domain.Catalog, error) {
		return c.WithAlbum(bandID, album)
	})
}

// AddSong appends song to the album identified by (bandID, albumID).
func (s *CatalogService) AddSong(ctx context.Context, bandID, albumID string, song domain.Song) error {
	return s.apply(ctx, func(c domain.Catalog) (domain.Catalog, error) {
		return c.WithSong(bandID, albumID, song)
	})
}

// DeleteBand removes a band and everything it owns. Unknown ids are a no-op.
func (s *CatalogService) DeleteBand(ctx context.Context, bandID string) error {
	return s.apply(ctx, func(c domain.Catalog) (domain.Catalog, error) {
		return c.WithoutBand(bandID), nil
	})
}

// Bands returns a deep copy of the current catalog.
func (s *CatalogService) Bands() domain.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Clone()
}

// apply computes the next snapshot, persists it when scoped, and only then
// makes it current.
func (s *CatalogService) apply(ctx context.Context, mutate func(domain.Catalog) (domain.Catalog, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.catalog)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if s.accountID != "" {
		if err := s.repo.SaveCatalog(ctx, s.accountID, next); err != nil {
			return fmt.Errorf("catalog: failed to save %s: %w", s.accountID, err)
		}
	}
	s.catalog = next
	return nil
}
