package ports

import (
	"context"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
)

// AccountRepository persists the account registry and the active session pointer.
type AccountRepository interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
	// LoadSession returns domain.ErrNotFound when no session is stored.
	LoadSession(ctx context.Context) (domain.Account, error)
	SaveSession(ctx context.Context, account domain.Account) error
	ClearSession(ctx context.Context) error
}

// CatalogRepository persists one catalog snapshot per account.
type CatalogRepository interface {
	// LoadCatalog returns an empty catalog when nothing was saved for accountID.
	LoadCatalog(ctx context.Context, accountID string) (domain.Catalog, error)
	SaveCatalog(ctx context.Context, accountID string, catalog domain.Catalog) error
}

// RecordStore is a flat key/value store holding serialized records.
type RecordStore interface {
	// Get returns domain.ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	Close() error
}
