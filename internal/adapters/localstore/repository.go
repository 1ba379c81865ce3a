// Package localstore lays out accounts, the session pointer and per-account
// catalogs as JSON records in a ports.RecordStore.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/core/ports"
)

const (
	SessionKey       = "vibe_studio_session"
	AccountsKey      = "vibe_studio_accounts"
	catalogKeyPrefix = "vibe_studio_data_"
)

// CatalogKey is the record key holding the catalog of accountID.
func CatalogKey(accountID string) string {
	return catalogKeyPrefix + accountID
}

type Repository struct {
	records ports.RecordStore
}

var (
	_ ports.AccountRepository = (*Repository)(nil)
	_ ports.CatalogRepository = (*Repository)(nil)
)

func NewRepository(records ports.RecordStore) *Repository {
	return &Repository{records: records}
}

func (r *Repository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	found, err := r.load(ctx, AccountsKey, &accounts)
	if err != nil {
		return nil, err
	}
	if !found || accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (r *Repository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return r.store(ctx, AccountsKey, accounts)
}

func (r *Repository) LoadSession(ctx context.Context) (domain.Account, error) {
	var account domain.Account
	found, err := r.load(ctx, SessionKey, &account)
	if err != nil {
		return domain.Account{}, err
	}
	if !found || account.ID == "" {
		return domain.Account{}, domain.ErrNotFound
	}
	return account, nil
}

func (r *Repository) SaveSession(ctx context.Context, account domain.Account) error {
	return r.store(ctx, SessionKey, account)
}

func (r *Repository) ClearSession(ctx context.Context) error {
	if err := r.records.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("localstore: clear session: %w", err)
	}
	return nil
}

func (r *Repository) LoadCatalog(ctx context.Context, accountID string) (domain.Catalog, error) {
	var catalog domain.Catalog
	found, err := r.load(ctx, CatalogKey(accountID), &catalog)
	if err != nil {
		return nil, err
	}
	if !found || catalog == nil {
		return domain.Catalog{}, nil
	}
	return catalog, nil
}

func (r *Repository) SaveCatalog(ctx context.Context, accountID string, catalog domain.Catalog) error {
	if accountID == "" {
		return fmt.Errorf("localstore: save catalog: %w", domain.ErrMissingField)
	}
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	return r.store(ctx, CatalogKey(accountID), catalog)
}

func (r *Repository) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.records.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("localstore: read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("localstore: decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Repository) store(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: encode %s: %w", key, err)
	}
	if err := r.records.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	return nil
}
