package services

import (
	"context"
	"sync"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
)

// memRepo is an in-memory AccountRepository and CatalogRepository.
type memRepo struct {
	mu       sync.Mutex
	accounts []domain.Account
	session  *domain.Account
	catalogs map[string]domain.Catalog

	listErr    error
	saveErr    error
	sessionErr error
	catalogErr error
	loadErrs   map[string]error

	catalogSaves int
}

func newMemRepo() *memRepo {
	return &memRepo{catalogs: map[string]domain.Catalog{}}
}

func (m *memRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Account{}, m.accounts...), nil
}

func (m *memRepo) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.accounts = append([]domain.Account{}, accounts...)
	return nil
}

func (m *memRepo) LoadSession(ctx context.Context) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessionErr != nil {
		return domain.Account{}, m.sessionErr
	}
	if m.session == nil {
		return domain.Account{}, domain.ErrNotFound
	}
	return *m.session, nil
}

func (m *memRepo) SaveSession(ctx context.Context, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessionErr != nil {
		return m.sessionErr
	}
	m.session = &account
	return nil
}

func (m *memRepo) ClearSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *memRepo) LoadCatalog(ctx context.Context, accountID string) (domain.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadErrs[accountID]; err != nil {
		return nil, err
	}
	if c, ok := m.catalogs[accountID]; ok {
		return c.Clone(), nil
	}
	return domain.Catalog{}, nil
}

func (m *memRepo) SaveCatalog(ctx context.Context, accountID string, catalog domain.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.catalogErr != nil {
		return m.catalogErr
	}
	m.catalogSaves++
	m.catalogs[accountID] = catalog.Clone()
	return nil
}

// plainAuth compares verbatim.
type plainAuth struct{}

func (plainAuth) Seal(password string) (string, error) { return password, nil }
func (plainAuth) Verify(stored, supplied string) bool  { return stored == supplied }

// mockProvider returns canned suggestions. When block is set, calls wait for
// it to be closed or for the context to end.
type mockProvider struct {
	idea   domain.BandIdea
	titles []string
	err    error
	block  chan struct{}

	mu    sync.Mutex
	calls int
}

func (m *mockProvider) wait(ctx context.Context) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.block == nil {
		return nil
	}
	select {
	case <-m.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *mockProvider) BrainstormBand(ctx context.Context, genre, mood string) (domain.BandIdea, error) {
	if err := m.wait(ctx); err != nil {
		return domain.BandIdea{}, err
	}
	return m.idea, m.err
}

func (m *mockProvider) SuggestTrackNames(ctx context.Context, albumTitle, genre string) ([]string, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.titles, m.err
}
