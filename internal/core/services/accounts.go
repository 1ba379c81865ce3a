package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/core/ports"
	"github.com/ewilliams-labs/vibestudio/internal/logger"
)

var accountLog = logger.For("accounts")

// AccountService owns the account registry and the active session.
type AccountService struct {
	repo ports.AccountRepository
	auth ports.Authenticator

	mu      sync.Mutex
	current *domain.Account
}

// NewAccountService constructs an AccountService.
func NewAccountService(repo ports.AccountRepository, auth ports.Authenticator) *AccountService {
	return &AccountService{repo: repo, auth: auth}
}

// RegisterOrLogin logs into an existing account or creates one on first use.
// Usernames are compared case-insensitively.
func (s *AccountService) RegisterOrLogin(ctx context.Context, username, password string) (domain.Account, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.Account{}, fmt.Errorf("accounts: %w", domain.ErrMissingField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("accounts: failed to load registry: %w", err)
	}

	if existing, ok := domain.FindAccount(accounts, username); ok {
		if !s.auth.Verify(existing.Password, password) {
			accountLog.Infof("wrong password for %s", existing.Username)
			return domain.Account{}, fmt.Errorf("accounts: %w", domain.ErrWrongPassword)
		}
		if err := s.repo.SaveSession(ctx, existing); err != nil {
			return domain.Account{}, fmt.Errorf("accounts: failed to save session: %w", err)
		}
		s.current = &existing
		return existing, nil
	}

	sealed, err := s.auth.Seal(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("accounts: failed to seal password: %w", err)
	}
	account := domain.Account{
		ID:       domain.NewAccountID(),
		Username: username,
		Password: sealed,
	}
	next := append(append([]domain.Account{}, accounts...), account)
	if err := s.repo.SaveAccounts(ctx, next); err != nil {
		return domain.Account{}, fmt.Errorf("accounts: failed to save registry: %w", err)
	}
	if err := s.repo.SaveSession(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("accounts: failed to save session: %w", err)
	}
	accountLog.Infof("registered %s", account.Username)
	s.current = &account
	return account, nil
}

// Logout clears the session pointer. The registry is untouched.
func (s *AccountService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("accounts: failed to clear session: %w", err)
	}
	s.current = nil
	return nil
}

// Restore reads the persisted session, if any, and makes it current.
func (s *AccountService) Restore(ctx context.Context) (domain.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.repo.LoadSession(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		s.current = nil
		return domain.Account{}, false, nil
	}
	if err != nil {
		return domain.Account{}, false, fmt.Errorf("accounts: failed to restore session: %w", err)
	}
	s.current = &account
	return account, true, nil
}

// Current returns the logged-in account.
func (s *AccountService) Current() (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.Account{}, false
	}
	return *s.current, true
}
