package service

import (
	"context"
	"fmt"

	"github.com/minhlp/rental-service/internal/models"
	"github.com/shopspring/decimal"
)

// ResolveAndAdjust attributes a free-text label to an account and applies
// a delta to its cached balance. A cash-indicating label with no existing
// cash account synthesizes one for the owner first.
//
// An unmatched label is not an error: the adjustment is skipped, a warning
// is logged and (nil, nil) comes back. The cached balance is best-effort
// bookkeeping; callers needing exact figures go through Project, which
// works off the raw entries. Callers state via scope whether resolution
// may fall back to scanning all accounts when the owner's own accounts
// yield nothing.
func (s *CashbookService) ResolveAndAdjust(ctx context.Context, label string, delta decimal.Decimal, ownerID int64, scope MatchScope) (*models.BankAccount, error) {
	candidates, err := s.accounts.FindAccountsByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	res := ResolveLabel(label, candidates)
	if res.Account == nil && !res.CreateCash && scope == ScopeOwnerThenAll {
		all, err := s.accounts.FindAllAccounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load accounts: %w", err)
		}
		res = ResolveLabel(label, all)
	}

	if res.CreateCash {
		account, err := s.createCashAccount(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		res.Account = account
	}

	if res.Account == nil {
		s.log.Warnf("No account matched label %q for owner %d, balance adjustment skipped", label, ownerID)
		return nil, nil
	}

	updated, err := s.accounts.AdjustBalance(ctx, res.Account.ID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance of account %d: %w", res.Account.ID, err)
	}
	s.log.Infof("Adjusted balance of account %d by %s (label %q)", updated.ID, delta.String(), label)
	return updated, nil
}

// createCashAccount synthesizes the owner's cash account: fixed account
// number, zero starting balance, never the default.
func (s *CashbookService) createCashAccount(ctx context.Context, ownerID int64) (*models.BankAccount, error) {
	account := &models.BankAccount{
		UserID:        ownerID,
		HolderName:    "Tiền mặt",
		AccountNumber: models.CashAccountNumber,
		BankName:      "Tiền mặt",
		IsDefault:     false,
		Balance:       decimal.Zero,
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create cash account for owner %d: %w", ownerID, err)
	}
	s.log.Infof("Created cash account %d for owner %d", account.ID, ownerID)
	return account, nil
}
