package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minhlp/rental-service/internal/models"
)

// CreateTransaction records a thu/chi entry and books its net amount to
// the matched account.
func (s *Service) CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if txn.Kind != models.KindThu && txn.Kind != models.KindChi {
		return nil, fmt.Errorf("invalid transaction kind: %s", txn.Kind)
	}
	txn.UserID = userID

	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	if _, err := s.cashbook.ResolveAndAdjust(ctx, txn.AccountLabel, txn.SignedTotal(), userID, ScopeOwnerThenAll); err != nil {
		s.log.Warnf("Balance adjustment failed for transaction %d: %v", txn.ID, err)
	}
	return txn, nil
}

// ListTransactions lists the authenticated user's entries within a range
func (s *Service) ListTransactions(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.FindTransactionsInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var own []models.Transaction
	for _, txn := range all {
		if txn.UserID == userID {
			own = append(own, txn)
		}
	}
	return own, nil
}

// UpdateTransaction rewrites an entry and re-books the difference. As with
// deposits the adjustment is the delta between the new and old signed
// totals, reversing on the old label first when the label changed.
func (s *Service) UpdateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if txn.Kind != models.KindThu && txn.Kind != models.KindChi {
		return nil, fmt.Errorf("invalid transaction kind: %s", txn.Kind)
	}
	old, err := s.repo.FindTransactionByID(ctx, txn.ID)
	if err != nil {
		return nil, err
	}
	if old.UserID != userID {
		return nil, ErrForbidden
	}
	txn.UserID = userID

	if err := s.repo.UpdateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	if old.AccountLabel == txn.AccountLabel {
		delta := txn.SignedTotal().Sub(old.SignedTotal())
		if !delta.IsZero() {
			if _, err := s.cashbook.ResolveAndAdjust(ctx, txn.AccountLabel, delta, userID, ScopeOwnerThenAll); err != nil {
				s.log.Warnf("Balance adjustment failed for transaction %d: %v", txn.ID, err)
			}
		}
	} else {
		if _, err := s.cashbook.ResolveAndAdjust(ctx, old.AccountLabel, old.SignedTotal().Neg(), userID, ScopeOwnerThenAll); err != nil {
			s.log.Warnf("Balance reversal failed for transaction %d: %v", txn.ID, err)
		}
		if _, err := s.cashbook.ResolveAndAdjust(ctx, txn.AccountLabel, txn.SignedTotal(), userID, ScopeOwnerThenAll); err != nil {
			s.log.Warnf("Balance adjustment failed for transaction %d: %v", txn.ID, err)
		}
	}
	return txn, nil
}

// DeleteTransaction removes an entry and reverses its booking
func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	old, err := s.repo.FindTransactionByID(ctx, id)
	if err != nil {
		return err
	}
	if old.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	if _, err := s.cashbook.ResolveAndAdjust(ctx, old.AccountLabel, old.SignedTotal().Neg(), userID, ScopeOwnerThenAll); err != nil {
		s.log.Warnf("Balance reversal failed for transaction %d: %v", id, err)
	}
	return nil
}
