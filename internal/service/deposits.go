package service

import (
	"context"

	"github.com/minhlp/rental-service/internal/models"
)

// CreateDeposit records a deposit receipt and credits the matched account.
// Bookkeeping is best-effort: an unattributable label or a failed
// adjustment never fails the receipt itself.
func (s *Service) CreateDeposit(ctx context.Context, d *models.Deposit) (*models.Deposit, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedContract(ctx, d.ContractID); err != nil {
		return nil, err
	}
	if d.Kind == "" {
		d.Kind = models.KindThu
	}

	if err := s.repo.CreateDeposit(ctx, d); err != nil {
		return nil, err
	}

	if _, err := s.cashbook.ResolveAndAdjust(ctx, d.AccountLabel, d.SignedAmount(), userID, ScopeOwnerThenAll); err != nil {
		s.log.Warnf("Balance adjustment failed for deposit %d: %v", d.ID, err)
	}

	if s.mailer != nil && s.config.ReportEmail != "" {
		if err := s.mailer.SendDepositReceipt(s.config.ReportEmail, d); err != nil {
			s.log.Warnf("Failed to send deposit receipt for deposit %d: %v", d.ID, err)
		}
	}
	return d, nil
}

// ListDeposits lists a contract's deposit receipts
func (s *Service) ListDeposits(ctx context.Context, contractID int64) ([]models.Deposit, error) {
	if _, err := s.ownedContract(ctx, contractID); err != nil {
		return nil, err
	}
	return s.repo.FindDepositsByContractID(ctx, contractID)
}

// UpdateDeposit rewrites a deposit receipt and re-books the difference.
// The adjustment is a delta, never an overwrite: the old signed amount is
// reversed on the old label and the new one applied on the new label, so
// the receipt is never double counted.
func (s *Service) UpdateDeposit(ctx context.Context, d *models.Deposit) (*models.Deposit, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	old, err := s.repo.FindDepositByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedContract(ctx, old.ContractID); err != nil {
		return nil, err
	}
	d.ContractID = old.ContractID
	if d.Kind == "" {
		d.Kind = old.Kind
	}

	if err := s.repo.UpdateDeposit(ctx, d); err != nil {
		return nil, err
	}

	if old.AccountLabel == d.AccountLabel {
		delta := d.SignedAmount().Sub(old.SignedAmount())
		if !delta.IsZero() {
			if _, err := s.cashbook.ResolveAndAdjust(ctx, d.AccountLabel, delta, userID, ScopeOwnerThenAll); err != nil {
				s.log.Warnf("Balance adjustment failed for deposit %d: %v", d.ID, err)
			}
		}
	} else {
		if _, err := s.cashbook.ResolveAndAdjust(ctx, old.AccountLabel, old.SignedAmount().Neg(), userID, ScopeOwnerThenAll); err != nil {
			s.log.Warnf("Balance reversal failed for deposit %d: %v", d.ID, err)
		}
		if _, err := s.cashbook.ResolveAndAdjust(ctx, d.AccountLabel, d.SignedAmount(), userID, ScopeOwnerThenAll); err != nil {
			s.log.Warnf("Balance adjustment failed for deposit %d: %v", d.ID, err)
		}
	}
	return d, nil
}

// DeleteDeposit removes a deposit receipt and reverses its booking
func (s *Service) DeleteDeposit(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	old, err := s.repo.FindDepositByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedContract(ctx, old.ContractID); err != nil {
		return err
	}

	if err := s.repo.DeleteDeposit(ctx, id); err != nil {
		return err
	}

	if _, err := s.cashbook.ResolveAndAdjust(ctx, old.AccountLabel, old.SignedAmount().Neg(), userID, ScopeOwnerThenAll); err != nil {
		s.log.Warnf("Balance reversal failed for deposit %d: %v", id, err)
	}
	return nil
}
