package service

import (
	"context"
	"time"

	"github.com/minhlp/rental-service/internal/models"
)

// CreateBankAccount creates a bank account for the authenticated user
func (s *Service) CreateBankAccount(ctx context.Context, account *models.BankAccount) (*models.BankAccount, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	account.UserID = userID

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	s.log.Infof("Bank account created for user %d: %s %s", userID, account.BankName, account.AccountNumber)
	return account, nil
}

// ListBankAccounts lists the authenticated user's accounts
func (s *Service) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindAccountsByUserID(ctx, userID)
}

// UpdateBankAccount updates one of the authenticated user's accounts
func (s *Service) UpdateBankAccount(ctx context.Context, account *models.BankAccount) (*models.BankAccount, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindAccountByID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}

	account.UserID = userID
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteBankAccount removes one of the authenticated user's accounts.
// Snapshots referencing it are kept with their captured label.
func (s *Service) DeleteBankAccount(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindAccountByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrForbidden
	}
	return s.repo.DeleteAccount(ctx, id)
}

// GetCashbook projects the authenticated user's cashbook over a date range
func (s *Service) GetCashbook(ctx context.Context, start, end time.Time) ([]models.CashbookRow, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.cashbook.GetCashbook(ctx, userID, start, end)
}

// GetCashbookSnapshots lists the authenticated user's persisted snapshots
func (s *Service) GetCashbookSnapshots(ctx context.Context, start, end time.Time) ([]models.CashbookSnapshot, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.cashbook.GetSnapshots(ctx, userID, start, end)
}

// RunDailySnapshot triggers a snapshot run for the given date (zero means
// today) and mails the report when one is configured.
func (s *Service) RunDailySnapshot(ctx context.Context, date time.Time) (SnapshotSummary, error) {
	summary, err := s.cashbook.RunDailySnapshot(ctx, date)
	if err != nil {
		return summary, err
	}
	if s.mailer != nil && s.config.ReportEmail != "" {
		day := date
		if day.IsZero() {
			day = time.Now()
		}
		if mailErr := s.mailer.SendSnapshotReport(s.config.ReportEmail, Day(day), summary); mailErr != nil {
			s.log.Warnf("Failed to send snapshot report: %v", mailErr)
		}
	}
	return summary, nil
}
