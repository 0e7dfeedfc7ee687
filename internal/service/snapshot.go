package service

import (
	"context"
	"errors"
	"time"

	"github.com/minhlp/rental-service/internal/models"
	"github.com/minhlp/rental-service/internal/repository"
)

// SnapshotSummary reports the outcome of one daily snapshot run.
type SnapshotSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// RunDailySnapshot writes one cashbook snapshot per account for the given
// date. A zero date means today. The job is idempotent: accounts already
// covered for the date are skipped, and a duplicate-key conflict from a
// concurrent run counts as skipped too, so re-running after a crash or
// retry never produces a second row.
//
// Failures are isolated per owner: one owner's error is logged and counted,
// the rest keep processing. Cancellation of ctx stops the loop after the
// current account; everything committed so far stays committed and a rerun
// picks up the remainder.
func (s *CashbookService) RunDailySnapshot(ctx context.Context, date time.Time) (SnapshotSummary, error) {
	if date.IsZero() {
		date = time.Now()
	}
	day := Day(date)

	var summary SnapshotSummary
	owners, err := s.accounts.DistinctAccountOwners(ctx)
	if err != nil {
		return summary, err
	}
	s.log.Infof("Daily snapshot run for %s: %d owners", day.Format("2006-01-02"), len(owners))

	for _, ownerID := range owners {
		if ctx.Err() != nil {
			s.log.Warnf("Snapshot run for %s cancelled, partial progress kept: %+v", day.Format("2006-01-02"), summary)
			return summary, nil
		}
		if err := s.snapshotOwner(ctx, ownerID, day, &summary); err != nil {
			summary.Failed++
			s.log.Warnf("Snapshot run failed for owner %d: %v", ownerID, err)
		}
	}

	s.log.Infof("Daily snapshot run for %s complete: %d processed, %d skipped, %d failed",
		day.Format("2006-01-02"), summary.Processed, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *CashbookService) snapshotOwner(ctx context.Context, ownerID int64, day time.Time, summary *SnapshotSummary) error {
	accounts, err := s.accounts.FindAccountsByUserID(ctx, ownerID)
	if err != nil {
		return err
	}

	for i := range accounts {
		if ctx.Err() != nil {
			return nil
		}
		account := &accounts[i]
		exists, err := s.snapshots.SnapshotExists(ctx, day, account.ID)
		if err != nil {
			summary.Failed++
			s.log.Warnf("Snapshot existence check failed for account %d: %v", account.ID, err)
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		rows, err := s.Project(ctx, account, day, day)
		if err != nil {
			summary.Failed++
			s.log.Warnf("Cashbook projection failed for account %d: %v", account.ID, err)
			continue
		}
		row := rows[0]

		accountID := account.ID
		snap := &models.CashbookSnapshot{
			Date:            row.Date,
			AccountID:       &accountID,
			AccountLabel:    row.AccountLabel,
			StartingBalance: row.StartingBalance,
			TotalInflow:     row.TotalInflow,
			TotalOutflow:    row.TotalOutflow,
			EndingBalance:   row.EndingBalance,
		}
		err = s.snapshots.CreateSnapshot(ctx, snap)
		switch {
		case errors.Is(err, repository.ErrDuplicateSnapshot):
			// Another run won the race past our existence check.
			summary.Skipped++
		case err != nil:
			summary.Failed++
			s.log.Warnf("Snapshot insert failed for account %d: %v", account.ID, err)
		default:
			summary.Processed++
		}
	}
	return nil
}
