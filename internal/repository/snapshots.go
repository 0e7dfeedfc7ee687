package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/minhlp/rental-service/internal/models"
)

// CreateSnapshot inserts a cashbook snapshot row. A unique index on
// (snapshot_date, account_id) rejects a second row for the same day, in
// which case ErrDuplicateSnapshot is returned so the caller can treat the
// race as "already written".
func (r *Repository) CreateSnapshot(ctx context.Context, snap *models.CashbookSnapshot) error {
	query := `
		INSERT INTO rental.cashbook_snapshots
			(snapshot_date, account_id, account_label, starting_balance, total_inflow, total_outflow, ending_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, toDate(snap.Date), snap.AccountID, snap.AccountLabel,
		snap.StartingBalance, snap.TotalInflow, snap.TotalOutflow, snap.EndingBalance).
		Scan(&snap.ID, &snap.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateSnapshot
	}
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	return nil
}

// SnapshotExists reports whether a snapshot for (date, account) is already
// persisted.
func (r *Repository) SnapshotExists(ctx context.Context, date time.Time, accountID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rental.cashbook_snapshots WHERE snapshot_date = $1 AND account_id = $2
		)`
	if err := r.db.QueryRowContext(ctx, query, toDate(date), accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check snapshot existence: %w", err)
	}
	return exists, nil
}

// FindSnapshotsInRange lists snapshots dated within [from, to] for the
// given accounts, ordered by (date, account).
func (r *Repository) FindSnapshotsInRange(ctx context.Context, accountIDs []int64, from, to time.Time) ([]models.CashbookSnapshot, error) {
	query := `
		SELECT id, snapshot_date, account_id, account_label, starting_balance, total_inflow, total_outflow, ending_balance, created_at
		FROM rental.cashbook_snapshots
		WHERE account_id = ANY($1) AND snapshot_date >= $2 AND snapshot_date <= $3
		ORDER BY snapshot_date, account_id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(accountIDs), toDate(from), toDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []models.CashbookSnapshot
	for rows.Next() {
		var snap models.CashbookSnapshot
		if err := rows.Scan(&snap.ID, &snap.Date, &snap.AccountID, &snap.AccountLabel,
			&snap.StartingBalance, &snap.TotalInflow, &snap.TotalOutflow, &snap.EndingBalance, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	return snaps, nil
}
