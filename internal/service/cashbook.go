package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/minhlp/rental-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrInvalidRange is returned when a projection is requested with the end
// date before the start date.
var ErrInvalidRange = errors.New("end date before start date")

// ErrForbidden is returned when a resource does not belong to the
// authenticated user.
var ErrForbidden = errors.New("resource does not belong to user")

// AccountStore is the account persistence needed by the cashbook engine.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.BankAccount) error
	FindAccountsByUserID(ctx context.Context, userID int64) ([]models.BankAccount, error)
	FindAllAccounts(ctx context.Context) ([]models.BankAccount, error)
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (*models.BankAccount, error)
	DistinctAccountOwners(ctx context.Context) ([]int64, error)
}

// EntryStore is the read-only view of the thu/chi ledger.
type EntryStore interface {
	FindTransactionsInRange(ctx context.Context, from, to time.Time) ([]models.Transaction, error)
	FindTransactionsBefore(ctx context.Context, before time.Time) ([]models.Transaction, error)
}

// SnapshotStore persists immutable daily cashbook rows.
type SnapshotStore interface {
	CreateSnapshot(ctx context.Context, snap *models.CashbookSnapshot) error
	SnapshotExists(ctx context.Context, date time.Time, accountID int64) (bool, error)
	FindSnapshotsInRange(ctx context.Context, accountIDs []int64, from, to time.Time) ([]models.CashbookSnapshot, error)
}

// CashbookService maintains account balances and the daily cashbook. It
// attributes unstructured thu/chi entries to accounts by label, keeps the
// cached balance up to date on the fast path and recomputes authoritative
// figures from raw entries for reporting and the nightly snapshot.
type CashbookService struct {
	accounts  AccountStore
	entries   EntryStore
	snapshots SnapshotStore
	log       *logrus.Logger
}

// NewCashbookService initializes the cashbook engine
func NewCashbookService(accounts AccountStore, entries EntryStore, snapshots SnapshotStore, log *logrus.Logger) *CashbookService {
	return &CashbookService{accounts: accounts, entries: entries, snapshots: snapshots, log: log}
}

// Day truncates t to midnight UTC. Every projection and snapshot date goes
// through this so "one row per (date, account)" means the same thing for
// every caller.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// Project computes the account's cashbook for every calendar day in
// [start, end] inclusive.
//
// The opening balance is the net of all matching entries dated strictly
// before start, recomputed from the raw ledger rather than read from the
// cached balance, so the result stays consistent while entries are being
// edited concurrently. Days without entries produce a zero-flow row whose
// starting and ending balances are equal.
func (s *CashbookService) Project(ctx context.Context, account *models.BankAccount, start, end time.Time) ([]models.CashbookRow, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	prior, err := s.entries.FindTransactionsBefore(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior entries: %w", err)
	}
	running := NetDelta(filterByAccount(prior, account))

	inRange, err := s.entries.FindTransactionsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	byDay := make(map[time.Time][]models.Transaction)
	for _, txn := range filterByAccount(inRange, account) {
		day := Day(txn.Date)
		byDay[day] = append(byDay[day], txn)
	}

	label := account.DisplayLabel()
	var rows []models.CashbookRow
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		inflow, outflow := SumEntries(byDay[day])
		ending := running.Add(inflow).Sub(outflow)
		rows = append(rows, models.CashbookRow{
			Date:            day,
			AccountID:       account.ID,
			AccountLabel:    label,
			StartingBalance: running,
			TotalInflow:     inflow,
			TotalOutflow:    outflow,
			EndingBalance:   ending,
		})
		running = ending
	}
	return rows, nil
}

// GetCashbook projects the cashbook of every account the owner has over
// the given range. Rows are ordered by (date, account id).
func (s *CashbookService) GetCashbook(ctx context.Context, ownerID int64, start, end time.Time) ([]models.CashbookRow, error) {
	if Day(end).Before(Day(start)) {
		return nil, ErrInvalidRange
	}

	accounts, err := s.accounts.FindAccountsByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	var rows []models.CashbookRow
	for i := range accounts {
		accountRows, err := s.Project(ctx, &accounts[i], start, end)
		if err != nil {
			return nil, err
		}
		rows = append(rows, accountRows...)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].AccountID < rows[j].AccountID
	})
	return rows, nil
}

// GetSnapshots lists persisted snapshot rows of the owner's accounts
// within [start, end].
func (s *CashbookService) GetSnapshots(ctx context.Context, ownerID int64, start, end time.Time) ([]models.CashbookSnapshot, error) {
	if Day(end).Before(Day(start)) {
		return nil, ErrInvalidRange
	}
	accounts, err := s.accounts.FindAccountsByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	ids := make([]int64, len(accounts))
	for i := range accounts {
		ids[i] = accounts[i].ID
	}
	return s.snapshots.FindSnapshotsInRange(ctx, ids, Day(start), Day(end))
}

func filterByAccount(entries []models.Transaction, account *models.BankAccount) []models.Transaction {
	var matched []models.Transaction
	for _, txn := range entries {
		if entryMatchesAccount(txn.AccountLabel, account) {
			matched = append(matched, txn)
		}
	}
	return matched
}
