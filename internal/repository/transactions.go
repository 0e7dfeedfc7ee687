package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/minhlp/rental-service/internal/models"
)

// CreateTransaction inserts a thu/chi entry together with its line items
func (r *Repository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO rental.transactions (user_id, kind, account_label, txn_date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err = dbTx.QueryRowContext(ctx, query, txn.UserID, txn.Kind, txn.AccountLabel, toDate(txn.Date), txn.Note).
		Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	for i := range txn.Items {
		item := &txn.Items[i]
		item.TransactionID = txn.ID
		err = dbTx.QueryRowContext(ctx,
			`INSERT INTO rental.transaction_items (transaction_id, title, amount) VALUES ($1, $2, $3) RETURNING id`,
			item.TransactionID, item.Title, item.Amount).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create transaction item: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a thu/chi entry with its items
func (r *Repository) FindTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	txn := &models.Transaction{}
	query := `
		SELECT id, user_id, kind, account_label, txn_date, note, created_at, updated_at
		FROM rental.transactions
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&txn.ID, &txn.UserID, &txn.Kind, &txn.AccountLabel, &txn.Date, &txn.Note, &txn.CreatedAt, &txn.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if err := r.loadItems(ctx, []*models.Transaction{txn}); err != nil {
		return nil, err
	}
	return txn, nil
}

// FindTransactionsInRange lists entries dated within [from, to] inclusive
func (r *Repository) FindTransactionsInRange(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, kind, account_label, txn_date, note, created_at, updated_at
		FROM rental.transactions
		WHERE txn_date >= $1 AND txn_date <= $2
		ORDER BY txn_date, id`
	return r.queryTransactions(ctx, query, toDate(from), toDate(to))
}

// FindTransactionsBefore lists entries dated strictly before the given date
func (r *Repository) FindTransactionsBefore(ctx context.Context, before time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, kind, account_label, txn_date, note, created_at, updated_at
		FROM rental.transactions
		WHERE txn_date < $1
		ORDER BY txn_date, id`
	return r.queryTransactions(ctx, query, toDate(before))
}

func (r *Repository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(&txn.ID, &txn.UserID, &txn.Kind, &txn.AccountLabel, &txn.Date,
			&txn.Note, &txn.CreatedAt, &txn.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	ptrs := make([]*models.Transaction, len(txns))
	for i := range txns {
		ptrs[i] = &txns[i]
	}
	if err := r.loadItems(ctx, ptrs); err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *Repository) loadItems(ctx context.Context, txns []*models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	ids := make([]int64, len(txns))
	byID := make(map[int64]*models.Transaction, len(txns))
	for i, txn := range txns {
		ids[i] = txn.ID
		byID[txn.ID] = txn
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, transaction_id, title, amount FROM rental.transaction_items WHERE transaction_id = ANY($1) ORDER BY id`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.TransactionItem
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.Title, &item.Amount); err != nil {
			return fmt.Errorf("failed to scan transaction item: %w", err)
		}
		if txn, ok := byID[item.TransactionID]; ok {
			txn.Items = append(txn.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read transaction items: %w", err)
	}
	return nil
}

// UpdateTransaction rewrites an entry and replaces its line items
func (r *Repository) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE rental.transactions
		SET kind = $1, account_label = $2, txn_date = $3, note = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING updated_at`
	err = dbTx.QueryRowContext(ctx, query, txn.Kind, txn.AccountLabel, toDate(txn.Date), txn.Note, txn.ID).
		Scan(&txn.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM rental.transaction_items WHERE transaction_id = $1`, txn.ID); err != nil {
		return fmt.Errorf("failed to clear transaction items: %w", err)
	}
	for i := range txn.Items {
		item := &txn.Items[i]
		item.TransactionID = txn.ID
		err = dbTx.QueryRowContext(ctx,
			`INSERT INTO rental.transaction_items (transaction_id, title, amount) VALUES ($1, $2, $3) RETURNING id`,
			item.TransactionID, item.Title, item.Amount).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create transaction item: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction update: %w", err)
	}
	return nil
}

// DeleteTransaction removes an entry and its items
func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rental.transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
