package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minhlp/rental-service/internal/models"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, user_id, holder_name, account_number, bank_name, branch, is_default, balance, created_at, updated_at`

func scanAccount(row interface{ Scan(...interface{}) error }) (*models.BankAccount, error) {
	a := &models.BankAccount{}
	err := row.Scan(&a.ID, &a.UserID, &a.HolderName, &a.AccountNumber, &a.BankName,
		&a.Branch, &a.IsDefault, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAccount creates a new bank account. When the account is marked as
// default, any previous default of the same owner is cleared first so the
// owner keeps at most one default account.
func (r *Repository) CreateAccount(ctx context.Context, account *models.BankAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if account.IsDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE rental.bank_accounts SET is_default = FALSE, updated_at = CURRENT_TIMESTAMP WHERE user_id = $1 AND is_default`,
			account.UserID); err != nil {
			return fmt.Errorf("failed to clear default accounts: %w", err)
		}
	}

	query := `
		INSERT INTO rental.bank_accounts (user_id, holder_name, account_number, bank_name, branch, is_default, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRowContext(ctx, query, account.UserID, account.HolderName, account.AccountNumber,
		account.BankName, account.Branch, account.IsDefault, account.Balance).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account: %w", err)
	}
	return nil
}

// FindAccountByID retrieves an account by id
func (r *Repository) FindAccountByID(ctx context.Context, id int64) (*models.BankAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM rental.bank_accounts WHERE id = $1`, accountColumns)
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// FindAccountsByUserID lists an owner's accounts ordered by id. The order
// matters: label resolution scans candidates first-match-wins.
func (r *Repository) FindAccountsByUserID(ctx context.Context, userID int64) ([]models.BankAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM rental.bank_accounts WHERE user_id = $1 ORDER BY id`, accountColumns)
	return r.queryAccounts(ctx, query, userID)
}

// FindAllAccounts lists every account in the system ordered by id
func (r *Repository) FindAllAccounts(ctx context.Context) ([]models.BankAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM rental.bank_accounts ORDER BY id`, accountColumns)
	return r.queryAccounts(ctx, query)
}

func (r *Repository) queryAccounts(ctx context.Context, query string, args ...interface{}) ([]models.BankAccount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an account's identifying fields and default flag,
// clearing other defaults of the same owner when needed. The cached balance
// is not touched here; only AdjustBalance mutates it.
func (r *Repository) UpdateAccount(ctx context.Context, account *models.BankAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if account.IsDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE rental.bank_accounts SET is_default = FALSE, updated_at = CURRENT_TIMESTAMP WHERE user_id = $1 AND is_default AND id <> $2`,
			account.UserID, account.ID); err != nil {
			return fmt.Errorf("failed to clear default accounts: %w", err)
		}
	}

	query := `
		UPDATE rental.bank_accounts
		SET holder_name = $1, account_number = $2, bank_name = $3, branch = $4, is_default = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING updated_at`
	err = tx.QueryRowContext(ctx, query, account.HolderName, account.AccountNumber,
		account.BankName, account.Branch, account.IsDefault, account.ID).
		Scan(&account.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account update: %w", err)
	}
	return nil
}

// DeleteAccount removes an account row. Cashbook snapshots referencing it
// keep their captured label and end up with a null account reference.
func (r *Repository) DeleteAccount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rental.bank_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustBalance applies a delta to an account's cached balance and returns
// the updated account. The whole read-modify-write is one UPDATE statement,
// so concurrent adjustments to the same account serialize on the row lock
// and none is lost.
func (r *Repository) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (*models.BankAccount, error) {
	query := fmt.Sprintf(`
		UPDATE rental.bank_accounts
		SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING %s`, accountColumns)
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, delta, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}
	return account, nil
}

// DistinctAccountOwners lists ids of users owning at least one account
func (r *Repository) DistinctAccountOwners(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM rental.bank_accounts ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account owners: %w", err)
	}
	defer rows.Close()

	var owners []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan owner id: %w", err)
		}
		owners = append(owners, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account owners: %w", err)
	}
	return owners, nil
}
