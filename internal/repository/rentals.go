package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minhlp/rental-service/internal/models"
)

// CreateBuilding creates a new building
func (r *Repository) CreateBuilding(ctx context.Context, b *models.Building) error {
	query := `
		INSERT INTO rental.buildings (user_id, name, address, floors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, b.UserID, b.Name, b.Address, b.Floors).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create building: %w", err)
	}
	return nil
}

// FindBuildingByID retrieves a building by id
func (r *Repository) FindBuildingByID(ctx context.Context, id int64) (*models.Building, error) {
	b := &models.Building{}
	query := `
		SELECT id, user_id, name, address, floors, created_at, updated_at
		FROM rental.buildings
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.UserID, &b.Name, &b.Address, &b.Floors, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find building: %w", err)
	}
	return b, nil
}

// FindBuildingsByUserID lists an owner's buildings
func (r *Repository) FindBuildingsByUserID(ctx context.Context, userID int64) ([]models.Building, error) {
	query := `
		SELECT id, user_id, name, address, floors, created_at, updated_at
		FROM rental.buildings
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query buildings: %w", err)
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Address, &b.Floors, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read buildings: %w", err)
	}
	return buildings, nil
}

// UpdateBuilding rewrites a building's fields
func (r *Repository) UpdateBuilding(ctx context.Context, b *models.Building) error {
	query := `
		UPDATE rental.buildings
		SET name = $1, address = $2, floors = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, b.Name, b.Address, b.Floors, b.ID).Scan(&b.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update building: %w", err)
	}
	return nil
}

// DeleteBuilding removes a building
func (r *Repository) DeleteBuilding(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rental.buildings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete building: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateApartment creates a new apartment
func (r *Repository) CreateApartment(ctx context.Context, a *models.Apartment) error {
	query := `
		INSERT INTO rental.apartments (building_id, code, floor, area, rent_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, a.BuildingID, a.Code, a.Floor, a.Area, a.RentPrice, a.Status).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create apartment: %w", err)
	}
	return nil
}

// FindApartmentByID retrieves an apartment by id
func (r *Repository) FindApartmentByID(ctx context.Context, id int64) (*models.Apartment, error) {
	a := &models.Apartment{}
	query := `
		SELECT id, building_id, code, floor, area, rent_price, status, created_at, updated_at
		FROM rental.apartments
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.BuildingID, &a.Code, &a.Floor, &a.Area, &a.RentPrice, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find apartment: %w", err)
	}
	return a, nil
}

// FindApartmentsByBuildingID lists a building's apartments
func (r *Repository) FindApartmentsByBuildingID(ctx context.Context, buildingID int64) ([]models.Apartment, error) {
	query := `
		SELECT id, building_id, code, floor, area, rent_price, status, created_at, updated_at
		FROM rental.apartments
		WHERE building_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query apartments: %w", err)
	}
	defer rows.Close()

	var apartments []models.Apartment
	for rows.Next() {
		var a models.Apartment
		if err := rows.Scan(&a.ID, &a.BuildingID, &a.Code, &a.Floor, &a.Area, &a.RentPrice,
			&a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan apartment: %w", err)
		}
		apartments = append(apartments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read apartments: %w", err)
	}
	return apartments, nil
}

// UpdateApartment rewrites an apartment's fields
func (r *Repository) UpdateApartment(ctx context.Context, a *models.Apartment) error {
	query := `
		UPDATE rental.apartments
		SET code = $1, floor = $2, area = $3, rent_price = $4, status = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, a.Code, a.Floor, a.Area, a.RentPrice, a.Status, a.ID).Scan(&a.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update apartment: %w", err)
	}
	return nil
}

// DeleteApartment removes an apartment
func (r *Repository) DeleteApartment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rental.apartments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete apartment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateContract creates a new rental contract
func (r *Repository) CreateContract(ctx context.Context, c *models.Contract) error {
	query := `
		INSERT INTO rental.contracts (apartment_id, tenant_name, tenant_phone, start_date, end_date, monthly_rent, deposit_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, c.ApartmentID, c.TenantName, c.TenantPhone,
		toDate(c.StartDate), toDate(c.EndDate), c.MonthlyRent, c.DepositAmount, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// FindContractByID retrieves a contract by id
func (r *Repository) FindContractByID(ctx context.Context, id int64) (*models.Contract, error) {
	c := &models.Contract{}
	query := `
		SELECT id, apartment_id, tenant_name, tenant_phone, start_date, end_date, monthly_rent, deposit_amount, status, created_at, updated_at
		FROM rental.contracts
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.ApartmentID, &c.TenantName, &c.TenantPhone, &c.StartDate, &c.EndDate,
			&c.MonthlyRent, &c.DepositAmount, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return c, nil
}

// FindContractsByApartmentID lists an apartment's contracts
func (r *Repository) FindContractsByApartmentID(ctx context.Context, apartmentID int64) ([]models.Contract, error) {
	query := `
		SELECT id, apartment_id, tenant_name, tenant_phone, start_date, end_date, monthly_rent, deposit_amount, status, created_at, updated_at
		FROM rental.contracts
		WHERE apartment_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, apartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var c models.Contract
		if err := rows.Scan(&c.ID, &c.ApartmentID, &c.TenantName, &c.TenantPhone, &c.StartDate,
			&c.EndDate, &c.MonthlyRent, &c.DepositAmount, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contracts: %w", err)
	}
	return contracts, nil
}

// UpdateContract rewrites a contract's fields
func (r *Repository) UpdateContract(ctx context.Context, c *models.Contract) error {
	query := `
		UPDATE rental.contracts
		SET tenant_name = $1, tenant_phone = $2, start_date = $3, end_date = $4, monthly_rent = $5, deposit_amount = $6, status = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, c.TenantName, c.TenantPhone, toDate(c.StartDate), toDate(c.EndDate),
		c.MonthlyRent, c.DepositAmount, c.Status, c.ID).Scan(&c.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	return nil
}

// DeleteContract removes a contract
func (r *Repository) DeleteContract(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rental.contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateDeposit creates a deposit receipt
func (r *Repository) CreateDeposit(ctx context.Context, d *models.Deposit) error {
	query := `
		INSERT INTO rental.deposits (contract_id, kind, amount, account_label, deposit_date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, d.ContractID, d.Kind, d.Amount, d.AccountLabel, toDate(d.Date), d.Note).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}

// FindDepositByID retrieves a deposit receipt by id
func (r *Repository) FindDepositByID(ctx context.Context, id int64) (*models.Deposit, error) {
	d := &models.Deposit{}
	query := `
		SELECT id, contract_id, kind, amount, account_label, deposit_date, note, created_at, updated_at
		FROM rental.deposits
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.ContractID, &d.Kind, &d.Amount, &d.AccountLabel, &d.Date, &d.Note, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find deposit: %w", err)
	}
	return d, nil
}

// FindDepositsByContractID lists a contract's deposit receipts
func (r *Repository) FindDepositsByContractID(ctx context.Context, contractID int64) ([]models.Deposit, error) {
	query := `
		SELECT id, contract_id, kind, amount, account_label, deposit_date, note, created_at, updated_at
		FROM rental.deposits
		WHERE contract_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer rows.Close()

	var deposits []models.Deposit
	for rows.Next() {
		var d models.Deposit
		if err := rows.Scan(&d.ID, &d.ContractID, &d.Kind, &d.Amount, &d.AccountLabel, &d.Date,
			&d.Note, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		deposits = append(deposits, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deposits: %w", err)
	}
	return deposits, nil
}

// UpdateDeposit rewrites a deposit receipt
func (r *Repository) UpdateDeposit(ctx context.Context, d *models.Deposit) error {
	query := `
		UPDATE rental.deposits
		SET kind = $1, amount = $2, account_label = $3, deposit_date = $4, note = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, d.Kind, d.Amount, d.AccountLabel, toDate(d.Date), d.Note, d.ID).Scan(&d.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update deposit: %w", err)
	}
	return nil
}

// DeleteDeposit removes a deposit receipt
func (r *Repository) DeleteDeposit(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rental.deposits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deposit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
