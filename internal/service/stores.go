package service

import (
	"context"
	"time"

	"github.com/minhlp/rental-service/internal/models"
)

// The service layer depends on narrow store views rather than the concrete
// repository, mirroring the engine's AccountStore/EntryStore/SnapshotStore.
// *repository.Repository implements all of them.

// UserStore persists user records.
type UserStore interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
}

// BankAccountStore persists bank account records for the CRUD flows.
type BankAccountStore interface {
	CreateAccount(ctx context.Context, account *models.BankAccount) error
	FindAccountByID(ctx context.Context, id int64) (*models.BankAccount, error)
	FindAccountsByUserID(ctx context.Context, userID int64) ([]models.BankAccount, error)
	UpdateAccount(ctx context.Context, account *models.BankAccount) error
	DeleteAccount(ctx context.Context, id int64) error
}

// RentalStore persists buildings, apartments and contracts.
type RentalStore interface {
	CreateBuilding(ctx context.Context, b *models.Building) error
	FindBuildingByID(ctx context.Context, id int64) (*models.Building, error)
	FindBuildingsByUserID(ctx context.Context, userID int64) ([]models.Building, error)
	UpdateBuilding(ctx context.Context, b *models.Building) error
	DeleteBuilding(ctx context.Context, id int64) error

	CreateApartment(ctx context.Context, a *models.Apartment) error
	FindApartmentByID(ctx context.Context, id int64) (*models.Apartment, error)
	FindApartmentsByBuildingID(ctx context.Context, buildingID int64) ([]models.Apartment, error)
	UpdateApartment(ctx context.Context, a *models.Apartment) error
	DeleteApartment(ctx context.Context, id int64) error

	CreateContract(ctx context.Context, c *models.Contract) error
	FindContractByID(ctx context.Context, id int64) (*models.Contract, error)
	FindContractsByApartmentID(ctx context.Context, apartmentID int64) ([]models.Contract, error)
	UpdateContract(ctx context.Context, c *models.Contract) error
	DeleteContract(ctx context.Context, id int64) error
}

// DepositStore persists deposit receipts.
type DepositStore interface {
	CreateDeposit(ctx context.Context, d *models.Deposit) error
	FindDepositByID(ctx context.Context, id int64) (*models.Deposit, error)
	FindDepositsByContractID(ctx context.Context, contractID int64) ([]models.Deposit, error)
	UpdateDeposit(ctx context.Context, d *models.Deposit) error
	DeleteDeposit(ctx context.Context, id int64) error
}

// TransactionStore persists thu/chi entries.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	FindTransactionByID(ctx context.Context, id int64) (*models.Transaction, error)
	FindTransactionsInRange(ctx context.Context, from, to time.Time) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
}

// Store is the full persistence surface the service layer uses.
type Store interface {
	UserStore
	BankAccountStore
	RentalStore
	DepositStore
	TransactionStore
}
