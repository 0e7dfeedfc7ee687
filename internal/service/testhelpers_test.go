package service

import (
	"context"
	"io"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/minhlp/rental-service/internal/config"
	"github.com/minhlp/rental-service/internal/models"
	"github.com/minhlp/rental-service/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory implementation of the engine's store
// interfaces and the service Store, serialized with a mutex like the
// database would be.
type fakeStore struct {
	mu         sync.Mutex
	users      []models.User
	accounts   []models.BankAccount
	entries    []models.Transaction
	snapshots  []models.CashbookSnapshot
	buildings  []models.Building
	apartments []models.Apartment
	contracts  []models.Contract
	deposits   []models.Deposit
	nextID     int64

	// error injection
	accountsErrFor map[int64]error
	snapshotErr    error
	// onCreateSnapshot runs after each successful snapshot insert.
	onCreateSnapshot func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{accountsErrFor: map[int64]error{}}
}

func (f *fakeStore) CreateAccount(ctx context.Context, account *models.BankAccount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	account.ID = f.nextID
	f.accounts = append(f.accounts, *account)
	return nil
}

func (f *fakeStore) FindAccountsByUserID(ctx context.Context, userID int64) ([]models.BankAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.accountsErrFor[userID]; err != nil {
		return nil, err
	}
	var out []models.BankAccount
	for _, a := range f.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) FindAllAccounts(ctx context.Context) ([]models.BankAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.BankAccount(nil), f.accounts...), nil
}

func (f *fakeStore) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (*models.BankAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			f.accounts[i].Balance = f.accounts[i].Balance.Add(delta)
			updated := f.accounts[i]
			return &updated, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) DistinctAccountOwners(ctx context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[int64]bool{}
	var owners []int64
	for _, a := range f.accounts {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			owners = append(owners, a.UserID)
		}
	}
	return owners, nil
}

func (f *fakeStore) FindTransactionsInRange(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, txn := range f.entries {
		day := Day(txn.Date)
		if !day.Before(Day(from)) && !day.After(Day(to)) {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeStore) FindTransactionsBefore(ctx context.Context, before time.Time) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, txn := range f.entries {
		if Day(txn.Date).Before(Day(before)) {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSnapshot(ctx context.Context, snap *models.CashbookSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snapshotErr != nil {
		return f.snapshotErr
	}
	for _, existing := range f.snapshots {
		if existing.Date.Equal(snap.Date) && existing.AccountID != nil && snap.AccountID != nil &&
			*existing.AccountID == *snap.AccountID {
			return repository.ErrDuplicateSnapshot
		}
	}
	f.nextID++
	snap.ID = f.nextID
	f.snapshots = append(f.snapshots, *snap)
	if f.onCreateSnapshot != nil {
		f.onCreateSnapshot()
	}
	return nil
}

func (f *fakeStore) SnapshotExists(ctx context.Context, date time.Time, accountID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, snap := range f.snapshots {
		if snap.Date.Equal(date) && snap.AccountID != nil && *snap.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FindSnapshotsInRange(ctx context.Context, accountIDs []int64, from, to time.Time) ([]models.CashbookSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := map[int64]bool{}
	for _, id := range accountIDs {
		ids[id] = true
	}
	var out []models.CashbookSnapshot
	for _, snap := range f.snapshots {
		if snap.AccountID != nil && ids[*snap.AccountID] &&
			!snap.Date.Before(from) && !snap.Date.After(to) {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeStore) FindUserByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindUserByID(id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindAccountByID(ctx context.Context, id int64) (*models.BankAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) UpdateAccount(ctx context.Context, account *models.BankAccount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.accounts {
		if f.accounts[i].ID == account.ID {
			account.Balance = f.accounts[i].Balance
			f.accounts[i] = *account
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) DeleteAccount(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			f.accounts = append(f.accounts[:i], f.accounts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) CreateBuilding(ctx context.Context, b *models.Building) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b.ID = f.nextID
	f.buildings = append(f.buildings, *b)
	return nil
}

func (f *fakeStore) FindBuildingByID(ctx context.Context, id int64) (*models.Building, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.buildings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindBuildingsByUserID(ctx context.Context, userID int64) ([]models.Building, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Building
	for _, b := range f.buildings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateBuilding(ctx context.Context, b *models.Building) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.buildings {
		if f.buildings[i].ID == b.ID {
			f.buildings[i] = *b
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) DeleteBuilding(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.buildings {
		if f.buildings[i].ID == id {
			f.buildings = append(f.buildings[:i], f.buildings[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) CreateApartment(ctx context.Context, a *models.Apartment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a.ID = f.nextID
	f.apartments = append(f.apartments, *a)
	return nil
}

func (f *fakeStore) FindApartmentByID(ctx context.Context, id int64) (*models.Apartment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apartments {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindApartmentsByBuildingID(ctx context.Context, buildingID int64) ([]models.Apartment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Apartment
	for _, a := range f.apartments {
		if a.BuildingID == buildingID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateApartment(ctx context.Context, a *models.Apartment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.apartments {
		if f.apartments[i].ID == a.ID {
			f.apartments[i] = *a
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) DeleteApartment(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.apartments {
		if f.apartments[i].ID == id {
			f.apartments = append(f.apartments[:i], f.apartments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) CreateContract(ctx context.Context, c *models.Contract) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	f.contracts = append(f.contracts, *c)
	return nil
}

func (f *fakeStore) FindContractByID(ctx context.Context, id int64) (*models.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.contracts {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindContractsByApartmentID(ctx context.Context, apartmentID int64) ([]models.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Contract
	for _, c := range f.contracts {
		if c.ApartmentID == apartmentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateContract(ctx context.Context, c *models.Contract) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.contracts {
		if f.contracts[i].ID == c.ID {
			f.contracts[i] = *c
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) DeleteContract(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.contracts {
		if f.contracts[i].ID == id {
			f.contracts = append(f.contracts[:i], f.contracts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) CreateDeposit(ctx context.Context, d *models.Deposit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	d.ID = f.nextID
	f.deposits = append(f.deposits, *d)
	return nil
}

func (f *fakeStore) FindDepositByID(ctx context.Context, id int64) (*models.Deposit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.deposits {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindDepositsByContractID(ctx context.Context, contractID int64) ([]models.Deposit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Deposit
	for _, d := range f.deposits {
		if d.ContractID == contractID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateDeposit(ctx context.Context, d *models.Deposit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.deposits {
		if f.deposits[i].ID == d.ID {
			f.deposits[i] = *d
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) DeleteDeposit(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.deposits {
		if f.deposits[i].ID == id {
			f.deposits = append(f.deposits[:i], f.deposits[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	txn.ID = f.nextID
	f.entries = append(f.entries, *txn)
	return nil
}

func (f *fakeStore) FindTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, txn := range f.entries {
		if txn.ID == id {
			found := txn
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == txn.ID {
			f.entries[i] = *txn
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) DeleteTransaction(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newTestCashbook() (*CashbookService, *fakeStore) {
	store := newFakeStore()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewCashbookService(store, store, store, log), store
}

func newTestService() (*Service, *fakeStore) {
	cashbook, store := newTestCashbook()
	svc := NewService(store, cashbook, nil, cashbook.log, &config.Config{})
	return svc, store
}

// authCtx builds a context carrying the user id the way the auth
// middleware does.
func authCtx(userID int64) context.Context {
	return context.WithValue(context.Background(), "userID", strconv.FormatInt(userID, 10))
}

// seedRental creates a building, apartment and contract chain owned by
// user 1 and returns the contract.
func seedRental(t *testing.T, store *fakeStore) *models.Contract {
	t.Helper()
	ctx := context.Background()
	b := models.Building{UserID: 1, Name: "Nha tro A"}
	require.NoError(t, store.CreateBuilding(ctx, &b))
	a := models.Apartment{BuildingID: b.ID, Code: "A101", Status: models.ApartmentAvailable}
	require.NoError(t, store.CreateApartment(ctx, &a))
	c := models.Contract{ApartmentID: a.ID, TenantName: "Nguyen Van A", Status: models.ContractActive}
	require.NoError(t, store.CreateContract(ctx, &c))
	return &c
}

func assertBalance(t *testing.T, store *fakeStore, accountID int64, want string) {
	t.Helper()
	account, err := store.FindAccountByID(context.Background(), accountID)
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(dec(want)), "balance = %s, want %s", account.Balance, want)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func entry(kind, label, date string, amounts ...string) models.Transaction {
	txn := models.Transaction{Kind: kind, AccountLabel: label, Date: day(date)}
	for _, raw := range amounts {
		amount := dec(raw)
		txn.Items = append(txn.Items, models.TransactionItem{Amount: &amount})
	}
	return txn
}
