package service

import (
	"testing"

	"github.com/minhlp/rental-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDepositBooksSignedAmount(t *testing.T) {
	svc, store := newTestService()
	contract := seedRental(t, store)
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	d := &models.Deposit{ContractID: contract.ID, Kind: models.KindThu,
		Amount: dec("100"), AccountLabel: "VCB 111", Date: day("2024-01-10")}
	_, err := svc.CreateDeposit(authCtx(1), d)
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "100")
}

func TestUpdateDepositSameLabelBooksDelta(t *testing.T) {
	svc, store := newTestService()
	contract := seedRental(t, store)
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	d := &models.Deposit{ContractID: contract.ID, Kind: models.KindThu,
		Amount: dec("100"), AccountLabel: "VCB 111", Date: day("2024-01-10")}
	_, err := svc.CreateDeposit(authCtx(1), d)
	require.NoError(t, err)

	// Raising 100 to 150 must book the 50 difference, not the full 150
	// again on top of the original booking.
	upd := &models.Deposit{ID: d.ID, Kind: models.KindThu,
		Amount: dec("150"), AccountLabel: "VCB 111", Date: day("2024-01-10")}
	_, err = svc.UpdateDeposit(authCtx(1), upd)
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "150")
}

func TestUpdateDepositKindFlipReversesAndRebooks(t *testing.T) {
	svc, store := newTestService()
	contract := seedRental(t, store)
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	d := &models.Deposit{ContractID: contract.ID, Kind: models.KindThu,
		Amount: dec("100"), AccountLabel: "VCB 111", Date: day("2024-01-10")}
	_, err := svc.CreateDeposit(authCtx(1), d)
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "100")

	// thu 100 -> chi 100 flips the sign: the delta is -200, not zero.
	upd := &models.Deposit{ID: d.ID, Kind: models.KindChi,
		Amount: dec("100"), AccountLabel: "VCB 111", Date: day("2024-01-10")}
	_, err = svc.UpdateDeposit(authCtx(1), upd)
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "-100")
}

func TestUpdateDepositLabelChangeMovesBooking(t *testing.T) {
	svc, store := newTestService()
	contract := seedRental(t, store)
	first := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	second := models.BankAccount{UserID: 1, BankName: "ACB", AccountNumber: "222"}
	require.NoError(t, store.CreateAccount(authCtx(1), &first))
	require.NoError(t, store.CreateAccount(authCtx(1), &second))

	d := &models.Deposit{ContractID: contract.ID, Kind: models.KindThu,
		Amount: dec("100"), AccountLabel: "VCB 111", Date: day("2024-01-10")}
	_, err := svc.CreateDeposit(authCtx(1), d)
	require.NoError(t, err)
	assertBalance(t, store, first.ID, "100")

	upd := &models.Deposit{ID: d.ID, Kind: models.KindThu,
		Amount: dec("100"), AccountLabel: "ACB 222", Date: day("2024-01-10")}
	_, err = svc.UpdateDeposit(authCtx(1), upd)
	require.NoError(t, err)
	assertBalance(t, store, first.ID, "0")
	assertBalance(t, store, second.ID, "100")
}

func TestUpdateDepositEmptyKindKeepsOldKind(t *testing.T) {
	svc, store := newTestService()
	contract := seedRental(t, store)
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	d := &models.Deposit{ContractID: contract.ID, Kind: models.KindChi,
		Amount: dec("100"), AccountLabel: "VCB 111", Date: day("2024-01-10")}
	_, err := svc.CreateDeposit(authCtx(1), d)
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "-100")

	upd := &models.Deposit{ID: d.ID, Amount: dec("40"),
		AccountLabel: "VCB 111", Date: day("2024-01-10")}
	updated, err := svc.UpdateDeposit(authCtx(1), upd)
	require.NoError(t, err)
	assert.Equal(t, models.KindChi, updated.Kind)
	assertBalance(t, store, account.ID, "-40")
}

func TestDeleteDepositReversesBooking(t *testing.T) {
	svc, store := newTestService()
	contract := seedRental(t, store)
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	d := &models.Deposit{ContractID: contract.ID, Kind: models.KindThu,
		Amount: dec("100"), AccountLabel: "VCB 111", Date: day("2024-01-10")}
	_, err := svc.CreateDeposit(authCtx(1), d)
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "100")

	require.NoError(t, svc.DeleteDeposit(authCtx(1), d.ID))
	assertBalance(t, store, account.ID, "0")
	_, err = store.FindDepositByID(authCtx(1), d.ID)
	assert.Error(t, err)
}

func TestCreateDepositForeignContractForbidden(t *testing.T) {
	svc, store := newTestService()
	contract := seedRental(t, store)

	d := &models.Deposit{ContractID: contract.ID, Kind: models.KindThu,
		Amount: dec("100"), AccountLabel: "VCB 111", Date: day("2024-01-10")}
	_, err := svc.CreateDeposit(authCtx(2), d)
	assert.ErrorIs(t, err, ErrForbidden)
}
