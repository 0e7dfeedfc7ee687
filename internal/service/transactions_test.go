package service

import (
	"testing"

	"github.com/minhlp/rental-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(kind, label string, amounts ...string) *models.Transaction {
	txn := entry(kind, label, "2024-01-10", amounts...)
	return &txn
}

func TestCreateTransactionBooksNetTotal(t *testing.T) {
	svc, store := newTestService()
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	created, err := svc.CreateTransaction(authCtx(1), newEntry(models.KindThu, "VCB 111", "60", "40"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assertBalance(t, store, account.ID, "100")
}

func TestCreateTransactionInvalidKind(t *testing.T) {
	svc, store := newTestService()
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	_, err := svc.CreateTransaction(authCtx(1), newEntry("transfer", "VCB 111", "100"))
	assert.Error(t, err)
	assertBalance(t, store, account.ID, "0")
}

func TestUpdateTransactionSameLabelBooksDelta(t *testing.T) {
	svc, store := newTestService()
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	created, err := svc.CreateTransaction(authCtx(1), newEntry(models.KindThu, "VCB 111", "100"))
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "100")

	// 100 -> 150 on the same account books only the 50 difference.
	upd := newEntry(models.KindThu, "VCB 111", "150")
	upd.ID = created.ID
	_, err = svc.UpdateTransaction(authCtx(1), upd)
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "150")
}

func TestUpdateTransactionKindFlipReversesAndRebooks(t *testing.T) {
	svc, store := newTestService()
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	created, err := svc.CreateTransaction(authCtx(1), newEntry(models.KindThu, "VCB 111", "100"))
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "100")

	// thu 100 -> chi 100 books a -200 delta even though the total is
	// unchanged.
	upd := newEntry(models.KindChi, "VCB 111", "100")
	upd.ID = created.ID
	_, err = svc.UpdateTransaction(authCtx(1), upd)
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "-100")
}

func TestUpdateTransactionLabelChangeMovesBooking(t *testing.T) {
	svc, store := newTestService()
	first := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	second := models.BankAccount{UserID: 1, BankName: "ACB", AccountNumber: "222"}
	require.NoError(t, store.CreateAccount(authCtx(1), &first))
	require.NoError(t, store.CreateAccount(authCtx(1), &second))

	created, err := svc.CreateTransaction(authCtx(1), newEntry(models.KindThu, "VCB 111", "100"))
	require.NoError(t, err)
	assertBalance(t, store, first.ID, "100")

	upd := newEntry(models.KindThu, "ACB 222", "100")
	upd.ID = created.ID
	_, err = svc.UpdateTransaction(authCtx(1), upd)
	require.NoError(t, err)
	assertBalance(t, store, first.ID, "0")
	assertBalance(t, store, second.ID, "100")
}

func TestUpdateTransactionInvalidKind(t *testing.T) {
	svc, store := newTestService()
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	created, err := svc.CreateTransaction(authCtx(1), newEntry(models.KindThu, "VCB 111", "100"))
	require.NoError(t, err)

	upd := newEntry("transfer", "VCB 111", "100")
	upd.ID = created.ID
	_, err = svc.UpdateTransaction(authCtx(1), upd)
	assert.Error(t, err)
	assertBalance(t, store, account.ID, "100")
}

func TestUpdateTransactionForeignEntryForbidden(t *testing.T) {
	svc, store := newTestService()
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	created, err := svc.CreateTransaction(authCtx(1), newEntry(models.KindThu, "VCB 111", "100"))
	require.NoError(t, err)

	upd := newEntry(models.KindThu, "VCB 111", "150")
	upd.ID = created.ID
	_, err = svc.UpdateTransaction(authCtx(2), upd)
	assert.ErrorIs(t, err, ErrForbidden)
	assertBalance(t, store, account.ID, "100")
}

func TestDeleteTransactionReversesBooking(t *testing.T) {
	svc, store := newTestService()
	account := models.BankAccount{UserID: 1, BankName: "VCB", AccountNumber: "111"}
	require.NoError(t, store.CreateAccount(authCtx(1), &account))

	created, err := svc.CreateTransaction(authCtx(1), newEntry(models.KindChi, "VCB 111", "30"))
	require.NoError(t, err)
	assertBalance(t, store, account.ID, "-30")

	require.NoError(t, svc.DeleteTransaction(authCtx(1), created.ID))
	assertBalance(t, store, account.ID, "0")
}
