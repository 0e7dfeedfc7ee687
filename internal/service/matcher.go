package service

import (
	"github.com/minhlp/rental-service/internal/models"
	"github.com/minhlp/rental-service/internal/textnorm"
)

// MatchScope controls how far label resolution is allowed to look.
type MatchScope int

const (
	// ScopeOwnerOnly restricts resolution to the owner's accounts.
	ScopeOwnerOnly MatchScope = iota
	// ScopeOwnerThenAll retries across all accounts in the system when the
	// owner's accounts produce no match. Callers opt into this explicitly;
	// it is never the silent default.
	ScopeOwnerThenAll
)

// cashTokens are the label spellings that mean "cash" (tiền mặt). Labels
// are folded before comparison, so accented variants are covered.
var cashTokens = []string{"tien mat", "tienmat", "cash"}

// Resolution is the outcome of resolving a free-text label. Either Account
// is set, or CreateCash signals that a cash account should be synthesized,
// or neither (the label could not be attributed).
type Resolution struct {
	Account    *models.BankAccount
	CreateCash bool
}

// IsCashLabel reports whether the label names the cash account.
func IsCashLabel(label string) bool {
	for _, token := range cashTokens {
		if textnorm.Contains(label, token) {
			return true
		}
	}
	return false
}

// IsCashAccount reports whether an account record represents cash: either
// its account number is the synthetic cash number or its bank name reads
// as cash.
func IsCashAccount(a *models.BankAccount) bool {
	if textnorm.Fold(a.AccountNumber) == textnorm.Fold(models.CashAccountNumber) {
		return true
	}
	for _, token := range cashTokens {
		if textnorm.Contains(a.BankName, token) || textnorm.Contains(a.AccountNumber, token) {
			return true
		}
	}
	return false
}

// ResolveLabel attributes a free-text transaction label to one of the
// candidate accounts.
//
// Cash-indicating labels resolve to an existing cash account among the
// candidates, or signal synthesis of one. Any other label matches the
// first candidate whose account number, holder name or bank name appears
// in the folded label. First match wins; candidates are scanned in the
// order given and no scoring is attempted, mirroring how the books were
// kept by hand. The function has no side effects.
func ResolveLabel(label string, candidates []models.BankAccount) Resolution {
	if IsCashLabel(label) {
		for i := range candidates {
			if IsCashAccount(&candidates[i]) {
				return Resolution{Account: &candidates[i]}
			}
		}
		return Resolution{CreateCash: true}
	}

	for i := range candidates {
		a := &candidates[i]
		if textnorm.Contains(label, a.AccountNumber) ||
			textnorm.Contains(label, a.HolderName) ||
			textnorm.Contains(label, a.BankName) {
			return Resolution{Account: a}
		}
	}
	return Resolution{}
}

// entryMatchesAccount is the inverse view of ResolveLabel: does this entry
// label belong to the account? Used when projecting an account's cashbook
// out of the unstructured ledger.
func entryMatchesAccount(label string, a *models.BankAccount) bool {
	if IsCashAccount(a) && IsCashLabel(label) {
		return true
	}
	return textnorm.Contains(label, a.AccountNumber) ||
		textnorm.Contains(label, a.HolderName) ||
		textnorm.Contains(label, a.BankName)
}
