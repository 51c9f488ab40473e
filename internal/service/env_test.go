// internal/service/env_test.go
package service

import (
	"testing"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/repository/memory"
	"wallet-ledger/internal/util"
	"wallet-ledger/pkg/cache"
	"wallet-ledger/pkg/db"
)

// testEnv wires every service to one in-memory store.
type testEnv struct {
	store      *memory.Store
	ledger     Ledger
	requests   RequestService
	validation ValidationService
	methods    MethodService
	history    HistoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	return newTestEnvWith(store, store.History(), cache.Noop{})
}

func newTestEnvWith(store *memory.Store, historyRepo repository.HistoryRepository, methodCache cache.Cache) *testEnv {
	logger := util.DiscardLogger()
	ledger := NewLedger(store, store.Wallets())
	return &testEnv{
		store:  store,
		ledger: ledger,
		requests: NewRequestService(store, store.Users(), store.Packs(), store.Wallets(),
			store.Methods(), store.Deposits(), store.Withdrawals()),
		validation: NewValidationService(nil, ledger, store.Users(), store.Deposits(), store.Withdrawals(),
			historyRepo, store.BeginTx, db.CommitTx, db.RollbackTx, logger),
		methods: NewMethodService(nil, store, store.Methods(), methodCache,
			store.BeginTx, db.CommitTx, db.RollbackTx, logger),
		history: NewHistoryService(store, store.History()),
	}
}

func strPtr(s string) *string { return &s }

func (e *testEnv) depositMethod() domain.TransactionMethod {
	return e.store.AddMethod(domain.TransactionMethod{Name: "Orange Money Deposit", Type: domain.MethodTypeDeposit, Country: strPtr("Côte d’Ivoire")})
}

func (e *testEnv) withdrawalMethod() domain.TransactionMethod {
	return e.store.AddMethod(domain.TransactionMethod{Name: "Wave Sénégal", Type: domain.MethodTypeWithdrawal, Country: strPtr("Sénégal")})
}
