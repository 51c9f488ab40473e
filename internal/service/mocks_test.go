// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It embeds MockDBExecutor so services can use it as their repository.DBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockPackRepository is a mock implementation of repository.PackRepository.
type MockPackRepository struct {
	mock.Mock
}

func (m *MockPackRepository) HasActivePack(ctx context.Context, q repository.DBExecutor, userID int64) (bool, error) {
	args := m.Called(ctx, q, userID)
	return args.Bool(0), args.Error(1)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CreditWallet(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, q, userID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletRepository) DebitWallet(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, q, walletID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockMethodRepository is a mock implementation of repository.MethodRepository.
type MockMethodRepository struct {
	mock.Mock
}

func (m *MockMethodRepository) ListMethods(ctx context.Context, q repository.DBExecutor, methodType domain.MethodType) ([]domain.TransactionMethod, error) {
	args := m.Called(ctx, q, methodType)
	return args.Get(0).([]domain.TransactionMethod), args.Error(1)
}

func (m *MockMethodRepository) ListWithdrawMethods(ctx context.Context, q repository.DBExecutor) ([]domain.WithdrawMethod, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.WithdrawMethod), args.Error(1)
}

func (m *MockMethodRepository) GetMethodByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.TransactionMethod, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionMethod), args.Error(1)
}

func (m *MockMethodRepository) UpsertMethod(ctx context.Context, q repository.DBExecutor, method *domain.TransactionMethod) error {
	args := m.Called(ctx, q, method)
	return args.Error(0)
}

func (m *MockMethodRepository) DeleteWithdrawalMethodsExcept(ctx context.Context, q repository.DBExecutor, keep []string) (int64, error) {
	args := m.Called(ctx, q, keep)
	return args.Get(0).(int64), args.Error(1)
}

// MockDepositRepository is a mock implementation of repository.DepositRepository.
type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) CreateDeposit(ctx context.Context, q repository.DBExecutor, deposit *domain.Deposit) error {
	args := m.Called(ctx, q, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) GetDepositByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Deposit, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) ExistsByTransactionID(ctx context.Context, q repository.DBExecutor, transactionID string) (bool, error) {
	args := m.Called(ctx, q, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepositRepository) ListDeposits(ctx context.Context, q repository.DBExecutor) ([]domain.DepositView, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.DepositView), args.Error(1)
}

func (m *MockDepositRepository) UpdateDepositStatus(ctx context.Context, q repository.DBExecutor, id int64, status domain.TransactionStatus) error {
	args := m.Called(ctx, q, id, status)
	return args.Error(0)
}

// MockHistoryRepository is a mock implementation of repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) CreateHistory(ctx context.Context, q repository.DBExecutor, entry *domain.TransactionHistory) error {
	args := m.Called(ctx, q, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListHistoryByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.HistoryView, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.HistoryView), args.Error(1)
}
