// internal/repository/postgres/request_pg_test.go
package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositRepository_CreateDeposit(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDepositRepository()
	deposit := domain.NewDeposit(5, 2, "alice", nil, "TX-1", nil, decimal.NewFromInt(100), "")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO deposits")).
		WithArgs(int64(5), sqlmock.AnyArg(), "alice", nil, "TX-1", nil, decimal.NewFromInt(100), "FCFA", "pending", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	require.NoError(t, repo.CreateDeposit(context.Background(), db, deposit))
	assert.Equal(t, int64(11), deposit.ID)
}

func TestDepositRepository_CreateDeposit_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDepositRepository()
	deposit := domain.NewDeposit(5, 2, "alice", nil, "TX-1", nil, decimal.NewFromInt(100), "")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO deposits")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "deposits_transaction_id_key"})

	err := repo.CreateDeposit(context.Background(), db, deposit)
	assert.ErrorIs(t, err, util.ErrDuplicateTransaction)
}

func TestDepositRepository_UpdateDepositStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDepositRepository()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE deposits SET status = $1 WHERE id = $2 AND status = $3")).
		WithArgs("approved", int64(11), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateDepositStatus(context.Background(), db, 11, domain.TransactionStatusApproved))
}

func TestDepositRepository_UpdateDepositStatus_AlreadyProcessed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDepositRepository()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE deposits SET status = $1")).
		WithArgs("rejected", int64(11), "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDepositStatus(context.Background(), db, 11, domain.TransactionStatusRejected)
	assert.ErrorIs(t, err, util.ErrAlreadyProcessed)
}

func TestDepositRepository_ListDeposits(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDepositRepository()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "method_id", "username", "phone", "transaction_id", "country", "amount", "currency", "status", "created_at", "method_name"}).
		AddRow(2, 5, nil, "alice", nil, "TX-2", nil, "50.00", "FCFA", "pending", now, nil).
		AddRow(1, 5, 3, "alice", "+2250700", "TX-1", "CI", "100.00", "FCFA", "approved", now.Add(-time.Hour), "Orange Money")
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN transaction_methods m ON m.id = d.method_id")).WillReturnRows(rows)

	deposits, err := repo.ListDeposits(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, deposits, 2)
	assert.Nil(t, deposits[0].MethodName)
	assert.Nil(t, deposits[0].MethodID)
	require.NotNil(t, deposits[1].MethodName)
	assert.Equal(t, "Orange Money", *deposits[1].MethodName)
	assert.Equal(t, domain.TransactionStatusApproved, deposits[1].Status)
}

func TestWithdrawalRepository_GetWithdrawalByIDForUpdate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewWithdrawalRepository()

	mock.ExpectQuery(regexp.QuoteMeta("FROM withdrawals WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "method_id", "address", "amount", "status", "created_at"}).
			AddRow(4, 5, 9, "+2250700", "60.00", "pending", time.Now()))

	withdrawal, err := repo.GetWithdrawalByIDForUpdate(context.Background(), db, 4)
	require.NoError(t, err)
	assert.Equal(t, "WDR-4", withdrawal.Reference())
	assert.True(t, decimal.NewFromInt(60).Equal(withdrawal.Amount))
}

func TestWithdrawalRepository_UpdateWithdrawalStatus_AlreadyProcessed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewWithdrawalRepository()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE withdrawals SET status = $1 WHERE id = $2 AND status = $3")).
		WithArgs("approved", int64(4), "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateWithdrawalStatus(context.Background(), db, 4, domain.TransactionStatusApproved)
	assert.ErrorIs(t, err, util.ErrAlreadyProcessed)
}

func TestHistoryRepository_CreateHistory(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewHistoryRepository()
	w := &domain.Withdrawal{ID: 4, UserID: 5, Amount: decimal.NewFromInt(60)}
	entry := domain.HistoryFromWithdrawal(w, &domain.User{ID: 5, Username: "alice"}, domain.TransactionStatusApproved)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transaction_history")).
		WithArgs(int64(5), nil, "alice", nil, "WDR-4", nil, decimal.NewFromInt(60), "approved", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, repo.CreateHistory(context.Background(), db, entry))
	assert.Equal(t, int64(1), entry.ID)
}
