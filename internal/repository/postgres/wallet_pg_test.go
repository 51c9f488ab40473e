// internal/repository/postgres/wallet_pg_test.go
package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"wallet-ledger/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepository_GetWalletByUserIDForUpdate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewWalletRepository()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, amount, last_updated FROM wallet WHERE user_id = $1 FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "last_updated"}).AddRow(3, 7, "100.00", time.Now()))

	wallet, err := repo.GetWalletByUserIDForUpdate(context.Background(), db, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), wallet.ID)
	assert.True(t, decimal.NewFromInt(100).Equal(wallet.Amount))
}

func TestWalletRepository_GetWalletByUserID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewWalletRepository()

	mock.ExpectQuery(regexp.QuoteMeta("FROM wallet WHERE user_id = $1")).
		WithArgs(int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetWalletByUserID(context.Background(), db, 8)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestWalletRepository_CreditWallet_Upserts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewWalletRepository()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (user_id) DO UPDATE")).
		WithArgs(int64(5), decimal.NewFromInt(100)).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow("150.00"))

	balance, err := repo.CreditWallet(context.Background(), db, 5, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(balance))
}

func TestWalletRepository_DebitWallet(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewWalletRepository()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE wallet SET amount = amount - $1, last_updated = NOW() WHERE id = $2 RETURNING amount")).
		WithArgs(decimal.NewFromInt(60), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow("40.00"))

	balance, err := repo.DebitWallet(context.Background(), db, 3, decimal.NewFromInt(60))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(balance))
}

func TestWalletRepository_DebitWallet_CheckViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewWalletRepository()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE wallet SET amount = amount - $1")).
		WithArgs(decimal.NewFromInt(60), int64(3)).
		WillReturnError(&pq.Error{Code: "23514"})

	_, err := repo.DebitWallet(context.Background(), db, 3, decimal.NewFromInt(60))
	assert.ErrorIs(t, err, util.ErrInsufficientFunds)
}

func TestPackRepository_HasActivePack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPackRepository()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM user_packs WHERE user_id = $1)")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasActivePack(context.Background(), db, 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserRepository_GetUserByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, phone, created_at FROM users WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByID(context.Background(), db, 404)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
