// internal/service/request_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/metrics"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"

	"github.com/shopspring/decimal"
)

// CreateDepositInput is a user's deposit declaration.
type CreateDepositInput struct {
	UserID        int64
	Username      string
	Phone         *string
	Amount        decimal.Decimal
	TransactionID string
	MethodID      int64
	Currency      string
	Country       *string
}

// CreateWithdrawalInput is a user's withdrawal request.
type CreateWithdrawalInput struct {
	UserID   int64
	MethodID int64
	Address  string
	Amount   decimal.Decimal
}

// RequestService creates and lists deposit and withdrawal requests.
type RequestService interface {
	CreateDeposit(ctx context.Context, in CreateDepositInput) (*domain.DepositView, error)
	ListDeposits(ctx context.Context) ([]domain.DepositView, error)
	CreateWithdrawal(ctx context.Context, in CreateWithdrawalInput) (*domain.WithdrawalView, error)
	ListWithdrawals(ctx context.Context) ([]domain.WithdrawalView, error)
}

type requestService struct {
	dbExecutor     repository.DBExecutor
	userRepo       repository.UserRepository
	packRepo       repository.PackRepository
	walletRepo     repository.WalletRepository
	methodRepo     repository.MethodRepository
	depositRepo    repository.DepositRepository
	withdrawalRepo repository.WithdrawalRepository
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	packRepo repository.PackRepository,
	walletRepo repository.WalletRepository,
	methodRepo repository.MethodRepository,
	depositRepo repository.DepositRepository,
	withdrawalRepo repository.WithdrawalRepository,
) RequestService {
	return &requestService{
		dbExecutor:     dbExecutor,
		userRepo:       userRepo,
		packRepo:       packRepo,
		walletRepo:     walletRepo,
		methodRepo:     methodRepo,
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// CreateDeposit records a pending deposit. Checks run in order: method, user,
// then transaction id uniqueness.
func (s *requestService) CreateDeposit(ctx context.Context, in CreateDepositInput) (*domain.DepositView, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	if in.UserID <= 0 || in.MethodID <= 0 || !domain.ValidAmount(in.Amount) || in.Username == "" || in.TransactionID == "" {
		return nil, util.ErrInvalidInput
	}

	method, err := s.methodRepo.GetMethodByID(ctx, s.dbExecutor, in.MethodID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrMethodNotFound
		}
		return nil, fmt.Errorf("create deposit: failed to get method %d: %w", in.MethodID, err)
	}

	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, in.UserID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("create deposit: failed to get user %d: %w", in.UserID, err)
	}

	exists, err := s.depositRepo.ExistsByTransactionID(ctx, s.dbExecutor, in.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("create deposit: %w", err)
	}
	if exists {
		return nil, util.ErrDuplicateTransaction
	}

	deposit := domain.NewDeposit(in.UserID, method.ID, in.Username, in.Phone, in.TransactionID, in.Country, in.Amount, strings.TrimSpace(in.Currency))
	// The unique index still catches a concurrent submission that passed the check above.
	if err := s.depositRepo.CreateDeposit(ctx, s.dbExecutor, deposit); err != nil {
		if util.IsError(err, util.ErrDuplicateTransaction) {
			return nil, util.ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("create deposit: %w", err)
	}

	metrics.RecordRequestCreated(metrics.KindDeposit)
	name := method.Name
	return &domain.DepositView{Deposit: *deposit, MethodName: &name}, nil
}

// ListDeposits returns all deposits, newest first.
func (s *requestService) ListDeposits(ctx context.Context) ([]domain.DepositView, error) {
	deposits, err := s.depositRepo.ListDeposits(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	return deposits, nil
}

// CreateWithdrawal records a pending withdrawal. Checks run in order: user,
// method type, balance, then the active pack requirement.
func (s *requestService) CreateWithdrawal(ctx context.Context, in CreateWithdrawalInput) (*domain.WithdrawalView, error) {
	in.Address = strings.TrimSpace(in.Address)
	if in.UserID <= 0 || in.MethodID <= 0 || !domain.ValidAmount(in.Amount) || in.Address == "" {
		return nil, util.ErrInvalidInput
	}

	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, in.UserID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("create withdrawal: failed to get user %d: %w", in.UserID, err)
	}

	method, err := s.methodRepo.GetMethodByID(ctx, s.dbExecutor, in.MethodID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrInvalidMethod
		}
		return nil, fmt.Errorf("create withdrawal: failed to get method %d: %w", in.MethodID, err)
	}
	if method.Type != domain.MethodTypeWithdrawal {
		return nil, util.ErrInvalidMethod
	}

	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, in.UserID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrInsufficientFunds
		}
		return nil, fmt.Errorf("create withdrawal: failed to get wallet of user %d: %w", in.UserID, err)
	}
	if wallet.Amount.LessThan(in.Amount) {
		return nil, util.ErrInsufficientFunds
	}

	hasPack, err := s.packRepo.HasActivePack(ctx, s.dbExecutor, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("create withdrawal: %w", err)
	}
	if !hasPack {
		return nil, util.ErrNoActivePack
	}

	withdrawal := domain.NewWithdrawal(in.UserID, method.ID, in.Address, in.Amount)
	if err := s.withdrawalRepo.CreateWithdrawal(ctx, s.dbExecutor, withdrawal); err != nil {
		return nil, fmt.Errorf("create withdrawal: %w", err)
	}

	metrics.RecordRequestCreated(metrics.KindWithdrawal)
	name := method.Name
	return &domain.WithdrawalView{Withdrawal: *withdrawal, MethodName: &name}, nil
}

// ListWithdrawals returns all withdrawals, newest first.
func (s *requestService) ListWithdrawals(ctx context.Context) ([]domain.WithdrawalView, error) {
	withdrawals, err := s.withdrawalRepo.ListWithdrawals(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	return withdrawals, nil
}
