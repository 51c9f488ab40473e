// internal/service/validation_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/metrics"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"
	"wallet-ledger/pkg/db"

	"github.com/shopspring/decimal"
)

// ValidationResult describes a finalized request.
type ValidationResult struct {
	ID         int64                    `json:"id"`
	Amount     decimal.Decimal          `json:"amount"`
	Status     domain.TransactionStatus `json:"status"`
	NewBalance *decimal.Decimal         `json:"new_balance,omitempty"`
}

// ValidationService moves pending requests to approved or rejected. Each call
// runs as one transaction covering the wallet, the history entry and the status.
type ValidationService interface {
	ValidateDeposit(ctx context.Context, id int64) (*ValidationResult, error)
	RejectDeposit(ctx context.Context, id int64) (*ValidationResult, error)
	ValidateWithdrawal(ctx context.Context, id int64) (*ValidationResult, error)
	RejectWithdrawal(ctx context.Context, id int64) (*ValidationResult, error)
}

type validationService struct {
	dbBeginner     db.DBTxBeginner
	ledger         Ledger
	userRepo       repository.UserRepository
	depositRepo    repository.DepositRepository
	withdrawalRepo repository.WithdrawalRepository
	historyRepo    repository.HistoryRepository
	beginTx        db.BeginTxFunc
	commitTx       db.CommitTxFunc
	rollbackTx     db.RollbackTxFunc
	logger         *slog.Logger
}

// NewValidationService creates a new ValidationService.
func NewValidationService(
	dbBeginner db.DBTxBeginner,
	ledger Ledger,
	userRepo repository.UserRepository,
	depositRepo repository.DepositRepository,
	withdrawalRepo repository.WithdrawalRepository,
	historyRepo repository.HistoryRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) ValidationService {
	return &validationService{
		dbBeginner:     dbBeginner,
		ledger:         ledger,
		userRepo:       userRepo,
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
		historyRepo:    historyRepo,
		beginTx:        beginTx,
		commitTx:       commitTx,
		rollbackTx:     rollbackTx,
		logger:         logger,
	}
}

func (s *validationService) ValidateDeposit(ctx context.Context, id int64) (*ValidationResult, error) {
	res, err := s.finalizeDeposit(ctx, id, domain.TransactionStatusApproved)
	s.observe(metrics.KindDeposit, domain.TransactionStatusApproved, id, err)
	return res, err
}

func (s *validationService) RejectDeposit(ctx context.Context, id int64) (*ValidationResult, error) {
	res, err := s.finalizeDeposit(ctx, id, domain.TransactionStatusRejected)
	s.observe(metrics.KindDeposit, domain.TransactionStatusRejected, id, err)
	return res, err
}

func (s *validationService) ValidateWithdrawal(ctx context.Context, id int64) (*ValidationResult, error) {
	res, err := s.finalizeWithdrawal(ctx, id, domain.TransactionStatusApproved)
	s.observe(metrics.KindWithdrawal, domain.TransactionStatusApproved, id, err)
	return res, err
}

func (s *validationService) RejectWithdrawal(ctx context.Context, id int64) (*ValidationResult, error) {
	res, err := s.finalizeWithdrawal(ctx, id, domain.TransactionStatusRejected)
	s.observe(metrics.KindWithdrawal, domain.TransactionStatusRejected, id, err)
	return res, err
}

// finalizeDeposit locks the deposit row, then (for approvals) the wallet row.
// Every request takes its locks in that order.
func (s *validationService) finalizeDeposit(ctx context.Context, id int64, status domain.TransactionStatus) (*ValidationResult, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("finalize deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("finalize deposit: transaction controller does not implement DBExecutor")
	}

	deposit, err := s.depositRepo.GetDepositByIDForUpdate(ctx, txExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("finalize deposit %d: %w", id, err)
	}
	if deposit.Status.IsFinal() {
		return nil, util.ErrAlreadyProcessed
	}
	if _, err := s.userRepo.GetUserByID(ctx, txExecutor, deposit.UserID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("finalize deposit %d: failed to get user: %w", id, err)
	}

	result := &ValidationResult{ID: deposit.ID, Amount: deposit.Amount, Status: status}
	if status == domain.TransactionStatusApproved {
		balance, err := s.ledger.Credit(ctx, txExecutor, deposit.UserID, deposit.Amount)
		if err != nil {
			return nil, fmt.Errorf("finalize deposit %d: %w", id, err)
		}
		result.NewBalance = &balance
	}

	if err := s.historyRepo.CreateHistory(ctx, txExecutor, domain.HistoryFromDeposit(deposit, status)); err != nil {
		return nil, fmt.Errorf("finalize deposit %d: %w", id, err)
	}
	if err := s.depositRepo.UpdateDepositStatus(ctx, txExecutor, id, status); err != nil {
		return nil, fmt.Errorf("finalize deposit %d: %w", id, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("finalize deposit %d: failed to commit transaction: %w", id, err)
	}
	return result, nil
}

// finalizeWithdrawal re-checks the balance at approval time; an insufficient
// balance leaves the withdrawal pending.
func (s *validationService) finalizeWithdrawal(ctx context.Context, id int64, status domain.TransactionStatus) (*ValidationResult, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("finalize withdrawal: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("finalize withdrawal: transaction controller does not implement DBExecutor")
	}

	withdrawal, err := s.withdrawalRepo.GetWithdrawalByIDForUpdate(ctx, txExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("finalize withdrawal %d: %w", id, err)
	}
	if withdrawal.Status.IsFinal() {
		return nil, util.ErrAlreadyProcessed
	}
	user, err := s.userRepo.GetUserByID(ctx, txExecutor, withdrawal.UserID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("finalize withdrawal %d: failed to get user: %w", id, err)
	}

	result := &ValidationResult{ID: withdrawal.ID, Amount: withdrawal.Amount, Status: status}
	if status == domain.TransactionStatusApproved {
		balance, err := s.ledger.Debit(ctx, txExecutor, withdrawal.UserID, withdrawal.Amount)
		if err != nil {
			return nil, fmt.Errorf("finalize withdrawal %d: %w", id, err)
		}
		result.NewBalance = &balance
	}

	if err := s.historyRepo.CreateHistory(ctx, txExecutor, domain.HistoryFromWithdrawal(withdrawal, user, status)); err != nil {
		return nil, fmt.Errorf("finalize withdrawal %d: %w", id, err)
	}
	if err := s.withdrawalRepo.UpdateWithdrawalStatus(ctx, txExecutor, id, status); err != nil {
		return nil, fmt.Errorf("finalize withdrawal %d: %w", id, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("finalize withdrawal %d: failed to commit transaction: %w", id, err)
	}
	return result, nil
}

func (s *validationService) observe(kind string, status domain.TransactionStatus, id int64, err error) {
	outcome := string(status)
	switch {
	case err == nil:
		s.logger.Info("request finalized", "kind", kind, "id", id, "status", status)
	case util.IsError(err, util.ErrAlreadyProcessed):
		outcome = metrics.OutcomeAlreadyProcessed
	case util.IsError(err, util.ErrInsufficientFunds):
		outcome = metrics.OutcomeInsufficientFunds
	case util.IsError(err, util.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeFailed
		s.logger.Error("request finalization failed", "kind", kind, "id", id, "status", status, "error", err)
	}
	metrics.RecordValidation(kind, outcome)
}
