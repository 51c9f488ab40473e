// internal/service/method_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"
	"wallet-ledger/pkg/cache"
	"wallet-ledger/pkg/db"
)

const withdrawMethodsCacheKey = "withdraw-methods"

// SeedResult reports what a catalog seeding run changed.
type SeedResult struct {
	Removed  int64 `json:"removed"`
	Upserted int   `json:"upserted"`
}

// MethodService serves the transaction method catalog.
type MethodService interface {
	ListMethods(ctx context.Context, methodType string) ([]domain.TransactionMethod, error)
	GetMethod(ctx context.Context, id int64) (*domain.TransactionMethod, error)
	ListWithdrawMethods(ctx context.Context) ([]domain.WithdrawMethod, error)
	Seed(ctx context.Context) (*SeedResult, error)
}

type methodService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	methodRepo repository.MethodRepository
	cache      cache.Cache
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
	logger     *slog.Logger
}

// NewMethodService creates a new MethodService. Pass cache.Noop{} to disable caching.
func NewMethodService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	methodRepo repository.MethodRepository,
	methodCache cache.Cache,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) MethodService {
	return &methodService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		methodRepo: methodRepo,
		cache:      methodCache,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
		logger:     logger,
	}
}

// ListMethods returns the catalog, optionally restricted to "deposit" or "withdrawal".
func (s *methodService) ListMethods(ctx context.Context, methodType string) ([]domain.TransactionMethod, error) {
	t := domain.MethodType(methodType)
	if t != "" && !t.Valid() {
		return nil, util.ErrInvalidInput
	}
	methods, err := s.methodRepo.ListMethods(ctx, s.dbExecutor, t)
	if err != nil {
		return nil, fmt.Errorf("list methods: %w", err)
	}
	return methods, nil
}

func (s *methodService) GetMethod(ctx context.Context, id int64) (*domain.TransactionMethod, error) {
	method, err := s.methodRepo.GetMethodByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrMethodNotFound
		}
		return nil, fmt.Errorf("get method %d: %w", id, err)
	}
	return method, nil
}

// ListWithdrawMethods serves from the cache when possible. Cache failures are
// logged and fall through to the database.
func (s *methodService) ListWithdrawMethods(ctx context.Context) ([]domain.WithdrawMethod, error) {
	var cached []domain.WithdrawMethod
	found, err := s.cache.Get(ctx, withdrawMethodsCacheKey, &cached)
	if err != nil {
		s.logger.Warn("withdraw methods cache read failed", "error", err)
	}
	if found {
		return cached, nil
	}

	methods, err := s.methodRepo.ListWithdrawMethods(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list withdraw methods: %w", err)
	}
	if err := s.cache.Set(ctx, withdrawMethodsCacheKey, methods); err != nil {
		s.logger.Warn("withdraw methods cache write failed", "error", err)
	}
	return methods, nil
}

// Seed replaces the withdrawal methods with the fixed catalog in one transaction.
// Methods that stay in the catalog keep their IDs, so running Seed again changes nothing.
func (s *methodService) Seed(ctx context.Context) (*SeedResult, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("seed: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("seed: transaction controller does not implement DBExecutor")
	}

	catalog := WithdrawalCatalog()
	names := make([]string, 0, len(catalog))
	for _, m := range catalog {
		names = append(names, m.Name)
	}

	removed, err := s.methodRepo.DeleteWithdrawalMethodsExcept(ctx, txExecutor, names)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	for i := range catalog {
		if err := s.methodRepo.UpsertMethod(ctx, txExecutor, &catalog[i]); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("seed: failed to commit transaction: %w", err)
	}

	if err := s.cache.Delete(ctx, withdrawMethodsCacheKey); err != nil {
		s.logger.Warn("withdraw methods cache invalidation failed", "error", err)
	}
	s.logger.Info("withdrawal methods seeded", "removed", removed, "upserted", len(catalog))
	return &SeedResult{Removed: removed, Upserted: len(catalog)}, nil
}
