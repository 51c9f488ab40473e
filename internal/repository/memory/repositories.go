// internal/repository/memory/repositories.go
package memory

import (
	"context"
	"sort"
	"time"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"

	"github.com/shopspring/decimal"
)

// UserRepository implements repository.UserRepository over a Store.
type UserRepository struct{ store *Store }

// PackRepository implements repository.PackRepository over a Store.
type PackRepository struct{ store *Store }

// WalletRepository implements repository.WalletRepository over a Store.
type WalletRepository struct{ store *Store }

// MethodRepository implements repository.MethodRepository over a Store.
type MethodRepository struct{ store *Store }

// DepositRepository implements repository.DepositRepository over a Store.
type DepositRepository struct{ store *Store }

// WithdrawalRepository implements repository.WithdrawalRepository over a Store.
type WithdrawalRepository struct{ store *Store }

// HistoryRepository implements repository.HistoryRepository over a Store.
type HistoryRepository struct{ store *Store }

func (s *Store) Users() *UserRepository             { return &UserRepository{s} }
func (s *Store) Packs() *PackRepository             { return &PackRepository{s} }
func (s *Store) Wallets() *WalletRepository         { return &WalletRepository{s} }
func (s *Store) Methods() *MethodRepository         { return &MethodRepository{s} }
func (s *Store) Deposits() *DepositRepository       { return &DepositRepository{s} }
func (s *Store) Withdrawals() *WithdrawalRepository { return &WithdrawalRepository{s} }
func (s *Store) History() *HistoryRepository        { return &HistoryRepository{s} }

var (
	_ repository.UserRepository       = (*UserRepository)(nil)
	_ repository.PackRepository       = (*PackRepository)(nil)
	_ repository.WalletRepository     = (*WalletRepository)(nil)
	_ repository.MethodRepository     = (*MethodRepository)(nil)
	_ repository.DepositRepository    = (*DepositRepository)(nil)
	_ repository.WithdrawalRepository = (*WithdrawalRepository)(nil)
	_ repository.HistoryRepository    = (*HistoryRepository)(nil)
)

func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	var user domain.User
	err := r.store.view(q, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return util.ErrNotFound
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PackRepository) HasActivePack(ctx context.Context, q repository.DBExecutor, userID int64) (bool, error) {
	var has bool
	err := r.store.view(q, func(st *state) error {
		has = st.packs[userID] > 0
		return nil
	})
	return has, err
}

func (r *WalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := r.store.view(q, func(st *state) error {
		w, ok := st.wallets[userID]
		if !ok {
			return util.ErrNotFound
		}
		wallet = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetWalletByUserIDForUpdate needs no extra locking: the enclosing Tx holds the store.
func (r *WalletRepository) GetWalletByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	return r.GetWalletByUserID(ctx, q, userID)
}

func (r *WalletRepository) CreditWallet(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.store.view(q, func(st *state) error {
		w, ok := st.wallets[userID]
		if !ok {
			w = domain.Wallet{ID: st.nextID("wallet"), UserID: userID}
		}
		w.Amount = w.Amount.Add(amount)
		w.LastUpdated = time.Now().UTC()
		st.wallets[userID] = w
		balance = w.Amount
		return nil
	})
	return balance, err
}

// DebitWallet refuses to go below zero, mirroring the CHECK constraint on wallet.amount.
func (r *WalletRepository) DebitWallet(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.store.view(q, func(st *state) error {
		for userID, w := range st.wallets {
			if w.ID != walletID {
				continue
			}
			next := w.Amount.Sub(amount)
			if next.IsNegative() {
				return util.ErrInsufficientFunds
			}
			w.Amount = next
			w.LastUpdated = time.Now().UTC()
			st.wallets[userID] = w
			balance = next
			return nil
		}
		return util.ErrNotFound
	})
	return balance, err
}

func (r *MethodRepository) ListMethods(ctx context.Context, q repository.DBExecutor, methodType domain.MethodType) ([]domain.TransactionMethod, error) {
	methods := []domain.TransactionMethod{}
	err := r.store.view(q, func(st *state) error {
		for _, m := range st.methods {
			if methodType == "" || m.Type == methodType {
				methods = append(methods, m)
			}
		}
		return nil
	})
	sort.Slice(methods, func(i, j int) bool { return methods[i].ID < methods[j].ID })
	return methods, err
}

func (r *MethodRepository) ListWithdrawMethods(ctx context.Context, q repository.DBExecutor) ([]domain.WithdrawMethod, error) {
	all, err := r.ListMethods(ctx, q, domain.MethodTypeWithdrawal)
	if err != nil {
		return nil, err
	}
	methods := make([]domain.WithdrawMethod, 0, len(all))
	for _, m := range all {
		methods = append(methods, domain.WithdrawMethod{ID: m.ID, Name: m.Name, IconURL: m.IconURL, Country: m.Country})
	}
	return methods, nil
}

func (r *MethodRepository) GetMethodByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.TransactionMethod, error) {
	var method domain.TransactionMethod
	err := r.store.view(q, func(st *state) error {
		m, ok := st.methods[id]
		if !ok {
			return util.ErrNotFound
		}
		method = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *MethodRepository) UpsertMethod(ctx context.Context, q repository.DBExecutor, method *domain.TransactionMethod) error {
	return r.store.view(q, func(st *state) error {
		for id, m := range st.methods {
			if m.Name == method.Name {
				method.ID = id
				method.CreatedAt = m.CreatedAt
				st.methods[id] = *method
				return nil
			}
		}
		method.ID = st.nextID("transaction_methods")
		method.CreatedAt = time.Now().UTC()
		st.methods[method.ID] = *method
		return nil
	})
}

func (r *MethodRepository) DeleteWithdrawalMethodsExcept(ctx context.Context, q repository.DBExecutor, keep []string) (int64, error) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		keepSet[name] = struct{}{}
	}
	var removed int64
	err := r.store.view(q, func(st *state) error {
		for id, m := range st.methods {
			if m.Type != domain.MethodTypeWithdrawal {
				continue
			}
			if _, ok := keepSet[m.Name]; ok {
				continue
			}
			st.deleteMethod(id)
			removed++
		}
		return nil
	})
	return removed, err
}

func (r *DepositRepository) CreateDeposit(ctx context.Context, q repository.DBExecutor, deposit *domain.Deposit) error {
	return r.store.view(q, func(st *state) error {
		for _, d := range st.deposits {
			if d.TransactionID == deposit.TransactionID {
				return util.ErrDuplicateTransaction
			}
		}
		deposit.ID = st.nextID("deposits")
		st.deposits[deposit.ID] = *deposit
		return nil
	})
}

func (r *DepositRepository) GetDepositByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Deposit, error) {
	var deposit domain.Deposit
	err := r.store.view(q, func(st *state) error {
		d, ok := st.deposits[id]
		if !ok {
			return util.ErrNotFound
		}
		deposit = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deposit, nil
}

func (r *DepositRepository) GetDepositByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Deposit, error) {
	return r.GetDepositByID(ctx, q, id)
}

func (r *DepositRepository) ExistsByTransactionID(ctx context.Context, q repository.DBExecutor, transactionID string) (bool, error) {
	var exists bool
	err := r.store.view(q, func(st *state) error {
		for _, d := range st.deposits {
			if d.TransactionID == transactionID {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

func (r *DepositRepository) ListDeposits(ctx context.Context, q repository.DBExecutor) ([]domain.DepositView, error) {
	deposits := []domain.DepositView{}
	err := r.store.view(q, func(st *state) error {
		for _, d := range st.deposits {
			deposits = append(deposits, domain.DepositView{Deposit: d, MethodName: st.methodName(d.MethodID)})
		}
		return nil
	})
	sort.Slice(deposits, func(i, j int) bool {
		return newerFirst(deposits[i].CreatedAt, deposits[i].ID, deposits[j].CreatedAt, deposits[j].ID)
	})
	return deposits, err
}

func (r *DepositRepository) UpdateDepositStatus(ctx context.Context, q repository.DBExecutor, id int64, status domain.TransactionStatus) error {
	return r.store.view(q, func(st *state) error {
		d, ok := st.deposits[id]
		if !ok || d.Status != domain.TransactionStatusPending {
			return util.ErrAlreadyProcessed
		}
		d.Status = status
		st.deposits[id] = d
		return nil
	})
}

func (r *WithdrawalRepository) CreateWithdrawal(ctx context.Context, q repository.DBExecutor, withdrawal *domain.Withdrawal) error {
	return r.store.view(q, func(st *state) error {
		withdrawal.ID = st.nextID("withdrawals")
		st.withdrawals[withdrawal.ID] = *withdrawal
		return nil
	})
}

func (r *WithdrawalRepository) GetWithdrawalByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Withdrawal, error) {
	var withdrawal domain.Withdrawal
	err := r.store.view(q, func(st *state) error {
		w, ok := st.withdrawals[id]
		if !ok {
			return util.ErrNotFound
		}
		withdrawal = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

func (r *WithdrawalRepository) GetWithdrawalByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Withdrawal, error) {
	return r.GetWithdrawalByID(ctx, q, id)
}

func (r *WithdrawalRepository) ListWithdrawals(ctx context.Context, q repository.DBExecutor) ([]domain.WithdrawalView, error) {
	withdrawals := []domain.WithdrawalView{}
	err := r.store.view(q, func(st *state) error {
		for _, w := range st.withdrawals {
			withdrawals = append(withdrawals, domain.WithdrawalView{Withdrawal: w, MethodName: st.methodName(w.MethodID)})
		}
		return nil
	})
	sort.Slice(withdrawals, func(i, j int) bool {
		return newerFirst(withdrawals[i].CreatedAt, withdrawals[i].ID, withdrawals[j].CreatedAt, withdrawals[j].ID)
	})
	return withdrawals, err
}

func (r *WithdrawalRepository) UpdateWithdrawalStatus(ctx context.Context, q repository.DBExecutor, id int64, status domain.TransactionStatus) error {
	return r.store.view(q, func(st *state) error {
		w, ok := st.withdrawals[id]
		if !ok || w.Status != domain.TransactionStatusPending {
			return util.ErrAlreadyProcessed
		}
		w.Status = status
		st.withdrawals[id] = w
		return nil
	})
}

func (r *HistoryRepository) CreateHistory(ctx context.Context, q repository.DBExecutor, entry *domain.TransactionHistory) error {
	return r.store.view(q, func(st *state) error {
		entry.ID = st.nextID("transaction_history")
		st.history = append(st.history, *entry)
		return nil
	})
}

func (r *HistoryRepository) ListHistoryByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.HistoryView, error) {
	entries := []domain.HistoryView{}
	err := r.store.view(q, func(st *state) error {
		for _, h := range st.history {
			if h.UserID == userID {
				entries = append(entries, domain.HistoryView{TransactionHistory: h, MethodName: st.methodName(h.MethodID)})
			}
		}
		return nil
	})
	sort.Slice(entries, func(i, j int) bool {
		return newerFirst(entries[i].CreatedAt, entries[i].ID, entries[j].CreatedAt, entries[j].ID)
	})
	return entries, err
}

func newerFirst(at time.Time, id int64, bt time.Time, bid int64) bool {
	if at.Equal(bt) {
		return id > bid
	}
	return at.After(bt)
}
