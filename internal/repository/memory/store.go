// internal/repository/memory/store.go
package memory

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"wallet-ledger/internal/domain"
	"wallet-ledger/pkg/db"

	"github.com/shopspring/decimal"
)

var errNoSQL = errors.New("memory store does not execute SQL")

// Store is an in-process stand-in for the postgres schema. A transaction holds
// the store lock from BeginTx until Commit or Rollback, so transactions run
// one at a time, which is at least as strict as the row locks taken in postgres.
type Store struct {
	mu    sync.Mutex
	state state
}

type state struct {
	seq         map[string]int64
	users       map[int64]domain.User
	packs       map[int64]int
	wallets     map[int64]domain.Wallet // keyed by user id
	methods     map[int64]domain.TransactionMethod
	deposits    map[int64]domain.Deposit
	withdrawals map[int64]domain.Withdrawal
	history     []domain.TransactionHistory
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: state{
		seq:         map[string]int64{},
		users:       map[int64]domain.User{},
		packs:       map[int64]int{},
		wallets:     map[int64]domain.Wallet{},
		methods:     map[int64]domain.TransactionMethod{},
		deposits:    map[int64]domain.Deposit{},
		withdrawals: map[int64]domain.Withdrawal{},
	}}
}

func (st *state) nextID(table string) int64 {
	st.seq[table]++
	return st.seq[table]
}

func (st state) clone() state {
	c := state{
		seq:         make(map[string]int64, len(st.seq)),
		users:       make(map[int64]domain.User, len(st.users)),
		packs:       make(map[int64]int, len(st.packs)),
		wallets:     make(map[int64]domain.Wallet, len(st.wallets)),
		methods:     make(map[int64]domain.TransactionMethod, len(st.methods)),
		deposits:    make(map[int64]domain.Deposit, len(st.deposits)),
		withdrawals: make(map[int64]domain.Withdrawal, len(st.withdrawals)),
		history:     append([]domain.TransactionHistory(nil), st.history...),
	}
	for k, v := range st.seq {
		c.seq[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.packs {
		c.packs[k] = v
	}
	for k, v := range st.wallets {
		c.wallets[k] = v
	}
	for k, v := range st.methods {
		c.methods[k] = v
	}
	for k, v := range st.deposits {
		c.deposits[k] = v
	}
	for k, v := range st.withdrawals {
		c.withdrawals[k] = v
	}
	return c
}

// view runs fn against the store state. Calls made through a *Tx already hold
// the lock; calls made through the Store itself take it for their duration.
func (s *Store) view(q interface{}, fn func(st *state) error) error {
	if _, inTx := q.(*Tx); !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(&s.state)
}

// BeginTx matches db.BeginTxFunc. The beginner argument is ignored.
func (s *Store) BeginTx(ctx context.Context, _ db.DBTxBeginner) (db.TxController, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &Tx{store: s, snapshot: s.state.clone()}, nil
}

// Tx is a serialized transaction over a Store.
type Tx struct {
	store    *Store
	snapshot state
	done     bool
}

// Commit keeps every change made since BeginTx.
func (t *Tx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// Rollback restores the state captured by BeginTx.
func (t *Tx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.store.state = t.snapshot
	t.store.mu.Unlock()
	return nil
}

// The DBExecutor methods exist so that services can hand a Store or Tx to
// repositories; the memory repositories never call them.

func (s *Store) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return errNoSQL
}

func (s *Store) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return errNoSQL
}

func (s *Store) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errNoSQL
}

func (t *Tx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return errNoSQL
}

func (t *Tx) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return errNoSQL
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errNoSQL
}

// AddUser registers a user and returns it with its assigned ID.
func (s *Store) AddUser(username string, phone *string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := domain.User{ID: s.state.nextID("users"), Username: username, Phone: phone, CreatedAt: time.Now().UTC()}
	s.state.users[u.ID] = u
	return u
}

// AddPack attaches one pack to the user.
func (s *Store) AddPack(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.packs[userID]++
}

// AddMethod stores a catalog entry and returns it with its assigned ID.
func (s *Store) AddMethod(m domain.TransactionMethod) domain.TransactionMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.state.nextID("transaction_methods")
	m.CreatedAt = time.Now().UTC()
	s.state.methods[m.ID] = m
	return m
}

// RemoveMethod deletes a method, nulling every reference to it.
func (s *Store) RemoveMethod(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.deleteMethod(id)
}

// SetBalance creates or overwrites the user's wallet.
func (s *Store) SetBalance(userID int64, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.state.wallets[userID]
	if !ok {
		w = domain.Wallet{ID: s.state.nextID("wallet"), UserID: userID}
	}
	w.Amount = amount
	w.LastUpdated = time.Now().UTC()
	s.state.wallets[userID] = w
}

func (st *state) deleteMethod(id int64) {
	delete(st.methods, id)
	for k, d := range st.deposits {
		if d.MethodID != nil && *d.MethodID == id {
			d.MethodID = nil
			st.deposits[k] = d
		}
	}
	for k, w := range st.withdrawals {
		if w.MethodID != nil && *w.MethodID == id {
			w.MethodID = nil
			st.withdrawals[k] = w
		}
	}
	for i, h := range st.history {
		if h.MethodID != nil && *h.MethodID == id {
			st.history[i].MethodID = nil
		}
	}
}

func (st *state) methodName(id *int64) *string {
	if id == nil {
		return nil
	}
	m, ok := st.methods[*id]
	if !ok {
		return nil
	}
	name := m.Name
	return &name
}
