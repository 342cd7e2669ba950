// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/genesis"
	"github.com/MuhKar1/Counter-dApp/pda"
	"github.com/MuhKar1/Counter-dApp/state"
	"github.com/MuhKar1/Counter-dApp/storage"
	"github.com/MuhKar1/Counter-dApp/tstate"
	"github.com/MuhKar1/Counter-dApp/utils"
)

// VM hosts the counter state machine: it owns the backing store, parses and
// verifies submitted transactions, and applies them one at a time. Every
// transaction executes against a scoped buffered view and commits only if
// all of its actions succeed.
type VM struct {
	log     *zap.Logger
	genesis *genesis.Genesis
	metrics *metrics

	actionRegistry *chain.ActionRegistry
	authRegistry   *chain.AuthRegistry
	sm             chain.StateManager

	// stateLock serializes execute+commit against reads. Scoped state keys
	// would admit per-key scheduling but a single writer is plenty here.
	stateLock sync.RWMutex
	db        database.Database
	mu        state.Mutable

	// now is swapped out in tests for deterministic timestamps.
	now func() int64
}

func New(
	ctx context.Context,
	log *zap.Logger,
	gen *genesis.Genesis,
	metricsRegistry prometheus.Registerer,
) (*VM, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if gen == nil {
		gen = genesis.Default()
	}
	if metricsRegistry == nil {
		metricsRegistry = prometheus.NewRegistry()
	}
	actionRegistry, authRegistry, err := NewRegistries()
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(metricsRegistry)
	if err != nil {
		return nil, err
	}

	db := memdb.New()
	mu := &dbState{db: db}
	if err := gen.InitializeState(ctx, mu); err != nil {
		return nil, err
	}
	log.Info("initialized state",
		zap.Int("allocations", len(gen.CustomAllocation)),
		zap.Stringer("chainID", gen.Rules.GetChainID()),
	)

	return &VM{
		log:            log,
		genesis:        gen,
		metrics:        m,
		actionRegistry: actionRegistry,
		authRegistry:   authRegistry,
		sm:             &storage.StateManager{},
		db:             db,
		mu:             mu,
		now:            func() int64 { return utils.UnixRMilli(-1, 0) },
	}, nil
}

func (v *VM) Rules() chain.Rules { return v.genesis.Rules }

func (v *VM) Genesis() *genesis.Genesis { return v.genesis }

func (v *VM) Registries() (*chain.ActionRegistry, *chain.AuthRegistry) {
	return v.actionRegistry, v.authRegistry
}

func (v *VM) Close() error { return v.db.Close() }

// ErrExtraBytes is returned when signed transaction bytes carry trailing
// garbage past the parsed transaction.
var ErrExtraBytes = errors.New("tx has extra bytes")

// SubmitTx parses raw signed transaction bytes and executes them.
func (v *VM) SubmitTx(ctx context.Context, txBytes []byte) (ids.ID, []codec.Typed, error) {
	p := codec.NewReader(txBytes, consts.NetworkSizeLimit)
	tx, err := chain.UnmarshalTx(p, v.actionRegistry, v.authRegistry)
	if err != nil {
		return ids.Empty, nil, err
	}
	if !p.Empty() {
		return ids.Empty, nil, ErrExtraBytes
	}
	outputs, err := v.Submit(ctx, tx)
	return tx.ID(), outputs, err
}

// Submit validates, executes, and commits a parsed transaction.
func (v *VM) Submit(ctx context.Context, tx *chain.Transaction) ([]codec.Typed, error) {
	v.metrics.txsSubmitted.Inc()
	timestamp := v.now()

	if err := tx.PreExecute(v.genesis.Rules, timestamp); err != nil {
		v.metrics.txsRejected.Inc()
		return nil, err
	}
	if err := tx.Verify(ctx); err != nil {
		v.metrics.txsRejected.Inc()
		return nil, err
	}
	stateKeys, err := tx.StateKeys(v.sm)
	if err != nil {
		v.metrics.txsRejected.Inc()
		return nil, err
	}

	v.stateLock.Lock()
	defer v.stateLock.Unlock()

	view := tstate.NewView(stateKeys, v.mu)
	outputs, err := tx.Execute(ctx, v.genesis.Rules, view, timestamp)
	if err != nil {
		// Dropping the view discards everything the transaction wrote.
		v.metrics.txsRejected.Inc()
		v.log.Debug("transaction rejected",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return nil, err
	}
	if err := view.Commit(ctx, v.mu); err != nil {
		v.metrics.txsRejected.Inc()
		return nil, err
	}
	v.metrics.txsAccepted.Inc()
	v.log.Info("transaction accepted",
		zap.Stringer("txID", tx.ID()),
		zap.Int("actions", len(tx.Actions)),
		zap.Stringer("actor", tx.Auth.Actor()),
	)
	return outputs, nil
}

// ReadState serves point lookups against committed state. It matches
// [storage.ReadState] so query helpers can be shared with the RPC layer.
func (v *VM) ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error) {
	v.stateLock.RLock()
	defer v.stateLock.RUnlock()

	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		values[i], errs[i] = v.mu.GetValue(ctx, key)
	}
	v.metrics.stateReads.Add(float64(len(keys)))
	return values, errs
}

// ReadCounter resolves [identity]'s derived counter address and returns the
// record there, or [database.ErrNotFound] if none exists.
func (v *VM) ReadCounter(ctx context.Context, identity codec.Address) (codec.Address, *storage.CounterAccount, error) {
	addr, _, err := pda.Derive([]byte(consts.Namespace), identity)
	if err != nil {
		return codec.EmptyAddress, nil, err
	}
	account, err := storage.GetCounterFromState(ctx, v.ReadState, addr)
	if err != nil {
		return addr, nil, err
	}
	return addr, account, nil
}

// ReadBalance returns [addr]'s native balance (0 if no record exists).
func (v *VM) ReadBalance(ctx context.Context, addr codec.Address) (uint64, error) {
	return storage.GetBalanceFromState(ctx, v.ReadState, addr)
}

var (
	_ state.Immutable = (*dbState)(nil)
	_ state.Mutable   = (*dbState)(nil)
)

// dbState adapts a [database.Database] to the state interfaces actions are
// written against.
type dbState struct {
	db database.Database
}

func (s *dbState) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return s.db.Get(key)
}

func (s *dbState) Insert(_ context.Context, key []byte, value []byte) error {
	return s.db.Put(key, value)
}

func (s *dbState) Remove(_ context.Context, key []byte) error {
	return s.db.Delete(key)
}
