// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package processor

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/cache"
	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/registry"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/token"
)

var logger = log.WithContext("pkg", "processor")

// DefaultCacheSize is the number of committed entries kept in memory.
const DefaultCacheSize = 4096

// Options of a Processor.
type Options struct {
	CacheSize int
	Params    staker.Params
}

// Tx is what an operation runs against. Everything it changes is
// committed together or not at all.
type Tx struct {
	Staker  *staker.Staker
	Tokens  *token.Ledger
	State   *state.State
	Signers ledger.Signers
}

// Processor serializes operations over a store.
type Processor struct {
	mu       sync.RWMutex
	store    *cache.Store
	registry registry.Registry
	clock    clockwork.Clock
	params   staker.Params
}

// New creates a processor over db.
func New(db kv.Store, reg registry.Registry, clock clockwork.Clock, opts Options) (*Processor, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	store, err := cache.NewStore(db, size)
	if err != nil {
		return nil, errors.Wrap(err, "new cache")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Processor{
		store:    store,
		registry: reg,
		clock:    clock,
		params:   opts.Params,
	}, nil
}

func (p *Processor) newTx(signers ledger.Signers) *Tx {
	st := state.New(p.store)
	tokens := token.New(st)
	return &Tx{
		Staker:  staker.New(st, p.registry, tokens, p.clock, signers, p.params),
		Tokens:  tokens,
		State:   st,
		Signers: signers,
	}
}

// Execute runs fn as operation op authorized by signers. The changes fn makes
// are committed in one batch if it returns nil, and dropped otherwise.
func (p *Processor) Execute(op string, signers ledger.Signers, fn func(tx *Tx) error) (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	startTime := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
			if reverts.IsRevertErr(err) {
				result = "revert"
			}
		}
		metricOperationCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
		metricOperationDuration().ObserveWithLabels(time.Since(startTime).Milliseconds(), map[string]string{"op": op})
		p.reportCache()
	}()

	tx := p.newTx(signers)
	if err := fn(tx); err != nil {
		logger.Warn("operation reverted", "op", op, "code", reverts.CodeOf(err), "err", err)
		return err
	}

	stage := tx.State.Stage()
	if err := stage.Commit(p.store.Bulk()); err != nil {
		return errors.Wrapf(err, "commit %v", op)
	}
	logger.Debug("operation committed", "op", op, "changes", stage.Len(), "elapsed", time.Since(startTime))
	return nil
}

// View runs fn without committing anything.
func (p *Processor) View(fn func(tx *Tx) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return fn(p.newTx(nil))
}

func (p *Processor) reportCache() {
	changed, hit, miss := p.store.Stats()
	if changed {
		logger.Debug("account cache stats", "hit", hit, "miss", miss)
	}
	metricCacheHitMiss().SetWithLabel(hit, map[string]string{"event": "hit"})
	metricCacheHitMiss().SetWithLabel(miss, map[string]string{"event": "miss"})
}
