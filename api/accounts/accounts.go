// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/api/utils"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/processor"
)

// Query reads the view of account id.
type Query func(tx *processor.Tx, id ledger.Identity) (any, error)

func queryCentralState(tx *processor.Tx, _ ledger.Identity) (any, error) {
	cs, err := tx.Staker.CentralState()
	if err != nil {
		return nil, err
	}
	id, _, err := tx.Staker.CentralStateAddress()
	if err != nil {
		return nil, err
	}
	return convertCentralState(id, cs), nil
}

func queryPool(tx *processor.Tx, id ledger.Identity) (any, error) {
	p, err := tx.Staker.StakePool(id)
	if err != nil {
		return nil, err
	}
	return convertPool(p), nil
}

func queryStakeAccount(tx *processor.Tx, id ledger.Identity) (any, error) {
	sa, err := tx.Staker.StakeAccount(id)
	if err != nil {
		return nil, err
	}
	// nothing accrues on an empty stake, and the pool may be empty too
	var pending uint64
	if sa.StakeAmount > 0 {
		if pending, err = tx.Staker.PendingRewards(id); err != nil {
			return nil, err
		}
	}
	return convertStakeAccount(sa, pending), nil
}

func queryBond(tx *processor.Tx, id ledger.Identity) (any, error) {
	b, err := tx.Staker.Bond(id)
	if err != nil {
		return nil, err
	}
	return convertBond(b), nil
}

func queryTokenAccount(tx *processor.Tx, id ledger.Identity) (any, error) {
	acc, err := tx.Tokens.Account(id)
	if err != nil {
		return nil, err
	}
	return convertTokenAccount(acc), nil
}

// Queries maps each account kind to its lookup.
var Queries = map[string]Query{
	"central-state":  queryCentralState,
	"pools":          queryPool,
	"stake-accounts": queryStakeAccount,
	"bonds":          queryBond,
	"tokens":         queryTokenAccount,
}

// Lookup returns the view of account id of the given kind.
func Lookup(proc *processor.Processor, kind string, id ledger.Identity) (any, error) {
	q, ok := Queries[kind]
	if !ok {
		return nil, errors.Errorf("unknown account kind %q", kind)
	}
	var result any
	err := proc.View(func(tx *processor.Tx) error {
		var err error
		result, err = q(tx, id)
		return err
	})
	return result, err
}

// Accounts serves read only views of the ledger accounts.
type Accounts struct {
	proc *processor.Processor
}

func New(proc *processor.Processor) *Accounts {
	return &Accounts{proc}
}

func (a *Accounts) handle(kind string) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		var id ledger.Identity
		if _, ok := mux.Vars(req)["id"]; ok {
			var err error
			if id, err = utils.ParseIdentity(mux.Vars(req), "id"); err != nil {
				return err
			}
		}
		result, err := Lookup(a.proc, kind, id)
		if err != nil {
			return utils.LedgerError(err)
		}
		return utils.WriteJSON(w, result)
	}
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/central-state").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handle("central-state")))
	sub.Path("/pools/{id}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handle("pools")))
	sub.Path("/stake-accounts/{id}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handle("stake-accounts")))
	sub.Path("/bonds/{id}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handle("bonds")))
	sub.Path("/tokens/{id}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handle("tokens")))
}
