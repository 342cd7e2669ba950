// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/MuhKar1/Counter-dApp/actions"
	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/storage"
	"github.com/MuhKar1/Counter-dApp/utils"
)

const (
	// Name is the JSON-RPC namespace ("counter.ping" etc).
	Name = "counter"

	// Endpoint is where the handler is mounted.
	Endpoint = "/counter"
)

// Backend is the slice of the host the RPC layer needs. *vm.VM implements
// it.
type Backend interface {
	Rules() chain.Rules
	Registries() (*chain.ActionRegistry, *chain.AuthRegistry)
	SubmitTx(ctx context.Context, txBytes []byte) (ids.ID, []codec.Typed, error)
	ReadCounter(ctx context.Context, identity codec.Address) (codec.Address, *storage.CounterAccount, error)
	ReadBalance(ctx context.Context, addr codec.Address) (uint64, error)
}

type JSONRPCServer struct {
	backend Backend
}

func NewJSONRPCServer(backend Backend) *JSONRPCServer {
	return &JSONRPCServer{backend: backend}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (*JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	reply.Success = true
	return nil
}

type NetworkReply struct {
	ChainID ids.ID `json:"chainId"`
}

func (j *JSONRPCServer) Network(_ *http.Request, _ *struct{}, reply *NetworkReply) error {
	reply.ChainID = j.backend.Rules().GetChainID()
	return nil
}

type BuildTxArgs struct {
	// Op selects the action: "initialize", "increment", "decrement", or
	// "close".
	Op string `json:"op"`

	// Counter optionally targets a specific counter record. Empty means
	// the signer's own derived address, which is the only option for
	// "initialize".
	Counter codec.Address `json:"counter"`
}

type BuildTxReply struct {
	// UnsignedTx is exactly what the wallet must sign.
	UnsignedTx []byte `json:"unsignedTx"`
	Timestamp  int64  `json:"timestamp"`
}

// BuildTx assembles an unsigned single-action transaction for an external
// wallet. It reads no ledger state.
func (j *JSONRPCServer) BuildTx(_ *http.Request, args *BuildTxArgs, reply *BuildTxReply) error {
	action, err := OpToAction(args.Op, args.Counter)
	if err != nil {
		return err
	}
	rules := j.backend.Rules()
	tx := chain.NewTx(&chain.Base{
		Timestamp: utils.UnixRMilli(-1, rules.GetValidityWindow()),
		ChainID:   rules.GetChainID(),
		MaxFee:    DefaultMaxFee,
	}, []chain.Action{action})
	unsigned, err := tx.Digest()
	if err != nil {
		return err
	}
	reply.UnsignedTx = unsigned
	reply.Timestamp = tx.Base.Timestamp
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

type SubmitTxReply struct {
	TxID ids.ID `json:"txId"`

	// Outputs holds one JSON-encoded action result per action, in order.
	Outputs []json.RawMessage `json:"outputs"`
}

func (j *JSONRPCServer) SubmitTx(req *http.Request, args *SubmitTxArgs, reply *SubmitTxReply) error {
	txID, outputs, err := j.backend.SubmitTx(req.Context(), args.Tx)
	if err != nil {
		return err
	}
	reply.TxID = txID
	reply.Outputs = make([]json.RawMessage, len(outputs))
	for i, output := range outputs {
		b, err := json.Marshal(output)
		if err != nil {
			return err
		}
		reply.Outputs[i] = b
	}
	return nil
}

type CounterArgs struct {
	// Identity is the signer address whose counter to resolve.
	Identity codec.Address `json:"identity"`
}

type CounterReply struct {
	Counter   codec.Address `json:"counter"`
	Authority codec.Address `json:"authority"`
	Count     uint64        `json:"count"`
	Bump      uint8         `json:"bump"`
}

func (j *JSONRPCServer) Counter(req *http.Request, args *CounterArgs, reply *CounterReply) error {
	addr, account, err := j.backend.ReadCounter(req.Context(), args.Identity)
	if err != nil {
		return err
	}
	reply.Counter = addr
	reply.Authority = account.Authority
	reply.Count = account.Count
	reply.Bump = account.Bump
	return nil
}

type BalanceArgs struct {
	Address codec.Address `json:"address"`
}

type BalanceReply struct {
	Balance uint64 `json:"balance"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	bal, err := j.backend.ReadBalance(req.Context(), args.Address)
	if err != nil {
		return err
	}
	reply.Balance = bal
	return nil
}

var ErrUnknownOperation = errors.New("unknown operation")

// OpToAction maps an operation name to its action. The CLI and the RPC
// server share it so the two surfaces never drift.
func OpToAction(op string, counter codec.Address) (chain.Action, error) {
	switch op {
	case "initialize", "create":
		if counter != codec.EmptyAddress {
			return nil, fmt.Errorf("%w: %q takes no counter target", ErrUnknownOperation, op)
		}
		return &actions.Initialize{}, nil
	case "increment":
		return &actions.Increment{Counter: counter}, nil
	case "decrement":
		return &actions.Decrement{Counter: counter}, nil
	case "close":
		return &actions.Close{Counter: counter}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
}

// DefaultMaxFee bounds what a relay-built transaction is willing to pay on
// top of storage deposits.
const DefaultMaxFee = 1_000
