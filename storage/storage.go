// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/near/borsh-go"

	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

type ReadState func(context.Context, [][]byte) ([][]byte, []error)

// State
// 0x0/ (balance)
//   -> [owner] => balance
// 0x1/ (counter)
//   -> [derived address] => discriminator + CounterAccount
const (
	balancePrefix byte = 0x0
	counterPrefix byte = 0x1
)

const (
	BalanceChunks uint16 = 1
	CounterChunks uint16 = 1
)

// CounterAccount is the record stored at an identity's derived address.
// The field order is the wire order; borsh keeps every field fixed-width
// (little-endian u64), so the serialized record is always the same
// [CounterAccountSize] bytes and round-trips exactly.
type CounterAccount struct {
	Authority codec.Address `json:"authority"`
	Count     uint64        `json:"count"`
	Bump      uint8         `json:"bump"`
}

const DiscriminatorLen = 8

// CounterDiscriminator is the owning-program marker written ahead of every
// counter record. Reads refuse any record that does not start with it, so
// bytes written by another program at a reused address are never
// misinterpreted as a counter.
var CounterDiscriminator [DiscriminatorLen]byte

func init() {
	digest := hashing.ComputeHash256Array([]byte("account:CounterAccount"))
	copy(CounterDiscriminator[:], digest[:DiscriminatorLen])
}

// CounterAccountSize is the full on-ledger record size: discriminator,
// authority, count, bump.
const CounterAccountSize = DiscriminatorLen + codec.AddressLen + consts.Uint64Len + consts.ByteLen

// [balancePrefix] + [address] + [BalanceChunks]
func BalanceKey(addr codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k[0] = balancePrefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], BalanceChunks)
	return k
}

// [counterPrefix] + [derived address] + [CounterChunks]
func CounterKey(addr codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k[0] = counterPrefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], CounterChunks)
	return k
}

func MarshalCounter(account *CounterAccount) ([]byte, error) {
	body, err := borsh.Serialize(*account)
	if err != nil {
		return nil, err
	}
	v := make([]byte, 0, CounterAccountSize)
	v = append(v, CounterDiscriminator[:]...)
	return append(v, body...), nil
}

func UnmarshalCounter(v []byte) (*CounterAccount, error) {
	if len(v) != CounterAccountSize {
		return nil, fmt.Errorf("%w: len=%d", ErrInvalidRecord, len(v))
	}
	if [DiscriminatorLen]byte(v[:DiscriminatorLen]) != CounterDiscriminator {
		return nil, fmt.Errorf("%w: discriminator mismatch", ErrInvalidRecord)
	}
	var account CounterAccount
	if err := borsh.Deserialize(&account, v[DiscriminatorLen:]); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, err)
	}
	return &account, nil
}

// GetCounter returns the record at [addr] or [database.ErrNotFound] if the
// address is vacant.
func GetCounter(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (*CounterAccount, error) {
	v, err := im.GetValue(ctx, CounterKey(addr))
	if err != nil {
		return nil, err
	}
	return UnmarshalCounter(v)
}

// GetCounterFromState is used to serve RPC queries.
func GetCounterFromState(
	ctx context.Context,
	f ReadState,
	addr codec.Address,
) (*CounterAccount, error) {
	values, errs := f(ctx, [][]byte{CounterKey(addr)})
	if errs[0] != nil {
		return nil, errs[0]
	}
	return UnmarshalCounter(values[0])
}

func SetCounter(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	account *CounterAccount,
) error {
	v, err := MarshalCounter(account)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, CounterKey(addr), v)
}

func RemoveCounter(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
) error {
	return mu.Remove(ctx, CounterKey(addr))
}

// If the balance key is absent, the balance is 0.
func GetBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (uint64, error) {
	_, bal, _, err := getBalance(ctx, im, addr)
	return bal, err
}

func getBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) ([]byte, uint64, bool, error) {
	k := BalanceKey(addr)
	bal, exists, err := innerGetBalance(im.GetValue(ctx, k))
	return k, bal, exists, err
}

// GetBalanceFromState is used to serve RPC queries.
func GetBalanceFromState(
	ctx context.Context,
	f ReadState,
	addr codec.Address,
) (uint64, error) {
	values, errs := f(ctx, [][]byte{BalanceKey(addr)})
	bal, _, err := innerGetBalance(values[0], errs[0])
	return bal, err
}

func innerGetBalance(v []byte, err error) (uint64, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func SetBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	balance uint64,
) error {
	return setBalance(ctx, mu, BalanceKey(addr), balance)
}

func setBalance(
	ctx context.Context,
	mu state.Mutable,
	key []byte,
	balance uint64,
) error {
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, balance))
}

func AddBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	key, bal, _, err := getBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add64(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}

func SubBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	key, bal, ok, err := getBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	if !ok || bal < amount {
		return 0, fmt.Errorf(
			"%w: balance=%d < amount=%d (addr=%v)",
			ErrInsufficientBalance,
			bal,
			amount,
			addr,
		)
	}
	nbal := bal - amount
	if nbal == 0 {
		// If there is no balance left, we should delete the record instead
		// of setting it to 0.
		return 0, mu.Remove(ctx, key)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}
