// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pda derives program-controlled storage addresses. An address is a
// pure function of (namespace, identity, program): any party that knows the
// identity can recompute where its counter lives. The derived digest is
// required to be off the ed25519 curve, so it can never double as a signing
// key: the record behind it can only ever be manipulated by the program.
package pda

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/oasisprotocol/curve25519-voi/curve"

	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
)

// derivationMarker is appended to every candidate preimage so digests from
// this scheme can never collide with a hash computed for any other purpose.
const derivationMarker = "ProgramDerivedAddress"

// MaxBump is the first (and largest) trial nonce. Trials descend so the
// canonical bump for an identity is the highest value that lands off-curve.
const MaxBump = uint8(255)

// Derive computes the storage address for [identity]'s counter and the bump
// that produced it. It is deterministic: both return values depend only on
// the inputs and the program ID.
func Derive(namespace []byte, identity codec.Address) (codec.Address, uint8, error) {
	return DeriveForProgram(namespace, identity, consts.ID[:])
}

// DeriveForProgram is Derive with an explicit program identity. Reads use
// it to confirm a foreign record was not planted at an address we would
// otherwise trust.
func DeriveForProgram(namespace []byte, identity codec.Address, programID []byte) (codec.Address, uint8, error) {
	seeds := make([]byte, 0, len(namespace)+codec.AddressLen)
	seeds = append(seeds, namespace...)
	seeds = append(seeds, identity[:]...)
	for bump := int(MaxBump); bump >= 0; bump-- {
		preimage := make([]byte, 0, len(seeds)+1+len(programID)+len(derivationMarker))
		preimage = append(preimage, seeds...)
		preimage = append(preimage, uint8(bump))
		preimage = append(preimage, programID...)
		preimage = append(preimage, derivationMarker...)
		digest := hashing.ComputeHash256Array(preimage)
		if !onCurve(digest) {
			return codec.CreateAddress(consts.PDAID, digest), uint8(bump), nil
		}
	}
	// Roughly half of all digests are off-curve, so reaching this requires
	// 256 on-curve hashes in a row.
	return codec.EmptyAddress, 0, fmt.Errorf("%w: identity=%s", ErrSeedsExhausted, identity)
}

// onCurve reports whether [digest] decompresses to a valid edwards25519
// point, i.e. whether it could serve as an ed25519 public key.
func onCurve(digest [32]byte) bool {
	var compressed curve.CompressedEdwardsY
	if _, err := compressed.SetBytes(digest[:]); err != nil {
		return false
	}
	var point curve.EdwardsPoint
	_, err := point.SetCompressedY(&compressed)
	return err == nil
}
