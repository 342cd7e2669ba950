// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/crypto/ed25519"
)

func TestED25519SignVerify(t *testing.T) {
	require := require.New(t)
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := NewED25519Factory(priv)

	msg := []byte("tx digest")
	authIntf, err := factory.Sign(msg)
	require.NoError(err)
	require.NoError(authIntf.Verify(context.Background(), msg))
	require.ErrorIs(authIntf.Verify(context.Background(), []byte("other digest")), ErrInvalidSignature)

	// actor is derived from the signer, not the signature
	require.Equal(factory.Address(), authIntf.Actor())
	require.Equal(authIntf.Actor(), authIntf.Sponsor())
	require.Equal(consts.ED25519ID, authIntf.Actor().TypeID())
}

func TestED25519Marshal(t *testing.T) {
	require := require.New(t)
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := NewED25519Factory(priv)

	authIntf, err := factory.Sign([]byte("tx digest"))
	require.NoError(err)

	p := codec.NewWriter(authIntf.Size(), consts.NetworkSizeLimit)
	authIntf.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), ED25519Size)

	parsed, err := UnmarshalED25519(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(authIntf.Actor(), parsed.Actor())
	require.NoError(parsed.Verify(context.Background(), []byte("tx digest")))
}
