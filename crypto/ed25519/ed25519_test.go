// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePrivateKey(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err)
	require.NotEqual(EmptyPrivateKey, priv)
	require.NotEqual(EmptyPublicKey, priv.PublicKey())
}

func TestSignVerify(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err)
	msg := []byte("counter increment digest")

	sig := Sign(msg, priv)
	require.True(Verify(msg, priv.PublicKey(), sig))

	// tampered message
	require.False(Verify([]byte("counter decrement digest"), priv.PublicKey(), sig))

	// wrong signer
	other, err := GeneratePrivateKey()
	require.NoError(err)
	require.False(Verify(msg, other.PublicKey(), sig))
}
