package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const escrow = "escrow"

func TestAdapterNativeDispatch(t *testing.T) {
	native := NewNativeBook()
	adapter := NewAdapter(escrow, native)
	native.Credit("alice", 100)

	require.NoError(t, adapter.Pull("alice", Native, 60))
	assert.Equal(t, uint64(40), native.BalanceOf("alice"))
	assert.Equal(t, uint64(60), native.BalanceOf(escrow))

	require.NoError(t, adapter.Push("bob", Native, 25))
	assert.Equal(t, uint64(25), native.BalanceOf("bob"))
	assert.Equal(t, uint64(35), native.BalanceOf(escrow))

	err := adapter.Pull("alice", Native, 1000)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestAdapterTokenDispatch(t *testing.T) {
	native := NewNativeBook()
	adapter := NewAdapter(escrow, native)

	token := NewStandardToken()
	token.Mint("alice", 100)
	adapter.RegisterToken("TKN", token)

	require.NoError(t, adapter.Pull("alice", "TKN", 70))
	assert.Equal(t, uint64(30), token.BalanceOf("alice"))
	assert.Equal(t, uint64(70), token.BalanceOf(escrow))

	err := adapter.Push("bob", "OTHER", 1)
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestFeeTokenDeductsInTransit(t *testing.T) {
	token := NewFeeToken(5)
	token.Mint("alice", 100)

	require.NoError(t, token.Transfer("alice", "bob", 50))
	assert.Equal(t, uint64(50), token.BalanceOf("alice"))
	assert.Equal(t, uint64(45), token.BalanceOf("bob"))

	// A transfer at or below the fee burns the whole amount.
	require.NoError(t, token.Transfer("alice", "bob", 5))
	assert.Equal(t, uint64(45), token.BalanceOf("bob"))
}

func TestSilentTokenReportsFalseSuccess(t *testing.T) {
	token := NewSilentToken()
	token.Mint("alice", 10)

	// Short balance: no error, no movement.
	require.NoError(t, token.Transfer("alice", "bob", 50))
	assert.Equal(t, uint64(10), token.BalanceOf("alice"))
	assert.Zero(t, token.BalanceOf("bob"))

	require.NoError(t, token.Transfer("alice", "bob", 10))
	assert.Equal(t, uint64(10), token.BalanceOf("bob"))
}

func TestNativeBookReceiptHook(t *testing.T) {
	native := NewNativeBook()
	native.Credit("alice", 100)

	fired := 0
	native.SetReceiptHook("bob", func() { fired++ })

	require.NoError(t, native.Transfer("alice", "bob", 30))
	assert.Equal(t, 1, fired)

	native.SetReceiptHook("bob", nil)
	require.NoError(t, native.Transfer("alice", "bob", 30))
	assert.Equal(t, 1, fired)
}

func TestNativeBookDebitFailureMovesNothing(t *testing.T) {
	native := NewNativeBook()
	native.Credit("alice", 10)

	err := native.Transfer("alice", "bob", 20)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, uint64(10), native.BalanceOf("alice"))
	assert.Zero(t, native.BalanceOf("bob"))
}
