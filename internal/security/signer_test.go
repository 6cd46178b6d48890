package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_SignAndVerify(t *testing.T) {
	s, err := NewSigner()
	require.NoError(t, err)
	require.NotEmpty(t, s.PublicKey())

	payload := []byte("Token Sleuth — Token Report")
	signature, err := s.Sign(payload)
	require.NoError(t, err)
	require.NotEmpty(t, signature)

	assert.True(t, s.Verify(payload, signature))
	assert.False(t, s.Verify([]byte("tampered"), signature))
	assert.False(t, s.Verify(payload, "bm90IGEgc2lnbmF0dXJl"))
	assert.False(t, s.Verify(payload, "not base64!!!"))
}

func TestSigner_KeysAreUnique(t *testing.T) {
	a, err := NewSigner()
	require.NoError(t, err)
	b, err := NewSigner()
	require.NoError(t, err)

	assert.NotEqual(t, a.PublicKey(), b.PublicKey())
}
