package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tok, err := Issue("secret", "alice", "term-1")
	require.NoError(t, err)

	sub, err := Verify("secret", tok)
	require.NoError(t, err)
	require.Equal(t, "alice", sub)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := Issue("secret", "alice", "term-1")
	require.NoError(t, err)

	_, err = Verify("other", tok)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := Verify("secret", "not-a-token")
	require.Error(t, err)
}
