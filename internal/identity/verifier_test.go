package identity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/identity"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/liberr"
)

const testSecret = "test-secret"

func TestVerifyAdminAllowListed(t *testing.T) {
	v := identity.NewVerifier(testSecret, []string{"Admin@libranct.us.to"})

	token, err := v.MintToken("admin@libranct.us.to", time.Hour)
	require.NoError(t, err)

	id, err := v.VerifyAdmin(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@libranct.us.to", id.Email)
}

func TestVerifyAdminNonAdminForbidden(t *testing.T) {
	v := identity.NewVerifier(testSecret, []string{"admin@libranct.us.to"})

	token, err := v.MintToken("student@example.com", time.Hour)
	require.NoError(t, err)

	_, err = v.VerifyAdmin(token)
	assert.ErrorIs(t, err, liberr.ErrForbidden)
}

func TestVerifyMalformedTokenUnauthorized(t *testing.T) {
	v := identity.NewVerifier(testSecret, []string{"admin@libranct.us.to"})

	testCases := []string{"", "garbage", "a.b.c"}
	for _, token := range testCases {
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, liberr.ErrUnauthorized, "token %q", token)
	}
}

func TestVerifyWrongSecretUnauthorized(t *testing.T) {
	other := identity.NewVerifier("other-secret", nil)
	token, err := other.MintToken("admin@libranct.us.to", time.Hour)
	require.NoError(t, err)

	v := identity.NewVerifier(testSecret, []string{"admin@libranct.us.to"})
	_, err = v.Verify(token)
	assert.ErrorIs(t, err, liberr.ErrUnauthorized)
}

func TestVerifyExpiredTokenUnauthorized(t *testing.T) {
	v := identity.NewVerifier(testSecret, []string{"admin@libranct.us.to"})

	token, err := v.MintToken("admin@libranct.us.to", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, liberr.ErrUnauthorized)
}
