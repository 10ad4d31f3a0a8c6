package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStoreLoadDelete(t *testing.T) {
	keyring.MockInit()

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, Store(&StoredCredentials{Token: "tok", Username: "admin", ExpiresAt: 42}))
	creds, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &StoredCredentials{Token: "tok", Username: "admin", ExpiresAt: 42}, creds)

	require.NoError(t, Delete())
	require.NoError(t, Delete(), "deleting twice is fine")
	_, err = Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
