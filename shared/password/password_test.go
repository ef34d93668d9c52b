package password_test

import (
	"strings"
	"testing"

	"hotel/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{name: "receptionist password", password: "frontdesk-2024"},
		{name: "special characters", password: "N1ght@Aud!t#"},
		{name: "unicode", password: "réception123"},
		{name: "exactly max length", password: strings.Repeat("a", password.MaxLength)},
		{name: "empty", password: "", expectedErr: password.ErrEmptyPassword},
		{name: "over max length", password: strings.Repeat("a", password.MaxLength+1), expectedErr: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$"), "unexpected hash format %s", hash)
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	stored, err := password.Hash("housekeeping01")
	require.NoError(t, err)

	tests := []struct {
		name        string
		password    string
		hash        string
		expectedErr error
	}{
		{name: "matching", password: "housekeeping01", hash: stored},
		{name: "wrong password", password: "housekeeping02", hash: stored, expectedErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: stored, expectedErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "housekeeping01", hash: "", expectedErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "housekeeping01", hash: "not-a-bcrypt-hash", expectedErr: password.ErrVerifyingPassword},
		{name: "truncated hash", password: "housekeeping01", hash: stored[:10], expectedErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("night-shift")
	require.NoError(t, err)

	second, err := password.Hash("night-shift")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, password.Verify("night-shift", first))
	assert.NoError(t, password.Verify("night-shift", second))
}
