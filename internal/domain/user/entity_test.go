//go:build unit

package user_test

import (
	"testing"

	"coworkhub/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("member@example.com")
	require.NoError(t, err)

	u := user.NewUser(email, "hashed_password", "Alex", user.RoleMember)

	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, "member@example.com", u.Email().Value())
	assert.Equal(t, "Alex", u.DisplayName())
	assert.Equal(t, user.RoleMember, u.Role())
	assert.True(t, u.IsActive())
	assert.Nil(t, u.LastLogin())
}

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "valid email", input: "valid@example.com"},
		{name: "surrounding whitespace trimmed", input: "  padded@example.com  "},
		{name: "empty string", input: "", errIs: user.ErrInvalidEmail},
		{name: "missing at sign", input: "invalidemail.com", errIs: user.ErrInvalidEmail},
		{name: "missing domain", input: "someone@", errIs: user.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := user.NewEmail(tc.input)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPassword(t *testing.T) {
	_, err := user.NewPassword("longenough")
	assert.NoError(t, err)

	_, err = user.NewPassword("short")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
}

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"member", "operator", "admin"} {
		role, err := user.NewRole(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, role.String())
	}

	_, err := user.NewRole("superuser")
	assert.ErrorIs(t, err, user.ErrInvalidRole)

	_, err = user.NewRole("")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestNewCredentials(t *testing.T) {
	creds, err := user.NewCredentials("member@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "member@example.com", creds.Email().Value())
	assert.Equal(t, "longenough", creds.Password().Value())

	_, err = user.NewCredentials("bad-email", "longenough")
	assert.ErrorIs(t, err, user.ErrInvalidEmail)

	_, err = user.NewCredentials("member@example.com", "short")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
}
