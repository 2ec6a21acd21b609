//go:build unit

package user_test

import (
	"testing"

	"internlink/internal/domain/user"
	"internlink/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "test@example.com", actual.Email().Value())
		assert.Equal(t, user.RoleStudent, actual.Role())
		assert.Equal(t, "Test User", actual.DisplayName())
		assert.True(t, actual.IsActive(), "new users start active")
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("email validation", func(t *testing.T) {
		cases := []struct {
			name  string
			email string
			errIs error
		}{
			{name: "valid email", email: "a@example.com"},
			{name: "subdomain email", email: "a@mail.example.co.jp"},
			{name: "plus address", email: "a+tag@example.com"},
			{name: "surrounding whitespace is trimmed", email: "  a@example.com  "},
			{name: "missing at sign", email: "not-an-email", errIs: user.ErrInvalidEmail},
			{name: "missing tld", email: "a@example", errIs: user.ErrInvalidEmail},
			{name: "empty", email: "", errIs: user.ErrInvalidEmail},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := user.NewEmail(tc.email)
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					return
				}
				require.NoError(t, err)
			})
		}
	})

	t.Run("password validation", func(t *testing.T) {
		_, err := user.NewPassword("1234567")
		require.ErrorIs(t, err, user.ErrPasswordTooWeak)

		p, err := user.NewPassword("12345678")
		require.NoError(t, err)
		assert.Equal(t, "12345678", p.Value())
	})

	t.Run("role validation", func(t *testing.T) {
		for _, valid := range []string{"student", "company", "admin"} {
			role, err := user.NewRole(valid)
			require.NoError(t, err)
			assert.True(t, role.IsValid())
		}

		_, err := user.NewRole("superuser")
		require.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b := builder.NewUserBuilder()
		u1, err := b.BuildDomain()
		require.NoError(t, err)
		u2, err := b.BuildDomain()
		require.NoError(t, err)
		assert.NotEqual(t, u1.ID(), u2.ID())
	})
}
