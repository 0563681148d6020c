//go:build unit

package user_test

import (
	"testing"

	"roombooking/internal/domain/user"
	"roombooking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "test@example.com", actual.Email().Value())
		assert.Equal(t, user.RoleMember, actual.Role())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "empty email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing at sign",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing domain",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("user@") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("role validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "member role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("member") },
			},
			{
				name:   "admin role",
				mutate: func(b *builder.UserBuilder) { b.AsAdmin() },
			},
			{
				name:   "unknown role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("superuser") },
				errIs:  user.ErrInvalidRole,
			},
			{
				name:   "empty role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})
}

func TestRole(t *testing.T) {
	assert.True(t, user.RoleAdmin.IsAdmin())
	assert.False(t, user.RoleMember.IsAdmin())
}

func TestCredentials(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		creds, err := user.NewCredentials("test@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", creds.Email().Value())
		assert.Equal(t, "password123", creds.Password().Value())
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := user.NewCredentials("not-an-email", "password123")
		require.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := user.NewCredentials("test@example.com", "short")
		require.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
