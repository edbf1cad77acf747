package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const superAdmin = "admin@universodual.com"

func newAuthUC() (*AuthUseCase, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	return NewAuthUC(users, sessions, superAdmin, time.Hour, bcrypt.MinCost, logger.NewNop()), users, sessions
}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newAuthUC()

	res, err := uc.SignUp(ctx, &SignUpReq{Email: " Luna@Example.com ", Password: "secreto", FullName: "Luna"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "luna@example.com", res.User.Email)
	assert.Equal(t, domain.RoleUser, res.User.Role)

	me, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, me.ID)

	signed, err := uc.SignIn(ctx, &SignInReq{Email: "luna@example.com", Password: "secreto"})
	require.NoError(t, err)
	assert.NotEqual(t, res.Token, signed.Token)

	_, err = uc.SignIn(ctx, &SignInReq{Email: "luna@example.com", Password: "wrong!"})
	assert.ErrorIs(t, err, e.ErrInvalidCredentials)

	_, err = uc.SignIn(ctx, &SignInReq{Email: "ghost@example.com", Password: "secreto"})
	assert.ErrorIs(t, err, e.ErrInvalidCredentials)

	require.NoError(t, uc.SignOut(ctx, signed.Token))
	_, err = uc.Authenticate(ctx, signed.Token)
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}

func TestSignUpValidation(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newAuthUC()

	_, err := uc.SignUp(ctx, &SignUpReq{Email: "bad", Password: "secreto"})
	assert.ErrorIs(t, err, e.ErrInvalidEmail)

	_, err = uc.SignUp(ctx, &SignUpReq{Email: "a@b.com", Password: "123"})
	assert.ErrorIs(t, err, e.ErrWeakPassword)

	_, err = uc.SignUp(ctx, &SignUpReq{Email: "a@b.com", Password: "123456"})
	require.NoError(t, err)
	_, err = uc.SignUp(ctx, &SignUpReq{Email: "A@B.com", Password: "123456"})
	assert.ErrorIs(t, err, e.ErrEmailTaken)
}

func TestSuperAdmin(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newAuthUC()

	admin, err := uc.SignUp(ctx, &SignUpReq{Email: superAdmin, Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.User.Role)

	_, err = uc.UpdateUserRole(ctx, admin.User.ID, domain.RoleUser)
	assert.ErrorIs(t, err, e.ErrForbidden)

	err = uc.DeleteUser(ctx, admin.User.ID)
	assert.ErrorIs(t, err, e.ErrForbidden)

	regular, err := uc.SignUp(ctx, &SignUpReq{Email: "user@example.com", Password: "secreto"})
	require.NoError(t, err)

	promoted, err := uc.UpdateUserRole(ctx, regular.User.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	_, err = uc.UpdateUserRole(ctx, regular.User.ID, domain.Role("root"))
	assert.ErrorIs(t, err, e.ErrInvalidRole)

	require.NoError(t, uc.DeleteUser(ctx, regular.User.ID))
	users, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newAuthUC()

	res, err := uc.SignUp(ctx, &SignUpReq{Email: "sol@example.com", Password: "secreto", FullName: "Sol"})
	require.NoError(t, err)

	empty, err := uc.GetProfile(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{}, empty.Profile)

	updated, err := uc.UpdateProfile(ctx, &UpdateProfileReq{
		UserID:          res.User.ID,
		FullName:        " Sol Ramírez ",
		ShippingAddress: "Calle del Sol 7",
		Phone:           "600123123",
		City:            "Granada",
		PostalCode:      "18001",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sol Ramírez", updated.FullName)
	assert.Equal(t, "sol@example.com", updated.Email)
	assert.Equal(t, domain.RoleUser, updated.Role)

	got, err := uc.GetProfile(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{
		ShippingAddress: "Calle del Sol 7",
		Phone:           "600123123",
		City:            "Granada",
		PostalCode:      "18001",
	}, got.Profile)

	_, err = uc.UpdateProfile(ctx, &UpdateProfileReq{UserID: res.User.ID, City: strings.Repeat("á", 201)})
	assert.ErrorIs(t, err, e.ErrProfileFieldTooLong)

	_, err = uc.UpdateProfile(ctx, &UpdateProfileReq{UserID: "missing"})
	assert.ErrorIs(t, err, e.ErrUserNotFound)

	_, err = uc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, e.ErrUserNotFound)
}
