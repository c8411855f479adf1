package service_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/model"
)

func TestService_AddUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().EmailExists(ctx, "user@user.com", int64(0)).Return(false, nil)
		m.users.EXPECT().
			CreateUser(ctx, model.User{Name: "user", Email: "user@user.com"}).
			Return(model.User{ID: 1, Name: "user", Email: "user@user.com"}, nil)

		user, err := svc.AddUser(ctx, model.CreateUserRequest{Name: "user", Email: "user@user.com"})
		require.NoError(t, err)
		require.Equal(t, model.User{ID: 1, Name: "user", Email: "user@user.com"}, user)
	})

	t.Run("err. duplicate email", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().EmailExists(ctx, "user@user.com", int64(0)).Return(true, nil)

		_, err := svc.AddUser(ctx, model.CreateUserRequest{Name: "user", Email: "user@user.com"})
		require.ErrorIs(t, err, errs.ErrConflict)
		require.EqualError(t, err, "user with email=user@user.com already exists")
	})
}

func TestService_PatchUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	stored := model.User{ID: 1, Name: "user", Email: "user@user.com"}

	t.Run("ok. name only", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		name := "renamed"
		m.users.EXPECT().GetUserByID(ctx, int64(1)).Return(stored, nil)
		m.users.EXPECT().
			UpdateUser(ctx, model.User{ID: 1, Name: "renamed", Email: "user@user.com"}).
			Return(model.User{ID: 1, Name: "renamed", Email: "user@user.com"}, nil)

		user, err := svc.PatchUser(ctx, 1, model.UserPatch{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "renamed", user.Name)
		require.Equal(t, "user@user.com", user.Email)
	})

	t.Run("ok. same email skips uniqueness check", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		email := "user@user.com"
		m.users.EXPECT().GetUserByID(ctx, int64(1)).Return(stored, nil)
		m.users.EXPECT().UpdateUser(ctx, stored).Return(stored, nil)

		_, err := svc.PatchUser(ctx, 1, model.UserPatch{Email: &email})
		require.NoError(t, err)
	})

	t.Run("err. email taken", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		email := "taken@user.com"
		m.users.EXPECT().GetUserByID(ctx, int64(1)).Return(stored, nil)
		m.users.EXPECT().EmailExists(ctx, "taken@user.com", int64(1)).Return(true, nil)

		_, err := svc.PatchUser(ctx, 1, model.UserPatch{Email: &email})
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("err. user missing", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().
			GetUserByID(ctx, int64(9)).
			Return(model.User{}, errs.Wrapf(errs.ErrNotFound, "user id=9 not found"))

		_, err := svc.PatchUser(ctx, 9, model.UserPatch{})
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestService_DeleteUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().DeleteUser(ctx, int64(1)).Return(nil)
		require.NoError(t, svc.DeleteUser(ctx, 1))
	})

	t.Run("err. referenced by items", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().
			DeleteUser(ctx, int64(1)).
			Return(errs.Wrapf(errs.ErrConflict, "user id=1 is referenced"))
		err := svc.DeleteUser(ctx, 1)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("err. db down", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().DeleteUser(ctx, int64(1)).Return(errors.New("db internal"))
		require.EqualError(t, svc.DeleteUser(ctx, 1), "db internal")
	})
}
