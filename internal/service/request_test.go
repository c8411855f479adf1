package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/model"
)

func TestService_AddRequest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().GetUserByID(ctx, int64(2)).Return(model.User{ID: 2}, nil)
		m.requests.EXPECT().
			CreateRequest(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.ItemRequest) (model.ItemRequest, error) {
				r.ID = 1
				return r, nil
			})

		request, err := svc.AddRequest(ctx, model.CreateItemRequestRequest{Description: "need a drill"}, 2)
		require.NoError(t, err)
		require.Equal(t, int64(1), request.ID)
		require.Equal(t, int64(2), request.RequesterID)
		require.WithinDuration(t, time.Now().UTC(), request.Created, time.Minute)
	})

	t.Run("err. requester unknown", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().
			GetUserByID(ctx, int64(9)).
			Return(model.User{}, errs.Wrapf(errs.ErrNotFound, "user id=9 not found"))

		_, err := svc.AddRequest(ctx, model.CreateItemRequestRequest{Description: "need a drill"}, 9)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestService_GetRequestsByRequester(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	firstID, secondID := int64(1), int64(2)
	requests := []model.ItemRequest{
		{ID: firstID, Description: "need a drill", RequesterID: 2},
		{ID: secondID, Description: "need a saw", RequesterID: 2},
	}

	svc, m := newTestService(t)
	m.users.EXPECT().GetUserByID(ctx, int64(2)).Return(model.User{ID: 2}, nil)
	m.requests.EXPECT().GetRequestsByRequester(ctx, int64(2)).Return(requests, nil)
	m.items.EXPECT().
		GetAllItemsByRequestIDs(ctx, []int64{1, 2}).
		Return([]model.Item{
			{ID: 5, Name: "drill", OwnerID: 3, Available: true, RequestID: &firstID},
		}, nil)

	views, err := svc.GetRequestsByRequester(ctx, 2)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Len(t, views[0].Items, 1)
	require.Equal(t, "drill", views[0].Items[0].Name)
	require.Equal(t, []model.Item{}, views[1].Items)
}

func TestService_GetRequestByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().GetUserByID(ctx, int64(2)).Return(model.User{ID: 2}, nil)
		m.requests.EXPECT().
			GetRequestByID(ctx, int64(1)).
			Return(model.ItemRequest{ID: 1, Description: "need a drill", RequesterID: 3}, nil)
		m.items.EXPECT().GetAllItemsByRequestIDs(ctx, []int64{1}).Return(nil, nil)

		view, err := svc.GetRequestByID(ctx, 1, 2)
		require.NoError(t, err)
		require.Equal(t, int64(1), view.ID)
		require.Equal(t, []model.Item{}, view.Items)
	})

	t.Run("err. not found", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().GetUserByID(ctx, int64(2)).Return(model.User{ID: 2}, nil)
		m.requests.EXPECT().
			GetRequestByID(ctx, int64(9)).
			Return(model.ItemRequest{}, errs.Wrapf(errs.ErrNotFound, "request id=9 not found"))

		_, err := svc.GetRequestByID(ctx, 9, 2)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}
