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

func TestService_AddBooking(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	item := model.Item{ID: 1, Name: "drill", OwnerID: 1, Available: true}
	start := time.Now().UTC().Add(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.items.EXPECT().GetItemByIDAndOwnerNot(ctx, int64(1), int64(2)).Return(item, nil)
		m.users.EXPECT().GetUserByID(ctx, int64(2)).Return(model.User{ID: 2, Name: "booker"}, nil)
		m.bookings.EXPECT().
			CreateBooking(ctx, model.Booking{
				Start:    start,
				End:      end,
				ItemID:   1,
				BookerID: 2,
				Status:   model.StatusWaiting,
			}).
			DoAndReturn(func(_ context.Context, b model.Booking) (model.Booking, error) {
				b.ID = 10
				return b, nil
			})

		view, err := svc.AddBooking(ctx, model.CreateBookingRequest{Start: start, End: end, ItemID: 1}, 2)
		require.NoError(t, err)
		require.Equal(t, int64(10), view.ID)
		require.Equal(t, model.StatusWaiting, view.Status)
		require.Equal(t, item, view.Item)
		require.Equal(t, int64(2), view.Booker.ID)
	})

	t.Run("err. item not available", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		unavailable := item
		unavailable.Available = false
		m.items.EXPECT().GetItemByIDAndOwnerNot(ctx, int64(1), int64(2)).Return(unavailable, nil)

		_, err := svc.AddBooking(ctx, model.CreateBookingRequest{Start: start, End: end, ItemID: 1}, 2)
		require.ErrorIs(t, err, errs.ErrValidation)
		require.EqualError(t, err, "item id=1 isn't available")
	})

	t.Run("err. end before start", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.items.EXPECT().GetItemByIDAndOwnerNot(ctx, int64(1), int64(2)).Return(item, nil)

		_, err := svc.AddBooking(ctx, model.CreateBookingRequest{Start: end, End: start, ItemID: 1}, 2)
		require.ErrorIs(t, err, errs.ErrValidation)
		require.EqualError(t, err, "booking end must be after start")
	})

	t.Run("err. start in the past", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.items.EXPECT().GetItemByIDAndOwnerNot(ctx, int64(1), int64(2)).Return(item, nil)

		past := time.Now().UTC().Add(-24 * time.Hour)
		_, err := svc.AddBooking(ctx, model.CreateBookingRequest{Start: past, End: past.Add(48 * time.Hour), ItemID: 1}, 2)
		require.ErrorIs(t, err, errs.ErrValidation)
		require.EqualError(t, err, "booking start must not be in the past")
	})

	t.Run("err. booking own item reads as not found", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.items.EXPECT().
			GetItemByIDAndOwnerNot(ctx, int64(1), int64(1)).
			Return(model.Item{}, errs.Wrapf(errs.ErrNotFound, "item id=1 not found"))

		_, err := svc.AddBooking(ctx, model.CreateBookingRequest{Start: start, End: end, ItemID: 1}, 1)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestService_SetBookingStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	waiting := model.Booking{ID: 1, ItemID: 1, BookerID: 2, Status: model.StatusWaiting}

	t.Run("ok. approve", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.bookings.EXPECT().GetBookingByIDAndItemOwner(ctx, int64(1), int64(1)).Return(waiting, nil)
		m.bookings.EXPECT().UpdateBookingStatus(ctx, int64(1), model.StatusApproved).Return(nil)
		m.bookings.EXPECT().GetBookingView(ctx, int64(1)).Return(model.BookingRow{
			ID:       1,
			Status:   model.StatusApproved,
			ItemID:   1,
			ItemName: "drill",
			BookerID: 2,
		}, nil)

		view, err := svc.SetBookingStatus(ctx, 1, 1, true)
		require.NoError(t, err)
		require.Equal(t, model.StatusApproved, view.Status)
		require.Equal(t, "drill", view.Item.Name)
	})

	t.Run("ok. reject", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.bookings.EXPECT().GetBookingByIDAndItemOwner(ctx, int64(1), int64(1)).Return(waiting, nil)
		m.bookings.EXPECT().UpdateBookingStatus(ctx, int64(1), model.StatusRejected).Return(nil)
		m.bookings.EXPECT().GetBookingView(ctx, int64(1)).Return(model.BookingRow{
			ID:     1,
			Status: model.StatusRejected,
		}, nil)

		view, err := svc.SetBookingStatus(ctx, 1, 1, false)
		require.NoError(t, err)
		require.Equal(t, model.StatusRejected, view.Status)
	})

	t.Run("err. already decided", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		approved := waiting
		approved.Status = model.StatusApproved
		m.bookings.EXPECT().GetBookingByIDAndItemOwner(ctx, int64(1), int64(1)).Return(approved, nil)

		_, err := svc.SetBookingStatus(ctx, 1, 1, true)
		require.ErrorIs(t, err, errs.ErrValidation)
		require.EqualError(t, err, "booking already has been approved/rejected")
	})

	t.Run("err. not the owner", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.bookings.EXPECT().
			GetBookingByIDAndItemOwner(ctx, int64(1), int64(3)).
			Return(model.Booking{}, errs.Wrapf(errs.ErrNotFound, "booking id=1 not found"))

		_, err := svc.SetBookingStatus(ctx, 1, 3, true)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestService_GetBookingsByBooker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().GetUserByID(ctx, int64(2)).Return(model.User{ID: 2}, nil)
		m.bookings.EXPECT().
			ListBookingsByBooker(ctx, int64(2), model.StateFuture, gomock.Any(), int64(0), 10).
			Return([]model.BookingRow{{ID: 1, Status: model.StatusWaiting, BookerID: 2}}, nil)

		views, err := svc.GetBookingsByBooker(ctx, 2, model.StateFuture, 0, 10)
		require.NoError(t, err)
		require.Len(t, views, 1)
		require.Equal(t, int64(2), views[0].Booker.ID)
	})

	t.Run("err. booker unknown", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.users.EXPECT().
			GetUserByID(ctx, int64(9)).
			Return(model.User{}, errs.Wrapf(errs.ErrNotFound, "user id=9 not found"))

		_, err := svc.GetBookingsByBooker(ctx, 9, model.StateAll, 0, 10)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}
