package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/events"
	"github.com/shareit/shareit-service/internal/model"
)

// AddBooking creates a WAITING booking. The item is resolved with a
// single "id and owner != requester" query, so booking one's own item
// is reported as not-found, same as a missing item.
func (s *Service) AddBooking(ctx context.Context, req model.CreateBookingRequest, userID int64) (model.BookingView, error) {
	item, err := s.items.GetItemByIDAndOwnerNot(ctx, req.ItemID, userID)
	if err != nil {
		return model.BookingView{}, err
	}
	if !item.Available {
		return model.BookingView{}, errs.Wrapf(errs.ErrValidation, "item id=%d isn't available", item.ID)
	}
	now := time.Now().UTC()
	if !req.End.After(req.Start) {
		return model.BookingView{}, errs.Wrapf(errs.ErrValidation, "booking end must be after start")
	}
	if req.Start.Before(now) {
		return model.BookingView{}, errs.Wrapf(errs.ErrValidation, "booking start must not be in the past")
	}
	booker, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return model.BookingView{}, err
	}

	booking, err := s.bookings.CreateBooking(ctx, model.Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   item.ID,
		BookerID: userID,
		Status:   model.StatusWaiting,
	})
	if err != nil {
		return model.BookingView{}, err
	}
	s.log.Debug("add booking",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("item_id", item.ID),
		zap.Int64("booker_id", userID))
	s.publishBookingEvent(ctx, events.BookingCreated, booking)

	return model.BookingView{
		ID:     booking.ID,
		Start:  booking.Start,
		End:    booking.End,
		Item:   item,
		Booker: booker,
		Status: booking.Status,
	}, nil
}

// SetBookingStatus is the one-shot WAITING -> APPROVED/REJECTED
// transition, allowed only for the item's owner.
func (s *Service) SetBookingStatus(ctx context.Context, bookingID, userID int64, approved bool) (model.BookingView, error) {
	booking, err := s.bookings.GetBookingByIDAndItemOwner(ctx, bookingID, userID)
	if err != nil {
		return model.BookingView{}, err
	}
	if booking.Status != model.StatusWaiting {
		return model.BookingView{}, errs.Wrapf(errs.ErrValidation,
			"booking already has been approved/rejected")
	}
	status := model.StatusRejected
	eventType := events.BookingRejected
	if approved {
		status = model.StatusApproved
		eventType = events.BookingApproved
	}
	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return model.BookingView{}, err
	}
	row, err := s.bookings.GetBookingView(ctx, bookingID)
	if err != nil {
		return model.BookingView{}, err
	}
	s.log.Debug("booking status",
		zap.Int64("booking_id", bookingID),
		zap.String("status", string(status)))
	booking.Status = status
	s.publishBookingEvent(ctx, eventType, booking)
	return row.ToView(), nil
}

// GetBookingByID is visible to the item's owner or the booker; anyone
// else gets not-found rather than forbidden.
func (s *Service) GetBookingByID(ctx context.Context, bookingID, userID int64) (model.BookingView, error) {
	row, err := s.bookings.GetBookingViewForUser(ctx, bookingID, userID)
	if err != nil {
		return model.BookingView{}, err
	}
	return row.ToView(), nil
}

func (s *Service) GetBookingsByBooker(ctx context.Context, bookerID int64, state model.BookingState, from int64, size int) ([]model.BookingView, error) {
	if _, err := s.users.GetUserByID(ctx, bookerID); err != nil {
		return nil, err
	}
	rows, err := s.bookings.ListBookingsByBooker(ctx, bookerID, state, time.Now().UTC(), from, size)
	if err != nil {
		return nil, err
	}
	return bookingViews(rows), nil
}

func (s *Service) GetBookingsByOwner(ctx context.Context, ownerID int64, state model.BookingState, from int64, size int) ([]model.BookingView, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	rows, err := s.bookings.ListBookingsByOwner(ctx, ownerID, state, time.Now().UTC(), from, size)
	if err != nil {
		return nil, err
	}
	return bookingViews(rows), nil
}

func (s *Service) publishBookingEvent(ctx context.Context, eventType events.Type, booking model.Booking) {
	err := s.events.Publish(ctx, events.BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    booking.Status,
		At:        time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("publish booking event", zap.Error(err))
	}
}

func bookingViews(rows []model.BookingRow) []model.BookingView {
	views := make([]model.BookingView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.ToView())
	}
	return views
}
