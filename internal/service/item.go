package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/model"
)

// GetItemByID returns the owner-enriched view (last/next approved
// booking summaries) for the item's owner and a plain view for
// everyone else.
func (s *Service) GetItemByID(ctx context.Context, itemID, userID int64) (model.ItemView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return model.ItemView{}, err
	}
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return model.ItemView{}, err
	}
	comments, err := s.comments.GetCommentsByItem(ctx, itemID)
	if err != nil {
		return model.ItemView{}, err
	}
	view := itemView(item, comments)
	if item.OwnerID != userID {
		return view, nil
	}

	now := time.Now().UTC()
	last, err := s.bookings.LastBookingForItem(ctx, itemID, now)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.ItemView{}, err
	}
	if err == nil {
		view.LastBooking = &model.BookingShort{ID: last.ID, BookerID: last.BookerID}
	}
	next, err := s.bookings.NextBookingForItem(ctx, itemID, now)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.ItemView{}, err
	}
	if err == nil {
		view.NextBooking = &model.BookingShort{ID: next.ID, BookerID: next.BookerID}
	}
	return view, nil
}

// GetAllItems lists the caller's items with booking summaries. Comments
// and last/next bookings are fetched for the whole page in bulk and
// grouped by item id here, not queried per item.
func (s *Service) GetAllItems(ctx context.Context, userID, from int64, size int) ([]model.ItemView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	items, err := s.items.GetAllItemsByOwner(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	comments, err := s.comments.GetCommentsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]model.CommentRow, len(items))
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	now := time.Now().UTC()
	lastBookings, err := s.bookings.LastBookingsForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	nextBookings, err := s.bookings.NextBookingsForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	lastByItem := bookingsByItem(lastBookings)
	nextByItem := bookingsByItem(nextBookings)

	views := make([]model.ItemView, 0, len(items))
	for _, item := range items {
		view := itemView(item, commentsByItem[item.ID])
		if last, ok := lastByItem[item.ID]; ok {
			view.LastBooking = &model.BookingShort{ID: last.ID, BookerID: last.BookerID}
		}
		if next, ok := nextByItem[item.ID]; ok {
			view.NextBooking = &model.BookingShort{ID: next.ID, BookerID: next.BookerID}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) AddItem(ctx context.Context, req model.CreateItemRequest, userID int64) (model.Item, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return model.Item{}, err
	}
	if req.RequestID != nil {
		if _, err := s.requests.GetRequestByID(ctx, *req.RequestID); err != nil {
			return model.Item{}, err
		}
	}
	item, err := s.items.CreateItem(ctx, model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     userID,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return model.Item{}, err
	}
	s.log.Debug("add item", zap.Int64("item_id", item.ID), zap.Int64("owner_id", userID))
	return item, nil
}

func (s *Service) PatchItem(ctx context.Context, itemID int64, patch model.ItemPatch, userID int64) (model.Item, error) {
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return model.Item{}, err
	}
	if item.OwnerID != userID {
		return model.Item{}, errs.Wrapf(errs.ErrForbidden,
			"user id=%d is not owner of item id=%d", userID, itemID)
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	return s.items.UpdateItem(ctx, item)
}

// SearchItems short-circuits on blank text without touching the store;
// that is part of the contract, not an optimization to drop.
func (s *Service) SearchItems(ctx context.Context, text string, from int64, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.items.SearchItems(ctx, text, from, size)
}

// AddComment is gated on a finished booking of the item by the author.
func (s *Service) AddComment(ctx context.Context, req model.CreateCommentRequest, itemID, userID int64) (model.CommentView, error) {
	if _, err := s.items.GetItemByID(ctx, itemID); err != nil {
		return model.CommentView{}, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return model.CommentView{}, err
	}
	now := time.Now().UTC()
	finished, err := s.bookings.HasFinishedBooking(ctx, itemID, userID, now)
	if err != nil {
		return model.CommentView{}, err
	}
	if !finished {
		return model.CommentView{}, errs.Wrapf(errs.ErrValidation,
			"user id=%d doesn't have finished booking of item id=%d", userID, itemID)
	}
	comment, err := s.comments.CreateComment(ctx, model.Comment{
		Text:     req.Text,
		ItemID:   itemID,
		AuthorID: userID,
		Created:  now,
	})
	if err != nil {
		return model.CommentView{}, err
	}
	return model.CommentView{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: user.Name,
		Created:    comment.Created,
	}, nil
}

func itemView(item model.Item, comments []model.CommentRow) model.ItemView {
	views := make([]model.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, c.ToView())
	}
	return model.ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		Comments:    views,
	}
}

func bookingsByItem(bookings []model.Booking) map[int64]model.Booking {
	byItem := make(map[int64]model.Booking, len(bookings))
	for _, b := range bookings {
		if _, ok := byItem[b.ItemID]; !ok {
			byItem[b.ItemID] = b
		}
	}
	return byItem
}
