package handler

import (
	"context"

	"github.com/shareit/shareit-service/internal/model"
	"github.com/shareit/shareit-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type UserService interface {
	GetUserByID(ctx context.Context, id int64) (model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	AddUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	PatchUser(ctx context.Context, id int64, patch model.UserPatch) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemService interface {
	GetItemByID(ctx context.Context, itemID, userID int64) (model.ItemView, error)
	GetAllItems(ctx context.Context, userID, from int64, size int) ([]model.ItemView, error)
	AddItem(ctx context.Context, req model.CreateItemRequest, userID int64) (model.Item, error)
	PatchItem(ctx context.Context, itemID int64, patch model.ItemPatch, userID int64) (model.Item, error)
	SearchItems(ctx context.Context, text string, from int64, size int) ([]model.Item, error)
	AddComment(ctx context.Context, req model.CreateCommentRequest, itemID, userID int64) (model.CommentView, error)
}

type BookingService interface {
	AddBooking(ctx context.Context, req model.CreateBookingRequest, userID int64) (model.BookingView, error)
	SetBookingStatus(ctx context.Context, bookingID, userID int64, approved bool) (model.BookingView, error)
	GetBookingByID(ctx context.Context, bookingID, userID int64) (model.BookingView, error)
	GetBookingsByBooker(ctx context.Context, bookerID int64, state model.BookingState, from int64, size int) ([]model.BookingView, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, state model.BookingState, from int64, size int) ([]model.BookingView, error)
}

type RequestService interface {
	AddRequest(ctx context.Context, req model.CreateItemRequestRequest, userID int64) (model.ItemRequest, error)
	GetRequestByID(ctx context.Context, id, userID int64) (model.ItemRequestView, error)
	GetRequestsByRequester(ctx context.Context, userID int64) ([]model.ItemRequestView, error)
	GetRequestsByOthers(ctx context.Context, userID, from int64, size int) ([]model.ItemRequestView, error)
}

var (
	_ UserService    = (*service.Service)(nil)
	_ ItemService    = (*service.Service)(nil)
	_ BookingService = (*service.Service)(nil)
	_ RequestService = (*service.Service)(nil)
)
