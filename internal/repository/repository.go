package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByID(ctx context.Context, id int64) (model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item model.Item) (model.Item, error)
	GetItemByID(ctx context.Context, id int64) (model.Item, error)
	// GetItemByIDAndOwnerNot resolves an item only when it is not owned
	// by userID; "owned by the caller" and "does not exist" are
	// deliberately indistinguishable.
	GetItemByIDAndOwnerNot(ctx context.Context, id, userID int64) (model.Item, error)
	GetAllItemsByOwner(ctx context.Context, ownerID, from int64, size int) ([]model.Item, error)
	UpdateItem(ctx context.Context, item model.Item) (model.Item, error)
	SearchItems(ctx context.Context, text string, from int64, size int) ([]model.Item, error)
	GetAllItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking model.Booking) (model.Booking, error)
	// GetBookingViewForUser resolves a booking only for its booker or
	// the item's owner; anyone else gets not-found.
	GetBookingViewForUser(ctx context.Context, id, userID int64) (model.BookingRow, error)
	GetBookingByIDAndItemOwner(ctx context.Context, id, ownerID int64) (model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status model.BookingStatus) error
	GetBookingView(ctx context.Context, id int64) (model.BookingRow, error)
	ListBookingsByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, from int64, size int) ([]model.BookingRow, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, from int64, size int) ([]model.BookingRow, error)
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (model.Booking, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (model.Booking, error)
	LastBookingsForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error)
	NextBookingsForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	GetCommentsByItem(ctx context.Context, itemID int64) ([]model.CommentRow, error)
	GetCommentsByItems(ctx context.Context, itemIDs []int64) ([]model.CommentRow, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request model.ItemRequest) (model.ItemRequest, error)
	GetRequestByID(ctx context.Context, id int64) (model.ItemRequest, error)
	GetRequestsByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	GetRequestsByOthers(ctx context.Context, userID, from int64, size int) ([]model.ItemRequest, error)
}

const (
	usersTableName    = `users`
	itemsTableName    = `items`
	bookingsTableName = `bookings`
	commentsTableName = `comments`
	requestsTableName = `requests`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.Named("repo"),
	}
}

// pageOffset translates the from/size query contract into a row
// offset. Clients page with from/size (integer division), so
// from=10&size=100 lands on page 0; that mapping is kept for
// compatibility.
func pageOffset(from int64, size int) uint64 {
	if size <= 0 {
		return 0
	}
	return uint64(from/int64(size)) * uint64(size)
}
