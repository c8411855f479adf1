package model

import (
	"time"

	"github.com/shareit/shareit-service/internal/errs"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// BookingState is the filter for booking list queries, not to be
// confused with BookingStatus: CURRENT/PAST/FUTURE are computed
// against the clock, WAITING/REJECTED match the stored status.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

func ParseBookingState(s string) (BookingState, error) {
	switch state := BookingState(s); state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, nil
	default:
		return "", errs.Wrapf(errs.ErrValidation, "Unknown state: %s", s)
	}
}

type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

type UserPatch struct {
	Name  *string `json:"name" validate:"omitempty,notblank"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
}

type Item struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Available   bool   `json:"available" db:"available"`
	OwnerID     int64  `json:"-" db:"owner_id"`
	RequestID   *int64 `json:"requestId" db:"request_id"`
}

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

type ItemPatch struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	Available   *bool   `json:"available"`
}

// ItemView is the owner-aware read model: lastBooking/nextBooking are
// filled only when the caller owns the item.
type ItemView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	LastBooking *BookingShort `json:"lastBooking"`
	NextBooking *BookingShort `json:"nextBooking"`
	Comments    []CommentView `json:"comments"`
}

type Booking struct {
	ID       int64         `json:"id" db:"id"`
	Start    time.Time     `json:"start" db:"start_date"`
	End      time.Time     `json:"end" db:"end_date"`
	ItemID   int64         `json:"itemId" db:"item_id"`
	BookerID int64         `json:"bookerId" db:"booker_id"`
	Status   BookingStatus `json:"status" db:"status"`
}

type BookingShort struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CreateBookingRequest struct {
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
	ItemID int64     `json:"itemId" validate:"required"`
}

// BookingRow is the joined row shape the repository scans booking
// list queries into.
type BookingRow struct {
	ID              int64         `db:"id"`
	Start           time.Time     `db:"start_date"`
	End             time.Time     `db:"end_date"`
	Status          BookingStatus `db:"status"`
	ItemID          int64         `db:"item_id"`
	ItemName        string        `db:"item_name"`
	ItemDescription string        `db:"item_description"`
	ItemAvailable   bool          `db:"item_available"`
	ItemRequestID   *int64        `db:"item_request_id"`
	ItemOwnerID     int64         `db:"item_owner_id"`
	BookerID        int64         `db:"booker_id"`
	BookerName      string        `db:"booker_name"`
	BookerEmail     string        `db:"booker_email"`
}

type BookingView struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Item   Item          `json:"item"`
	Booker User          `json:"booker"`
	Status BookingStatus `json:"status"`
}

func (r BookingRow) ToView() BookingView {
	return BookingView{
		ID:    r.ID,
		Start: r.Start,
		End:   r.End,
		Item: Item{
			ID:          r.ItemID,
			Name:        r.ItemName,
			Description: r.ItemDescription,
			Available:   r.ItemAvailable,
			OwnerID:     r.ItemOwnerID,
			RequestID:   r.ItemRequestID,
		},
		Booker: User{
			ID:    r.BookerID,
			Name:  r.BookerName,
			Email: r.BookerEmail,
		},
		Status: r.Status,
	}
}

type Comment struct {
	ID       int64     `db:"id"`
	Text     string    `db:"text"`
	ItemID   int64     `db:"item_id"`
	AuthorID int64     `db:"author_id"`
	Created  time.Time `db:"created"`
}

// CommentRow carries the author name alongside the comment.
type CommentRow struct {
	Comment
	AuthorName string `db:"author_name"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func (r CommentRow) ToView() CommentView {
	return CommentView{
		ID:         r.ID,
		Text:       r.Text,
		AuthorName: r.AuthorName,
		Created:    r.Created,
	}
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

type ItemRequest struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	RequesterID int64     `json:"-" db:"requester_id"`
	Created     time.Time `json:"created" db:"created"`
}

type CreateItemRequestRequest struct {
	Description string `json:"description" validate:"required,notblank"`
}

// ItemRequestView lists the items created in response to a request.
type ItemRequestView struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Items       []Item    `json:"items"`
}
