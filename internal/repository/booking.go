package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/model"
)

const bookingViewColumns = `b.id, b.start_date, b.end_date, b.status,
i.id as item_id, i.name as item_name, i.description as item_description,
i.available as item_available, i.request_id as item_request_id, i.owner_id as item_owner_id,
u.id as booker_id, u.name as booker_name, u.email as booker_email`

func (r *Repository) CreateBooking(ctx context.Context, booking model.Booking) (model.Booking, error) {
	q, args, err := qb.Insert(bookingsTableName).
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(booking.Start, booking.End, booking.ItemID, booking.BookerID, booking.Status).
		Suffix("returning id, start_date, end_date, item_id, booker_id, status").
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var created model.Booking
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		r.log.Error("CreateBooking", zap.String("q", q), zap.Any("args", args))
		return model.Booking{}, wrapIntegrityErr(err, "booking references missing item or user")
	}
	return created, nil
}

func (r *Repository) GetBookingView(ctx context.Context, id int64) (model.BookingRow, error) {
	q := fmt.Sprintf(`select %s
	from %s b
	join %s i on i.id = b.item_id
	join %s u on u.id = b.booker_id
	where b.id = $1`, bookingViewColumns, bookingsTableName, itemsTableName, usersTableName)

	var row model.BookingRow
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookingRow{}, errs.Wrapf(errs.ErrNotFound, "booking with id=%d not found", id)
		}
		return model.BookingRow{}, err
	}
	return row, nil
}

func (r *Repository) GetBookingViewForUser(ctx context.Context, id, userID int64) (model.BookingRow, error) {
	q := fmt.Sprintf(`select %s
	from %s b
	join %s i on i.id = b.item_id
	join %s u on u.id = b.booker_id
	where b.id = $1 and (i.owner_id = $2 or b.booker_id = $2)`,
		bookingViewColumns, bookingsTableName, itemsTableName, usersTableName)

	var row model.BookingRow
	if err := r.db.GetContext(ctx, &row, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookingRow{}, errs.Wrapf(errs.ErrNotFound,
				"booking with id=%d and owner or booker id=%d not found", id, userID)
		}
		return model.BookingRow{}, err
	}
	return row, nil
}

func (r *Repository) GetBookingByIDAndItemOwner(ctx context.Context, id, ownerID int64) (model.Booking, error) {
	q := fmt.Sprintf(`select b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
	from %s b
	join %s i on i.id = b.item_id
	where b.id = $1 and i.owner_id = $2`, bookingsTableName, itemsTableName)

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, q, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.Wrapf(errs.ErrNotFound,
				"booking with id=%d and owner id=%d not found", id, ownerID)
		}
		return model.Booking{}, err
	}
	return booking, nil
}

func (r *Repository) UpdateBookingStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	q, args, err := qb.Update(bookingsTableName).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.Wrapf(errs.ErrNotFound, "booking with id=%d not found", id)
	}
	return nil
}

func (r *Repository) ListBookingsByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, from int64, size int) ([]model.BookingRow, error) {
	b := r.bookingViewBuilder().
		Where(sq.Eq{"b.booker_id": bookerID})
	return r.selectBookingRows(ctx, applyStateFilter(b, state, now), from, size)
}

func (r *Repository) ListBookingsByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, from int64, size int) ([]model.BookingRow, error) {
	b := r.bookingViewBuilder().
		Where(sq.Eq{"i.owner_id": ownerID})
	return r.selectBookingRows(ctx, applyStateFilter(b, state, now), from, size)
}

func (r *Repository) bookingViewBuilder() sq.SelectBuilder {
	return qb.Select(bookingViewColumns).
		From(bookingsTableName + " b").
		Join(fmt.Sprintf("%s i on i.id = b.item_id", itemsTableName)).
		Join(fmt.Sprintf("%s u on u.id = b.booker_id", usersTableName))
}

func applyStateFilter(b sq.SelectBuilder, state model.BookingState, now time.Time) sq.SelectBuilder {
	switch state {
	case model.StateCurrent:
		b = b.Where(sq.LtOrEq{"b.start_date": now}).Where(sq.GtOrEq{"b.end_date": now})
	case model.StatePast:
		b = b.Where(sq.Lt{"b.end_date": now})
	case model.StateFuture:
		b = b.Where(sq.Gt{"b.start_date": now})
	case model.StateWaiting:
		b = b.Where(sq.Eq{"b.status": model.StatusWaiting})
	case model.StateRejected:
		b = b.Where(sq.Eq{"b.status": model.StatusRejected})
	case model.StateAll:
	}
	return b
}

func (r *Repository) selectBookingRows(ctx context.Context, b sq.SelectBuilder, from int64, size int) ([]model.BookingRow, error) {
	q, args, err := b.
		OrderBy("b.start_date desc").
		Limit(uint64(size)).
		Offset(pageOffset(from, size)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows := make([]model.BookingRow, 0)
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		r.log.Error("selectBookingRows", zap.String("q", q), zap.Any("args", args))
		return nil, err
	}
	return rows, nil
}

func (r *Repository) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (model.Booking, error) {
	q := fmt.Sprintf(`select id, start_date, end_date, item_id, booker_id, status
	from %s
	where item_id = $1 and start_date <= $2 and status = $3
	order by start_date desc
	limit 1`, bookingsTableName)
	return r.getBooking(ctx, q, itemID, now, model.StatusApproved)
}

func (r *Repository) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (model.Booking, error) {
	q := fmt.Sprintf(`select id, start_date, end_date, item_id, booker_id, status
	from %s
	where item_id = $1 and start_date > $2 and status = $3
	order by start_date asc
	limit 1`, bookingsTableName)
	return r.getBooking(ctx, q, itemID, now, model.StatusApproved)
}

func (r *Repository) getBooking(ctx context.Context, q string, args ...interface{}) (model.Booking, error) {
	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.Wrapf(errs.ErrNotFound, "booking not found")
		}
		return model.Booking{}, err
	}
	return booking, nil
}

// LastBookingsForItems returns, per item, the latest approved booking
// started at or before now. One query for the whole batch; grouping by
// item id happens in the service.
func (r *Repository) LastBookingsForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	if len(itemIDs) == 0 {
		return []model.Booking{}, nil
	}
	q := fmt.Sprintf(`select distinct on (item_id) id, start_date, end_date, item_id, booker_id, status
	from %s
	where item_id = any($1) and start_date <= $2 and status = $3
	order by item_id, start_date desc`, bookingsTableName)
	return r.selectBookings(ctx, q, itemIDs, now, model.StatusApproved)
}

// NextBookingsForItems is the batch counterpart of NextBookingForItem:
// per item, the soonest approved booking starting after now.
func (r *Repository) NextBookingsForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	if len(itemIDs) == 0 {
		return []model.Booking{}, nil
	}
	q := fmt.Sprintf(`select distinct on (item_id) id, start_date, end_date, item_id, booker_id, status
	from %s
	where item_id = any($1) and start_date > $2 and status = $3
	order by item_id, start_date asc`, bookingsTableName)
	return r.selectBookings(ctx, q, itemIDs, now, model.StatusApproved)
}

func (r *Repository) selectBookings(ctx context.Context, q string, itemIDs []int64, now time.Time, status model.BookingStatus) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0)
	if err := r.db.SelectContext(ctx, &bookings, q, itemIDs, now, status); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *Repository) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	q := fmt.Sprintf(`select count(*) from %s
	where item_id = $1 and booker_id = $2 and end_date < $3`, bookingsTableName)

	var count int
	if err := r.db.QueryRowContext(ctx, q, itemID, bookerID, now).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
