package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/model"
)

const itemColumns = "id, name, description, available, owner_id, request_id"

func (r *Repository) CreateItem(ctx context.Context, item model.Item) (model.Item, error) {
	q, args, err := qb.Insert(itemsTableName).
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(item.Name, item.Description, item.Available, item.OwnerID, item.RequestID).
		Suffix("returning " + itemColumns).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var created model.Item
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		return model.Item{}, wrapIntegrityErr(err, "item references missing user or request")
	}
	return created, nil
}

func (r *Repository) GetItemByID(ctx context.Context, id int64) (model.Item, error) {
	q, args, err := qb.Select(itemColumns).
		From(itemsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var item model.Item
	if err := r.db.GetContext(ctx, &item, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, errs.Wrapf(errs.ErrNotFound, "item with id=%d not found", id)
		}
		return model.Item{}, err
	}
	return item, nil
}

func (r *Repository) GetItemByIDAndOwnerNot(ctx context.Context, id, userID int64) (model.Item, error) {
	q, args, err := qb.Select(itemColumns).
		From(itemsTableName).
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{"owner_id": userID}).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var item model.Item
	if err := r.db.GetContext(ctx, &item, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, errs.Wrapf(errs.ErrNotFound,
				"item with id=%d and owner id!=%d not found", id, userID)
		}
		return model.Item{}, err
	}
	return item, nil
}

func (r *Repository) GetAllItemsByOwner(ctx context.Context, ownerID, from int64, size int) ([]model.Item, error) {
	q, args, err := qb.Select(itemColumns).
		From(itemsTableName).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("id asc").
		Limit(uint64(size)).
		Offset(pageOffset(from, size)).
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) UpdateItem(ctx context.Context, item model.Item) (model.Item, error) {
	q, args, err := qb.Update(itemsTableName).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("available", item.Available).
		Where(sq.Eq{"id": item.ID}).
		Suffix("returning " + itemColumns).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var updated model.Item
	if err := r.db.GetContext(ctx, &updated, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, errs.Wrapf(errs.ErrNotFound, "item with id=%d not found", item.ID)
		}
		return model.Item{}, err
	}
	return updated, nil
}

func (r *Repository) SearchItems(ctx context.Context, text string, from int64, size int) ([]model.Item, error) {
	pattern := "%" + strings.ToLower(text) + "%"
	q, args, err := qb.Select(itemColumns).
		From(itemsTableName).
		Where(sq.Eq{"available": true}).
		Where(sq.Or{
			sq.Like{"lower(name)": pattern},
			sq.Like{"lower(description)": pattern},
		}).
		OrderBy("id asc").
		Limit(uint64(size)).
		Offset(pageOffset(from, size)).
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) GetAllItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	if len(requestIDs) == 0 {
		return []model.Item{}, nil
	}
	q, args, err := qb.Select(itemColumns).
		From(itemsTableName).
		Where(sq.Eq{"request_id": requestIDs}).
		OrderBy("id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}
