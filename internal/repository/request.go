package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/model"
)

const requestColumns = "id, description, requester_id, created"

func (r *Repository) CreateRequest(ctx context.Context, request model.ItemRequest) (model.ItemRequest, error) {
	q, args, err := qb.Insert(requestsTableName).
		Columns("description", "requester_id", "created").
		Values(request.Description, request.RequesterID, request.Created).
		Suffix("returning " + requestColumns).
		ToSql()
	if err != nil {
		return model.ItemRequest{}, err
	}
	var created model.ItemRequest
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		return model.ItemRequest{}, wrapIntegrityErr(err, "request references missing user")
	}
	return created, nil
}

func (r *Repository) GetRequestByID(ctx context.Context, id int64) (model.ItemRequest, error) {
	q, args, err := qb.Select(requestColumns).
		From(requestsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.ItemRequest{}, err
	}
	var request model.ItemRequest
	if err := r.db.GetContext(ctx, &request, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ItemRequest{}, errs.Wrapf(errs.ErrNotFound,
				"item request with id=%d not found", id)
		}
		return model.ItemRequest{}, err
	}
	return request, nil
}

func (r *Repository) GetRequestsByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	q, args, err := qb.Select(requestColumns).
		From(requestsTableName).
		Where(sq.Eq{"requester_id": requesterID}).
		OrderBy("created desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	requests := make([]model.ItemRequest, 0)
	if err := r.db.SelectContext(ctx, &requests, q, args...); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *Repository) GetRequestsByOthers(ctx context.Context, userID, from int64, size int) ([]model.ItemRequest, error) {
	q, args, err := qb.Select(requestColumns).
		From(requestsTableName).
		Where(sq.NotEq{"requester_id": userID}).
		OrderBy("created desc").
		Limit(uint64(size)).
		Offset(pageOffset(from, size)).
		ToSql()
	if err != nil {
		return nil, err
	}
	requests := make([]model.ItemRequest, 0)
	if err := r.db.SelectContext(ctx, &requests, q, args...); err != nil {
		return nil, err
	}
	return requests, nil
}
