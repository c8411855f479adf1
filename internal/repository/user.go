package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/model"
)

func (r *Repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	q, args, err := qb.Insert(usersTableName).
		Columns("name", "email").
		Values(user.Name, user.Email).
		Suffix("returning id, name, email").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var created model.User
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		return model.User{}, wrapIntegrityErr(err, "user email=%s already exists", user.Email)
	}
	return created, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	q, args, err := qb.Select("id", "name", "email").
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.Wrapf(errs.ErrNotFound, "user with id=%d not found", id)
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]model.User, error) {
	q, args, err := qb.Select("id", "name", "email").
		From(usersTableName).
		OrderBy("id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0)
	if err := r.db.SelectContext(ctx, &users, q, args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user model.User) (model.User, error) {
	q, args, err := qb.Update(usersTableName).
		Set("name", user.Name).
		Set("email", user.Email).
		Where(sq.Eq{"id": user.ID}).
		Suffix("returning id, name, email").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var updated model.User
	if err := r.db.GetContext(ctx, &updated, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.Wrapf(errs.ErrNotFound, "user with id=%d not found", user.ID)
		}
		return model.User{}, wrapIntegrityErr(err, "user email=%s already exists", user.Email)
	}
	return updated, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	q, args, err := qb.Delete(usersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return wrapIntegrityErr(err, "user with id=%d is still referenced", id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.Wrapf(errs.ErrNotFound, "user with id=%d not found", id)
	}
	return nil
}

func (r *Repository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	q, args, err := qb.Select("count(*)").
		From(usersTableName).
		Where(sq.Eq{"email": email}).
		Where(sq.NotEq{"id": excludeID}).
		ToSql()
	if err != nil {
		return false, err
	}
	var count int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// wrapIntegrityErr maps postgres unique/foreign-key violations to the
// conflict sentinel; anything else passes through untouched.
func wrapIntegrityErr(err error, format string, args ...interface{}) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation, pgerrcode.ForeignKeyViolation:
			return errs.Wrapf(errs.ErrConflict, format, args...)
		}
	}
	return err
}
