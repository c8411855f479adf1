package repository

import (
	"context"
	"fmt"

	"github.com/shareit/shareit-service/internal/model"
)

func (r *Repository) CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	q, args, err := qb.Insert(commentsTableName).
		Columns("text", "item_id", "author_id", "created").
		Values(comment.Text, comment.ItemID, comment.AuthorID, comment.Created).
		Suffix("returning id, text, item_id, author_id, created").
		ToSql()
	if err != nil {
		return model.Comment{}, err
	}
	var created model.Comment
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		return model.Comment{}, wrapIntegrityErr(err, "comment references missing item or user")
	}
	return created, nil
}

func (r *Repository) GetCommentsByItem(ctx context.Context, itemID int64) ([]model.CommentRow, error) {
	q := fmt.Sprintf(`select c.id, c.text, c.item_id, c.author_id, c.created, u.name as author_name
	from %s c
	join %s u on u.id = c.author_id
	where c.item_id = $1
	order by c.created asc`, commentsTableName, usersTableName)

	comments := make([]model.CommentRow, 0)
	if err := r.db.SelectContext(ctx, &comments, q, itemID); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *Repository) GetCommentsByItems(ctx context.Context, itemIDs []int64) ([]model.CommentRow, error) {
	if len(itemIDs) == 0 {
		return []model.CommentRow{}, nil
	}
	q := fmt.Sprintf(`select c.id, c.text, c.item_id, c.author_id, c.created, u.name as author_name
	from %s c
	join %s u on u.id = c.author_id
	where c.item_id = any($1)
	order by c.created asc`, commentsTableName, usersTableName)

	comments := make([]model.CommentRow, 0)
	if err := r.db.SelectContext(ctx, &comments, q, itemIDs); err != nil {
		return nil, err
	}
	return comments, nil
}
