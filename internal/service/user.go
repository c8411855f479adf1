package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/model"
)

func (s *Service) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *Service) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return s.users.GetAllUsers(ctx)
}

func (s *Service) AddUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	// explicit pre-check; the unique constraint on email remains the
	// backstop for concurrent inserts
	exists, err := s.users.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return model.User{}, err
	}
	if exists {
		return model.User{}, errs.Wrapf(errs.ErrConflict, "user with email=%s already exists", req.Email)
	}
	user, err := s.users.CreateUser(ctx, model.User{Name: req.Name, Email: req.Email})
	if err != nil {
		return model.User{}, err
	}
	s.log.Debug("add user", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *Service) PatchUser(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if patch.Email != nil && *patch.Email != user.Email {
		exists, err := s.users.EmailExists(ctx, *patch.Email, id)
		if err != nil {
			return model.User{}, err
		}
		if exists {
			return model.User{}, errs.Wrapf(errs.ErrConflict, "user with email=%s already exists", *patch.Email)
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	return s.users.UpdateUser(ctx, user)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Debug("delete user", zap.Int64("user_id", id))
	return nil
}
