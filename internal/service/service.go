package service

import (
	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/events"
	"github.com/shareit/shareit-service/internal/repository"
)

type Service struct {
	users    repository.UserRepository
	items    repository.ItemRepository
	bookings repository.BookingRepository
	comments repository.CommentRepository
	requests repository.RequestRepository
	events   events.Publisher
	log      *zap.Logger
}

func NewService(
	users repository.UserRepository,
	items repository.ItemRepository,
	bookings repository.BookingRepository,
	comments repository.CommentRepository,
	requests repository.RequestRepository,
	pub events.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		users:    users,
		items:    items,
		bookings: bookings,
		comments: comments,
		requests: requests,
		events:   pub,
		log:      log,
	}
}
