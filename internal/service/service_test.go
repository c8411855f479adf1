package service_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/events"
	"github.com/shareit/shareit-service/internal/service"

	repo_mocks "github.com/shareit/shareit-service/internal/repository/mocks"
)

type repoMocks struct {
	users    *repo_mocks.MockUserRepository
	items    *repo_mocks.MockItemRepository
	bookings *repo_mocks.MockBookingRepository
	comments *repo_mocks.MockCommentRepository
	requests *repo_mocks.MockRequestRepository
}

func newTestService(t *testing.T) (*service.Service, repoMocks) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	m := repoMocks{
		users:    repo_mocks.NewMockUserRepository(c),
		items:    repo_mocks.NewMockItemRepository(c),
		bookings: repo_mocks.NewMockBookingRepository(c),
		comments: repo_mocks.NewMockCommentRepository(c),
		requests: repo_mocks.NewMockRequestRepository(c),
	}
	svc := service.NewService(m.users, m.items, m.bookings, m.comments, m.requests, events.Noop{}, zap.NewExample().Named("test"))
	return svc, m
}
