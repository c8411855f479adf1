package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/model"
)

func (s *Service) AddRequest(ctx context.Context, req model.CreateItemRequestRequest, userID int64) (model.ItemRequest, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return model.ItemRequest{}, err
	}
	request, err := s.requests.CreateRequest(ctx, model.ItemRequest{
		Description: req.Description,
		RequesterID: userID,
		Created:     time.Now().UTC(),
	})
	if err != nil {
		return model.ItemRequest{}, err
	}
	s.log.Debug("add item request", zap.Int64("request_id", request.ID))
	return request, nil
}

// GetRequestByID also fetches the items created in response to the
// request, to show who responded.
func (s *Service) GetRequestByID(ctx context.Context, id, userID int64) (model.ItemRequestView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return model.ItemRequestView{}, err
	}
	request, err := s.requests.GetRequestByID(ctx, id)
	if err != nil {
		return model.ItemRequestView{}, err
	}
	items, err := s.items.GetAllItemsByRequestIDs(ctx, []int64{id})
	if err != nil {
		return model.ItemRequestView{}, err
	}
	return requestView(request, items), nil
}

func (s *Service) GetRequestsByRequester(ctx context.Context, userID int64) ([]model.ItemRequestView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.GetRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.requestViews(ctx, requests)
}

func (s *Service) GetRequestsByOthers(ctx context.Context, userID, from int64, size int) ([]model.ItemRequestView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.GetRequestsByOthers(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return s.requestViews(ctx, requests)
}

// requestViews batch-fetches the responding items for the whole
// request set and groups them by request id in memory.
func (s *Service) requestViews(ctx context.Context, requests []model.ItemRequest) ([]model.ItemRequestView, error) {
	ids := make([]int64, 0, len(requests))
	for _, request := range requests {
		ids = append(ids, request.ID)
	}
	items, err := s.items.GetAllItemsByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[int64][]model.Item, len(requests))
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		itemsByRequest[*item.RequestID] = append(itemsByRequest[*item.RequestID], item)
	}
	views := make([]model.ItemRequestView, 0, len(requests))
	for _, request := range requests {
		views = append(views, requestView(request, itemsByRequest[request.ID]))
	}
	return views, nil
}

func requestView(request model.ItemRequest, items []model.Item) model.ItemRequestView {
	if items == nil {
		items = []model.Item{}
	}
	return model.ItemRequestView{
		ID:          request.ID,
		Description: request.Description,
		Created:     request.Created,
		Items:       items,
	}
}
