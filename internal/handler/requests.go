package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shareit/shareit-service/internal/model"
)

func (h *Handler) AddRequest(c echo.Context) error {
	var req model.CreateItemRequestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(req); err != nil {
		return badRequest(c, err)
	}
	request, err := h.requestSvc.AddRequest(c.Request().Context(), req, sharerID(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

func (h *Handler) GetRequestByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	request, err := h.requestSvc.GetRequestByID(c.Request().Context(), id, sharerID(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

func (h *Handler) GetRequestsByRequester(c echo.Context) error {
	requests, err := h.requestSvc.GetRequestsByRequester(c.Request().Context(), sharerID(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *Handler) GetRequestsByOthers(c echo.Context) error {
	from, size, err := paging(c)
	if err != nil {
		return badRequest(c, err)
	}
	requests, err := h.requestSvc.GetRequestsByOthers(c.Request().Context(), sharerID(c), from, size)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}
