package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shareit/shareit-service/internal/model"
)

func (h *Handler) GetItemByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	item, err := h.itemSvc.GetItemByID(c.Request().Context(), id, sharerID(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) GetAllItems(c echo.Context) error {
	from, size, err := paging(c)
	if err != nil {
		return badRequest(c, err)
	}
	items, err := h.itemSvc.GetAllItems(c.Request().Context(), sharerID(c), from, size)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AddItem(c echo.Context) error {
	var req model.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(req); err != nil {
		return badRequest(c, err)
	}
	item, err := h.itemSvc.AddItem(c.Request().Context(), req, sharerID(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) PatchItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var patch model.ItemPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(patch); err != nil {
		return badRequest(c, err)
	}
	item, err := h.itemSvc.PatchItem(c.Request().Context(), id, patch, sharerID(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) SearchItems(c echo.Context) error {
	from, size, err := paging(c)
	if err != nil {
		return badRequest(c, err)
	}
	items, err := h.itemSvc.SearchItems(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AddComment(c echo.Context) error {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return badRequest(c, err)
	}
	var req model.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(req); err != nil {
		return badRequest(c, err)
	}
	comment, err := h.itemSvc.AddComment(c.Request().Context(), req, itemID, sharerID(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}
