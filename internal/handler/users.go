package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shareit/shareit-service/internal/model"
)

func (h *Handler) GetUserByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	user, err := h.userSvc.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) GetAllUsers(c echo.Context) error {
	users, err := h.userSvc.GetAllUsers(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) AddUser(c echo.Context) error {
	var req model.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(req); err != nil {
		return badRequest(c, err)
	}
	user, err := h.userSvc.AddUser(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) PatchUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var patch model.UserPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(patch); err != nil {
		return badRequest(c, err)
	}
	user, err := h.userSvc.PatchUser(c.Request().Context(), id, patch)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	if err := h.userSvc.DeleteUser(c.Request().Context(), id); err != nil {
		return h.errorResponse(c, err)
	}
	return c.NoContent(http.StatusOK)
}
