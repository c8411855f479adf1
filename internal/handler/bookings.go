package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shareit/shareit-service/internal/model"
)

func (h *Handler) AddBooking(c echo.Context) error {
	var req model.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(req); err != nil {
		return badRequest(c, err)
	}
	booking, err := h.bookingSvc.AddBooking(c.Request().Context(), req, sharerID(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) SetBookingStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return badRequest(c, errors.New("approved must be true or false"))
	}
	booking, err := h.bookingSvc.SetBookingStatus(c.Request().Context(), id, sharerID(c), approved)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) GetBookingByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	booking, err := h.bookingSvc.GetBookingByID(c.Request().Context(), id, sharerID(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) GetBookingsByBooker(c echo.Context) error {
	state, err := bookingState(c)
	if err != nil {
		return h.errorResponse(c, err)
	}
	from, size, err := paging(c)
	if err != nil {
		return badRequest(c, err)
	}
	bookings, err := h.bookingSvc.GetBookingsByBooker(c.Request().Context(), sharerID(c), state, from, size)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetBookingsByOwner(c echo.Context) error {
	state, err := bookingState(c)
	if err != nil {
		return h.errorResponse(c, err)
	}
	from, size, err := paging(c)
	if err != nil {
		return badRequest(c, err)
	}
	bookings, err := h.bookingSvc.GetBookingsByOwner(c.Request().Context(), sharerID(c), state, from, size)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func bookingState(c echo.Context) (model.BookingState, error) {
	stateParam := c.QueryParam("state")
	if stateParam == "" {
		stateParam = string(model.StateAll)
	}
	return model.ParseBookingState(stateParam)
}
