package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/handler"
	"github.com/shareit/shareit-service/internal/model"

	service_mocks "github.com/shareit/shareit-service/internal/handler/mocks"
)

func TestHandler_AddBooking(t *testing.T) {
	t.Parallel()
	start := time.Date(2030, 1, 2, 12, 0, 0, 0, time.UTC)
	end := time.Date(2030, 1, 3, 12, 0, 0, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookingService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"start":"2030-01-02T12:00:00Z","end":"2030-01-03T12:00:00Z","itemId":1}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					AddBooking(context.Background(), model.CreateBookingRequest{Start: start, End: end, ItemID: 1}, int64(2)).
					Return(model.BookingView{
						ID:     1,
						Start:  start,
						End:    end,
						Item:   model.Item{ID: 1, Name: "drill", Description: "cordless drill", Available: true, OwnerID: 1},
						Booker: model.User{ID: 2, Name: "booker", Email: "booker@user.com"},
						Status: model.StatusWaiting,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"start":"2030-01-02T12:00:00Z","end":"2030-01-03T12:00:00Z","item":{"id":1,"name":"drill","description":"cordless drill","available":true,"requestId":null},"booker":{"id":2,"name":"booker","email":"booker@user.com"},"status":"WAITING"}`,
			},
		},
		{
			name: "err. item not available",
			body: `{"start":"2030-01-02T12:00:00Z","end":"2030-01-03T12:00:00Z","itemId":1}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					AddBooking(context.Background(), model.CreateBookingRequest{Start: start, End: end, ItemID: 1}, int64(2)).
					Return(model.BookingView{}, errs.Wrapf(errs.ErrValidation, "item id=1 isn't available"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"error":"item id=1 isn't available"}`,
			},
		},
		{
			name: "err. own item looks missing",
			body: `{"start":"2030-01-02T12:00:00Z","end":"2030-01-03T12:00:00Z","itemId":1}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					AddBooking(context.Background(), model.CreateBookingRequest{Start: start, End: end, ItemID: 1}, int64(2)).
					Return(model.BookingView{}, errs.Wrapf(errs.ErrNotFound, "item id=1 not found"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"Not Found Error":"item id=1 not found"}`,
			},
		},
		{
			name:         "err. missing start",
			body:         `{"end":"2030-01-03T12:00:00Z","itemId":1}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, _, bookingSvc, _ := newTestHandler(t)
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(handler.SharerUserIDHeader, "2")
			w := httptest.NewRecorder()

			tt.mockBehavior(bookingSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_SetBookingStatus(t *testing.T) {
	t.Parallel()
	start := time.Date(2030, 1, 2, 12, 0, 0, 0, time.UTC)
	end := time.Date(2030, 1, 3, 12, 0, 0, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookingService)

	var tests = []struct {
		name         string
		query        string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:  "ok. approved",
			query: "?approved=true",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					SetBookingStatus(context.Background(), int64(1), int64(1), true).
					Return(model.BookingView{
						ID:     1,
						Start:  start,
						End:    end,
						Item:   model.Item{ID: 1, Name: "drill", Description: "cordless drill", Available: true, OwnerID: 1},
						Booker: model.User{ID: 2, Name: "booker", Email: "booker@user.com"},
						Status: model.StatusApproved,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"start":"2030-01-02T12:00:00Z","end":"2030-01-03T12:00:00Z","item":{"id":1,"name":"drill","description":"cordless drill","available":true,"requestId":null},"booker":{"id":2,"name":"booker","email":"booker@user.com"},"status":"APPROVED"}`,
			},
		},
		{
			name:         "err. approved missing",
			query:        "",
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"Bad Request":"approved must be true or false"}`,
			},
		},
		{
			name:  "err. already decided",
			query: "?approved=false",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					SetBookingStatus(context.Background(), int64(1), int64(1), false).
					Return(model.BookingView{}, errs.Wrapf(errs.ErrValidation, "booking already has been approved/rejected"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"error":"booking already has been approved/rejected"}`,
			},
		},
		{
			name:  "err. not owner",
			query: "?approved=true",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					SetBookingStatus(context.Background(), int64(1), int64(1), true).
					Return(model.BookingView{}, errs.Wrapf(errs.ErrNotFound, "booking id=1 not found"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"Not Found Error":"booking id=1 not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, _, bookingSvc, _ := newTestHandler(t)
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodPatch, "/bookings/1"+tt.query, http.NoBody)
			r.Header.Set(handler.SharerUserIDHeader, "1")
			w := httptest.NewRecorder()

			tt.mockBehavior(bookingSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetBookingsByBooker(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookingService)

	var tests = []struct {
		name         string
		query        string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:  "ok. defaults to ALL",
			query: "",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					GetBookingsByBooker(context.Background(), int64(2), model.StateAll, int64(0), 10).
					Return([]model.BookingView{}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
		{
			name:  "ok. explicit state",
			query: "?state=REJECTED&from=2&size=2",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					GetBookingsByBooker(context.Background(), int64(2), model.StateRejected, int64(2), 2).
					Return([]model.BookingView{}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
		{
			name:         "err. unknown state",
			query:        "?state=FINISHED",
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"error":"Unknown state: FINISHED"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, _, bookingSvc, _ := newTestHandler(t)
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodGet, "/bookings"+tt.query, http.NoBody)
			r.Header.Set(handler.SharerUserIDHeader, "2")
			w := httptest.NewRecorder()

			tt.mockBehavior(bookingSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetBookingByID(t *testing.T) {
	t.Parallel()
	h, _, _, bookingSvc, _ := newTestHandler(t)
	e := h.NewRouter()

	bookingSvc.EXPECT().
		GetBookingByID(context.Background(), int64(7), int64(3)).
		Return(model.BookingView{}, errs.Wrapf(errs.ErrNotFound, "booking id=7 not found"))

	r := httptest.NewRequest(http.MethodGet, "/bookings/7", http.NoBody)
	r.Header.Set(handler.SharerUserIDHeader, "3")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, `{"Not Found Error":"booking id=7 not found"}`, strings.Trim(w.Body.String(), "\n"))
}
