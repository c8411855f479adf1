package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/internal/handler"
	"github.com/shareit/shareit-service/internal/model"
	"github.com/shareit/shareit-service/pkg/validate"

	service_mocks "github.com/shareit/shareit-service/internal/handler/mocks"
)

func newTestHandler(t *testing.T) (*handler.Handler, *service_mocks.MockUserService, *service_mocks.MockItemService, *service_mocks.MockBookingService, *service_mocks.MockRequestService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	userSvc := service_mocks.NewMockUserService(c)
	itemSvc := service_mocks.NewMockItemService(c)
	bookingSvc := service_mocks.NewMockBookingService(c)
	requestSvc := service_mocks.NewMockRequestService(c)
	log := zap.NewExample().Named("test")
	h := handler.New(userSvc, itemSvc, bookingSvc, requestSvc, log)
	return h, userSvc, itemSvc, bookingSvc, requestSvc
}

func TestHandler_AddUser(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockUserService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"name":"user","email":"user@user.com"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					AddUser(context.Background(), model.CreateUserRequest{Name: "user", Email: "user@user.com"}).
					Return(model.User{ID: 1, Name: "user", Email: "user@user.com"}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"name":"user","email":"user@user.com"}`,
			},
		},
		{
			name:         "err. invalid email",
			body:         `{"name":"user","email":"not-an-email"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name:         "err. blank name",
			body:         `{"name":"   ","email":"user@user.com"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. duplicate email",
			body: `{"name":"user","email":"user@user.com"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					AddUser(context.Background(), model.CreateUserRequest{Name: "user", Email: "user@user.com"}).
					Return(model.User{}, errs.Wrapf(errs.ErrConflict, "user with email=user@user.com already exists"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"Db violation":"user with email=user@user.com already exists"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, userSvc, _, _, _ := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/users", h.AddUser)

			r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(userSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_GetUserByID(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockUserService)

	var tests = []struct {
		name         string
		id           string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			id:   "1",
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					GetUserByID(context.Background(), int64(1)).
					Return(model.User{ID: 1, Name: "user", Email: "user@user.com"}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"name":"user","email":"user@user.com"}`,
			},
		},
		{
			name: "err. not found",
			id:   "77",
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					GetUserByID(context.Background(), int64(77)).
					Return(model.User{}, errs.Wrapf(errs.ErrNotFound, "user id=77 not found"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"Not Found Error":"user id=77 not found"}`,
			},
		},
		{
			name:         "err. invalid id",
			id:           "abc",
			mockBehavior: func(r *service_mocks.MockUserService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"Bad Request":"id is not a valid id"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, userSvc, _, _, _ := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/users/:id", h.GetUserByID)

			r := httptest.NewRequest(http.MethodGet, "/users/"+tt.id, http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(userSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_PatchUser(t *testing.T) {
	t.Parallel()
	name := "renamed"
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockUserService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok. name only",
			body: `{"name":"renamed"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					PatchUser(context.Background(), int64(1), model.UserPatch{Name: &name}).
					Return(model.User{ID: 1, Name: "renamed", Email: "user@user.com"}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"name":"renamed","email":"user@user.com"}`,
			},
		},
		{
			name:         "err. invalid email",
			body:         `{"email":"nope"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, userSvc, _, _, _ := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PATCH("/users/:id", h.PatchUser)

			r := httptest.NewRequest(http.MethodPatch, "/users/1", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(userSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_DeleteUser(t *testing.T) {
	t.Parallel()
	h, userSvc, _, _, _ := newTestHandler(t)

	e := echo.New()
	e.DELETE("/users/:id", h.DeleteUser)

	userSvc.EXPECT().DeleteUser(context.Background(), int64(1)).Return(nil)

	r := httptest.NewRequest(http.MethodDelete, "/users/1", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}
