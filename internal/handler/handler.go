package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shareit/shareit-service/internal/errs"
	"github.com/shareit/shareit-service/pkg/metrics"
	md "github.com/shareit/shareit-service/pkg/middleware"
	"github.com/shareit/shareit-service/pkg/validate"
)

// SharerUserIDHeader carries the caller's identity. The gateway in
// front of this service is trusted to have authenticated it.
const SharerUserIDHeader = "X-Sharer-User-Id"

const (
	defaultFrom = 0
	defaultSize = 10
)

type Handler struct {
	userSvc    UserService
	itemSvc    ItemService
	bookingSvc BookingService
	requestSvc RequestService
	log        *zap.Logger
}

func New(userSvc UserService, itemSvc ItemService, bookingSvc BookingService, requestSvc RequestService, log *zap.Logger) *Handler {
	return &Handler{
		userSvc:    userSvc,
		itemSvc:    itemSvc,
		bookingSvc: bookingSvc,
		requestSvc: requestSvc,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	metrics.Register()
	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Validator = validate.NewCustomValidator()
	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		md.RequestID(),
		md.NewRateLimiter(apiRPS),
		metrics.Middleware(),
	)

	users := api.Group("/users")
	users.GET("/:id", h.GetUserByID)
	users.GET("", h.GetAllUsers)
	users.POST("", h.AddUser)
	users.PATCH("/:id", h.PatchUser)
	users.DELETE("/:id", h.DeleteUser)

	// search is anonymous, so it is registered outside the group that
	// demands the sharer header
	api.GET("/items/search", h.SearchItems)
	items := api.Group("/items", h.requireSharerID)
	items.GET("/:id", h.GetItemByID)
	items.GET("", h.GetAllItems)
	items.POST("", h.AddItem)
	items.PATCH("/:id", h.PatchItem)
	items.POST("/:itemId/comment", h.AddComment)

	bookings := api.Group("/bookings", h.requireSharerID)
	bookings.GET("/:id", h.GetBookingByID)
	bookings.GET("", h.GetBookingsByBooker)
	bookings.GET("/owner", h.GetBookingsByOwner)
	bookings.POST("", h.AddBooking)
	bookings.PATCH("/:id", h.SetBookingStatus)

	requests := api.Group("/requests", h.requireSharerID)
	requests.GET("", h.GetRequestsByRequester)
	requests.GET("/all", h.GetRequestsByOthers)
	requests.GET("/:id", h.GetRequestByID)
	requests.POST("", h.AddRequest)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

const sharerIDKey = "sharerID"

func (h *Handler) requireSharerID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(SharerUserIDHeader)
		if header == "" {
			return badRequest(c, errors.Errorf("required header %s is missing", SharerUserIDHeader))
		}
		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil {
			return badRequest(c, errors.Errorf("header %s is not a valid id", SharerUserIDHeader))
		}
		c.Set(sharerIDKey, userID)
		return next(c)
	}
}

func sharerID(c echo.Context) int64 {
	id, _ := c.Get(sharerIDKey).(int64)
	return id
}

// errorResponse maps the domain error taxonomy onto HTTP statuses. The
// body is a single-entry object keyed by a category label; the status
// carries the category redundantly.
func (h *Handler) errorResponse(c echo.Context, err error) error {
	h.log.Warn("request failed", zap.Error(err))
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"Not Found Error": err.Error()})
	case errors.Is(err, errs.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"Authentication Fail": err.Error()})
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]string{"Db violation": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"Internal Server Error": err.Error()})
	}
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"Bad Request": err.Error()})
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, errors.Errorf("%s is not a valid id", name)
	}
	return id, nil
}

func paging(c echo.Context) (int64, int, error) {
	var (
		from int64 = defaultFrom
		size       = defaultSize
	)
	if fromParam := c.QueryParam("from"); fromParam != "" {
		parsed, err := strconv.ParseInt(fromParam, 10, 64)
		if err != nil || parsed < 0 {
			return 0, 0, errors.New("from must be a non-negative integer")
		}
		from = parsed
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		parsed, err := strconv.Atoi(sizeParam)
		if err != nil || parsed <= 0 {
			return 0, 0, errors.New("size must be a positive integer")
		}
		size = parsed
	}
	return from, size, nil
}
