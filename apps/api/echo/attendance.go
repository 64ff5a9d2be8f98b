package echoapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-app/darasa/core"
	"github.com/darasa-app/darasa/core/attendance"
	exportsvc "github.com/darasa-app/darasa/services/export"
	"github.com/darasa-app/darasa/storage/cache"
)

type (
	attendanceApi struct {
		svc      *attendance.Service
		cache    cache.Cache
		conf     *core.Config
		logger   core.Logger
		validate *validator.Validate
	}

	calendarRequest struct {
		Department string `query:"department" json:"department" validate:"omitempty,alphanum_"`
		From       string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
		To         string `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
	}

	AttendanceCalendarResponse struct {
		Department string                  `json:"department,omitempty"`
		Days       []attendance.DayEntry   `json:"days"`
		Months     []attendance.MonthEntry `json:"months"`
	}
)

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := attendanceApi{
		svc:      deps.AttendanceSvc,
		cache:    deps.Cache,
		conf:     deps.Conf,
		logger:   deps.Logger,
		validate: deps.Validate,
	}

	ag := g.Group("/attendance", jwt, staffMiddleware())
	ag.GET("/calendar", api.calendar)
	ag.GET("/export", api.export)
}

func (req *calendarRequest) Validate(validate *validator.Validate) error {
	req.Department = core.CleanString(req.Department)
	return validate.Struct(req)
}

// toFilter converts the bound date strings; Validate must have passed.
func (req *calendarRequest) toFilter() attendance.Filter {
	filter := attendance.Filter{Department: req.Department}
	if req.From != "" {
		filter.From, _ = time.Parse("2006-01-02", req.From)
	}
	if req.To != "" {
		filter.To, _ = time.Parse("2006-01-02", req.To)
	}
	return filter
}

// Handlers

func (api *attendanceApi) calendar(ctx echo.Context) error {
	var req calendarRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to calendarRequest")
	}
	if err := req.Validate(api.validate); err != nil {
		return err
	}
	dept, err := scopeDepartment(ctx, req.Department)
	if err != nil {
		return err
	}
	req.Department = dept

	key := cacheKey("attendance:calendar", req.Department, req.From, req.To)
	var resp AttendanceCalendarResponse
	if ok := api.cacheGet(ctx, key, &resp); ok {
		return ctx.JSON(http.StatusOK, resp)
	}

	cal, err := api.svc.Calendar(ctx.Request().Context(), req.toFilter())
	if err != nil {
		return errors.Wrap(err, "aggregating attendance")
	}

	resp = AttendanceCalendarResponse{
		Department: req.Department,
		Days:       cal.Entries(),
		Months:     cal.MonthEntries(),
	}
	api.cacheSet(ctx, key, resp)
	return ctx.JSON(http.StatusOK, resp)
}

func (api *attendanceApi) export(ctx echo.Context) error {
	var req calendarRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to calendarRequest")
	}
	if err := req.Validate(api.validate); err != nil {
		return err
	}
	dept, err := scopeDepartment(ctx, req.Department)
	if err != nil {
		return err
	}
	req.Department = dept

	cal, err := api.svc.Calendar(ctx.Request().Context(), req.toFilter())
	if err != nil {
		return errors.Wrap(err, "aggregating attendance")
	}

	buff, err := exportsvc.AttendanceWorkbook(*cal)
	if err != nil {
		return errors.Wrap(err, "building workbook")
	}
	return sendWorkbook(ctx, exportsvc.AttendanceFilename(req.Department), buff)
}

func (api *attendanceApi) cacheGet(ctx echo.Context, key string, dest interface{}) bool {
	ok, err := api.cache.GetJSON(ctx.Request().Context(), key, dest)
	if err != nil {
		api.logger.Warn(fmt.Sprintf("cache read failed for %q: %v", key, err), err)
		return false
	}
	return ok
}

func (api *attendanceApi) cacheSet(ctx echo.Context, key string, value interface{}) {
	if err := api.cache.SetJSON(ctx.Request().Context(), key, value, api.conf.Redis.ReportTTL); err != nil {
		api.logger.Warn(fmt.Sprintf("cache write failed for %q: %v", key, err), err)
	}
}
