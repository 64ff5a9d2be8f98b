package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-app/darasa/core"
	"github.com/darasa-app/darasa/core/feedback"
	"github.com/darasa-app/darasa/core/report"
	exportsvc "github.com/darasa-app/darasa/services/export"
	"github.com/darasa-app/darasa/storage/cache"
)

const rankedQuestionCount = 3

type (
	feedbackApi struct {
		svc      *feedback.Service
		cache    cache.Cache
		conf     *core.Config
		logger   core.Logger
		validate *validator.Validate
	}

	// RankedQuestion is a leaderboard row; averages are display-rounded.
	RankedQuestion struct {
		QuestionID    string  `json:"question_id"`
		QuestionText  string  `json:"question_text"`
		AverageRating float64 `json:"average_rating"`
		RatedCount    int     `json:"rated_count"`
	}

	FeedbackResultsResponse struct {
		Department       string                `json:"department,omitempty"`
		FormID           string                `json:"form,omitempty"`
		ResponseCount    int                   `json:"response_count"`
		Distribution     report.ChartSeries    `json:"distribution"`
		Questions        report.QuestionSeries `json:"questions"`
		TopRated         []RankedQuestion      `json:"top_rated"`
		NeedsImprovement []RankedQuestion      `json:"needs_improvement"`
	}

	FeedbackDrilldownResponse struct {
		Groups []report.QuestionGroup `json:"groups"`
	}

	drilldownRequest struct {
		feedback.Filter
		QuestionID string `query:"question" json:"question"`
	}
)

func registerFeedbackAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := feedbackApi{
		svc:      deps.FeedbackSvc,
		cache:    deps.Cache,
		conf:     deps.Conf,
		logger:   deps.Logger,
		validate: deps.Validate,
	}

	fg := g.Group("/feedback", jwt, staffMiddleware())
	fg.GET("/results", api.results)
	fg.GET("/results/drilldown", api.drilldown)
	fg.GET("/export", api.export)
}

// Handlers

func (api *feedbackApi) results(ctx echo.Context) error {
	var filter feedback.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to Filter")
	}
	filter.Clean()
	if err := api.validate.Struct(&filter); err != nil {
		return err
	}
	dept, err := scopeDepartment(ctx, filter.Department)
	if err != nil {
		return err
	}
	filter.Department = dept

	key := cacheKey("feedback:results", filter.Department, filter.FormID)
	var resp FeedbackResultsResponse
	if ok := api.cacheGet(ctx, key, &resp); ok {
		return ctx.JSON(http.StatusOK, resp)
	}

	res, err := api.svc.Results(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "aggregating feedback")
	}

	resp = FeedbackResultsResponse{
		Department:       filter.Department,
		FormID:           filter.FormID,
		ResponseCount:    res.ResponseCount,
		Distribution:     report.BuildChartSeries(res.Distribution),
		Questions:        report.BuildQuestionSeries(res.Questions),
		TopRated:         rankedViews(feedback.TopRated(res.Questions, rankedQuestionCount)),
		NeedsImprovement: rankedViews(feedback.NeedsImprovement(res.Questions, rankedQuestionCount)),
	}
	api.cacheSet(ctx, key, resp)
	return ctx.JSON(http.StatusOK, resp)
}

func (api *feedbackApi) drilldown(ctx echo.Context) error {
	var req drilldownRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to drilldownRequest")
	}
	req.Clean()
	req.QuestionID = core.CleanString(req.QuestionID)
	if err := api.validate.Struct(&req); err != nil {
		return err
	}
	dept, err := scopeDepartment(ctx, req.Department)
	if err != nil {
		return err
	}
	req.Department = dept

	res, err := api.svc.Results(ctx.Request().Context(), req.Filter)
	if err != nil {
		return errors.Wrap(err, "aggregating feedback")
	}

	groups := report.BuildDrilldown(res.Normalized, req.QuestionID)
	return ctx.JSON(http.StatusOK, FeedbackDrilldownResponse{Groups: groups})
}

func (api *feedbackApi) export(ctx echo.Context) error {
	var filter feedback.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to Filter")
	}
	filter.Clean()
	if err := api.validate.Struct(&filter); err != nil {
		return err
	}
	dept, err := scopeDepartment(ctx, filter.Department)
	if err != nil {
		return err
	}
	filter.Department = dept

	res, err := api.svc.Results(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "aggregating feedback")
	}

	buff, err := exportsvc.FeedbackWorkbook(res.Distribution, res.Questions)
	if err != nil {
		return errors.Wrap(err, "building workbook")
	}
	return sendWorkbook(ctx, exportsvc.FeedbackFilename(filter.Department), buff)
}

func (api *feedbackApi) cacheGet(ctx echo.Context, key string, dest interface{}) bool {
	ok, err := api.cache.GetJSON(ctx.Request().Context(), key, dest)
	if err != nil {
		api.logger.Warn(fmt.Sprintf("cache read failed for %q: %v", key, err), err)
		return false
	}
	return ok
}

func (api *feedbackApi) cacheSet(ctx echo.Context, key string, value interface{}) {
	if err := api.cache.SetJSON(ctx.Request().Context(), key, value, api.conf.Redis.ReportTTL); err != nil {
		api.logger.Warn(fmt.Sprintf("cache write failed for %q: %v", key, err), err)
	}
}

func rankedViews(aggregates []feedback.QuestionAggregate) []RankedQuestion {
	views := make([]RankedQuestion, 0, len(aggregates))
	for _, qa := range aggregates {
		views = append(views, RankedQuestion{
			QuestionID:    qa.QuestionID,
			QuestionText:  qa.QuestionText,
			AverageRating: report.Round1(qa.AverageRating),
			RatedCount:    qa.RatedCount,
		})
	}
	return views
}
