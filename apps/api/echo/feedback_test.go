package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/darasa-app/darasa/core/feedback"
	"github.com/darasa-app/darasa/core/report"
)

var feedbackSeedBase = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func seedFeedback(repo feedbackSeeder) {
	repo.CreateResponse(feedback.RawResponse{
		ID: "r1", FormID: "f1", Department: "science", SubmittedAt: feedbackSeedBase,
		Answers: []feedback.RawAnswer{
			{QuestionID: "q1", QuestionText: "Course content", Response: 5},
			{QuestionID: "q2", QuestionText: "Pace of lectures", Response: 3},
		},
	})
	repo.CreateResponse(feedback.RawResponse{
		ID: "r2", FormID: "f1", Department: "science", SubmittedAt: feedbackSeedBase.Add(time.Hour),
		Answers: []feedback.RawAnswer{
			{QuestionID: "q1", QuestionText: "Course content", Response: "4.5"},
			{
				QuestionID:   "q2",
				QuestionText: "Pace of lectures",
				Response:     "Too fast sometimes",
				Comments:     null.StringFrom("please slow down"),
			},
		},
	})
	repo.CreateResponse(feedback.RawResponse{
		ID: "r3", FormID: "f1", Department: "arts", SubmittedAt: feedbackSeedBase.Add(2 * time.Hour),
		Answers: []feedback.RawAnswer{
			{QuestionID: "q1", QuestionText: "Course content", Response: 2},
		},
	})
}

func Test_feedbackApi_results(t *testing.T) {
	app, fRepo, _, conf := setup(t)
	seedFeedback(fRepo)

	adminToken := getToken(t, conf, "", false, true)
	teacherToken := getToken(t, conf, "science", true, false)
	studentToken := getToken(t, conf, "science", false, false)

	allResults := FeedbackResultsResponse{
		ResponseCount: 3,
		Distribution: report.ChartSeries{
			Labels: []string{"Excellent", "Good", "Average", "Poor"},
			Data:   []int{2, 0, 1, 1},
			Total:  4,
		},
		Questions: report.QuestionSeries{
			Labels: []string{"Course content", "Pace of lectures"},
			Data:   []float64{3.8, 3},
		},
		TopRated: []RankedQuestion{
			{QuestionID: "q1", QuestionText: "Course content", AverageRating: 3.8, RatedCount: 3},
			{QuestionID: "q2", QuestionText: "Pace of lectures", AverageRating: 3, RatedCount: 1},
		},
		NeedsImprovement: []RankedQuestion{
			{QuestionID: "q2", QuestionText: "Pace of lectures", AverageRating: 3, RatedCount: 1},
			{QuestionID: "q1", QuestionText: "Course content", AverageRating: 3.8, RatedCount: 3},
		},
	}
	scienceResults := FeedbackResultsResponse{
		Department:    "science",
		ResponseCount: 2,
		Distribution: report.ChartSeries{
			Labels: []string{"Excellent", "Good", "Average", "Poor"},
			Data:   []int{2, 0, 1, 0},
			Total:  3,
		},
		Questions: report.QuestionSeries{
			Labels: []string{"Course content", "Pace of lectures"},
			Data:   []float64{4.8, 3},
		},
		TopRated: []RankedQuestion{
			{QuestionID: "q1", QuestionText: "Course content", AverageRating: 4.8, RatedCount: 2},
			{QuestionID: "q2", QuestionText: "Pace of lectures", AverageRating: 3, RatedCount: 1},
		},
		NeedsImprovement: []RankedQuestion{
			{QuestionID: "q2", QuestionText: "Pace of lectures", AverageRating: 3, RatedCount: 1},
			{QuestionID: "q1", QuestionText: "Course content", AverageRating: 4.8, RatedCount: 2},
		},
	}
	emptyResults := FeedbackResultsResponse{
		Department: "history",
		Distribution: report.ChartSeries{
			Labels: []string{"Excellent", "Good", "Average", "Poor"},
			Data:   []int{0, 0, 0, 0},
		},
		Questions: report.QuestionSeries{
			Labels: []string{},
			Data:   []float64{},
		},
		TopRated:         []RankedQuestion{},
		NeedsImprovement: []RankedQuestion{},
	}

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodGet, path: "/v1/feedback/results",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "students not allowed", method: http.MethodGet, path: "/v1/feedback/results",
			token: studentToken, wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "all departments", method: http.MethodGet, path: "/v1/feedback/results",
			token: adminToken, wantCode: http.StatusOK, wantData: marchallObj(t, allResults),
		},
		{
			name: "department filter", method: http.MethodGet, path: "/v1/feedback/results?department=science",
			token: teacherToken, wantCode: http.StatusOK, wantData: marchallObj(t, scienceResults),
		},
		{
			name: "teachers pinned to their department", method: http.MethodGet,
			path:  "/v1/feedback/results?department=arts",
			token: teacherToken, wantCode: http.StatusOK, wantData: marchallObj(t, scienceResults),
		},
		{
			name: "unknown department is empty", method: http.MethodGet, path: "/v1/feedback/results?department=history",
			token: adminToken, wantCode: http.StatusOK, wantData: marchallObj(t, emptyResults),
		},
		{
			name: "invalid department", method: http.MethodGet, path: "/v1/feedback/results?department=sci%40nce",
			token: teacherToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"department": "only alphanumeric characters and underscores are allowed",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_feedbackApi_drilldown(t *testing.T) {
	app, fRepo, _, conf := setup(t)
	seedFeedback(fRepo)

	token := getToken(t, conf, "science", true, false)

	q1Group := report.QuestionGroup{
		QuestionID:   "q1",
		QuestionText: "Course content",
		Responses: []feedback.QuestionResponse{
			{
				QuestionID: "q1", QuestionText: "Course content",
				Rating:        null.Float64From(5),
				StudentAnonID: "Student A", SubmittedAt: feedbackSeedBase,
			},
			{
				QuestionID: "q1", QuestionText: "Course content",
				Rating:        null.Float64From(4.5),
				StudentAnonID: "Student B", SubmittedAt: feedbackSeedBase.Add(time.Hour),
			},
		},
	}
	q2Group := report.QuestionGroup{
		QuestionID:   "q2",
		QuestionText: "Pace of lectures",
		Responses: []feedback.QuestionResponse{
			{
				QuestionID: "q2", QuestionText: "Pace of lectures",
				Rating:        null.Float64From(3),
				StudentAnonID: "Student A", SubmittedAt: feedbackSeedBase,
			},
			{
				QuestionID: "q2", QuestionText: "Pace of lectures",
				TextResponse:  null.StringFrom("please slow down"),
				StudentAnonID: "Student B", SubmittedAt: feedbackSeedBase.Add(time.Hour),
			},
		},
	}

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodGet, path: "/v1/feedback/results/drilldown",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "all questions", method: http.MethodGet,
			path:  "/v1/feedback/results/drilldown?department=science",
			token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, FeedbackDrilldownResponse{Groups: []report.QuestionGroup{q1Group, q2Group}}),
		},
		{
			name: "all keyword", method: http.MethodGet,
			path:  "/v1/feedback/results/drilldown?department=science&question=all",
			token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, FeedbackDrilldownResponse{Groups: []report.QuestionGroup{q1Group, q2Group}}),
		},
		{
			name: "single question", method: http.MethodGet,
			path:  "/v1/feedback/results/drilldown?department=science&question=q2",
			token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, FeedbackDrilldownResponse{Groups: []report.QuestionGroup{q2Group}}),
		},
		{
			name: "unknown question", method: http.MethodGet,
			path:  "/v1/feedback/results/drilldown?department=science&question=q9",
			token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, FeedbackDrilldownResponse{Groups: []report.QuestionGroup{}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_feedbackApi_export(t *testing.T) {
	app, fRepo, _, conf := setup(t)
	seedFeedback(fRepo)

	token := getToken(t, conf, "science", true, false)

	req, rec := newAuthRequest(http.MethodGet, "/v1/feedback/export?department=science", token)
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("failed! Content-Type = %v", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="feedback_science.xlsx"` {
		t.Errorf("failed! Content-Disposition = %v", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("failed! empty workbook")
	}
}
