package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/darasa-app/darasa/core/feedback"
)

type feedbackRepository struct {
	db *sqlx.DB
}

var _ feedback.Repository = (*feedbackRepository)(nil)

func NewFeedbackRepository(db *sqlx.DB) feedback.Repository {
	return &feedbackRepository{db: db}
}

type (
	responseRow struct {
		ID          string    `db:"id"`
		FormID      string    `db:"form_id"`
		Department  string    `db:"department"`
		SubmittedAt time.Time `db:"submitted_at"`
	}

	answerRow struct {
		ResponseID   string      `db:"response_id"`
		QuestionID   string      `db:"question_id"`
		QuestionText string      `db:"question_text"`
		Response     null.String `db:"response"`
		Comments     null.String `db:"comments"`
	}

	questionRow struct {
		ID   string `db:"id"`
		Text string `db:"text"`
	}
)

func (repo *feedbackRepository) QueryResponses(ctx context.Context, filter feedback.Filter) ([]feedback.RawResponse, error) {
	query := `SELECT id, form_id, department, submitted_at
		FROM feedback_response
		WHERE ($1 = '' OR department = $1)
		  AND ($2 = '' OR form_id = $2)
		ORDER BY submitted_at, id`

	var rows []responseRow
	if err := repo.db.SelectContext(ctx, &rows, query, filter.Department, filter.FormID); err != nil {
		return nil, errors.Wrap(err, "querying feedback responses")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	byID := make(map[string]int, len(rows))
	out := make([]feedback.RawResponse, 0, len(rows))
	for i, row := range rows {
		ids = append(ids, row.ID)
		byID[row.ID] = i
		out = append(out, feedback.RawResponse{
			ID:          row.ID,
			FormID:      row.FormID,
			Department:  row.Department,
			SubmittedAt: row.SubmittedAt.UTC(),
		})
	}

	ansQuery, args, err := sqlx.In(`SELECT response_id, question_id, question_text, response, comments
		FROM feedback_answer
		WHERE response_id IN (?)
		ORDER BY response_id, position, id`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "building answers query")
	}

	var answers []answerRow
	if err = repo.db.SelectContext(ctx, &answers, repo.db.Rebind(ansQuery), args...); err != nil {
		return nil, errors.Wrap(err, "querying feedback answers")
	}

	for _, ans := range answers {
		idx, ok := byID[ans.ResponseID]
		if !ok {
			continue
		}
		var responseVal interface{}
		if ans.Response.Valid {
			responseVal = ans.Response.String
		}
		out[idx].Answers = append(out[idx].Answers, feedback.RawAnswer{
			QuestionID:   ans.QuestionID,
			QuestionText: ans.QuestionText,
			Response:     responseVal,
			Comments:     ans.Comments,
		})
	}
	return out, nil
}

func (repo *feedbackRepository) QueryQuestions(ctx context.Context, formID string) ([]feedback.Question, error) {
	var rows []questionRow
	query := `SELECT id, text FROM feedback_question WHERE form_id = $1 ORDER BY position, id`
	if err := repo.db.SelectContext(ctx, &rows, query, formID); err != nil {
		return nil, errors.Wrap(err, "querying form questions")
	}

	questions := make([]feedback.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, feedback.Question{ID: row.ID, Text: row.Text})
	}
	return questions, nil
}
