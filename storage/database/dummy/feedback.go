package dummydb

import (
	"context"

	"github.com/darasa-app/darasa/core/feedback"
)

type feedbackRepository struct {
	db *feedbackTable
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

func NewFeedbackRepository(db *DB) *feedbackRepository {
	return &feedbackRepository{db: db.feedback}
}

// CreateResponse stores a raw submission; insertion order is query order.
func (repo *feedbackRepository) CreateResponse(resp feedback.RawResponse) feedback.RawResponse {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.responses = append(repo.db.responses, resp)
	return resp
}

// SetQuestions registers a form's question metadata.
func (repo *feedbackRepository) SetQuestions(formID string, questions []feedback.Question) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.questions[formID] = questions
}

func (repo *feedbackRepository) QueryResponses(_ context.Context, filter feedback.Filter) ([]feedback.RawResponse, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var out []feedback.RawResponse
	for _, resp := range repo.db.responses {
		if filter.Department != "" && resp.Department != filter.Department {
			continue
		}
		if filter.FormID != "" && resp.FormID != filter.FormID {
			continue
		}
		out = append(out, resp)
	}
	return out, nil
}

func (repo *feedbackRepository) QueryQuestions(_ context.Context, formID string) ([]feedback.Question, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.questions[formID], nil
}
