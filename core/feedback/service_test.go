package feedback

import (
	"context"
	"testing"
	"time"
)

type stubRepo struct {
	responses     []RawResponse
	questions     map[string][]Question
	questionCalls int
}

var _ Repository = (*stubRepo)(nil)

func (r *stubRepo) QueryResponses(_ context.Context, filter Filter) ([]RawResponse, error) {
	var out []RawResponse
	for _, resp := range r.responses {
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

func (r *stubRepo) QueryQuestions(_ context.Context, formID string) ([]Question, error) {
	r.questionCalls++
	return r.questions[formID], nil
}

func TestService_Results_resolvesQuestionTexts(t *testing.T) {
	submitted := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		responses: []RawResponse{
			{
				ID: "r1", FormID: "f1", Department: "science", SubmittedAt: submitted,
				Answers: []RawAnswer{
					{QuestionID: "q1", Response: 4}, // text known to metadata
					{QuestionID: "q2", Response: 5}, // unknown, falls back
					{QuestionID: "q3", QuestionText: "Inline", Response: 3},
				},
			},
		},
		questions: map[string][]Question{
			"f1": {{ID: "q1", Text: "Course content"}},
		},
	}
	svc := NewService(repo)

	res, err := svc.Results(context.Background(), Filter{FormID: "f1"})
	if err != nil {
		t.Fatalf("Results(): %v", err)
	}

	wantTexts := map[string]string{
		"q1": "Course content",
		"q2": "Question q2",
		"q3": "Inline",
	}
	for _, qa := range res.Questions {
		if got := wantTexts[qa.QuestionID]; qa.QuestionText != got {
			t.Errorf("QuestionText[%s] = %q; want %q", qa.QuestionID, qa.QuestionText, got)
		}
	}
	if repo.questionCalls != 1 {
		t.Errorf("questionCalls = %d; want 1", repo.questionCalls)
	}
}

func TestService_Results_skipsMetadataWhenTextsPresent(t *testing.T) {
	repo := &stubRepo{
		responses: []RawResponse{
			{
				ID: "r1", FormID: "f1", Department: "science",
				Answers: []RawAnswer{
					{QuestionID: "q1", QuestionText: "Course content", Response: 4},
				},
			},
		},
	}
	svc := NewService(repo)

	if _, err := svc.Results(context.Background(), Filter{FormID: "f1"}); err != nil {
		t.Fatalf("Results(): %v", err)
	}
	if repo.questionCalls != 0 {
		t.Errorf("questionCalls = %d; want 0", repo.questionCalls)
	}
}

func TestService_Results_fallbackWithoutFormFilter(t *testing.T) {
	repo := &stubRepo{
		responses: []RawResponse{
			{
				ID: "r1", FormID: "f1", Department: "science",
				Answers: []RawAnswer{
					{QuestionID: "q1", Response: 4},
				},
			},
		},
	}
	svc := NewService(repo)

	res, err := svc.Results(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Results(): %v", err)
	}
	if got := res.Questions[0].QuestionText; got != "Question q1" {
		t.Errorf("QuestionText = %q; want %q", got, "Question q1")
	}
	if repo.questionCalls != 0 {
		t.Errorf("questionCalls = %d; want 0", repo.questionCalls)
	}
}
