package feedback

import (
	"context"

	"github.com/darasa-app/darasa/core"
)

type (
	Repository interface {
		// QueryResponses applies AND operation on available Filter fields.
		QueryResponses(ctx context.Context, filter Filter) ([]RawResponse, error)
		// QueryQuestions returns the form's question metadata, in form order.
		QueryQuestions(ctx context.Context, formID string) ([]Question, error)
	}

	Service struct {
		repo Repository
		agg  *Aggregator
	}

	// Filter narrows which raw submissions are fetched.
	Filter struct {
		Department string `query:"department" json:"department" validate:"omitempty,alphanum_"`
		FormID     string `query:"form" json:"form"`
	}

	// Results is the recomputed-on-demand projection of a filtered set of
	// submissions. It holds no persistent identity; callers discard it
	// whenever the underlying filter changes.
	Results struct {
		Normalized    []QuestionResponse  `json:"-"`
		Distribution  Distribution        `json:"distribution"`
		Questions     []QuestionAggregate `json:"questions"`
		ResponseCount int                 `json:"response_count"`
	}
)

func (f *Filter) Clean() {
	f.Department = core.CleanString(f.Department)
	f.FormID = core.CleanString(f.FormID)
}

func NewService(repo Repository, scale ...RatingScale) *Service {
	return &Service{repo: repo, agg: NewAggregator(scale...)}
}

func (svc *Service) Aggregator() *Aggregator { return svc.agg }

// Results fetches the filtered submissions and derives the full report
// projection: normalization, distribution and per-question aggregates.
func (svc *Service) Results(ctx context.Context, filter Filter) (*Results, error) {
	raw, err := svc.repo.QueryResponses(ctx, filter)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(raw)
	if filter.FormID != "" {
		if err = svc.resolveQuestionTexts(ctx, filter.FormID, normalized); err != nil {
			return nil, err
		}
	}
	fillFallbackTexts(normalized)

	dist, questions := svc.agg.AggregateRatings(normalized)
	return &Results{
		Normalized:    normalized,
		Distribution:  dist,
		Questions:     questions,
		ResponseCount: len(raw),
	}, nil
}

// resolveQuestionTexts fills question texts missing from answer payloads
// using the form's metadata.
func (svc *Service) resolveQuestionTexts(ctx context.Context, formID string, normalized []QuestionResponse) error {
	var texts map[string]string
	for i := range normalized {
		if normalized[i].QuestionText != "" {
			continue
		}
		if texts == nil {
			questions, err := svc.repo.QueryQuestions(ctx, formID)
			if err != nil {
				return err
			}
			texts = make(map[string]string, len(questions))
			for _, q := range questions {
				texts[q.ID] = q.Text
			}
		}
		normalized[i].QuestionText = texts[normalized[i].QuestionID]
	}
	return nil
}

func fillFallbackTexts(normalized []QuestionResponse) {
	for i := range normalized {
		if normalized[i].QuestionText == "" {
			normalized[i].QuestionText = "Question " + normalized[i].QuestionID
		}
	}
}
