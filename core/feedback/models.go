package feedback

import (
	"math"
	"time"

	"github.com/volatiletech/null/v8"
)

// Default rating bands. Thresholds are minimums, inclusive;
// bands must be declared from best to worst.
const (
	BandExcellent = "Excellent"
	BandGood      = "Good"
	BandAverage   = "Average"
	BandPoor      = "Poor"
)

// DefaultScale matches the portal's 1-5 rating rubric.
var DefaultScale = RatingScale{
	{Label: BandExcellent, Min: 4.5},
	{Label: BandGood, Min: 3.5},
	{Label: BandAverage, Min: 2.5},
	{Label: BandPoor, Min: math.Inf(-1)},
}

type (
	// RatingBand is one bucket of a RatingScale.
	RatingBand struct {
		Label string
		Min   float64 // inclusive
	}

	// RatingScale is an ordered set of bands, best first.
	RatingScale []RatingBand

	// RawAnswer is one answer within a student's submission, as returned
	// by the forms backend. Response may be a numeric rating, a numeric
	// string or free text; shapes are irregular and tolerated.
	RawAnswer struct {
		QuestionID   string      `json:"question_id"`
		QuestionText string      `json:"question_text"`
		Response     interface{} `json:"response"`
		Comments     null.String `json:"comments"`
	}

	// RawResponse is one student's full submission to a feedback form.
	RawResponse struct {
		ID          string      `json:"response_id"`
		FormID      string      `json:"form_id"`
		Department  string      `json:"department"`
		SubmittedAt time.Time   `json:"submitted_at"`
		Answers     []RawAnswer `json:"answers"`
	}

	// QuestionResponse is the canonical, normalized form of one
	// (response, answer) pair. Rating is null unless the raw response
	// value parses as a finite number.
	QuestionResponse struct {
		QuestionID    string       `json:"question_id"`
		QuestionText  string       `json:"question_text"`
		Rating        null.Float64 `json:"rating"`
		TextResponse  null.String  `json:"text_response"`
		StudentAnonID string       `json:"student"`
		SubmittedAt   time.Time    `json:"submitted_at"`
	}

	// Question is form metadata, used to resolve question texts missing
	// from answer payloads.
	Question struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}

	// BucketCount is the tally for one rating band.
	BucketCount struct {
		Label string `json:"label"`
		Count int    `json:"count"`
	}

	// Distribution holds per-band counts in scale order. Only rated
	// responses contribute; Total is the number of rated responses.
	Distribution struct {
		Buckets []BucketCount `json:"buckets"`
		Total   int           `json:"total"`
	}

	// QuestionAggregate summarizes all responses to one question.
	// AverageRating keeps full precision; display rounding happens at the
	// report boundary only.
	QuestionAggregate struct {
		QuestionID    string  `json:"question_id"`
		QuestionText  string  `json:"question_text"`
		AverageRating float64 `json:"average_rating"`
		RatedCount    int     `json:"rated_count"`
		ResponseCount int     `json:"response_count"`
	}
)

// Bucket returns the label of the band a rating falls into.
func (sc RatingScale) Bucket(rating float64) string {
	for _, band := range sc {
		if rating >= band.Min {
			return band.Label
		}
	}
	return sc[len(sc)-1].Label
}

// Labels returns the band labels in scale order.
func (sc RatingScale) Labels() []string {
	labels := make([]string, 0, len(sc))
	for _, band := range sc {
		labels = append(labels, band.Label)
	}
	return labels
}
