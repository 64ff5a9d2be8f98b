package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func rated(qid string, rating float64) QuestionResponse {
	return QuestionResponse{
		QuestionID:   qid,
		QuestionText: "text " + qid,
		Rating:       null.Float64From(rating),
		SubmittedAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func unrated(qid string) QuestionResponse {
	qr := rated(qid, 0)
	qr.Rating = null.Float64{}
	return qr
}

func bucketCounts(dist Distribution) map[string]int {
	out := make(map[string]int, len(dist.Buckets))
	for _, b := range dist.Buckets {
		out[b.Label] = b.Count
	}
	return out
}

func TestAggregator_Distribution(t *testing.T) {
	agg := NewAggregator()

	// ratings 5, 4.5, 3, 1 -> Excellent=2, Average=1, Poor=1
	normalized := []QuestionResponse{
		rated("q1", 5), rated("q1", 4.5), rated("q1", 3), rated("q1", 1),
		unrated("q1"), // contributes nowhere
	}
	dist := agg.Distribution(normalized)

	counts := bucketCounts(dist)
	assert.Equal(t, 2, counts[BandExcellent])
	assert.Equal(t, 0, counts[BandGood])
	assert.Equal(t, 1, counts[BandAverage])
	assert.Equal(t, 1, counts[BandPoor])

	// every rated response lands in exactly one bucket
	if sum := counts[BandExcellent] + counts[BandGood] + counts[BandAverage] + counts[BandPoor]; sum != dist.Total {
		t.Errorf("bucket sum = %d; want Total %d", sum, dist.Total)
	}
	if dist.Total != 4 {
		t.Errorf("Total = %d; want 4", dist.Total)
	}
}

func TestAggregator_Distribution_boundaries(t *testing.T) {
	agg := NewAggregator()
	tests := []struct {
		rating float64
		want   string
	}{
		{5, BandExcellent},
		{4.5, BandExcellent},
		{4.49, BandGood},
		{3.5, BandGood},
		{3.49, BandAverage},
		{2.5, BandAverage},
		{2.49, BandPoor},
		{1, BandPoor},
		{0, BandPoor},
	}
	for _, tt := range tests {
		if got := agg.Scale().Bucket(tt.rating); got != tt.want {
			t.Errorf("Bucket(%v) = %q; want %q", tt.rating, got, tt.want)
		}
	}
}

func TestAggregator_Questions(t *testing.T) {
	agg := NewAggregator()
	normalized := []QuestionResponse{
		rated("q1", 5), rated("q2", 4), rated("q1", 4.5),
		unrated("q3"),
		rated("q1", 3), rated("q1", 1),
	}
	questions := agg.Questions(normalized)

	if len(questions) != 3 {
		t.Fatalf("got %d questions; want 3", len(questions))
	}
	// first-seen order determines display order
	assert.Equal(t, []string{"q1", "q2", "q3"}, []string{questions[0].QuestionID, questions[1].QuestionID, questions[2].QuestionID})

	assert.Equal(t, 3.375, questions[0].AverageRating) // (5+4.5+3+1)/4
	assert.Equal(t, 4, questions[0].RatedCount)
	assert.Equal(t, 4, questions[0].ResponseCount)

	assert.Equal(t, 4.0, questions[1].AverageRating)

	// zero rated responses -> average 0
	assert.Equal(t, 0.0, questions[2].AverageRating)
	assert.Equal(t, 0, questions[2].RatedCount)
	assert.Equal(t, 1, questions[2].ResponseCount)
}

func TestAggregator_Questions_averageKeepsPrecision(t *testing.T) {
	agg := NewAggregator()
	// [5 4 3] -> exactly 4.0
	questions := agg.Questions([]QuestionResponse{rated("q1", 5), rated("q1", 4), rated("q1", 3)})
	if got := questions[0].AverageRating; got != 4.0 {
		t.Errorf("average = %v; want 4.0", got)
	}
}

func TestAggregator_empty(t *testing.T) {
	agg := NewAggregator()
	dist, questions := agg.AggregateRatings(nil)
	if dist.Total != 0 {
		t.Errorf("Total = %d; want 0", dist.Total)
	}
	for _, b := range dist.Buckets {
		if b.Count != 0 {
			t.Errorf("bucket %q = %d; want 0", b.Label, b.Count)
		}
	}
	if len(questions) != 0 {
		t.Errorf("questions = %+v; want empty", questions)
	}
}

func TestAggregator_customScale(t *testing.T) {
	scale := RatingScale{
		{Label: "Pass", Min: 3},
		{Label: "Fail", Min: 0},
	}
	agg := NewAggregator(scale)
	dist := agg.Distribution([]QuestionResponse{rated("q1", 4), rated("q1", 1)})
	counts := bucketCounts(dist)
	assert.Equal(t, 1, counts["Pass"])
	assert.Equal(t, 1, counts["Fail"])
}

func TestRanking(t *testing.T) {
	questions := []QuestionAggregate{
		{QuestionID: "q1", AverageRating: 4.2, RatedCount: 3},
		{QuestionID: "q2", AverageRating: 2.1, RatedCount: 2},
		{QuestionID: "q3", AverageRating: 4.2, RatedCount: 5}, // tie with q1; input order wins
		{QuestionID: "q4", RatedCount: 0},                     // unrated, excluded
		{QuestionID: "q5", AverageRating: 3.0, RatedCount: 1},
	}

	top := TopRated(questions, 2)
	if len(top) != 2 || top[0].QuestionID != "q1" || top[1].QuestionID != "q3" {
		t.Errorf("TopRated = %+v; want [q1 q3]", top)
	}

	bottom := NeedsImprovement(questions, 2)
	if len(bottom) != 2 || bottom[0].QuestionID != "q2" || bottom[1].QuestionID != "q5" {
		t.Errorf("NeedsImprovement = %+v; want [q2 q5]", bottom)
	}

	// asking for more than available returns what exists
	if got := TopRated(questions, 10); len(got) != 4 {
		t.Errorf("TopRated(10) returned %d entries; want 4", len(got))
	}
}
