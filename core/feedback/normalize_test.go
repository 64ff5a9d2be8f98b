package feedback

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"
)

func rawResponse(id string, answers ...RawAnswer) RawResponse {
	return RawResponse{
		ID:          id,
		SubmittedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Answers:     answers,
	}
}

func TestAnonID(t *testing.T) {
	tests := []struct {
		idx  int
		want string
	}{
		{0, "Student A"},
		{1, "Student B"},
		{25, "Student Z"},
		{26, "Student A1"},
		{27, "Student B1"},
		{52, "Student A2"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := AnonID(tt.idx); got != tt.want {
				t.Errorf("AnonID(%d) = %q; want %q", tt.idx, got, tt.want)
			}
		})
	}
}

func TestNormalize_ratingParsing(t *testing.T) {
	tests := []struct {
		name     string
		response interface{}
		want     null.Float64
	}{
		{"number", 4.5, null.Float64From(4.5)},
		{"integer", 5, null.Float64From(5)},
		{"numeric string", "4", null.Float64From(4)},
		{"decimal string", " 3.5 ", null.Float64From(3.5)},
		{"free text", "excellent service", null.Float64{}},
		{"empty string", "", null.Float64{}},
		{"nil", nil, null.Float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize([]RawResponse{
				rawResponse("r1", RawAnswer{QuestionID: "q1", QuestionText: "Q?", Response: tt.response}),
			})
			if len(out) != 1 {
				t.Fatalf("Normalize() returned %d entries; want 1", len(out))
			}
			if out[0].Rating != tt.want {
				t.Errorf("rating = %+v; want %+v", out[0].Rating, tt.want)
			}
		})
	}
}

func TestNormalize_skipsAnswersWithoutQuestionID(t *testing.T) {
	out := Normalize([]RawResponse{
		rawResponse("r1",
			RawAnswer{QuestionID: "", Response: 5},
			RawAnswer{QuestionID: "q2", Response: 4},
		),
	})
	if len(out) != 1 {
		t.Fatalf("Normalize() returned %d entries; want 1", len(out))
	}
	if out[0].QuestionID != "q2" {
		t.Errorf("kept question = %q; want %q", out[0].QuestionID, "q2")
	}
}

func TestNormalize_blankCommentsAreNull(t *testing.T) {
	out := Normalize([]RawResponse{
		rawResponse("r1",
			RawAnswer{QuestionID: "q1", Response: 4, Comments: null.StringFrom("   ")},
			RawAnswer{QuestionID: "q2", Response: 4, Comments: null.StringFrom(" loved it ")},
			RawAnswer{QuestionID: "q3", Response: 4},
		),
	})
	if out[0].TextResponse.Valid {
		t.Errorf("whitespace-only comment should be null; got %+v", out[0].TextResponse)
	}
	if got := out[1].TextResponse; !got.Valid || got.String != "loved it" {
		t.Errorf("comment = %+v; want trimmed %q", got, "loved it")
	}
	if out[2].TextResponse.Valid {
		t.Errorf("missing comment should be null; got %+v", out[2].TextResponse)
	}
}

func TestNormalize_anonIDFollowsResponseIndex(t *testing.T) {
	raw := make([]RawResponse, 30)
	for i := range raw {
		raw[i] = rawResponse(fmt.Sprintf("r%d", i), RawAnswer{QuestionID: "q1", Response: 3})
	}
	out := Normalize(raw)
	if len(out) != 30 {
		t.Fatalf("Normalize() returned %d entries; want 30", len(out))
	}
	if got := out[26].StudentAnonID; got != "Student A1" {
		t.Errorf("27th response anon id = %q; want %q", got, "Student A1")
	}
}

func TestNormalize_deterministic(t *testing.T) {
	raw := []RawResponse{
		rawResponse("r1",
			RawAnswer{QuestionID: "q1", QuestionText: "Pace?", Response: "4", Comments: null.StringFrom("ok")},
			RawAnswer{QuestionID: "q2", QuestionText: "Clarity?", Response: "meh"},
		),
		rawResponse("r2", RawAnswer{QuestionID: "q1", Response: 2}),
	}
	first := Normalize(raw)
	second := Normalize(raw)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Normalize() is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestNormalize_empty(t *testing.T) {
	if out := Normalize(nil); len(out) != 0 {
		t.Errorf("Normalize(nil) = %+v; want empty", out)
	}
	if out := Normalize([]RawResponse{rawResponse("r1")}); len(out) != 0 {
		t.Errorf("Normalize(no answers) = %+v; want empty", out)
	}
}
