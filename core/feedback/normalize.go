package feedback

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"
)

const anonAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// AnonID maps a 0-based response index to a stable anonymized label:
// "Student A".."Student Z", then "Student A1", "Student B1", ...
func AnonID(i int) string {
	letter := anonAlphabet[i%len(anonAlphabet)]
	if wrap := i / len(anonAlphabet); wrap > 0 {
		return "Student " + string(letter) + strconv.Itoa(wrap)
	}
	return "Student " + string(letter)
}

// Normalize flattens raw submissions into one QuestionResponse per
// (response, answer) pair, in input order. It is pure and tolerant:
// answers without a question id are skipped, non-numeric response values
// yield a null rating, and blank comments collapse to null.
func Normalize(raw []RawResponse) []QuestionResponse {
	var out []QuestionResponse
	for i, resp := range raw {
		anonID := AnonID(i)
		for _, ans := range resp.Answers {
			if ans.QuestionID == "" {
				continue // cannot be grouped
			}
			qr := QuestionResponse{
				QuestionID:    ans.QuestionID,
				QuestionText:  ans.QuestionText,
				Rating:        parseRating(ans.Response),
				TextResponse:  cleanComments(ans.Comments),
				StudentAnonID: anonID,
				SubmittedAt:   resp.SubmittedAt,
			}
			out = append(out, qr)
		}
	}
	return out
}

// parseRating coerces a raw response value into a rating.
// Numbers and fully-numeric strings count; anything else is null.
func parseRating(v interface{}) null.Float64 {
	switch val := v.(type) {
	case nil:
		return null.Float64{}
	case float64:
		if isFinite(val) {
			return null.Float64From(val)
		}
	case float32:
		return parseRating(float64(val))
	case int:
		return null.Float64From(float64(val))
	case int64:
		return null.Float64From(float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil && isFinite(f) {
			return null.Float64From(f)
		}
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return null.Float64{}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && isFinite(f) {
			return null.Float64From(f)
		}
	}
	return null.Float64{}
}

// cleanComments treats empty and whitespace-only comments as null so
// downstream consumers see a single "no text" shape.
func cleanComments(c null.String) null.String {
	if !c.Valid {
		return null.String{}
	}
	s := strings.TrimSpace(c.String)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
