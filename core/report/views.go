// Package report shapes aggregator outputs into chart-ready series and
// drill-down structures. All builders are pure projections, safe to call
// on every render.
package report

import (
	"math"

	"github.com/darasa-app/darasa/core/feedback"
)

type (
	// ChartSeries is a label/count pairing in fixed scale order.
	// Total == 0 tells the consumer to render its empty state.
	ChartSeries struct {
		Labels []string `json:"labels"`
		Data   []int    `json:"data"`
		Total  int      `json:"total"`
	}

	// QuestionSeries pairs question texts (first-seen order) with their
	// display-rounded average ratings.
	QuestionSeries struct {
		Labels []string  `json:"labels"`
		Data   []float64 `json:"data"`
	}

	// QuestionGroup is one drill-down bucket: every normalized response
	// to a single question, in input order.
	QuestionGroup struct {
		QuestionID   string                      `json:"question_id"`
		QuestionText string                      `json:"question_text"`
		Responses    []feedback.QuestionResponse `json:"responses"`
	}
)

// DrilldownAll selects every question group.
const DrilldownAll = "all"

// BuildChartSeries maps a rating distribution onto chart labels and counts,
// preserving the scale's band order.
func BuildChartSeries(dist feedback.Distribution) ChartSeries {
	series := ChartSeries{
		Labels: make([]string, 0, len(dist.Buckets)),
		Data:   make([]int, 0, len(dist.Buckets)),
		Total:  dist.Total,
	}
	for _, bucket := range dist.Buckets {
		series.Labels = append(series.Labels, bucket.Label)
		series.Data = append(series.Data, bucket.Count)
	}
	return series
}

// BuildQuestionSeries maps per-question aggregates onto chart labels and
// averages rounded to one decimal. Rounding happens here, at the
// presentation boundary, never inside the aggregates themselves.
func BuildQuestionSeries(aggregates []feedback.QuestionAggregate) QuestionSeries {
	series := QuestionSeries{
		Labels: make([]string, 0, len(aggregates)),
		Data:   make([]float64, 0, len(aggregates)),
	}
	for _, qa := range aggregates {
		series.Labels = append(series.Labels, qa.QuestionText)
		series.Data = append(series.Data, Round1(qa.AverageRating))
	}
	return series
}

// BuildDrilldown partitions normalized responses by question id, keeping
// first-seen question order. filterQuestionID of "all" or "" returns every
// group; an unknown id returns an empty slice, not an error.
func BuildDrilldown(normalized []feedback.QuestionResponse, filterQuestionID string) []QuestionGroup {
	var order []string
	groups := make(map[string]*QuestionGroup)
	for _, qr := range normalized {
		g, ok := groups[qr.QuestionID]
		if !ok {
			g = &QuestionGroup{QuestionID: qr.QuestionID, QuestionText: qr.QuestionText}
			groups[qr.QuestionID] = g
			order = append(order, qr.QuestionID)
		}
		g.Responses = append(g.Responses, qr)
	}

	if filterQuestionID != "" && filterQuestionID != DrilldownAll {
		if g, ok := groups[filterQuestionID]; ok {
			return []QuestionGroup{*g}
		}
		return []QuestionGroup{}
	}

	out := make([]QuestionGroup, 0, len(order))
	for _, qid := range order {
		out = append(out, *groups[qid])
	}
	return out
}

// Round1 rounds to one decimal for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
