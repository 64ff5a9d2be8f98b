package feedback

import "sort"

// Aggregator computes rating distributions and per-question aggregates.
// The scale is fixed at construction; aggregation itself is pure and
// deterministic for a given input order.
type Aggregator struct {
	scale RatingScale
}

// NewAggregator returns an Aggregator using the given scale,
// or DefaultScale when none is provided.
func NewAggregator(scale ...RatingScale) *Aggregator {
	sc := DefaultScale
	if len(scale) > 0 && len(scale[0]) > 0 {
		sc = scale[0]
	}
	return &Aggregator{scale: sc}
}

func (agg *Aggregator) Scale() RatingScale { return agg.scale }

// Distribution tallies rated responses into the scale's bands.
// Unrated entries contribute to no bucket.
func (agg *Aggregator) Distribution(normalized []QuestionResponse) Distribution {
	dist := Distribution{Buckets: make([]BucketCount, len(agg.scale))}
	idx := make(map[string]int, len(agg.scale))
	for i, band := range agg.scale {
		dist.Buckets[i] = BucketCount{Label: band.Label}
		idx[band.Label] = i
	}
	for _, qr := range normalized {
		if !qr.Rating.Valid {
			continue
		}
		dist.Buckets[idx[agg.scale.Bucket(qr.Rating.Float64)]].Count++
		dist.Total++
	}
	return dist
}

// Questions groups normalized responses by question id, in first-seen
// order. Averages only cover rated responses; a question with no rated
// responses averages to 0.
func (agg *Aggregator) Questions(normalized []QuestionResponse) []QuestionAggregate {
	type acc struct {
		idx   int
		sum   float64
		rated int
		total int
	}
	var order []string
	accs := make(map[string]*acc)
	texts := make(map[string]string)

	for _, qr := range normalized {
		a, ok := accs[qr.QuestionID]
		if !ok {
			a = &acc{idx: len(order)}
			accs[qr.QuestionID] = a
			order = append(order, qr.QuestionID)
		}
		a.total++
		if qr.Rating.Valid {
			a.sum += qr.Rating.Float64
			a.rated++
		}
		if texts[qr.QuestionID] == "" {
			texts[qr.QuestionID] = qr.QuestionText
		}
	}

	out := make([]QuestionAggregate, 0, len(order))
	for _, qid := range order {
		a := accs[qid]
		qa := QuestionAggregate{
			QuestionID:    qid,
			QuestionText:  texts[qid],
			RatedCount:    a.rated,
			ResponseCount: a.total,
		}
		if a.rated > 0 {
			qa.AverageRating = a.sum / float64(a.rated)
		}
		out = append(out, qa)
	}
	return out
}

// AggregateRatings computes the distribution and the per-question
// aggregates in one pass over the same input.
func (agg *Aggregator) AggregateRatings(normalized []QuestionResponse) (Distribution, []QuestionAggregate) {
	return agg.Distribution(normalized), agg.Questions(normalized)
}

// TopRated returns up to n questions with the highest averages;
// ties keep input order. Questions with no ratings are excluded.
func TopRated(aggregates []QuestionAggregate, n int) []QuestionAggregate {
	return rank(aggregates, n, func(a, b QuestionAggregate) bool {
		return a.AverageRating > b.AverageRating
	})
}

// NeedsImprovement returns up to n rated questions with the lowest averages.
func NeedsImprovement(aggregates []QuestionAggregate, n int) []QuestionAggregate {
	return rank(aggregates, n, func(a, b QuestionAggregate) bool {
		return a.AverageRating < b.AverageRating
	})
}

func rank(aggregates []QuestionAggregate, n int, less func(a, b QuestionAggregate) bool) []QuestionAggregate {
	rated := make([]QuestionAggregate, 0, len(aggregates))
	for _, qa := range aggregates {
		if qa.RatedCount > 0 {
			rated = append(rated, qa)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool { return less(rated[i], rated[j]) })
	if n < len(rated) {
		rated = rated[:n]
	}
	return rated
}
