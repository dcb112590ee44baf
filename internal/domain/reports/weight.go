package reports

import (
	"math"
	"sort"

	"pet-care-insights/internal/domain/records"
)

func prepareWeight(metrics []records.MetricRecord, rng Range) *WeightSection {
	points := make([]WeightPoint, 0)
	for _, m := range metrics {
		if m.Category == records.CategoryWeight && rng.Contains(m.Date) {
			points = append(points, WeightPoint{Date: m.Date, Value: m.Value})
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	sec := &WeightSection{Points: points}
	if len(points) == 0 {
		return sec
	}

	current := points[len(points)-1].Value
	sec.Current = &current

	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	avg := round1(sum / float64(len(points)))
	sec.Average = &avg

	t := weightTrend(points[0].Value, current)
	sec.Trend = &t
	return sec
}

func weightTrend(first, last float64) Trend {
	diff := last - first

	dir := DirectionStable
	switch {
	case diff > 0:
		dir = DirectionUp
	case diff < 0:
		dir = DirectionDown
	}

	if first == 0 {
		return Trend{Direction: dir}
	}
	return Trend{Direction: dir, Percentage: round1(math.Abs(diff) / first * 100)}
}
