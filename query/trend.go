package query

import "sort"

// TrendPoint is the mean of a metric over one year.
type TrendPoint struct {
	Year  int     `json:"year"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// TrendSeries is a metric's yearly mean, ascending by year. Empty is set
// when the input view had no rows.
type TrendSeries struct {
	Metric string       `json:"metric"`
	Points []TrendPoint `json:"points"`
	Empty  bool         `json:"empty"`
}

// Trend groups v by year and averages metric. Rows missing the metric are
// left out of their year's mean; a year with no values is omitted.
func Trend(v *View, metric string) (TrendSeries, error) {
	col, err := v.numeric(metric)
	if err != nil {
		return TrendSeries{}, err
	}
	out := TrendSeries{Metric: metric, Points: []TrendPoint{}}
	if v.Empty() {
		out.Empty = true
		return out, nil
	}

	type acc struct {
		sum float64
		n   int
	}
	byYear := make(map[int]*acc)
	for _, i := range v.rows {
		x, ok := col.At(i)
		if !ok {
			continue
		}
		y := v.table.Year(i)
		a := byYear[y]
		if a == nil {
			a = &acc{}
			byYear[y] = a
		}
		a.sum += x
		a.n++
	}

	for y, a := range byYear {
		out.Points = append(out.Points, TrendPoint{Year: y, Mean: a.sum / float64(a.n), Count: a.n})
	}
	sort.Slice(out.Points, func(i, j int) bool { return out.Points[i].Year < out.Points[j].Year })
	return out, nil
}
