package query

// DefaultMaxRows caps a scatter projection.
const DefaultMaxRows = 5000

// SampleOptions bound a scatter projection. Zero values take the defaults.
type SampleOptions struct {
	MaxRows    int
	Seed       uint64
	NewSampler SamplerFunc
}

func (o SampleOptions) withDefaults() SampleOptions {
	if o.MaxRows <= 0 {
		o.MaxRows = DefaultMaxRows
	}
	if o.NewSampler == nil {
		o.NewSampler = NewPCGSampler
	}
	return o
}

// ScatterPoint is one projected row. Hover carries the extra columns.
type ScatterPoint struct {
	Row   int            `json:"row"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Hover map[string]any `json:"hover,omitempty"`
}

// Scatter is a bounded projection of a view onto two numeric columns.
// Total is the number of complete rows before sampling.
type Scatter struct {
	X       string         `json:"x"`
	Y       string         `json:"y"`
	Extra   []string       `json:"extra,omitempty"`
	Points  []ScatterPoint `json:"points"`
	Total   int            `json:"total"`
	Sampled bool           `json:"sampled"`
	Empty   bool           `json:"empty"`
}

// ScatterSample keeps the rows of v with values in x, y and every extra
// column, then, when more than opt.MaxRows remain, draws exactly MaxRows of
// them with a sampler seeded by opt.Seed. The same inputs always yield the
// same points, in table order.
func ScatterSample(v *View, x, y string, extra []string, opt SampleOptions) (Scatter, error) {
	opt = opt.withDefaults()

	xc, err := v.numeric(x)
	if err != nil {
		return Scatter{}, err
	}
	yc, err := v.numeric(y)
	if err != nil {
		return Scatter{}, err
	}
	for _, c := range extra {
		if !v.table.Has(c) {
			return Scatter{}, &UnknownColumnError{Column: c}
		}
	}

	out := Scatter{X: x, Y: y, Extra: extra, Points: []ScatterPoint{}}
	var kept []ScatterPoint
	for _, i := range v.rows {
		xv, ok := xc.At(i)
		if !ok {
			continue
		}
		yv, ok := yc.At(i)
		if !ok {
			continue
		}
		p := ScatterPoint{Row: i, X: xv, Y: yv}
		complete := true
		if len(extra) > 0 {
			p.Hover = make(map[string]any, len(extra))
			for _, c := range extra {
				val, ok := v.table.Cell(c, i)
				if !ok {
					complete = false
					break
				}
				p.Hover[c] = val
			}
		}
		if complete {
			kept = append(kept, p)
		}
	}

	out.Total = len(kept)
	if out.Total == 0 {
		out.Empty = true
		return out, nil
	}
	if out.Total <= opt.MaxRows {
		out.Points = kept
		return out, nil
	}

	out.Sampled = true
	pick := opt.NewSampler(opt.Seed).Sample(len(kept), opt.MaxRows)
	out.Points = make([]ScatterPoint, len(pick))
	for j, k := range pick {
		out.Points[j] = kept[k]
	}
	return out, nil
}
