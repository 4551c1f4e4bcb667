package explorer

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/mager/tracklens/config"
	"github.com/mager/tracklens/dataset"
	"github.com/mager/tracklens/query"
)

// defaultYearSpan is how many years before the latest the initial year
// selection starts.
const defaultYearSpan = 8

// Explorer answers the queries of the track explorer UI over the table
// held by a dataset.Store.
type Explorer struct {
	store *dataset.Store
	log   *zap.SugaredLogger

	maxRows     int
	seed        uint64
	topN        int
	artistLimit int
}

// Metric describes a selectable metric.
type Metric struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	UnitInterval bool   `json:"unit_interval"`
}

// Facts populate the selection controls.
type Facts struct {
	Metrics       []Metric `json:"metrics"`
	DefaultMetric string   `json:"default_metric"`
	YearMin       int      `json:"year_min"`
	YearMax       int      `json:"year_max"`
	DefaultYears  [2]int   `json:"default_years"`
	Rows          int      `json:"rows"`
}

// ArtistsRequest asks for the artist options under the current filters.
type ArtistsRequest struct {
	YearLow  int    `json:"year_low"`
	YearHigh int    `json:"year_high"`
	Search   string `json:"search"`
	Previous string `json:"previous"`
}

// ArtistsResponse lists artists by track count. Selected is Previous when
// it was retained and empty otherwise.
type ArtistsResponse struct {
	Options          []query.ArtistCount `json:"options"`
	RetainedPrevious bool                `json:"retained_previous"`
	Selected         string              `json:"selected"`
}

// FiguresRequest selects the rows and metric for the three figures.
type FiguresRequest struct {
	Artist   string `json:"artist"`
	Metric   string `json:"metric"`
	YearLow  int    `json:"year_low"`
	YearHigh int    `json:"year_high"`
	Search   string `json:"search"`
}

// FiguresResponse carries the data behind the trend, scatter and top
// tracks figures.
type FiguresResponse struct {
	Rows    int               `json:"rows"`
	Trend   query.TrendSeries `json:"trend"`
	Scatter query.Scatter     `json:"scatter"`
	Ranked  query.Ranked      `json:"ranked"`
}

// NewExplorer builds an Explorer from config.
func NewExplorer(cfg config.Config, store *dataset.Store, log *zap.SugaredLogger) *Explorer {
	return &Explorer{
		store:       store,
		log:         log,
		maxRows:     cfg.ScatterMaxRows,
		seed:        cfg.ScatterSeed,
		topN:        cfg.TopN,
		artistLimit: cfg.ArtistLimit,
	}
}

// Facts returns the metric options and year bounds of the table.
func (e *Explorer) Facts() (Facts, error) {
	f, err := e.store.Facts()
	if err != nil {
		return Facts{}, err
	}
	out := Facts{
		DefaultMetric: DefaultMetric(f.Metrics),
		YearMin:       f.YearMin,
		YearMax:       f.YearMax,
		DefaultYears:  [2]int{max(f.YearMin, f.YearMax-defaultYearSpan), f.YearMax},
		Rows:          f.Rows,
	}
	for _, m := range f.Metrics {
		out.Metrics = append(out.Metrics, Metric{
			Name:         m,
			Label:        dataset.Label(m),
			UnitInterval: dataset.IsUnitInterval(m),
		})
	}
	return out, nil
}

// Artists ranks artists under the year range and search text.
func (e *Explorer) Artists(req ArtistsRequest) (ArtistsResponse, error) {
	t, err := e.store.Get()
	if err != nil {
		return ArtistsResponse{}, err
	}
	spec := query.Spec{YearLow: req.YearLow, YearHigh: req.YearHigh, Search: req.Search}
	options, retained := query.RankArtists(t, spec, req.Previous, e.artistLimit)
	resp := ArtistsResponse{Options: options, RetainedPrevious: retained}
	if resp.Options == nil {
		resp.Options = []query.ArtistCount{}
	}
	if retained {
		resp.Selected = req.Previous
	}
	return resp, nil
}

// Figures filters the table and computes the trend, scatter sample and
// ranked table concurrently. The table is immutable so the three share
// the filtered view.
func (e *Explorer) Figures(ctx context.Context, req FiguresRequest) (FiguresResponse, error) {
	t, err := e.store.Get()
	if err != nil {
		return FiguresResponse{}, err
	}
	if req.Metric == "" {
		req.Metric = DefaultMetric(t.Metrics())
	}
	if !slices.Contains(t.Metrics(), req.Metric) {
		return FiguresResponse{}, &query.UnknownColumnError{Column: req.Metric}
	}

	v := query.Filter(t, query.Spec{
		YearLow:  req.YearLow,
		YearHigh: req.YearHigh,
		Artist:   req.Artist,
		Search:   req.Search,
	})
	resp := FiguresResponse{Rows: v.Len()}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resp.Trend, err = query.Trend(v, req.Metric)
		return err
	})
	g.Go(func() error {
		var err error
		resp.Scatter, err = query.ScatterSample(v, dataset.ColTempo, dataset.ColEnergy, HoverColumns(t),
			query.SampleOptions{MaxRows: e.maxRows, Seed: e.seed})
		return err
	})
	g.Go(func() error {
		var err error
		resp.Ranked, err = query.TopN(v, RankColumn(t, req.Metric), e.topN)
		return err
	})
	if err := g.Wait(); err != nil {
		return FiguresResponse{}, err
	}

	e.log.Debugw("figures computed",
		"rows", resp.Rows, "metric", req.Metric, "artist", req.Artist,
		"scatter_points", len(resp.Scatter.Points), "sampled", resp.Scatter.Sampled)
	return resp, nil
}

// DefaultMetric is danceability when available, else the first metric.
func DefaultMetric(metrics []string) string {
	if slices.Contains(metrics, dataset.ColDanceability) || len(metrics) == 0 {
		return dataset.ColDanceability
	}
	return metrics[0]
}

// RankColumn ranks by popularity when the table has it, else by metric.
func RankColumn(t *dataset.Table, metric string) string {
	if t.Has(dataset.ColPopularity) {
		return dataset.ColPopularity
	}
	return metric
}

// HoverColumns are shown with each scatter point.
func HoverColumns(t *dataset.Table) []string {
	cols := []string{dataset.ColTrack, dataset.ColArtist, dataset.ColYear}
	if t.Has(dataset.ColPopularity) {
		cols = append(cols, dataset.ColPopularity)
	}
	return cols
}
