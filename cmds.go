package main

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mager/tracklens/config"
	"github.com/mager/tracklens/explorer"
	"github.com/mager/tracklens/logger"
)

type rootOptions struct {
	dataDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "tracklens",
		Short:        "Explore a music tracks dataset",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			newApp(opts.dataDir).Run()
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding the dataset (overrides TRACKLENS_DATA_DIR)")

	cmd.AddCommand(
		newServeCmd(opts),
		newFactsCmd(opts),
		newArtistsCmd(opts),
		newFiguresCmd(opts),
	)
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the explorer API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			newApp(opts.dataDir).Run()
			return nil
		},
	}
}

func newFactsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "facts",
		Short: "Print the metrics and year bounds of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.explorer()
			if err != nil {
				return err
			}
			f, err := e.Facts()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), f)
		},
	}
}

func newArtistsCmd(opts *rootOptions) *cobra.Command {
	var req explorer.ArtistsRequest
	cmd := &cobra.Command{
		Use:   "artists",
		Short: "Print artists by track count under the year range and search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.explorer()
			if err != nil {
				return err
			}
			if err := defaultYears(cmd, e, &req.YearLow, &req.YearHigh); err != nil {
				return err
			}
			resp, err := e.Artists(req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	f := cmd.Flags()
	f.IntVar(&req.YearLow, "year-low", 0, "first year (default: facts default)")
	f.IntVar(&req.YearHigh, "year-high", 0, "last year (default: facts default)")
	f.StringVar(&req.Search, "search", "", "song title search")
	f.StringVar(&req.Previous, "previous", "", "previously selected artist")
	return cmd
}

func newFiguresCmd(opts *rootOptions) *cobra.Command {
	var req explorer.FiguresRequest
	cmd := &cobra.Command{
		Use:   "figures",
		Short: "Print the trend, scatter sample and top tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.explorer()
			if err != nil {
				return err
			}
			if err := defaultYears(cmd, e, &req.YearLow, &req.YearHigh); err != nil {
				return err
			}
			resp, err := e.Figures(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Artist, "artist", "", "artist, exact match")
	f.StringVar(&req.Metric, "metric", "", "metric for the trend (default: danceability)")
	f.IntVar(&req.YearLow, "year-low", 0, "first year (default: facts default)")
	f.IntVar(&req.YearHigh, "year-high", 0, "last year (default: facts default)")
	f.StringVar(&req.Search, "search", "", "song title search")
	return cmd
}

// explorer loads config and builds an Explorer outside of the fx app.
func (o *rootOptions) explorer() (*explorer.Explorer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	log := logger.ProvideLogger(cfg)
	return explorer.NewExplorer(cfg, NewStore(cfg, log), log), nil
}

func defaultYears(cmd *cobra.Command, e *explorer.Explorer, lo, hi *int) error {
	f, err := e.Facts()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("year-low") {
		*lo = f.DefaultYears[0]
	}
	if !cmd.Flags().Changed("year-high") {
		*hi = f.DefaultYears[1]
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
