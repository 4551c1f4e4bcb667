// Package datasettest provides small canonical tables for tests.
package datasettest

import "github.com/mager/tracklens/dataset"

// Track builds a row with the required features set and popularity pop.
func Track(artist, track string, year int, pop float64) dataset.Row {
	return dataset.Row{
		Artist: artist,
		Track:  track,
		Year:   year,
		Values: map[string]float64{
			dataset.ColDanceability: 0.6,
			dataset.ColEnergy:       0.7,
			dataset.ColValence:      0.4,
			dataset.ColTempo:        118,
			dataset.ColPopularity:   pop,
		},
	}
}

// Table returns three tracks by two artists over 2020 and 2021.
func Table() *dataset.Table {
	return dataset.FromRows([]string{dataset.ColPopularity},
		Track("A", "Song1", 2020, 90),
		Track("A", "Song2", 2021, 80),
		Track("B", "Song3", 2020, 95),
	)
}
