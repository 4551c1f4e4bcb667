package dataset

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Text and integer columns of the canonical table.
const (
	ColArtist = "artist_name"
	ColTrack  = "track_name"
	ColYear   = "year"
)

// Audio feature columns.
const (
	// ColDanceability describes how suitable a track is for dancing, from 0.0 to 1.0.
	ColDanceability = "danceability"
	// ColEnergy is a perceptual measure of intensity and activity, from 0.0 to 1.0.
	ColEnergy = "energy"
	// ColValence is the musical positiveness conveyed by a track, from 0.0 to 1.0.
	ColValence = "valence"
	// ColTempo is the estimated tempo in beats per minute.
	ColTempo = "tempo"

	ColPopularity       = "popularity"
	ColAcousticness     = "acousticness"
	ColSpeechiness      = "speechiness"
	ColInstrumentalness = "instrumentalness"
	ColLiveness         = "liveness"
	// ColLoudness is the average loudness in decibels, typically between -60 and 0.
	ColLoudness = "loudness"
)

// Year bounds applied while cleaning, inclusive.
const (
	MinYear = 1950
	MaxYear = 2030
)

// RequiredColumns must be present in every source file. A row missing any
// of them after coercion is dropped.
var RequiredColumns = []string{
	ColArtist, ColTrack, ColYear,
	ColDanceability, ColEnergy, ColValence, ColTempo,
}

// RequiredNumeric are the required float columns.
var RequiredNumeric = []string{ColDanceability, ColEnergy, ColValence, ColTempo}

// OptionalNumeric are probed in the source and kept only when present.
var OptionalNumeric = []string{
	ColPopularity, ColAcousticness, ColSpeechiness,
	ColInstrumentalness, ColLiveness, ColLoudness,
}

// metricOrder is the preferred order of selectable metrics.
var metricOrder = []string{
	ColDanceability, ColEnergy, ColValence, ColTempo, ColAcousticness,
	ColSpeechiness, ColInstrumentalness, ColLiveness, ColLoudness, ColPopularity,
}

// unitInterval metrics are bounded to [0, 1].
var unitInterval = []string{
	ColDanceability, ColEnergy, ColValence, ColAcousticness,
	ColSpeechiness, ColInstrumentalness, ColLiveness,
}

var labels = map[string]string{
	ColDanceability:     "Danceability",
	ColEnergy:           "Energy",
	ColValence:          "Valence",
	ColTempo:            "Tempo (BPM)",
	ColAcousticness:     "Acousticness",
	ColSpeechiness:      "Speechiness",
	ColInstrumentalness: "Instrumentalness",
	ColLiveness:         "Liveness",
	ColLoudness:         "Loudness (dB)",
	ColPopularity:       "Popularity",
}

// Label returns the display label for a column.
func Label(col string) string {
	if l, ok := labels[col]; ok {
		return l
	}
	return titleCase(col)
}

// IsUnitInterval reports whether values of col lie in [0, 1].
func IsUnitInterval(col string) bool {
	return slices.Contains(unitInterval, col)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
