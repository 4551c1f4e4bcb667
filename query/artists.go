package query

import (
	"golang.org/x/exp/slices"

	"github.com/mager/tracklens/dataset"
)

// DefaultArtistLimit bounds the artist list handed to selection controls.
const DefaultArtistLimit = 300

// ArtistCount is an artist and the number of matching tracks.
type ArtistCount struct {
	Artist string `json:"artist"`
	Count  int    `json:"count"`
}

// RankArtists counts tracks per artist among the rows matching the year
// range and search text of spec (its Artist is ignored), ordered by count
// descending with ties in first-seen order, truncated to limit. It also
// reports whether previous is among the returned artists.
func RankArtists(t *dataset.Table, spec Spec, previous string, limit int) ([]ArtistCount, bool) {
	if limit <= 0 {
		limit = DefaultArtistLimit
	}
	spec.Artist = ""
	v := Filter(t, spec)

	pos := make(map[string]int)
	var counts []ArtistCount
	for _, i := range v.rows {
		a := t.Artist(i)
		p, ok := pos[a]
		if !ok {
			p = len(counts)
			pos[a] = p
			counts = append(counts, ArtistCount{Artist: a})
		}
		counts[p].Count++
	}

	slices.SortStableFunc(counts, func(a, b ArtistCount) int {
		return b.Count - a.Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}

	retained := false
	if previous != "" {
		retained = slices.ContainsFunc(counts, func(c ArtistCount) bool {
			return c.Artist == previous
		})
	}
	return counts, retained
}
