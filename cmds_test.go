package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mager/tracklens/explorer"
)

const testCSV = "artist_name,track_name,year,danceability,energy,valence,tempo,popularity\n" +
	"A,Song1,2020,0.6,0.7,0.4,118,90\n" +
	"A,Song2,2021,0.5,0.6,0.3,120,80\n" +
	"B,Song3,2020,0.4,0.9,0.2,128,95\n"

func runCmd(t *testing.T, args ...string) []byte {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spotify_data.csv"), []byte(testCSV), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--data-dir", dir))
	require.NoError(t, cmd.Execute())
	return out.Bytes()
}

func TestFactsCmd(t *testing.T) {
	var f explorer.Facts
	require.NoError(t, json.Unmarshal(runCmd(t, "facts"), &f))
	assert.Equal(t, 3, f.Rows)
	assert.Equal(t, [2]int{2020, 2021}, f.DefaultYears)
	assert.Equal(t, "danceability", f.DefaultMetric)
}

func TestArtistsCmd(t *testing.T) {
	var resp explorer.ArtistsResponse
	require.NoError(t, json.Unmarshal(runCmd(t, "artists", "--previous", "B", "--year-low", "2021"), &resp))
	require.Len(t, resp.Options, 1)
	assert.Equal(t, "A", resp.Options[0].Artist)
	assert.False(t, resp.RetainedPrevious)
	assert.Empty(t, resp.Selected)
}

func TestFiguresCmd(t *testing.T) {
	var resp explorer.FiguresResponse
	require.NoError(t, json.Unmarshal(runCmd(t, "figures", "--artist", "A", "--metric", "tempo"), &resp))
	assert.Equal(t, 2, resp.Rows)
	require.Len(t, resp.Trend.Points, 2)
	assert.Equal(t, 118.0, resp.Trend.Points[0].Mean)
	require.Len(t, resp.Ranked.Rows, 2)
	assert.Equal(t, "Song1", resp.Ranked.Rows[0].Track)
}

func TestFiguresCmdUnknownMetric(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spotify_data.csv"), []byte(testCSV), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"figures", "--metric", "loudness", "--data-dir", dir})
	assert.Error(t, cmd.Execute())
}
