package dataset

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() *Table {
	return FromRows([]string{ColPopularity},
		Row{Artist: "A", Track: "Song1", Year: 2020, Values: map[string]float64{ColDanceability: .5, ColEnergy: .5, ColValence: .5, ColTempo: 100, ColPopularity: 90}},
		Row{Artist: "A", Track: "Song2", Year: 2021, Values: map[string]float64{ColDanceability: .5, ColEnergy: .5, ColValence: .5, ColTempo: 100, ColPopularity: 80}},
		Row{Artist: "B", Track: "Song3", Year: 2020, Values: map[string]float64{ColDanceability: .5, ColEnergy: .5, ColValence: .5, ColTempo: 100, ColPopularity: 95}},
	)
}

func TestStoreLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	s := NewStore(func() (*Table, error) {
		calls.Add(1)
		return fixture(), nil
	}, nil)
	assert.False(t, s.Loaded())

	var wg sync.WaitGroup
	tables := make([]*Table, 16)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, err := s.Get()
			assert.NoError(t, err)
			tables[i] = tbl
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, tbl := range tables {
		assert.Same(t, tables[0], tbl)
	}
	assert.True(t, s.Loaded())
}

func TestStoreFacts(t *testing.T) {
	s := NewStaticStore(fixture())

	f, err := s.Facts()
	require.NoError(t, err)
	assert.Equal(t, Facts{
		Metrics: []string{ColDanceability, ColEnergy, ColValence, ColTempo, ColPopularity},
		YearMin: 2020,
		YearMax: 2021,
		Rows:    3,
	}, f)

	f.Metrics[0] = "changed"
	again, _ := s.Facts()
	assert.Equal(t, ColDanceability, again.Metrics[0])
}

func TestStoreKeepsError(t *testing.T) {
	var calls int
	s := NewStore(func() (*Table, error) {
		calls++
		return nil, &NotFoundError{Dir: "/data"}
	}, nil)

	_, err := s.Get()
	_, err2 := s.Get()
	_, err3 := s.Facts()
	assert.Equal(t, 1, calls)
	assert.Equal(t, err, err2)
	var nf *NotFoundError
	assert.True(t, errors.As(err3, &nf))
	assert.False(t, s.Loaded())
}

func TestStorePanicIsMemoized(t *testing.T) {
	var calls atomic.Int32
	s := NewStore(func() (*Table, error) {
		calls.Add(1)
		panic("boom")
	}, nil)

	for i := 0; i < 2; i++ {
		tbl, err := s.Get()
		require.Error(t, err)
		assert.Nil(t, tbl)
		assert.Contains(t, err.Error(), "boom")
	}
	_, err := s.Facts()
	assert.Error(t, err)
	assert.False(t, s.Loaded())
	assert.Equal(t, int32(1), calls.Load())
}
