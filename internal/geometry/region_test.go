package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceToLine(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}

	assert.InDelta(t, 3.0, DistanceToLine(Point{4, 3}, a, b), 1e-9)
	// not clipped to the segment
	assert.InDelta(t, 3.0, DistanceToLine(Point{40, -3}, a, b), 1e-9)
	assert.InDelta(t, 5.0, DistanceToLine(Point{3, 4}, a, a), 1e-9)
}

func TestRegionCovers(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		p      Point
		lambda float64
		want   bool
	}{
		{"disc inside", Disc(Point{5, 5}, 4), Point{6, 6}, 1, true},
		{"disc shrunk", Disc(Point{5, 5}, 4), Point{7, 5}, 0.5, false},
		{"disc boundary is outside", Disc(Point{0, 0}, 2), Point{2, 0}, 1, false},
		{"line far beyond endpoint", Line(Point{0, 0}, Point{0, 10}, 2), Point{1, 100}, 1, true},
		{"line too far", Line(Point{0, 0}, Point{0, 10}, 2), Point{3, 5}, 1, false},
		{"box inside", Box(Point{5, 5}, 2, 4), Point{6, 8}, 1, true},
		{"box x out", Box(Point{5, 5}, 2, 4), Point{7.5, 5}, 1, false},
		{"box y scaled out", Box(Point{5, 5}, 2, 4), Point{5, 8}, 0.5, false},
		{"band same row inside span", Band(Point{3, 0}, Point{3, 10}, 2, 0), Point{4, 5}, 1, true},
		{"band same row outside span", Band(Point{3, 0}, Point{3, 10}, 2, 0), Point{3, 11}, 1, false},
		{"band same column", Band(Point{0, -5}, Point{4, -5}, 0, 20), Point{2, 10}, 1, true},
		{"band same column early", Band(Point{0, -5}, Point{4, -5}, 0, 20), Point{2, 10}, 0.5, false},
		{"band same column outside span", Band(Point{0, -5}, Point{4, -5}, 0, 20), Point{5, -5}, 1, false},
		{"zero radius never covers", Disc(Point{1, 1}, 0), Point{1, 1}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.region.Covers(tt.p, tt.lambda))
		})
	}
}

func TestCenterCoveredForAnyProgress(t *testing.T) {
	regions := []Region{
		Disc(Point{3, 4}, 0.5),
		Box(Point{3, 4}, 1, 2),
		Line(Point{3, 4}, Point{10, 9}, 1),
		Band(Point{3, 4}, Point{3, 20}, 1, 1),
	}
	for _, r := range regions {
		for _, lambda := range []float64{1e-6, 0.01, 0.5, 1} {
			assert.True(t, r.Covers(r.Center, lambda), "%+v at %v", r, lambda)
		}
	}
}

func TestRegionValidate(t *testing.T) {
	assert.NoError(t, Band(Point{0, 0}, Point{0, 5}, 1, 1).Validate())
	assert.ErrorIs(t, Band(Point{0, 0}, Point{1, 5}, 1, 1).Validate(), ErrInvalidRegion)
	assert.ErrorIs(t, Region{Metric: Metric(7)}.Validate(), ErrInvalidRegion)

	_, err := NewRegionSet(Disc(Point{}, 1), Region{Metric: Metric(-1)})
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestRegionSetCovers(t *testing.T) {
	set, err := NewRegionSet(Disc(Point{0, 0}, 1), Disc(Point{10, 10}, 1))
	require.NoError(t, err)

	assert.True(t, set.Covers(Point{10, 10.5}, 1))
	assert.False(t, set.Covers(Point{5, 5}, 1))
	assert.False(t, RegionSet(nil).Covers(Point{}, 1))
	assert.False(t, set.Covers(Point{0, 0}, 0))
	assert.False(t, set.Covers(Point{math.NaN(), 0}, 1))
}
