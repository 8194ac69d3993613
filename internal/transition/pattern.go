package transition

import (
	"fmt"

	"github.com/ivlev/framemix/internal/geometry"
)

// Wipe shape families, selected by variant/2.
const (
	WipeCircle = iota
	WipeGrid
	WipeStripes
	WipeCrossStripes
	WipeSequentialStripes
)

// Range of cells, stripes or bands drawn for the patterned wipe families.
const (
	minPatternCount = 6
	maxPatternCount = 10
)

// wipePattern builds the regions for a wipe family on a width x height frame. The
// regions jointly cover the whole frame at progress 1.
func wipePattern(family, width, height int, rng Rand) (geometry.RegionSet, error) {
	h, w := float64(height), float64(width)

	var regions []geometry.Region
	switch family {
	case WipeCircle:
		c := geometry.Point{X: (h - 1) / 2, Y: (w - 1) / 2}
		regions = append(regions, geometry.Disc(c, geometry.Distance(c, geometry.Point{})))

	case WipeGrid:
		g := randInt(rng, minPatternCount, maxPatternCount)
		rx := h / float64(g) / 2
		ry := w / float64(g) / 2
		for i := 0; i < g; i++ {
			cx := float64(i+1)*h/float64(g) - rx
			for j := 0; j < g; j++ {
				cy := float64(j+1)*w/float64(g) - ry
				regions = append(regions, geometry.Box(geometry.Point{X: cx, Y: cy}, rx, ry))
			}
		}

	case WipeStripes:
		s := randInt(rng, minPatternCount, maxPatternCount)
		ry := w / float64(s) / 2
		for i := 0; i < s; i++ {
			cy := float64(i+1)*w/float64(s) - ry
			regions = append(regions, geometry.Line(
				geometry.Point{X: 0, Y: cy}, geometry.Point{X: h - 1, Y: cy}, ry))
		}

	case WipeCrossStripes:
		s := randInt(rng, minPatternCount, maxPatternCount)
		p := make([]float64, s+1)
		for i := range p {
			p[i] = float64(i) * w / float64(s)
		}
		r := geometry.DistanceToLine(geometry.Point{X: (h - 1) / 2},
			geometry.Point{}, geometry.Point{X: h - 1, Y: p[1]})
		for i := 0; i < s; i++ {
			regions = append(regions, geometry.Line(
				geometry.Point{X: 0, Y: p[i]}, geometry.Point{X: h - 1, Y: p[i+1]}, r))
		}
		for i := 0; i < s; i++ {
			regions = append(regions, geometry.Line(
				geometry.Point{X: h - 1, Y: p[i]}, geometry.Point{X: 0, Y: p[i+1]}, r))
		}

	case WipeSequentialStripes:
		// Each band starts further left than the previous one, so bands fill in turn.
		l := randInt(rng, minPatternCount, maxPatternCount)
		extra := (rng.Float64()*0.6 + 0.3) * w * float64(l)
		for i := 0; i < l; i++ {
			x0 := float64(i) * (h - 1) / float64(l)
			x1 := float64(i+1) * (h - 1) / float64(l)
			y := -extra * float64(i) / float64(l-1)
			regions = append(regions, geometry.Band(
				geometry.Point{X: x0, Y: y}, geometry.Point{X: x1, Y: y}, 0, w+extra))
		}

	default:
		return nil, fmt.Errorf("%w: wipe family %d", ErrInvalidArgument, family)
	}

	return newPattern(regions)
}

// newPattern validates regions, reporting a bad region as ErrInvalidArgument.
func newPattern(regions []geometry.Region) (geometry.RegionSet, error) {
	set, err := geometry.NewRegionSet(regions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return set, nil
}
