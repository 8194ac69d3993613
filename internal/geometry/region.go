// Package geometry implements the distance-based region membership test used by wipe
// transitions. Coordinates follow frame layout: X is the row, Y is the column.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRegion is returned for regions that cannot be evaluated.
var ErrInvalidRegion = errors.New("invalid region")

// Metric selects how the distance between a point and a region is measured.
type Metric int

const (
	// Euclidean compares the straight-line distance with R.
	Euclidean Metric = iota
	// Chebyshev compares each axis separately: X against R, Y against R2.
	Chebyshev
)

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Chebyshev:
		return "chebyshev"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// Point is a position in frame space.
type Point struct {
	X, Y float64
}

// Region is a shape that grows with transition progress. A point is covered when its
// distance to the shape is strictly below the radius scaled by progress.
type Region struct {
	Metric Metric
	Center Point
	// End is the second endpoint when Segment is set.
	End     Point
	Segment bool
	R       float64
	R2      float64
}

// Disc is a Euclidean region around c.
func Disc(c Point, r float64) Region {
	return Region{Metric: Euclidean, Center: c, R: r}
}

// Line is a Euclidean region around the infinite line through a and b.
func Line(a, b Point, r float64) Region {
	return Region{Metric: Euclidean, Center: a, End: b, Segment: true, R: r}
}

// Box is a Chebyshev region with half-extents rx along X and ry along Y.
func Box(c Point, rx, ry float64) Region {
	return Region{Metric: Chebyshev, Center: c, R: rx, R2: ry}
}

// Band is a Chebyshev region around the axis-aligned segment a-b. Points outside the
// segment's extent are never covered.
func Band(a, b Point, rx, ry float64) Region {
	return Region{Metric: Chebyshev, Center: a, End: b, Segment: true, R: rx, R2: ry}
}

// Validate reports whether the region can be evaluated.
func (r Region) Validate() error {
	switch r.Metric {
	case Euclidean:
		return nil
	case Chebyshev:
		if r.Segment && r.Center.X != r.End.X && r.Center.Y != r.End.Y {
			return fmt.Errorf("%w: chebyshev segment %v-%v is not axis-aligned", ErrInvalidRegion, r.Center, r.End)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown %v", ErrInvalidRegion, r.Metric)
	}
}

// Covers reports whether p lies inside the region at progress lambda.
func (r Region) Covers(p Point, lambda float64) bool {
	switch r.Metric {
	case Euclidean:
		var d float64
		if r.Segment {
			d = DistanceToLine(p, r.Center, r.End)
		} else {
			d = Distance(p, r.Center)
		}
		return d < r.R*lambda

	case Chebyshev:
		if !r.Segment {
			return math.Abs(p.X-r.Center.X) < r.R*lambda && math.Abs(p.Y-r.Center.Y) < r.R2*lambda
		}
		if r.Center.X == r.End.X {
			if !within(p.Y, r.Center.Y, r.End.Y) {
				return false
			}
			return math.Abs(p.X-r.Center.X) < r.R*lambda
		}
		if !within(p.X, r.Center.X, r.End.X) {
			return false
		}
		return math.Abs(p.Y-r.Center.Y) < r.R2*lambda
	}
	return false
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// DistanceToLine is the perpendicular distance from p to the line through a and b,
// computed as twice the triangle area over the base. It is not clipped to the segment.
// A zero-length segment falls back to the distance from a.
func DistanceToLine(p, a, b Point) float64 {
	base := Distance(a, b)
	if base == 0 {
		return Distance(p, a)
	}
	area2 := math.Abs(p.X*(a.Y-b.Y) + a.X*(b.Y-p.Y) + b.X*(p.Y-a.Y))
	return area2 / base
}

func within(v, a, b float64) bool {
	return (a <= v && v <= b) || (b <= v && v <= a)
}

// RegionSet is an unordered collection of regions.
type RegionSet []Region

// NewRegionSet validates every region.
func NewRegionSet(regions ...Region) (RegionSet, error) {
	for i, r := range regions {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
	}
	return RegionSet(regions), nil
}

// Covers reports whether any region covers p at progress lambda.
func (s RegionSet) Covers(p Point, lambda float64) bool {
	for _, r := range s {
		if r.Covers(p, lambda) {
			return true
		}
	}
	return false
}
