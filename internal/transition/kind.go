// Package transition composites two frame sequences with a synthetic shot transition and
// derives the frame labels that mark it.
package transition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ivlev/framemix/internal/frames"
)

// ErrInvalidArgument is returned for unknown kinds, variant codes and out-of-range counts.
var ErrInvalidArgument = errors.New("invalid argument")

// Kind is the top-level transition style.
type Kind int

const (
	None Kind = iota
	Gradual
	Push
	Wipe
	CropSplit
	numKinds
)

var kindNames = [numKinds]string{"none", "gradual", "push", "wipe", "cropsplit"}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a kind name as printed by String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "cut", "forced":
		return None, nil
	case "crop-split", "crop_split":
		return CropSplit, nil
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown transition kind %q", ErrInvalidArgument, s)
}

// Variant counts per kind. Gradual: linear, via black, via white. Push: up, down, right,
// left, up-right, up-left, down-left, down-right. Wipe: five shape families, even codes
// reveal inside the shape and odd codes outside.
const (
	GradualVariants = 3
	PushVariants    = 8
	WipeVariants    = 10
)

// Gradual variants.
const (
	Linear = iota
	ViaBlack
	ViaWhite
)

// variantCount returns the number of variant codes for k, or 0 when k takes none.
func variantCount(k Kind) int {
	switch k {
	case Gradual:
		return GradualVariants
	case Push:
		return PushVariants
	case Wipe:
		return WipeVariants
	case CropSplit:
		return frames.NumLocations
	}
	return 0
}

// Rand is the random source consumed by transitions. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Resizer scales a frame. It is used by crop-based transitions.
type Resizer interface {
	Resize(f *frames.Frame, width, height int) *frames.Frame
}

// randInt draws uniformly from [lo, hi].
func randInt(rng Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
