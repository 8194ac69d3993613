package transition

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frame count range used when the transition length is drawn at random
// (0.2s to 1s at 25 fps).
const (
	MinRandomFrames = 5
	MaxRandomFrames = 25
)

// Choice is an integer parameter that is either fixed by the caller or drawn at random
// when a Request is resolved. The zero value is Random.
type Choice struct {
	value int
	fixed bool
}

// Random is the Choice that is drawn when resolved.
var Random = Choice{}

// Fixed returns a Choice pinned to v.
func Fixed(v int) Choice {
	return Choice{value: v, fixed: true}
}

// Value returns the pinned value and whether the choice is fixed.
func (c Choice) Value() (int, bool) {
	return c.value, c.fixed
}

func (c Choice) String() string {
	if !c.fixed {
		return "random"
	}
	return strconv.Itoa(c.value)
}

// ParseChoice accepts an integer or "random"/"auto"/"" for a random choice.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random", "auto":
		return Random, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Random, fmt.Errorf("%w: %q is neither an integer nor \"random\"", ErrInvalidArgument, s)
	}
	return Fixed(v), nil
}

// Set implements pflag.Value.
func (c *Choice) Set(s string) error {
	v, err := ParseChoice(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Type implements pflag.Value.
func (c *Choice) Type() string {
	return "choice"
}

// MarshalYAML writes fixed choices as integers and random ones as "random".
func (c Choice) MarshalYAML() (interface{}, error) {
	if !c.fixed {
		return "random", nil
	}
	return c.value, nil
}

// UnmarshalYAML reads an integer or "random".
func (c *Choice) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: choice must be a scalar", node.Line)
	}
	v, err := ParseChoice(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = v
	return nil
}

func (c Choice) resolve(rng Rand, lo, hi int, what string) (int, error) {
	if !c.fixed {
		return randInt(rng, lo, hi), nil
	}
	if c.value < lo || c.value > hi {
		return 0, fmt.Errorf("%w: %s %d out of range [%d,%d]", ErrInvalidArgument, what, c.value, lo, hi)
	}
	return c.value, nil
}

// Spec is a fully resolved transition: every parameter is explicit.
type Spec struct {
	Kind       Kind
	FrameCount int
	Variant    int
}

// Request describes a transition whose frame count and variant may still be random.
type Request struct {
	Kind       Kind
	FrameCount Choice
	Variant    Choice
}

// Resolve draws every random parameter and validates the fixed ones.
func (r Request) Resolve(rng Rand) (Spec, error) {
	spec := Spec{Kind: r.Kind}
	switch r.Kind {
	case None:
		return spec, nil
	case Gradual, Push, Wipe:
	case CropSplit:
		return spec, fmt.Errorf("%w: crop split is resolved with a crop window, not a transition request", ErrInvalidArgument)
	default:
		return spec, fmt.Errorf("%w: unknown transition %v", ErrInvalidArgument, r.Kind)
	}

	var err error
	if n, fixed := r.FrameCount.Value(); fixed {
		if n < 1 {
			return spec, fmt.Errorf("%w: frame count %d must be positive", ErrInvalidArgument, n)
		}
		spec.FrameCount = n
	} else {
		spec.FrameCount = randInt(rng, MinRandomFrames, MaxRandomFrames)
	}

	spec.Variant, err = r.Variant.resolve(rng, 0, variantCount(r.Kind)-1, r.Kind.String()+" variant")
	if err != nil {
		return spec, err
	}
	return spec, nil
}

// Validate checks that a resolved spec can be merged.
func (s Spec) Validate() error {
	switch s.Kind {
	case None:
		return nil
	case Gradual, Push, Wipe:
		if s.FrameCount < 1 {
			return fmt.Errorf("%w: frame count %d must be positive", ErrInvalidArgument, s.FrameCount)
		}
		if n := variantCount(s.Kind); s.Variant < 0 || s.Variant >= n {
			return fmt.Errorf("%w: %v variant %d out of range [0,%d]", ErrInvalidArgument, s.Kind, s.Variant, n-1)
		}
		return nil
	default:
		return fmt.Errorf("%w: %v cannot be merged", ErrInvalidArgument, s.Kind)
	}
}
