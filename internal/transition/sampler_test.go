package transition

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNormalized(t *testing.T) {
	got, err := Normalized([]float64{1, 1, 0, 0, 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0, 0, 0.5}, got, 1e-12)

	for _, bad := range [][]float64{
		{1, 1, 1},
		{0, 0, 0, 0, 0},
		{1, -1, 0, 0, 1},
		{math.NaN(), 1, 1, 1, 1},
	} {
		_, err := Normalized(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%v", bad)
	}
}

func TestPickKind(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	only := &Sampler{Probabilities: []float64{0, 0, 0, 3, 0}}
	for i := 0; i < 50; i++ {
		k, err := only.PickKind(rng)
		require.NoError(t, err)
		assert.Equal(t, Wipe, k)
	}

	s := NewSampler()
	counts := make([]int, numKinds)
	const draws = 4000
	for i := 0; i < draws; i++ {
		k, err := s.PickKind(rng)
		require.NoError(t, err)
		counts[k]++
	}
	for k, p := range DefaultProbabilities {
		assert.InDelta(t, p, float64(counts[k])/draws, 0.04, "kind %v", Kind(k))
	}
}

func TestSamplerGenerate(t *testing.T) {
	a := rampSeq(4, 8, 6, 0)
	b := rampSeq(4, 8, 6, 50)

	for kind := None; kind < numKinds; kind++ {
		probs := make([]float64, numKinds)
		probs[kind] = 1
		s := NewSampler()
		s.Probabilities = probs

		res, err := s.Generate(newTestKernel(int64(kind)), a, b)
		require.NoError(t, err, "kind %v", kind)
		assert.Equal(t, kind, res.Spec.Kind)
		assertLabelInvariants(t, res)
		if kind != None && kind != CropSplit {
			// random lengths are clamped to the short clips
			assert.LessOrEqual(t, res.Spec.FrameCount, 4)
		}
	}

	s := NewSampler()
	s.Probabilities = []float64{0, 1, 0, 0, 0}
	s.FrameCount = Fixed(5)
	_, err := s.Generate(newTestKernel(1), a, b)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRequestResolve(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		spec, err := Request{Kind: Push}.Resolve(rng)
		require.NoError(t, err)
		assert.True(t, spec.FrameCount >= MinRandomFrames && spec.FrameCount <= MaxRandomFrames)
		assert.True(t, spec.Variant >= 0 && spec.Variant < PushVariants)
	}

	spec, err := Request{Kind: Wipe, FrameCount: Fixed(3), Variant: Fixed(9)}.Resolve(rng)
	require.NoError(t, err)
	assert.Equal(t, Spec{Kind: Wipe, FrameCount: 3, Variant: 9}, spec)

	spec, err = Request{Kind: None, FrameCount: Fixed(-4)}.Resolve(rng)
	require.NoError(t, err)
	assert.Equal(t, Spec{Kind: None}, spec)

	bad := []Request{
		{Kind: Gradual, Variant: Fixed(3)},
		{Kind: Wipe, Variant: Fixed(10)},
		{Kind: Push, FrameCount: Fixed(0)},
		{Kind: CropSplit},
		{Kind: Kind(-1)},
	}
	for _, r := range bad {
		_, err := r.Resolve(rng)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%+v", r)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{None, Gradual, Push, Wipe, CropSplit} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind(" Crop-Split ")
	require.NoError(t, err)
	assert.Equal(t, CropSplit, got)

	_, err = ParseKind("dissolve")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestChoiceYAML(t *testing.T) {
	type params struct {
		Frames  Choice `yaml:"frames"`
		Variant Choice `yaml:"variant"`
		Other   Choice `yaml:"other"`
	}

	var p params
	require.NoError(t, yaml.Unmarshal([]byte("frames: 12\nvariant: random\n"), &p))
	assert.Equal(t, Fixed(12), p.Frames)
	assert.Equal(t, Random, p.Variant)
	assert.Equal(t, Random, p.Other)

	out, err := yaml.Marshal(params{Frames: Fixed(4)})
	require.NoError(t, err)
	assert.Contains(t, string(out), "frames: 4")
	assert.Contains(t, string(out), "variant: random")

	assert.Error(t, yaml.Unmarshal([]byte("frames: lots\n"), &p))
	assert.Error(t, yaml.Unmarshal([]byte("frames: [1, 2]\n"), &p))
}

func TestChoiceFlagValue(t *testing.T) {
	var c Choice
	require.NoError(t, c.Set("7"))
	v, fixed := c.Value()
	assert.True(t, fixed)
	assert.Equal(t, 7, v)
	assert.Equal(t, "7", c.String())

	require.NoError(t, c.Set("auto"))
	assert.Equal(t, Random, c)
	assert.Equal(t, "random", c.String())
	assert.Error(t, c.Set("x"))
}
