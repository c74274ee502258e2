package models

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multibody-kinematics/pkg/config"
	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/multibody"
	"multibody-kinematics/pkg/scalar"
)

type F = scalar.Float

func positionOf(t *testing.T, tree *multibody.Tree, body string, q []float64) [3]float64 {
	t.Helper()
	b, err := tree.FindBody(body)
	require.NoError(t, err)
	c := multibody.NewCache[F](tree)
	require.NoError(t, c.Initialize(scalar.FromFloats[F](q), make([]F, tree.NumVelocities())))
	require.NoError(t, multibody.DoKinematics(tree, c, false))
	x, err := multibody.RelativeTransform(tree, c, 0, b.Index())
	require.NoError(t, err)
	return x.P.Floats()
}

func TestEveryTypeBuildsWithDefaults(t *testing.T) {
	dims := map[string][2]int{
		"pendulum":          {1, 1},
		"double_pendulum":   {2, 2},
		"scara":             {3, 3},
		"floating_base":     {8, 7},
		"rpy_floating_base": {7, 7},
	}
	require.Len(t, SupportedTypes(), len(dims))
	for _, kind := range SupportedTypes() {
		t.Run(kind, func(t *testing.T) {
			assert.True(t, IsSupported(kind))
			assert.NotEmpty(t, Description(kind))

			tree, err := NewFromConfig(Config{Type: kind})
			require.NoError(t, err)
			require.NoError(t, tree.Validate())
			assert.Equal(t, dims[kind][0], tree.NumPositions())
			assert.Equal(t, dims[kind][1], tree.NumVelocities())
			assert.Len(t, NeutralPositions(tree), tree.NumPositions())
		})
	}
}

func TestIsSupportedNormalizes(t *testing.T) {
	assert.True(t, IsSupported("  SCARA "))
	assert.False(t, IsSupported("delta"))
	assert.Empty(t, Description("delta"))
}

func TestNewFromConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown type", Config{Type: "hexapod"}},
		{"too many lengths", Config{Type: "pendulum", Lengths: []float64{1, 2}}},
		{"zero length", Config{Type: "scara", Lengths: []float64{0.4, 0}}},
		{"nan length", Config{Type: "pendulum", Lengths: []float64{math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromConfig(tt.cfg)
			require.Error(t, err)
			assert.True(t, kerrors.Is(err, kerrors.ErrModel), "got %v", err)
		})
	}
}

func TestDefaultLengthsIsACopy(t *testing.T) {
	l := DefaultLengths("double_pendulum")
	l[0] = 42
	assert.Equal(t, []float64{1, 1}, DefaultLengths("double_pendulum"))
	assert.Nil(t, DefaultLengths("delta"))
}

func TestPendulumTip(t *testing.T) {
	tree, err := NewFromConfig(Config{Type: "pendulum", Lengths: []float64{2}})
	require.NoError(t, err)

	opt := cmpopts.EquateApprox(0, 1e-12)
	got := positionOf(t, tree, "tip", []float64{0})
	assert.True(t, cmp.Equal([3]float64{0, 0, -2}, got, opt), "got %v", got)

	// rotating about +y carries -z towards -x
	got = positionOf(t, tree, "tip", []float64{math.Pi / 2})
	assert.True(t, cmp.Equal([3]float64{-2, 0, 0}, got, opt), "got %v", got)
}

func TestDoublePendulumTip(t *testing.T) {
	tree, err := NewFromConfig(Config{Type: "double_pendulum", Lengths: []float64{1, 0.5}})
	require.NoError(t, err)

	opt := cmpopts.EquateApprox(0, 1e-12)
	got := positionOf(t, tree, "tip", []float64{0, 0})
	assert.True(t, cmp.Equal([3]float64{0, 0, -1.5}, got, opt), "got %v", got)

	got = positionOf(t, tree, "tip", []float64{math.Pi / 2, -math.Pi / 2})
	assert.True(t, cmp.Equal([3]float64{-1, 0, -0.5}, got, opt), "got %v", got)
}

func TestScaraQuill(t *testing.T) {
	tree, err := NewFromConfig(Config{Type: "scara"})
	require.NoError(t, err)

	opt := cmpopts.EquateApprox(0, 1e-12)
	got := positionOf(t, tree, "quill", []float64{0, 0, 0})
	assert.True(t, cmp.Equal([3]float64{0.7, 0, 0}, got, opt), "got %v", got)

	got = positionOf(t, tree, "quill", []float64{math.Pi / 2, 0, 0.1})
	assert.True(t, cmp.Equal([3]float64{0, 0.7, -0.1}, got, opt), "got %v", got)
}

func TestNeutralPositionsFloatingBase(t *testing.T) {
	tree, err := NewFromConfig(Config{Type: "floating_base"})
	require.NoError(t, err)

	base, err := tree.FindBody("base")
	require.NoError(t, err)
	q := NeutralPositions(tree)
	assert.Equal(t, 1.0, q[base.PositionStart()+3])

	// identity base: the hand sits one arm length along +y
	got := positionOf(t, tree, "hand", q)
	assert.True(t, cmp.Equal([3]float64{0, 0.5, 0}, got, cmpopts.EquateApprox(0, 1e-12)), "got %v", got)
}

func TestLoadFromRunConfig(t *testing.T) {
	cfg, err := config.LoadString("[model]\ntype: rpy_floating_base\nlengths: 2\n")
	require.NoError(t, err)
	rc, err := config.ParseRunConfig(cfg)
	require.NoError(t, err)

	tree, err := LoadFromRunConfig(rc)
	require.NoError(t, err)
	got := positionOf(t, tree, "top", make([]float64, tree.NumPositions()))
	assert.True(t, cmp.Equal([3]float64{0, 0, 2}, got, cmpopts.EquateApprox(0, 1e-12)), "got %v", got)

	_, err = LoadFromRunConfig(&config.RunConfig{})
	assert.True(t, kerrors.Is(err, kerrors.ErrModel))
}
