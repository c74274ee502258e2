package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/scalar"
)

func TestBasicVector(t *testing.T) {
	src := []scalar.Float{1, 2, 3}
	v := NewBasicVector(src)
	src[0] = 9
	assert.Equal(t, 3, v.Size())
	assert.Equal(t, []scalar.Float{1, 2, 3}, v.Value())

	require.NoError(t, v.SetValue([]scalar.Float{4, 5, 6}))
	assert.Equal(t, []scalar.Float{4, 5, 6}, v.Value())

	err := v.SetValue([]scalar.Float{1})
	assert.True(t, kerrors.Is(err, kerrors.ErrDimensionMismatch))
	assert.Equal(t, "BasicVector[4 5 6]", v.String())

	d := NewBasicVectorFromFloats[scalar.Dual]([]float64{0.5})
	assert.Equal(t, scalar.NewDual(0.5, 0), d.Value()[0])
}

func TestLeafContext(t *testing.T) {
	cont := NewContinuousContext([]scalar.Float{1, 2})
	assert.Equal(t, 2, cont.ContinuousState().Size())
	assert.Equal(t, 0, cont.NumDiscreteGroups())
	assert.Nil(t, cont.DiscreteState(0))

	disc := NewDiscreteContext([]scalar.Float{1, 2, 3}, []scalar.Float{4})
	assert.Equal(t, 0, disc.ContinuousState().Size())
	require.Equal(t, 2, disc.NumDiscreteGroups())
	assert.Equal(t, 3, disc.DiscreteState(0).Size())
	assert.Equal(t, 1, disc.DiscreteState(1).Size())

	g, err := disc.MutableDiscreteState(1)
	require.NoError(t, err)
	require.NoError(t, g.SetValue([]scalar.Float{7}))
	assert.Equal(t, []scalar.Float{7}, disc.DiscreteState(1).(*BasicVector[scalar.Float]).Value())

	_, err = disc.MutableDiscreteState(2)
	assert.True(t, kerrors.Is(err, kerrors.ErrIndexOutOfRange))

	var _ Context = cont
}

func TestZeroLeafContext(t *testing.T) {
	var c LeafContext[scalar.Float]
	assert.Nil(t, c.ContinuousState())
	assert.Equal(t, 0, c.NumDiscreteGroups())
	assert.Nil(t, c.DiscreteState(0))

	var v *BasicVector[scalar.Float]
	assert.Equal(t, 0, v.Size())
	assert.Nil(t, v.Value())
	assert.Equal(t, "BasicVector[]", v.String())
}
