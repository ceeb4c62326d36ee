package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParticleUsesKindDefaults(t *testing.T) {
	sand, water, stone := New(Sand), New(Water), New(Stone)

	assert.Equal(t, Sand, sand.Kind)
	assert.Equal(t, 1.5, sand.State.Density)
	assert.Equal(t, 1.0, water.State.Density)
	assert.Equal(t, 2.65, stone.State.Density)
	assert.Equal(t, 20.0, sand.State.Temperature)
	assert.Equal(t, 101.325, sand.State.Pressure)
}

func TestParticleEqualityIgnoresState(t *testing.T) {
	a, b, c := New(Sand), New(Sand), New(Water)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	hot := New(Sand)
	hot.State.Temperature = 100
	assert.True(t, a.Equal(hot))

	var none *Particle
	assert.True(t, none.Equal(nil))
	assert.False(t, none.Equal(a))
	assert.False(t, a.Equal(nil))
}

func TestCloneIsIndependent(t *testing.T) {
	p := New(Water)
	c := p.Clone()
	c.State.Temperature = -5
	assert.Equal(t, 20.0, p.State.Temperature)
	assert.Nil(t, (*Particle)(nil).Clone())
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	k, err := ParseKind(" Stone ")
	require.NoError(t, err)
	assert.Equal(t, Stone, k)

	_, err = ParseKind("lava")
	assert.Error(t, err)
	assert.Equal(t, "kind(9)", Kind(9).String())

	var u Kind
	require.NoError(t, u.UnmarshalText([]byte("water")))
	assert.Equal(t, Water, u)
	_, err = Kind(9).MarshalText()
	assert.Error(t, err)
}
