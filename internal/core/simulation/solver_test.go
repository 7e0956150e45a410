package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveLaunchSpeed(t *testing.T) {
	s := newSim(t, vacuumBall, WithLaunchAngle(45), WithIterations(40))

	const target = 8.0
	speed, err := s.SolveLaunchSpeed(0, target, 1, 20)
	require.NoError(t, err)

	res := s.Run(0, speed)
	require.True(t, res.Resolved())
	assert.InDelta(t, target, res.Range, 1e-6)
	// vacuum estimate sqrt(R g / sin 2θ)
	assert.InDelta(t, math.Sqrt(target*9.81), speed, 0.1)
}

func TestSolveLaunchSpeedPrecisionFollowsIterations(t *testing.T) {
	s := newSim(t, vacuumBall, WithLaunchAngle(45), WithIterations(40))
	exact, err := s.SolveLaunchSpeed(0, 8, 0, 16)
	require.NoError(t, err)

	require.NoError(t, s.SetSimulationIterations(4))
	coarse, err := s.SolveLaunchSpeed(0, 8, 0, 16)
	require.NoError(t, err)

	// 4 halvings of a 16 m/s bracket leave a 1 m/s interval
	assert.InDelta(t, exact, coarse, 0.5)
}

func TestSolveLaunchSpeedErrors(t *testing.T) {
	s := newSim(t, vacuumBall, WithLaunchAngle(45))

	_, err := s.SolveLaunchSpeed(0, 5, 10, 10)
	assert.ErrorIs(t, err, ErrInvalidBracket)

	_, err = s.SolveLaunchSpeed(0, 5, -1, 10)
	assert.ErrorIs(t, err, ErrInvalidBracket)

	_, err = s.SolveLaunchSpeed(0, 5, 0, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidBracket)

	_, err = s.SolveLaunchSpeed(0, math.NaN(), 0, 10)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	speed, err := s.SolveLaunchSpeed(0, 1000, 0, 10)
	assert.ErrorIs(t, err, ErrTargetUnreachable)
	assert.True(t, math.IsNaN(speed))
}
