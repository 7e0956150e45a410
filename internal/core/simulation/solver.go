package simulation

import (
	"fmt"
	"math"
)

// SolveLaunchSpeed finds the launch speed at the configured angle whose
// trajectory crosses goalY at targetRange, by bisection over
// [minSpeed, maxSpeed]. The returned speed is within
// (maxSpeed-minSpeed)/2^Iterations() of the solution, assuming range grows
// with speed inside the bracket. Unresolved runs count as falling short.
func (s *Simulator) SolveLaunchSpeed(goalY, targetRange, minSpeed, maxSpeed float64) (float64, error) {
	if !finite(minSpeed) || !finite(maxSpeed) || minSpeed < 0 || minSpeed >= maxSpeed {
		return math.NaN(), fmt.Errorf("%w: [%v, %v]", ErrInvalidBracket, minSpeed, maxSpeed)
	}
	if !finite(targetRange) || !finite(goalY) {
		return math.NaN(), fmt.Errorf("%w: target (%v, %v) must be finite", ErrInvalidConfig, targetRange, goalY)
	}

	if !s.reaches(goalY, maxSpeed, targetRange) {
		return math.NaN(), fmt.Errorf("%w: %v m at %v m/s", ErrTargetUnreachable, targetRange, maxSpeed)
	}

	lo, hi := minSpeed, maxSpeed
	for i := 0; i < s.iterations; i++ {
		mid := lo + (hi-lo)/2
		if s.reaches(goalY, mid, targetRange) {
			hi = mid
		} else {
			lo = mid
		}
	}

	return lo + (hi-lo)/2, nil
}

func (s *Simulator) reaches(goalY, speed, targetRange float64) bool {
	res := s.Run(goalY, speed)
	return res.Resolved() && res.Range >= targetRange
}
