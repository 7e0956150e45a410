package simulation

import "errors"

// Configuration errors. Numerical outcomes are never errors: a run that does
// not reach the goal height reports NaN instead.
var (
	ErrInvalidProjectile  = errors.New("invalid projectile parameters")
	ErrInvalidEnvironment = errors.New("invalid environment parameters")
	ErrInvalidConfig      = errors.New("invalid simulation configuration")

	// Solver errors

	ErrInvalidBracket    = errors.New("invalid launch speed bracket")
	ErrTargetUnreachable = errors.New("target range unreachable within speed bracket")
)
