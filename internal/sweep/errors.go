package sweep

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid sweep configuration")
	ErrEmptyGrid     = errors.New("sweep grid is empty")
	ErrGridTooLarge  = errors.New("sweep grid too large")
)
