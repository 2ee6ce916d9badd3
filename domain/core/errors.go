package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Invalid statistical input - always fatal to the call, never coerced
	ErrInvalidInput = errors.New("invalid statistical input")

	ErrZeroTotal         = fmt.Errorf("%w: total must be positive", ErrInvalidInput)
	ErrSuccessOutOfRange = fmt.Errorf("%w: successes must be within [0, total]", ErrInvalidInput)
	ErrNoVariation       = fmt.Errorf("%w: zero standard error, inputs have no variation", ErrInvalidInput)
	ErrTooFewSamples     = fmt.Errorf("%w: fewer than 2 finite observations", ErrInvalidInput)
	ErrDrawCountTooLow   = fmt.Errorf("%w: draw count below the Monte Carlo minimum", ErrInvalidInput)
	ErrNonPositivePrior  = fmt.Errorf("%w: prior parameters must be positive", ErrInvalidInput)
	ErrUnknownGoal       = fmt.Errorf("%w: metric goal must be increase or decrease", ErrInvalidInput)
	ErrNonBinaryData     = fmt.Errorf("%w: proportion data must contain only 0/1 values", ErrInvalidInput)
	ErrEmptyAfterClean   = fmt.Errorf("%w: no observations remain after NaN/Inf removal", ErrInvalidInput)
	ErrMissingPValue     = fmt.Errorf("%w: rule requires a frequentist result with a p-value", ErrInvalidInput)
)

// Error constructors with context
func NewCountError(arm string, success, total int) error {
	if total <= 0 {
		return fmt.Errorf("%w (%s arm: total=%d)", ErrZeroTotal, arm, total)
	}
	return fmt.Errorf("%w (%s arm: success=%d, total=%d)", ErrSuccessOutOfRange, arm, success, total)
}

func NewSampleSizeError(arm string, n int) error {
	return fmt.Errorf("%w (%s arm: n=%d)", ErrTooFewSamples, arm, n)
}

// Error checking helpers
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
