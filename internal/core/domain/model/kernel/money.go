package kernel

import (
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
)

// Money is a non-negative amount in minor currency units (paise, cents).
// Integer arithmetic keeps subtotal + delivery fee + taxes exact.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// NewMoney validates a raw minor-unit amount.
func NewMoney(minorUnits int64) (Money, error) {
	if minorUnits < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", minorUnits))
	}
	return Money(minorUnits), nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Times returns m multiplied by a quantity.
func (m Money) Times(quantity int) Money {
	return m * Money(quantity)
}

// BasisPoints returns the share of m expressed in basis points (1/100 of a percent),
// rounded half up.
func (m Money) BasisPoints(bps int) Money {
	return Money(math.Round(float64(m) * float64(bps) / 10000))
}

// MinorUnits returns the raw amount.
func (m Money) MinorUnits() int64 {
	return int64(m)
}

// Validate rejects negative amounts.
func (m Money) Validate() error {
	if m < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", int64(m)))
	}
	return nil
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
}
