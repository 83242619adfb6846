// Package payment adapts external checkout providers to a single Processor.
package payment

import (
	"context"
	"errors"
	"math"
)

// ErrInvalidAmount is returned for non-positive or non-finite prices.
var ErrInvalidAmount = errors.New("amount must be positive")

type IntentRequest struct {
	// AmountMinor is the charge in the currency's minor unit (cents).
	AmountMinor int64
	Currency    string
	Email       string
}

type Intent struct {
	ClientSecret string
	Reference    string
}

type Processor interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// ToMinorUnits converts a price in major units to minor units, rounding to the nearest cent.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidAmount
	}
	minor := int64(math.Round(price * 100))
	if minor <= 0 {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}
