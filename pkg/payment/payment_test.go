package payment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		want    int64
		wantErr error
	}{
		{name: "whole", price: 20, want: 2000},
		{name: "cents rounding", price: 19.99, want: 1999},
		{name: "float noise", price: 0.29, want: 29},
		{name: "zero", price: 0, wantErr: ErrInvalidAmount},
		{name: "negative", price: -5, wantErr: ErrInvalidAmount},
		{name: "sub cent", price: 0.001, wantErr: ErrInvalidAmount},
		{name: "nan", price: math.NaN(), wantErr: ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinorUnits(tt.price)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
