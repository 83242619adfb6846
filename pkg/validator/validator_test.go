package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email  string  `validate:"required,email"`
	Price  float64 `validate:"gt=0"`
	Rating int     `validate:"min=1,max=5"`
}

func TestFormatValidationError(t *testing.T) {
	err := validator.New().Struct(sample{Email: "nope", Price: 0, Rating: 9})
	msg := FormatValidationError(err)

	assert.Contains(t, msg, "Email must be a valid email")
	assert.Contains(t, msg, "Price must be greater than 0")
	assert.Contains(t, msg, "Rating must be at most 5")
}

func TestFormatValidationErrorPlain(t *testing.T) {
	assert.Equal(t, "EOF", FormatValidationError(errors.New("EOF")))
}

type resolveSample struct {
	Action string `validate:"required,oneof=accept reject"`
}

func TestFormatValidationErrorResolveAction(t *testing.T) {
	err := validator.New().Struct(resolveSample{Action: "promote"})
	assert.Equal(t, "Action must be one of [accept reject]", FormatValidationError(err))
}
