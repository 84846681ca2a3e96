package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Question string `json:"question" validate:"required,notblank"`
	Style    string `json:"style" validate:"omitempty,oneof=bullets paragraphs"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{Question: "why?", Style: "bullets"}))

	err := v.Validate(&sample{Question: "   "})
	require.Error(t, err)
	assert.Contains(t, Describe(err), "question failed on notblank")

	err = v.Validate(&sample{Question: "ok", Style: "poem"})
	require.Error(t, err)
	assert.Contains(t, Describe(err), "style failed on oneof=bullets paragraphs")
}

func TestMustRegisterPanicsOnBadRule(t *testing.T) {
	assert.NotPanics(t, func() { New() })
	assert.Panics(t, func() { mustRegister(validator.New(), "", validators.NotBlank) })
}
