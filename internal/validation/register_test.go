package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestMustRegister_PanicsOnBadTag(t *testing.T) {
	v := validator.New()
	ok := func(validator.FieldLevel) bool { return true }

	assert.PanicsWithValue(t, `validation: register "": function Key cannot be empty`, func() {
		mustRegister(v, "", ok)
	})
	assert.NotPanics(t, func() { mustRegister(v, "always", ok) })
	assert.NoError(t, v.Var("x", "always"))
}

func TestNew_RegistersCityKey(t *testing.T) {
	assert.NotPanics(t, func() { New() })
	assert.Error(t, New().Var("Milton Keynes", "citykey"))
}
