package apperr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/reps/internal/apperr"
)

var errSample = &apperr.Error{
	Message: "exercise %q must have at least %d set",
}

func TestErrorFmt(t *testing.T) {
	err := errSample.Fmt("Squat", 1)

	assert.Equal(t, `exercise "Squat" must have at least 1 set`, err.Error())
	assert.ErrorIs(t, err, errSample)
	assert.Equal(t, "exercise %q must have at least %d set", errSample.Message)
}

func TestErrorWrap(t *testing.T) {
	err := errSample.Fmt("Row", 1).Wrap(io.EOF)

	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, errSample)
	assert.Equal(t, `exercise "Row" must have at least 1 set: EOF`, err.Error())
}

func TestErrorIsDistinct(t *testing.T) {
	other := &apperr.Error{Message: "something else"}

	assert.False(t, errors.Is(errSample.Fmt("x", 1), other))
}
