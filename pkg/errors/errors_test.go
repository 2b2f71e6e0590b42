package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeNotFound, "unable to find firewall 42")
	assert.Equal(t, "NOT_FOUND: unable to find firewall 42", err.Error())

	wrapped := Wrap(ErrCodeInternal, stderrors.New("boom"), "load failed")
	assert.Contains(t, wrapped.Error(), "INTERNAL_ERROR")
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestIsCode(t *testing.T) {
	err := Newf(ErrCodeBillingMissing, "unable to find billing item for firewall %d", 7)

	assert.True(t, IsCode(err, ErrCodeBillingMissing))
	assert.False(t, IsCode(err, ErrCodeNotFound))
	assert.False(t, IsCode(nil, ErrCodeNotFound))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeNotFound))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := New(ErrCodeEmptySelection, "no package matched")
	outer := fmt.Errorf("placing order: %w", inner)

	assert.True(t, IsCode(outer, ErrCodeEmptySelection))

	var coded *Error
	assert.True(t, stderrors.As(outer, &coded))
	assert.Equal(t, ErrCodeEmptySelection, coded.Code)
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("cause")
	err := Wrap(ErrCodeInternal, cause, "context")
	assert.True(t, stderrors.Is(err, cause))
}
