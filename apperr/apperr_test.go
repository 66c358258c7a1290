package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   Kind
	}{
		{Validation("bad input"), 400, KindValidation},
		{NotFound("missing"), 404, KindNotFound},
		{InvalidState("already claimed"), 409, KindInvalidState},
		{CooldownActive(30), 429, KindCooldownActive},
		{Internal("boom", errors.New("db down")), 500, KindInternal},
		{errors.New("untyped"), 500, KindInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err))
		assert.Equal(t, tc.kind, As(tc.err).Kind)
	}
}

func TestIsKindSeesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("handling request: %w", NotFound("mission gone"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindValidation))
}

func TestCooldownCarriesCountdown(t *testing.T) {
	err := CooldownActive(1)
	assert.Equal(t, int64(1), err.SecondsRemaining)
	assert.Contains(t, err.Error(), "COOLDOWN_ACTIVE")
}
