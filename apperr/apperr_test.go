package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{NotFound("team not found"), http.StatusNotFound},
		{Conflict("team is locked"), http.StatusConflict},
		{Forbidden("not the lock holder"), http.StatusForbidden},
		{InvalidInput("empty scores"), http.StatusBadRequest},
		{Internal("db down", errors.New("dial tcp")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus())
	}
}

func TestInternalErrorsHideDetail(t *testing.T) {
	err := Internal("failed to load team", errors.New("connection reset by peer"))

	assert.Equal(t, "internal error", err.UserMessage())
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestUserMessagePassesThrough(t *testing.T) {
	err := Conflict("team is being evaluated by %s", "alice")
	assert.Equal(t, "team is being evaluated by alice", err.UserMessage())
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	orig := NotFound("gone")
	assert.Same(t, orig, From(orig))

	wrapped := From(errors.New("boom"))
	require.NotNil(t, wrapped)
	assert.Equal(t, KindInternal, wrapped.Kind)

	var target *Error
	assert.True(t, errors.As(error(wrapped), &target))
}
