package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New(t *testing.T) {
	err := New(CodeForbidden, "only the manager can do this")
	assert.Equal(t, "only the manager can do this", err.Error())
	assert.True(t, HasCode(err, CodeForbidden))
	assert.False(t, HasCode(err, CodeNotFound))
}

func Test_Wrap_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to load profile")

	require.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeInternal))
	assert.Equal(t, "failed to load profile: connection reset", err.Error())
}

func Test_HasCode_SearchesChain(t *testing.T) {
	inner := New(CodeNotFound, "profile not found")
	outer := Wrap(inner, CodeInternal, "lookup failed")

	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, HasCode(outer, CodeNotFound))

	wrapped := fmt.Errorf("handler: %w", outer)
	assert.True(t, HasCode(wrapped, CodeNotFound))
}

func Test_ErrorsIs_MatchesByCodeAndMessage(t *testing.T) {
	err := New(CodeUnauthorized, "invalid token")
	require.ErrorIs(t, err, New(CodeUnauthorized, "invalid token"))
	require.NotErrorIs(t, err, New(CodeUnauthorized, "token has expired"))
}

func Test_CodeOf(t *testing.T) {
	assert.Equal(t, CodeQuorumNotMet, CodeOf(New(CodeQuorumNotMet, "the minimum number of votes has not been reached")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain error")))
}

func Test_ToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeInvalidAddress))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(CodeUnauthorized))
	assert.Equal(t, http.StatusForbidden, ToHTTPStatus(CodeForbidden))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(CodeUnknownTopic))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(CodeDuplicateVote))
	assert.Equal(t, http.StatusUnprocessableEntity, ToHTTPStatus(CodeQuorumNotMet))
	assert.Equal(t, http.StatusServiceUnavailable, ToHTTPStatus(CodeNotUpgraded))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
}
