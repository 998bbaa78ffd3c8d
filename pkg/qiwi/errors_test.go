package qiwi

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTestDecode = errors.New("invalid character '<'")

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	networkErr := &TransportError{Err: &NetworkError{Err: context.DeadlineExceeded}}
	assert.True(t, IsNetworkError(networkErr))
	assert.False(t, IsParseError(networkErr))
	assert.ErrorIs(t, networkErr, context.DeadlineExceeded)

	parseErr := fmt.Errorf("fetching: %w", &TransportError{Err: &ParseError{Raw: "x", Err: errTestDecode}})
	assert.True(t, IsParseError(parseErr))
	assert.False(t, IsNetworkError(parseErr))

	statusErr := &TransportError{Err: &StatusError{StatusCode: 503, Body: "down"}}
	code, ok := IsStatusError(statusErr)
	assert.True(t, ok)
	assert.Equal(t, 503, code)
	assert.Equal(t, "transport error: received HTTP 503 with data: down", statusErr.Error())

	qiwiErr := fmt.Errorf("getting profile: %w", &QiwiError{Description: "auth.forbidden"})
	description, ok := IsQiwiError(qiwiErr)
	assert.True(t, ok)
	assert.Equal(t, "auth.forbidden", description)

	_, ok = IsQiwiError(networkErr)
	assert.False(t, ok)

	_, ok = IsStatusError(qiwiErr)
	assert.False(t, ok)
}

func TestParseError_KeepsRawText(t *testing.T) {
	t.Parallel()

	err := &ParseError{Raw: "<html>", Err: errTestDecode}
	assert.Contains(t, err.Error(), `"<html>"`)
}
