package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := map[Kind]int{
		Validation:       http.StatusUnprocessableEntity,
		Conflict:         http.StatusConflict,
		Unauthorized:     http.StatusUnauthorized,
		MissingHeader:    http.StatusUnauthorized,
		BadFormat:        http.StatusUnauthorized,
		Malformed:        http.StatusUnauthorized,
		InvalidSignature: http.StatusUnauthorized,
		Expired:          http.StatusUnauthorized,
		Forbidden:        http.StatusForbidden,
		NotFound:         http.StatusNotFound,
		Internal:         http.StatusInternalServerError,
	}
	for kind, want := range cases {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, want, New(kind, "x", nil).StatusCode())
		})
	}
}

func TestKindOf_WrappedChain(t *testing.T) {
	base := NewNotFound("post not found", nil)
	wrapped := fmt.Errorf("load post: %w", base)

	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, NotFound))
	assert.False(t, Is(wrapped, Conflict))
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternal("query failed", cause)

	assert.Equal(t, "query failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "post not found", NewNotFound("post not found", nil).Error())
}
