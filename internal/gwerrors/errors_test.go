package gwerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayError_Unwrap_PreservesOriginalError(t *testing.T) {
	originalErr := errors.New("dial tcp: connection refused")

	gwErr := New(ErrCodeSolrUnavailable, "solr select failed", originalErr)

	require.NotNil(t, gwErr)
	assert.Equal(t, originalErr, errors.Unwrap(gwErr))
	assert.True(t, errors.Is(gwErr, originalErr))
}

func TestGatewayError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{"invalid argument", ErrCodeEmptyQueryText, "queryText must not be empty", "[ERR_101_EMPTY_QUERY_TEXT] queryText must not be empty"},
		{"failed precondition", ErrCodeUnknownCollection, "collection \"foo\" not configured", "[ERR_202_UNKNOWN_COLLECTION] collection \"foo\" not configured"},
		{"unavailable", ErrCodeSolrTimeout, "solr select timed out", "[ERR_303_SOLR_TIMEOUT] solr select timed out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestKindFromCode(t *testing.T) {
	assert.Equal(t, KindInvalidArgument, New(ErrCodeEmptyQueryText, "x", nil).Kind)
	assert.Equal(t, KindFailedPrecondition, New(ErrCodeConfigInvalid, "x", nil).Kind)
	assert.Equal(t, KindUnavailable, New(ErrCodeSolrUnavailable, "x", nil).Kind)
	assert.Equal(t, KindInternal, New(ErrCodeInternal, "x", nil).Kind)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(New(ErrCodeSolrUnavailable, "x", nil)))
	assert.False(t, IsRetryable(New(ErrCodeEmptyQueryText, "x", nil)))
	assert.False(t, IsRetryable(errors.New("plain error")))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestWithDetail_Chains(t *testing.T) {
	err := New(ErrCodeUnknownVectorField, "unknown field", nil).
		WithDetail("field", "titleEmbedding")
	assert.Equal(t, "titleEmbedding", err.Details["field"])
}
