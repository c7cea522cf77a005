package mcpserver

import (
	"fmt"

	"github.com/solr-hybrid/searchgw/internal/gwerrors"
)

// Standard JSON-RPC error codes, plus one gateway-specific extension for
// retryable-unavailable errors.
const (
	ErrCodeInvalidParams = -32602
	ErrCodeInternalError = -32603
	ErrCodeUnavailable   = -32001
)

// MCPError is an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts a core gwerrors.GatewayError into an MCPError,
// following the §7 kind mapping: invalid-argument and failed-precondition
// both surface as invalid params (the caller's request was malformed or
// unsatisfiable against the configured collection); unavailable surfaces
// with a distinct retryable code; everything else is internal.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	ge, ok := err.(*gwerrors.GatewayError)
	if !ok {
		return &MCPError{Code: ErrCodeInternalError, Message: err.Error()}
	}

	switch ge.Kind {
	case gwerrors.KindInvalidArgument, gwerrors.KindFailedPrecondition:
		return &MCPError{Code: ErrCodeInvalidParams, Message: ge.Error()}
	case gwerrors.KindUnavailable:
		return &MCPError{Code: ErrCodeUnavailable, Message: ge.Error()}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: ge.Error()}
	}
}
