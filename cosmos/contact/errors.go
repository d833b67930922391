package contact

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	NoToken ErrorKind = iota
	BadResponse
	BadStruct
	FailedToSend
	ResponseError
	BadInput
	ResponseTooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case NoToken:
		return "no token"
	case BadResponse:
		return "bad response"
	case BadStruct:
		return "bad struct"
	case FailedToSend:
		return "failed to send"
	case ResponseError:
		return "response error"
	case BadInput:
		return "bad input"
	case ResponseTooLarge:
		return "response too large"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// JsonRpcError is returned by every Contact request
type JsonRpcError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	// Code and Data are set for ResponseError only
	Code int64
	Data string
	Err  error
}

func (e *JsonRpcError) Error() string {
	switch e.Kind {
	case NoToken:
		return "account has no tokens"
	case FailedToSend:
		return fmt.Sprintf("jsonrpc failed to send: %v", e.Err)
	case ResponseError:
		return fmt.Sprintf("jsonrpc response error code %d message %s data %q", e.Code, e.Message, e.Data)
	case BadResponse:
		return fmt.Sprintf("jsonrpc bad response: %s", e.Message)
	case BadStruct:
		return fmt.Sprintf("jsonrpc unexpected json returned: %s", e.Message)
	default:
		return fmt.Sprintf("jsonrpc %s: %s", e.Kind, e.Message)
	}
}

func (e *JsonRpcError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the request may succeed if repeated
func (e *JsonRpcError) IsRetryable() bool {
	switch e.Kind {
	case FailedToSend, BadResponse, BadStruct:
		return true
	default:
		return false
	}
}

func IsRetryableError(err error) bool {
	var rpcErr *JsonRpcError

	return errors.As(err, &rpcErr) && rpcErr.IsRetryable()
}

// IsNotFound reports a 404 answer, the peggy rest routes use it for empty results
func IsNotFound(err error) bool {
	var rpcErr *JsonRpcError

	return errors.As(err, &rpcErr) && rpcErr.Kind == BadResponse && rpcErr.StatusCode == 404
}

func newError(kind ErrorKind, format string, args ...interface{}) *JsonRpcError {
	return &JsonRpcError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
