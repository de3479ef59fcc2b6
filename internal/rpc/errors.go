package rpc

import "fmt"

// RpcError is a transport or endpoint failure, including payloads that could not be parsed.
type RpcError struct {
	Method string
	Err    error
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("rpc %s failed: %v", e.Method, e.Err)
}

func (e *RpcError) Unwrap() error {
	return e.Err
}
