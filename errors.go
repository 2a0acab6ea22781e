package admin

import "errors"

var (
	ErrHandlerExists   = errors.New("only one handler per message type is allowed")
	ErrHandlerNotFound = errors.New("handler not found for message")
	ErrNilMessage      = errors.New("cannot dispatch nil message")
	ErrNotAQuery       = errors.New("handler did not return a QueryResponse")
)
