package core

import "errors"

var (
	ErrInvalidNonceOrder = errors.New("new valset nonce must be greater than the current one")
	ErrMissingSignature  = errors.New("missing signature")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrInsufficientPower = errors.New("insufficient signed power")
	ErrValsetNotFound    = errors.New("valset not found")
)
