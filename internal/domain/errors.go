package domain

import "errors"

var (
	ErrUnknownWeight = errors.New("unknown weight variant")
	ErrUnknownStatus = errors.New("unknown order status")
	ErrQuantityLimit = errors.New("line quantity limit exceeded")
)
