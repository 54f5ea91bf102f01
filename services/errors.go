package services

import "errors"

var (
	// ErrNoProductIDs means calculate/confirm was called without product ids.
	ErrNoProductIDs = errors.New("no product ids supplied")
	// ErrNoCartLines means no unconfirmed cart lines match the given ids.
	ErrNoCartLines = errors.New("no matching unconfirmed cart lines")
	// ErrInvalidQuantity rejects negative quantities at the validation boundary.
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)
