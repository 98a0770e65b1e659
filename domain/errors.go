package domain

import "errors"

var (
	// ErrNoSizesAvailable means the product has an empty or unusable size
	// chart. Callers recover by asking for a different product.
	ErrNoSizesAvailable = errors.New("no sizes available for product")

	ErrClientNotFound  = errors.New("client not found")
	ErrProductNotFound = errors.New("product not found")
	ErrSessionNotFound = errors.New("session not found")
)
