// Package errors provides custom error types for catalog operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrVendorNotFound = errors.New("vendor not found")
var ErrAccessDenied = errors.New("access denied")
var ErrInvalidTransition = errors.New("invalid status transition")
